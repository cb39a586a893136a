package engine

import (
	"hexsolo/player"
	"hexsolo/types"
)

const (
	// PreviewBonus is awarded to the human per scoring placement when preview mode is off.
	PreviewBonus = 100

	// OpponentPieceValue is awarded to a winning human per piece left in the opponent's hand.
	OpponentPieceValue = 100
)

var basePoints = map[int]int{1: 100, 2: 200, 3: 300}

// BasePoints returns the points for a placement forming the given number of hexagons.
func BasePoints(formed int) int {
	return basePoints[formed]
}

// awardPlacement credits a scoring placement to p. The combo counter is
// advanced first, so the first scoring placement of a run earns no combo.
func awardPlacement(p *player.State, formed int, previewBonus bool) {
	base := BasePoints(formed)
	p.Combo++
	p.Score.Base += base
	p.Score.Combo += base * (p.Combo - 1)
	if previewBonus {
		p.Score.Preview += PreviewBonus
	}
}

// awardVictory adds the end-of-match bonuses to a human who won.
func awardVictory(human, opponent *player.State, difficulty types.Difficulty) {
	human.Score.OpponentPieces = opponent.TotalPieces() * OpponentPieceValue
	human.Score.Difficulty = difficulty.Bonus()
}
