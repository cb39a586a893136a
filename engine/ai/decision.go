// Package ai implements the scripted opponent: a difficulty-tiered move
// search that evaluates candidates by speculative placement on the board.
package ai

import (
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"hexsolo/engine"
	"hexsolo/player"
	"hexsolo/types"
)

// ScoringMove is a placement that forms at least one hexagon.
type ScoringMove struct {
	Move  types.Move
	Count int
}

// Decider chooses the opponent's moves.
type Decider struct {
	tier Tier
	rng  *rand.Rand
	log  zerolog.Logger
}

// NewDecider creates a decider for the given tier.
func NewDecider(tier Tier, rng *rand.Rand, log zerolog.Logger) *Decider {
	return &Decider{tier: tier, rng: rng, log: log}
}

// Decide returns the move for self, or false when no legal placement exists.
// The board is left exactly as it was found.
func (d *Decider) Decide(b engine.Board, self, opponent *player.State) (types.Move, bool) {
	moves := ScoringMoves(b, self)
	if len(moves) == 0 {
		if d.tier.Defense {
			d.log.Debug().Msg("no scoring move, defending")
			return d.defensive(b, self, opponent)
		}
		d.log.Debug().Msg("no scoring move, random")
		return d.random(b, self)
	}

	if moves[0].Count >= 3 {
		d.log.Debug().Int("pos", moves[0].Move.Position).Msg("winning move")
		return moves[0].Move, true
	}

	if d.rng.Intn(100) < d.tier.Offense {
		return d.offensive(b, moves, self, opponent)
	}
	d.log.Debug().Msg("random move")
	return d.random(b, self)
}

// ScoringMoves lists every placement of self's pieces that forms a hexagon,
// most hexagons first. Equal counts keep inventory then board order.
func ScoringMoves(b engine.Board, self *player.State) []ScoringMove {
	var moves []ScoringMove
	for _, piece := range self.Pieces() {
		for _, c := range b.HexagonPositions(piece) {
			moves = append(moves, ScoringMove{
				Move:  types.Move{Position: c.Position, Piece: piece},
				Count: c.Count,
			})
		}
	}
	slices.SortStableFunc(moves, func(a, c ScoringMove) int {
		return c.Count - a.Count
	})
	return moves
}

func (d *Decider) offensive(b engine.Board, moves []ScoringMove, self, opponent *player.State) (types.Move, bool) {
	switch d.tier.Cautious {
	case 1:
		best, bestOptions := moves[0].Move, -1
		for _, m := range moves {
			options := engine.Speculate(b, m.Move.Position, m.Move.Piece, func([]types.Hexagon) int {
				return replyOptions(b, opponent)
			})
			if bestOptions == -1 || options < bestOptions {
				best, bestOptions = m.Move, options
			}
		}
		d.log.Debug().Int("pos", best.Position).Int("replies", bestOptions).Msg("cautious offense")
		return best, true
	case 2:
		for _, m := range moves {
			unsafe := engine.Speculate(b, m.Move.Position, m.Move.Piece, func([]types.Hexagon) bool {
				return bestReply(b, opponent) >= 3
			})
			if !unsafe {
				d.log.Debug().Int("pos", m.Move.Position).Msg("safe offense")
				return m.Move, true
			}
		}
		d.log.Debug().Msg("every scoring move hands over a triple, defending")
		return d.defensive(b, self, opponent)
	default:
		d.log.Debug().Int("pos", moves[0].Move.Position).Msg("offense")
		return moves[0].Move, true
	}
}

// defensive picks the placement leaving the opponent the weakest best reply.
func (d *Decider) defensive(b engine.Board, self, opponent *player.State) (types.Move, bool) {
	pieces := d.candidatePieces(self)
	var best types.Move
	bestReplyCount := -1
	for _, pos := range b.AvailablePositions() {
		for _, piece := range pieces {
			reply := engine.Speculate(b, pos, piece, func([]types.Hexagon) int {
				return bestReply(b, opponent)
			})
			if bestReplyCount == -1 || reply < bestReplyCount {
				best, bestReplyCount = types.Move{Position: pos, Piece: piece}, reply
			}
		}
	}
	if bestReplyCount == -1 {
		return types.Move{}, false
	}
	d.log.Debug().Int("pos", best.Position).Int("reply", bestReplyCount).Msg("defense")
	return best, true
}

// candidatePieces narrows the defensive search to the most-held key when it
// dominates the runner-up by more than the tier threshold.
func (d *Decider) candidatePieces(self *player.State) []types.Piece {
	stats := self.Stats()
	if len(stats) >= 2 && stats[0].Count-stats[1].Count > d.tier.DominantColorThreshold {
		if p, err := types.PieceOf(stats[0].Key); err == nil {
			return []types.Piece{p}
		}
	}
	return self.Pieces()
}

func (d *Decider) random(b engine.Board, self *player.State) (types.Move, bool) {
	positions := b.AvailablePositions()
	pieces := self.Pieces()
	if len(positions) == 0 || len(pieces) == 0 {
		return types.Move{}, false
	}
	return types.Move{
		Position: positions[d.rng.Intn(len(positions))],
		Piece:    pieces[d.rng.Intn(len(pieces))],
	}, true
}

// bestReply is the most hexagons the opponent could form with one placement.
func bestReply(b engine.Board, opponent *player.State) int {
	best := 0
	for _, piece := range opponent.Pieces() {
		for _, c := range b.HexagonPositions(piece) {
			best = max(best, c.Count)
		}
	}
	return best
}

// replyOptions counts the opponent's scoring placements.
func replyOptions(b engine.Board, opponent *player.State) int {
	n := 0
	for _, piece := range opponent.Pieces() {
		n += len(b.HexagonPositions(piece))
	}
	return n
}
