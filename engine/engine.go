// Package engine drives one single-player match: dealing, the opening toss,
// the turn loop, scoring, trades and game over. Boards, movers, presentation
// and storage are collaborators reached through the interfaces below.
package engine

import (
	"context"
	"errors"
	"time"

	"hexsolo/player"
	"hexsolo/types"
)

// ErrNotImplemented is raised by movers that do not provide an operation.
var ErrNotImplemented = errors.New("move source operation not implemented")

// ErrAborted is returned by Run on a match whose earlier run failed.
var ErrAborted = errors.New("match was aborted and cannot be resumed")

// Board is the hex board collaborator.
type Board interface {
	// Place puts a piece on a position and returns the hexagons it completed.
	Place(pos int, piece types.Piece) []types.Hexagon

	// Back undoes exactly the last Place.
	Back()

	// AvailablePositions returns the empty positions.
	AvailablePositions() []int

	// HexagonPositions returns the scoring placements for a piece. It must not mutate the board.
	HexagonPositions(piece types.Piece) []types.Candidate

	// RandomPosition returns a random position, -1 if none qualifies.
	RandomPosition(excludeOccupied bool) int

	// Occupied returns the number of pieces on the board.
	Occupied() int
}

// PlaceContext is what a mover sees when asked for a move.
type PlaceContext struct {
	Board          Board
	PreviewEnabled bool
	Self           *player.State
	Opponent       *player.State
}

// TradeContext is what a mover sees when asked for a trade after a double formation.
type TradeContext struct {
	Self     *player.State
	Opponent *player.State
}

// MoveSource produces the moves of one player. Every call blocks the turn
// loop until it resolves.
type MoveSource interface {
	// TossPiece paces the opening toss; it only gives feedback.
	TossPiece(ctx context.Context) error

	// PlacePiece returns the next move, or false for "no move".
	PlacePiece(ctx context.Context, pc PlaceContext) (types.Move, bool, error)

	// ForceTrade returns the trade the mover wants after a double formation.
	ForceTrade(ctx context.Context, tc TradeContext) (types.TradeOffer, error)
}

// UnimplementedSource can be embedded by partial movers. Every operation panics.
type UnimplementedSource struct{}

func (UnimplementedSource) TossPiece(context.Context) error {
	panic(ErrNotImplemented)
}

func (UnimplementedSource) PlacePiece(context.Context, PlaceContext) (types.Move, bool, error) {
	panic(ErrNotImplemented)
}

func (UnimplementedSource) ForceTrade(context.Context, TradeContext) (types.TradeOffer, error) {
	panic(ErrNotImplemented)
}

// Presenter receives announcements from the match.
type Presenter interface {
	// AnnouncePhase is called on every phase change with the current mover.
	AnnouncePhase(phase Phase, mover types.Side)

	// MoveCompleted reports a placement so the renderer can animate it.
	MoveCompleted(side types.Side, move types.Move, formed []types.Hexagon)

	// ScoreUpdated reports a player's ledger after it changed.
	ScoreUpdated(side types.Side, score types.ScoreLedger, combo int)

	// TradeCompleted reports an executed swap.
	TradeCompleted(initiator types.Side, offer types.TradeOffer)

	// AcknowledgeForcedTrade shows the opponent's terms and waits for the human to accept them.
	AcknowledgeForcedTrade(ctx context.Context, offer types.TradeOffer) error

	// GameOver shows the final summary.
	GameOver(result types.GameResult)
}

// Storage persists the high score and match history.
type Storage interface {
	HighScore() (int, error)
	SaveHighScore(score int) error
	AppendHistory(record types.MatchHistoryRecord) error
}

// MatchConfig holds configuration for starting a new match.
type MatchConfig struct {
	Difficulty types.Difficulty
	Preview    bool // hover-to-preview placement; disables the preview bonus
	HumanName  string
	Clock      func() time.Time
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() MatchConfig {
	return MatchConfig{
		Difficulty: types.Normal,
		Preview:    false,
		HumanName:  "You",
		Clock:      time.Now,
	}
}

// Phase is a state of the turn engine.
type Phase int

const (
	PhaseDealing Phase = iota
	PhaseTossing
	PhaseAwaitingMove
	PhaseResolvingPlacement
	PhaseTrading
	PhaseGameOver
)

var phaseNames = []string{"dealing", "tossing", "awaiting-move", "resolving-placement", "trading", "game-over"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Speculate places piece on pos, evaluates the board and rolls the placement
// back before returning, whatever eval does. Calls must not nest: the board
// keeps a single undo slot.
func Speculate[T any](b Board, pos int, piece types.Piece, eval func(formed []types.Hexagon) T) T {
	formed := b.Place(pos, piece)
	defer b.Back()
	return eval(formed)
}
