package human

import (
	"context"

	"hexsolo/engine"
	"hexsolo/player"
	"hexsolo/types"
)

var _ engine.MoveSource = (*Source)(nil)

// Prompter asks the human for the decisions that are not board gestures.
type Prompter interface {
	// PromptToss waits for the human to start the opening toss.
	PromptToss(ctx context.Context) error

	// ChooseTrade lets the human pick one own piece and one of the counterpart's,
	// or decline.
	ChooseTrade(ctx context.Context, self, counterpart *player.State) (types.TradeOffer, error)
}

// Source is the human player's mover.
type Source struct {
	in       *Interpreter
	prompter Prompter
}

// NewSource creates the human mover.
func NewSource(in *Interpreter, p Prompter) *Source {
	return &Source{in: in, prompter: p}
}

// TossPiece waits for the human to toss.
func (s *Source) TossPiece(ctx context.Context) error {
	return s.prompter.PromptToss(ctx)
}

// PlacePiece waits, without timeout, for the gesture interpreter to commit a move.
func (s *Source) PlacePiece(ctx context.Context, pc engine.PlaceContext) (types.Move, bool, error) {
	if len(pc.Self.Keys()) == 0 || len(pc.Board.AvailablePositions()) == 0 {
		return types.Move{}, false, nil
	}
	moves := s.in.Begin(pc.PreviewEnabled)
	select {
	case <-ctx.Done():
		s.in.Cancel()
		return types.Move{}, false, ctx.Err()
	case m := <-moves:
		return m, true, nil
	}
}

// ForceTrade runs the voluntary trade selection.
func (s *Source) ForceTrade(ctx context.Context, tc engine.TradeContext) (types.TradeOffer, error) {
	if len(tc.Self.Keys()) == 0 || len(tc.Opponent.Keys()) == 0 {
		return types.TradeOffer{}, nil
	}
	return s.prompter.ChooseTrade(ctx, tc.Self, tc.Opponent)
}
