package ai

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"hexsolo/engine"
	"hexsolo/types"
)

var _ engine.MoveSource = (*Source)(nil)

// Source is the scripted opponent's mover.
type Source struct {
	decider *Decider
	delay   time.Duration
	log     zerolog.Logger
}

// NewSource creates the opponent for a difficulty. delay is the thinking
// pause before each toss and move.
func NewSource(d types.Difficulty, delay time.Duration, rng *rand.Rand, log zerolog.Logger) (*Source, error) {
	tier, err := TierFor(d)
	if err != nil {
		return nil, err
	}
	log = log.With().Str("component", "ai").Str("difficulty", string(d)).Logger()
	return &Source{
		decider: NewDecider(tier, rng, log),
		delay:   delay,
		log:     log,
	}, nil
}

// TossPiece pauses, then lets the engine place the opening piece.
func (s *Source) TossPiece(ctx context.Context) error {
	return s.think(ctx)
}

// PlacePiece pauses and searches for a move.
func (s *Source) PlacePiece(ctx context.Context, pc engine.PlaceContext) (types.Move, bool, error) {
	if err := s.think(ctx); err != nil {
		return types.Move{}, false, err
	}
	start := time.Now()
	move, ok := s.decider.Decide(pc.Board, pc.Self, pc.Opponent)
	s.log.Debug().Dur("took", time.Since(start)).Bool("found", ok).Msg("search done")
	return move, ok, nil
}

// ForceTrade always proposes the forced terms.
func (s *Source) ForceTrade(_ context.Context, tc engine.TradeContext) (types.TradeOffer, error) {
	return engine.ForcedOffer(tc.Self, tc.Opponent), nil
}

func (s *Source) think(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
