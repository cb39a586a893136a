package engine

import (
	"context"
	"fmt"

	"hexsolo/player"
	"hexsolo/types"
)

// ForcedOffer builds the scripted opponent's terms: it gives its most-held key
// and takes the counterpart's least-held key. The offer is not accepted when
// either side holds nothing.
func ForcedOffer(self, counterpart *player.State) types.TradeOffer {
	give, ok := self.MostHeld()
	if !ok {
		return types.TradeOffer{}
	}
	take, ok := counterpart.LeastHeld()
	if !ok {
		return types.TradeOffer{}
	}
	givePiece, err := types.PieceOf(give.Key)
	if err != nil {
		return types.TradeOffer{}
	}
	takePiece, err := types.PieceOf(take.Key)
	if err != nil {
		return types.TradeOffer{}
	}
	return types.TradeOffer{Give: givePiece, Take: takePiece, Accepted: true}
}

// trade runs the negotiation after a double formation. The mover keeps the turn
// whatever the outcome.
func (m *Match) trade(ctx context.Context) error {
	m.setPhase(PhaseTrading)
	self, other := m.players[m.mover], m.players[m.mover.Other()]
	if len(self.Keys()) == 0 || len(other.Keys()) == 0 {
		m.log.Debug().Str("mover", m.mover.String()).Msg("trade skipped, empty inventory")
		return nil
	}

	offer, err := m.sources[m.mover].ForceTrade(ctx, TradeContext{Self: self, Opponent: other})
	if err != nil {
		return fmt.Errorf("%s trade: %w", m.mover, err)
	}
	if !offer.Accepted {
		m.log.Info().Str("mover", m.mover.String()).Msg("trade declined")
		return nil
	}

	if m.mover == types.Opponent {
		if err := m.presenter.AcknowledgeForcedTrade(ctx, offer); err != nil {
			return fmt.Errorf("acknowledge forced trade: %w", err)
		}
	}

	if !player.Swap(self, other, offer) {
		m.log.Warn().
			Str("give", string(offer.Give.Key())).
			Str("take", string(offer.Take.Key())).
			Msg("trade pieces unavailable")
		return nil
	}
	m.log.Info().
		Str("mover", m.mover.String()).
		Str("give", string(offer.Give.Key())).
		Str("take", string(offer.Take.Key())).
		Msg("trade executed")
	m.presenter.TradeCompleted(m.mover, offer)
	return nil
}
