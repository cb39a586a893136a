// Package player holds a player's piece inventory and score ledger.
package player

import (
	"golang.org/x/exp/slices"

	"hexsolo/types"
)

// KeyCount is the number of pieces held for one color-pair key.
type KeyCount struct {
	Key   types.ColorKey
	Count int
}

// State is one player's inventory, score ledger and combo counter.
// Pieces sharing a key are fungible, so each key is a plain stack.
type State struct {
	Name  string
	Side  types.Side
	Score types.ScoreLedger
	Combo int

	stacks map[types.ColorKey][]types.Piece
	keys   []types.ColorKey // first-seen order
}

// New creates an empty player.
func New(name string, side types.Side) *State {
	return &State{
		Name:   name,
		Side:   side,
		stacks: make(map[types.ColorKey][]types.Piece),
	}
}

// AddPiece pushes a piece onto its key's stack, creating the key if absent.
func (s *State) AddPiece(p types.Piece) {
	key := p.Key()
	if _, ok := s.stacks[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.stacks[key] = append(s.stacks[key], p)
}

// PopPiece removes one piece of the key. It returns false when none is available.
func (s *State) PopPiece(key types.ColorKey) (types.Piece, bool) {
	stack := s.stacks[key]
	if len(stack) == 0 {
		return types.Piece{}, false
	}
	p := stack[len(stack)-1]
	s.stacks[key] = stack[:len(stack)-1]
	return p, true
}

// Count returns how many pieces of the key are held.
func (s *State) Count(key types.ColorKey) int {
	return len(s.stacks[key])
}

// TotalPieces is the sum of all stack lengths.
func (s *State) TotalPieces() int {
	total := 0
	for _, stack := range s.stacks {
		total += len(stack)
	}
	return total
}

// Keys returns the keys with at least one piece, in first-seen order.
func (s *State) Keys() []types.ColorKey {
	var keys []types.ColorKey
	for _, k := range s.keys {
		if len(s.stacks[k]) > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// Pieces returns one representative piece for every non-empty key.
func (s *State) Pieces() []types.Piece {
	var pieces []types.Piece
	for _, k := range s.Keys() {
		stack := s.stacks[k]
		pieces = append(pieces, stack[len(stack)-1])
	}
	return pieces
}

// Stats returns the non-empty keys sorted by descending count.
// Equal counts keep first-seen order.
func (s *State) Stats() []KeyCount {
	var stats []KeyCount
	for _, k := range s.Keys() {
		stats = append(stats, KeyCount{Key: k, Count: len(s.stacks[k])})
	}
	slices.SortStableFunc(stats, func(a, b KeyCount) int {
		return b.Count - a.Count
	})
	return stats
}

// MostHeld returns the key with the most pieces.
func (s *State) MostHeld() (KeyCount, bool) {
	stats := s.Stats()
	if len(stats) == 0 {
		return KeyCount{}, false
	}
	return stats[0], true
}

// LeastHeld returns the last entry of Stats.
func (s *State) LeastHeld() (KeyCount, bool) {
	stats := s.Stats()
	if len(stats) == 0 {
		return KeyCount{}, false
	}
	return stats[len(stats)-1], true
}

// ResetCombo clears the consecutive-scoring counter.
func (s *State) ResetCombo() {
	s.Combo = 0
}

// Swap moves offer.Give from initiator to receiver and offer.Take from receiver
// to initiator. Nothing changes unless both pieces are available.
func Swap(initiator, receiver *State, offer types.TradeOffer) bool {
	giveKey, takeKey := offer.Give.Key(), offer.Take.Key()
	if initiator.Count(giveKey) == 0 || receiver.Count(takeKey) == 0 {
		return false
	}
	give, _ := initiator.PopPiece(giveKey)
	take, _ := receiver.PopPiece(takeKey)
	receiver.AddPiece(give)
	initiator.AddPiece(take)
	return true
}
