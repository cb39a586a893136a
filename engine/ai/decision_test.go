package ai

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"hexsolo/board"
	"hexsolo/engine"
	"hexsolo/player"
	"hexsolo/types"
)

var (
	yb = types.NewPiece(types.Yellow, types.Blue)
	wr = types.NewPiece(types.White, types.Red)
	bw = types.NewPiece(types.Blue, types.White)
	ry = types.NewPiece(types.Red, types.Yellow)
)

// scriptBoard scores placements with a function of the current occupancy,
// and tracks how deep speculative placements nest.
type scriptBoard struct {
	occupied []bool
	score    func(b *scriptBoard, pos int, key types.ColorKey) int
	last     int
	places   int
	backs    int
	maxOpen  int
}

func newScriptBoard(size int, score func(b *scriptBoard, pos int, key types.ColorKey) int) *scriptBoard {
	return &scriptBoard{occupied: make([]bool, size), score: score, last: -1}
}

func (b *scriptBoard) Place(pos int, piece types.Piece) []types.Hexagon {
	if pos < 0 || pos >= len(b.occupied) || b.occupied[pos] {
		b.last = -1
		return nil
	}
	n := b.score(b, pos, piece.Key())
	b.occupied[pos] = true
	b.last = pos
	b.places++
	b.maxOpen = max(b.maxOpen, b.places-b.backs)
	return make([]types.Hexagon, n)
}

func (b *scriptBoard) Back() {
	if b.last < 0 {
		return
	}
	b.occupied[b.last] = false
	b.last = -1
	b.backs++
}

func (b *scriptBoard) AvailablePositions() []int {
	var out []int
	for i, o := range b.occupied {
		if !o {
			out = append(out, i)
		}
	}
	return out
}

func (b *scriptBoard) HexagonPositions(piece types.Piece) []types.Candidate {
	var out []types.Candidate
	for _, pos := range b.AvailablePositions() {
		if n := b.score(b, pos, piece.Key()); n > 0 {
			out = append(out, types.Candidate{Position: pos, Count: n})
		}
	}
	return out
}

func (b *scriptBoard) RandomPosition(bool) int {
	return -1
}

func (b *scriptBoard) Occupied() int {
	return len(b.occupied) - len(b.AvailablePositions())
}

func (b *scriptBoard) requireBalanced(t *testing.T) {
	t.Helper()
	require.Equal(t, b.places, b.backs, "every speculative place is undone")
	require.LessOrEqual(t, b.maxOpen, 1, "speculation never nests")
	require.Zero(t, b.Occupied())
}

func hand(name string, side types.Side, counts map[types.Piece]int) *player.State {
	s := player.New(name, side)
	for _, p := range []types.Piece{yb, wr, bw, ry} {
		for i := 0; i < counts[p]; i++ {
			s.AddPiece(p)
		}
	}
	return s
}

func decider(t *testing.T, d types.Difficulty) *Decider {
	tier, err := TierFor(d)
	require.NoError(t, err)
	return NewDecider(tier, rand.New(rand.NewSource(3)), zerolog.Nop())
}

func TestInsanePicksSafeMove(t *testing.T) {
	b := newScriptBoard(6, func(b *scriptBoard, pos int, key types.ColorKey) int {
		switch {
		case key == yb.Key() && pos == 0:
			return 2
		case key == yb.Key() && pos == 1:
			return 1
		case key == wr.Key() && pos == 5 && b.occupied[0]:
			return 3
		}
		return 0
	})
	self := hand("bot", types.Opponent, map[types.Piece]int{yb: 9})
	human := hand("you", types.Human, map[types.Piece]int{wr: 9})

	move, ok := decider(t, types.Insane).Decide(b, self, human)
	require.True(t, ok)
	require.Equal(t, types.Move{Position: 1, Piece: yb}, move)
	b.requireBalanced(t)
}

func TestInsaneFallsBackToDefense(t *testing.T) {
	b := newScriptBoard(6, func(b *scriptBoard, pos int, key types.ColorKey) int {
		switch {
		case key == yb.Key() && pos == 0:
			return 2
		case key == yb.Key() && pos == 1:
			return 1
		case key == wr.Key() && pos == 5 && (b.occupied[0] || b.occupied[1]):
			return 3
		}
		return 0
	})
	self := hand("bot", types.Opponent, map[types.Piece]int{yb: 9})
	human := hand("you", types.Human, map[types.Piece]int{wr: 9})

	move, ok := decider(t, types.Insane).Decide(b, self, human)
	require.True(t, ok)
	require.Equal(t, types.Move{Position: 2, Piece: yb}, move, "first placement that leaves no reply")
	b.requireBalanced(t)
}

func TestCautiousOneMinimizesReplies(t *testing.T) {
	b := newScriptBoard(6, func(b *scriptBoard, pos int, key types.ColorKey) int {
		switch {
		case key == yb.Key() && (pos == 0 || pos == 1):
			return 1
		case key == wr.Key() && pos == 4:
			return 1
		case key == wr.Key() && pos == 5 && b.occupied[0]:
			return 1
		}
		return 0
	})
	self := hand("bot", types.Opponent, map[types.Piece]int{yb: 9})
	human := hand("you", types.Human, map[types.Piece]int{wr: 9})

	d := NewDecider(Tier{Offense: 100, Defense: true, Cautious: 1}, rand.New(rand.NewSource(1)), zerolog.Nop())
	move, ok := d.Decide(b, self, human)
	require.True(t, ok)
	require.Equal(t, 1, move.Position)
	b.requireBalanced(t)
}

func TestCautiousZeroTakesBest(t *testing.T) {
	b := newScriptBoard(6, func(b *scriptBoard, pos int, key types.ColorKey) int {
		switch {
		case key == yb.Key() && pos == 2:
			return 1
		case key == yb.Key() && pos == 4:
			return 2
		}
		return 0
	})
	self := hand("bot", types.Opponent, map[types.Piece]int{yb: 9})
	human := hand("you", types.Human, map[types.Piece]int{wr: 9})

	d := NewDecider(Tier{Offense: 100}, rand.New(rand.NewSource(1)), zerolog.Nop())
	move, ok := d.Decide(b, self, human)
	require.True(t, ok)
	require.Equal(t, types.Move{Position: 4, Piece: yb}, move)
	require.Zero(t, b.places, "no lookahead")
}

func TestTripleAlwaysTaken(t *testing.T) {
	for _, d := range types.Difficulties {
		b := newScriptBoard(6, func(b *scriptBoard, pos int, key types.ColorKey) int {
			switch {
			case key == ry.Key() && pos == 3:
				return 3
			case key == bw.Key() && pos == 1:
				return 2
			}
			return 0
		})
		self := hand("bot", types.Opponent, map[types.Piece]int{bw: 9, ry: 9})
		human := hand("you", types.Human, map[types.Piece]int{yb: 9})

		move, ok := decider(t, d).Decide(b, self, human)
		require.True(t, ok, "tier %s", d)
		require.Equal(t, types.Move{Position: 3, Piece: ry}, move, "tier %s", d)
		b.requireBalanced(t)
	}
}

func TestNoLegalMove(t *testing.T) {
	for _, d := range types.Difficulties {
		b := newScriptBoard(2, func(*scriptBoard, int, types.ColorKey) int { return 0 })
		b.occupied[0], b.occupied[1] = true, true
		self := hand("bot", types.Opponent, map[types.Piece]int{bw: 1})
		human := hand("you", types.Human, map[types.Piece]int{yb: 1})

		_, ok := decider(t, d).Decide(b, self, human)
		require.False(t, ok, "tier %s", d)
	}

	b := newScriptBoard(3, func(*scriptBoard, int, types.ColorKey) int { return 0 })
	_, ok := decider(t, types.Insane).Decide(b, player.New("bot", types.Opponent), player.New("you", types.Human))
	require.False(t, ok, "empty hand")
}

func TestRandomWithoutDefense(t *testing.T) {
	b := newScriptBoard(5, func(*scriptBoard, int, types.ColorKey) int { return 0 })
	b.occupied[2] = true
	self := hand("bot", types.Opponent, map[types.Piece]int{bw: 2, ry: 2})
	human := hand("you", types.Human, map[types.Piece]int{yb: 2})

	d := decider(t, types.Beginner)
	for i := 0; i < 20; i++ {
		move, ok := d.Decide(b, self, human)
		require.True(t, ok)
		require.NotEqual(t, 2, move.Position)
		require.Positive(t, self.Count(move.Piece.Key()))
	}
	require.Zero(t, b.places, "random play never speculates")
}

func TestCandidatePieces(t *testing.T) {
	d := NewDecider(Tier{DominantColorThreshold: 2}, rand.New(rand.NewSource(1)), zerolog.Nop())

	dominant := hand("bot", types.Opponent, map[types.Piece]int{bw: 9, ry: 2})
	require.Equal(t, []types.Piece{bw}, d.candidatePieces(dominant))

	even := hand("bot", types.Opponent, map[types.Piece]int{bw: 4, ry: 2})
	require.ElementsMatch(t, []types.Piece{bw, ry}, d.candidatePieces(even))
}

func TestScoringMovesSorted(t *testing.T) {
	b := newScriptBoard(5, func(b *scriptBoard, pos int, key types.ColorKey) int {
		if key == bw.Key() {
			return pos % 3
		}
		return 0
	})
	self := hand("bot", types.Opponent, map[types.Piece]int{bw: 1, ry: 1})

	moves := ScoringMoves(b, self)
	require.Len(t, moves, 3)
	require.Equal(t, []int{2, 1, 1}, []int{moves[0].Count, moves[1].Count, moves[2].Count})
	require.Equal(t, 2, moves[0].Move.Position)
	require.Equal(t, 1, moves[1].Move.Position)
	require.Equal(t, 4, moves[2].Move.Position)
}

func TestSearchLeavesRealBoardUntouched(t *testing.T) {
	for _, d := range types.Difficulties {
		rng := rand.New(rand.NewSource(11))
		b := board.New(3, rng)
		pieces := []types.Piece{yb, wr, bw, ry}
		for i := 0; i < 30; i++ {
			pos := b.RandomPosition(true)
			b.Place(pos, pieces[rng.Intn(len(pieces))])
		}
		cells, hexagons := b.Cells(), b.Hexagons()

		self := hand("bot", types.Opponent, map[types.Piece]int{bw: 5, ry: 3})
		human := hand("you", types.Human, map[types.Piece]int{yb: 4, wr: 6})

		move, ok := decider(t, d).Decide(b, self, human)
		require.True(t, ok, "tier %s", d)
		require.Contains(t, b.AvailablePositions(), move.Position)
		require.Positive(t, self.Count(move.Piece.Key()))
		require.Equal(t, cells, b.Cells(), "tier %s", d)
		require.ElementsMatch(t, hexagons, b.Hexagons(), "tier %s", d)
	}
}

func TestSource(t *testing.T) {
	_, err := NewSource("impossible", 0, rand.New(rand.NewSource(1)), zerolog.Nop())
	require.Error(t, err)

	src, err := NewSource(types.Normal, time.Hour, rand.New(rand.NewSource(1)), zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, src.TossPiece(ctx), context.Canceled, "thinking stops on cancel")

	b := newScriptBoard(3, func(*scriptBoard, int, types.ColorKey) int { return 0 })
	self := hand("bot", types.Opponent, map[types.Piece]int{bw: 3})
	human := hand("you", types.Human, map[types.Piece]int{yb: 1, wr: 2})
	_, _, err = src.PlacePiece(ctx, engine.PlaceContext{Board: b, Self: self, Opponent: human})
	require.ErrorIs(t, err, context.Canceled)

	quick, err := NewSource(types.Normal, 0, rand.New(rand.NewSource(1)), zerolog.Nop())
	require.NoError(t, err)
	move, ok, err := quick.PlacePiece(context.Background(), engine.PlaceContext{Board: b, Self: self, Opponent: human})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, bw, move.Piece)

	offer, err := quick.ForceTrade(context.Background(), engine.TradeContext{Self: self, Opponent: human})
	require.NoError(t, err)
	require.Equal(t, types.TradeOffer{Give: bw, Take: yb, Accepted: true}, offer)
}
