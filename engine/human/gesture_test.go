package human

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hexsolo/types"
)

var (
	yb = types.NewPiece(types.Yellow, types.Blue)
	wr = types.NewPiece(types.White, types.Red)
)

// fakeSurface has a tray on row 0 (yellow-blue at x 0-3, white-red at x 4-7)
// and board cells on row 10, one per column, cell 3 occupied.
type fakeSurface struct {
	occupied map[int]bool
	proxy    *types.Piece
	proxyX   int
	reverted int
	dropped  int
	lit      map[types.ColorKey]bool
	previews map[int]bool
}

func newSurface() *fakeSurface {
	return &fakeSurface{
		occupied: map[int]bool{3: true},
		lit:      map[types.ColorKey]bool{},
		previews: map[int]bool{},
	}
}

func (s *fakeSurface) PieceAt(x, y int) (types.Piece, bool) {
	if y != 0 {
		return types.Piece{}, false
	}
	switch {
	case x >= 0 && x < 4:
		return yb, true
	case x >= 4 && x < 8:
		return wr, true
	}
	return types.Piece{}, false
}

func (s *fakeSurface) CellAt(x, y int) (int, bool) {
	if y != 10 || x < 0 || x >= 20 {
		return -1, false
	}
	return x, true
}

func (s *fakeSurface) Available(pos int) bool { return !s.occupied[pos] }

func (s *fakeSurface) AttachProxy(piece types.Piece, x, y int) {
	s.proxy = &piece
	s.proxyX = x
}

func (s *fakeSurface) MoveProxy(x, y int) { s.proxyX = x }

func (s *fakeSurface) RevertProxy() {
	s.proxy = nil
	s.reverted++
}

func (s *fakeSurface) DropProxy() {
	s.proxy = nil
	s.dropped++
}

func (s *fakeSurface) Highlight(piece types.Piece, on bool) { s.lit[piece.Key()] = on }

func (s *fakeSurface) ShowPreview(pos int, _ types.Piece, on bool) { s.previews[pos] = on }

func requireResolved(t *testing.T, moves <-chan types.Move, want types.Move) {
	t.Helper()
	select {
	case got := <-moves:
		require.Equal(t, want, got)
	default:
		t.Fatal("no move resolved")
	}
}

func requirePending(t *testing.T, moves <-chan types.Move) {
	t.Helper()
	select {
	case m := <-moves:
		t.Fatalf("unexpected move %+v", m)
	default:
	}
}

func TestIgnoredUntilBegin(t *testing.T) {
	s := newSurface()
	in := NewInterpreter(s)
	in.Press(1, 0)
	require.Equal(t, Idle, in.State())
	require.False(t, in.Listening())
}

func TestDragCommit(t *testing.T) {
	s := newSurface()
	in := NewInterpreter(s)
	moves := in.Begin(false)

	in.Press(1, 0)
	require.Equal(t, Pending, in.State())

	in.Motion(1, 0)
	require.Equal(t, Pending, in.State(), "jitter inside the pressed cell")

	in.Motion(1, 1)
	require.Equal(t, Dragging, in.State())
	require.Equal(t, yb, *s.proxy)

	in.Motion(9, 10)
	require.Equal(t, 9, s.proxyX)

	in.Release(7, 10)
	require.Equal(t, Idle, in.State())
	require.Equal(t, 1, s.dropped)
	require.False(t, in.Listening())
	requireResolved(t, moves, types.Move{Position: 7, Piece: yb})
}

func TestDragAbort(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"off board", 40, 40},
		{"occupied cell", 3, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSurface()
			in := NewInterpreter(s)
			moves := in.Begin(false)

			in.Press(5, 0)
			in.Motion(5, 9)
			require.Equal(t, Dragging, in.State())

			in.Release(tt.x, tt.y)
			require.Equal(t, Idle, in.State())
			require.Equal(t, 1, s.reverted)
			require.Nil(t, s.proxy)
			require.True(t, in.Listening(), "the turn is still open")
			requirePending(t, moves)
		})
	}
}

func TestTapSelectAndPlace(t *testing.T) {
	s := newSurface()
	in := NewInterpreter(s)
	moves := in.Begin(false)

	in.Press(5, 0)
	in.Release(5, 0)
	require.Equal(t, Selected, in.State())
	require.True(t, s.lit[wr.Key()])
	piece, ok := in.SelectedPiece()
	require.True(t, ok)
	require.Equal(t, wr, piece)

	in.Press(1, 0)
	require.Equal(t, Selected, in.State(), "a different piece is ignored")
	piece, _ = in.SelectedPiece()
	require.Equal(t, wr, piece)

	in.Press(3, 10)
	require.Equal(t, Selected, in.State(), "occupied cell is ignored")

	in.Press(12, 10)
	require.Equal(t, Idle, in.State())
	require.False(t, s.lit[wr.Key()])
	requireResolved(t, moves, types.Move{Position: 12, Piece: wr})
}

func TestTapDeselect(t *testing.T) {
	s := newSurface()
	in := NewInterpreter(s)
	moves := in.Begin(false)

	in.Press(1, 0)
	in.Release(1, 0)
	require.Equal(t, Selected, in.State())

	in.Press(2, 0)
	require.Equal(t, Idle, in.State())
	require.False(t, s.lit[yb.Key()])
	_, ok := in.SelectedPiece()
	require.False(t, ok)
	requirePending(t, moves)
}

func TestPreviewConfirm(t *testing.T) {
	s := newSurface()
	in := NewInterpreter(s)
	moves := in.Begin(true)

	in.Press(1, 0)
	in.Release(1, 0)

	in.Motion(6, 10)
	require.True(t, s.previews[6])

	in.Press(8, 10)
	require.Equal(t, Selected, in.State(), "clicking another cell moves the preview")
	require.False(t, s.previews[6])
	require.True(t, s.previews[8])
	requirePending(t, moves)

	in.Press(8, 10)
	require.Equal(t, Idle, in.State())
	require.False(t, s.previews[8])
	requireResolved(t, moves, types.Move{Position: 8, Piece: yb})
}

func TestHoverIgnoredWithoutPreview(t *testing.T) {
	s := newSurface()
	in := NewInterpreter(s)
	in.Begin(false)

	in.Press(1, 0)
	in.Release(1, 0)
	in.Motion(6, 10)
	require.Empty(t, s.previews)
}

func TestResolvesOnce(t *testing.T) {
	s := newSurface()
	in := NewInterpreter(s)
	moves := in.Begin(false)

	in.Press(1, 0)
	in.Release(1, 0)
	in.Press(5, 10)
	requireResolved(t, moves, types.Move{Position: 5, Piece: yb})

	// Input after the commit belongs to no turn.
	in.Press(1, 0)
	in.Release(1, 0)
	in.Press(6, 10)
	require.Equal(t, Idle, in.State())
	requirePending(t, moves)

	next := in.Begin(false)
	in.Press(5, 0)
	in.Release(5, 0)
	in.Press(6, 10)
	requireResolved(t, next, types.Move{Position: 6, Piece: wr})
}

func TestCancel(t *testing.T) {
	s := newSurface()
	in := NewInterpreter(s)
	moves := in.Begin(false)

	in.Press(1, 0)
	in.Motion(1, 8)
	require.Equal(t, Dragging, in.State())

	in.Cancel()
	require.Equal(t, Idle, in.State())
	require.Equal(t, 1, s.reverted)
	require.False(t, in.Listening())

	in.Release(7, 10)
	requirePending(t, moves)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "pending", Pending.String())
	require.Equal(t, "dragging", Dragging.String())
	require.Equal(t, "selected", Selected.String())
}
