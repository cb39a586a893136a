// Package human turns pointer input into the human player's moves.
package human

import (
	"sync"

	"hexsolo/types"
)

// DragThreshold is how far, in screen cells, the pointer must travel beyond the
// press point before a press becomes a drag. A terminal cell is already wider
// than a few pixels, so any move to another cell starts a drag.
const DragThreshold = 0

// InputState is a state of the gesture interpreter.
type InputState int

const (
	Idle InputState = iota
	Pending
	Dragging
	Selected
)

func (s InputState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Dragging:
		return "dragging"
	case Selected:
		return "selected"
	}
	return "idle"
}

// Surface is the input surface the interpreter reads hit-tests from and
// drives visual feedback on.
type Surface interface {
	// PieceAt hit-tests the human's inventory tray.
	PieceAt(x, y int) (types.Piece, bool)
	// CellAt hit-tests the board.
	CellAt(x, y int) (int, bool)
	// Available reports whether a board cell is empty.
	Available(pos int) bool

	AttachProxy(piece types.Piece, x, y int)
	MoveProxy(x, y int)
	RevertProxy()
	DropProxy()
	Highlight(piece types.Piece, on bool)
	ShowPreview(pos int, piece types.Piece, on bool)
}

// Interpreter is the gesture state machine. Input methods may be called from
// the UI goroutine while Begin is called from the match goroutine.
type Interpreter struct {
	mu      sync.Mutex
	surface Surface

	state          InputState
	candidate      types.Piece
	pressX, pressY int
	selected       types.Piece
	previewed      int
	preview        bool

	listening bool
	resolved  chan types.Move
}

// NewInterpreter creates an idle interpreter with no listeners registered.
func NewInterpreter(s Surface) *Interpreter {
	return &Interpreter{surface: s, previewed: -1}
}

// Begin registers the input hooks for one turn. The returned channel yields
// exactly one move; after that every input is ignored until the next Begin.
func (in *Interpreter) Begin(preview bool) <-chan types.Move {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.reset()
	in.preview = preview
	in.listening = true
	in.resolved = make(chan types.Move, 1)
	return in.resolved
}

// Cancel unregisters the hooks without resolving.
func (in *Interpreter) Cancel() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.clearFeedback()
	in.reset()
	in.listening = false
}

// State returns the current input state.
func (in *Interpreter) State() InputState {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// Listening reports whether a turn is waiting for input.
func (in *Interpreter) Listening() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.listening
}

// SelectedPiece returns the tapped piece while in the selected state.
func (in *Interpreter) SelectedPiece() (types.Piece, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.selected, in.state == Selected
}

// Press handles a pointer press.
func (in *Interpreter) Press(x, y int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.listening {
		return
	}
	switch in.state {
	case Idle:
		if piece, ok := in.surface.PieceAt(x, y); ok {
			in.candidate = piece
			in.pressX, in.pressY = x, y
			in.state = Pending
		}
	case Selected:
		if piece, ok := in.surface.PieceAt(x, y); ok {
			if piece.Key() == in.selected.Key() {
				in.surface.Highlight(in.selected, false)
				in.hidePreview()
				in.reset()
			}
			return
		}
		if pos, ok := in.surface.CellAt(x, y); ok {
			in.boardClick(pos)
		}
	}
}

// Motion handles pointer movement, with or without a button held.
func (in *Interpreter) Motion(x, y int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.listening {
		return
	}
	switch in.state {
	case Pending:
		dx, dy := x-in.pressX, y-in.pressY
		if dx*dx+dy*dy > DragThreshold*DragThreshold {
			in.state = Dragging
			in.surface.AttachProxy(in.candidate, x, y)
		}
	case Dragging:
		in.surface.MoveProxy(x, y)
	case Selected:
		if !in.preview {
			return
		}
		if pos, ok := in.surface.CellAt(x, y); ok && in.surface.Available(pos) && pos != in.previewed {
			in.showPreview(pos)
		}
	}
}

// Release handles a pointer release.
func (in *Interpreter) Release(x, y int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.listening {
		return
	}
	switch in.state {
	case Pending:
		in.selected = in.candidate
		in.candidate = types.Piece{}
		in.state = Selected
		in.surface.Highlight(in.selected, true)
	case Dragging:
		if pos, ok := in.surface.CellAt(x, y); ok && in.surface.Available(pos) {
			in.surface.DropProxy()
			in.commit(types.Move{Position: pos, Piece: in.candidate})
			return
		}
		in.surface.RevertProxy()
		in.reset()
	}
}

// boardClick completes a tap-selected move. With preview on, the first click
// on a cell only previews it and a second click on the same cell confirms.
func (in *Interpreter) boardClick(pos int) {
	if !in.surface.Available(pos) {
		return
	}
	if in.preview && pos != in.previewed {
		in.showPreview(pos)
		return
	}
	in.surface.Highlight(in.selected, false)
	in.hidePreview()
	in.commit(types.Move{Position: pos, Piece: in.selected})
}

func (in *Interpreter) showPreview(pos int) {
	in.hidePreview()
	in.previewed = pos
	in.surface.ShowPreview(pos, in.selected, true)
}

func (in *Interpreter) hidePreview() {
	if in.previewed >= 0 {
		in.surface.ShowPreview(in.previewed, in.selected, false)
		in.previewed = -1
	}
}

// commit resolves the turn and unregisters every hook.
func (in *Interpreter) commit(m types.Move) {
	in.reset()
	in.listening = false
	if in.resolved != nil {
		in.resolved <- m
		in.resolved = nil
	}
}

func (in *Interpreter) clearFeedback() {
	switch in.state {
	case Dragging:
		in.surface.RevertProxy()
	case Selected:
		in.surface.Highlight(in.selected, false)
		in.hidePreview()
	}
}

func (in *Interpreter) reset() {
	in.state = Idle
	in.candidate = types.Piece{}
	in.selected = types.Piece{}
	in.previewed = -1
}
