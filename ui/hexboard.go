// Package ui specifies custom controls for tview to play hexsolo in the terminal.
package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"hexsolo/board"
	"hexsolo/config"
	"hexsolo/engine/human"
	"hexsolo/player"
	"hexsolo/types"
)

const (
	boardPadX = 2
	boardPadY = 1
	trayGap   = 2
)

var _ human.Surface = (*HexBoardUI)(nil)

type trayItem struct {
	piece types.Piece
	count int
	x, y  int
	w     int
}

type dragProxy struct {
	piece types.Piece
	x, y  int
}

// HexBoardUI draws the board and the human's piece tray, and feeds mouse
// input to the gesture interpreter. It is the renderer and the gesture surface.
type HexBoardUI struct {
	Box *tview.Box
	app *tview.Application
	cfg *config.Config

	mu       sync.Mutex
	layout   *board.Board // geometry only; cell contents come from snapshots
	cells    []board.Cell
	centers  []board.Center
	tray     []trayItem
	lastMove int
	selected types.ColorKey
	preview  int
	proxy    *dragProxy
	originX  int
	originY  int
	styles   map[types.Color]tcell.Color

	interp *human.Interpreter
}

// NewHexBoard creates an empty board view.
func NewHexBoard(app *tview.Application, c *config.Config) *HexBoardUI {
	hb := &HexBoardUI{
		Box:      tview.NewBox(),
		app:      app,
		lastMove: -1,
		preview:  -1,
	}
	hb.SetConfig(c)
	hb.Box.SetDrawFunc(hb.draw)
	hb.Box.SetMouseCapture(hb.handleMouse)
	return hb
}

// SetConfig applies a theme.
func (hb *HexBoardUI) SetConfig(c *config.Config) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	hb.cfg = c
	hb.styles = map[types.Color]tcell.Color{
		types.Yellow:  tcell.PaletteColor(c.Theme.Colors.Yellow),
		types.Blue:    tcell.PaletteColor(c.Theme.Colors.Blue),
		types.White:   tcell.PaletteColor(c.Theme.Colors.White),
		types.Red:     tcell.PaletteColor(c.Theme.Colors.Red),
		types.NoColor: tcell.PaletteColor(c.Theme.Colors.Empty),
	}
}

// Reset attaches a new board and interpreter for a match.
func (hb *HexBoardUI) Reset(b *board.Board, in *human.Interpreter) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	hb.layout = b
	hb.cells = b.Cells()
	hb.centers = b.Centers()
	hb.tray = nil
	hb.lastMove = -1
	hb.selected = ""
	hb.preview = -1
	hb.proxy = nil
	hb.interp = in
}

// Update replaces the board contents and tray with a snapshot taken by the match goroutine.
func (hb *HexBoardUI) Update(cells []board.Cell, centers []board.Center, inventory []player.KeyCount, lastMove int) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	hb.cells = cells
	hb.centers = centers
	hb.lastMove = lastMove
	hb.tray = hb.tray[:0]
	for _, kc := range inventory {
		piece, err := types.PieceOf(kc.Key)
		if err != nil {
			continue
		}
		hb.tray = append(hb.tray, trayItem{piece: piece, count: kc.Count})
	}
	hb.layoutTray()
}

// CellPixel returns the screen position of a board cell.
func (hb *HexBoardUI) CellPixel(pos int) (int, int, bool) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	if hb.layout == nil {
		return 0, 0, false
	}
	x, y, ok := hb.layout.Pixel(pos)
	return hb.originX + x, hb.originY + y, ok
}

// PieceAt hit-tests the tray.
func (hb *HexBoardUI) PieceAt(x, y int) (types.Piece, bool) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	for _, it := range hb.tray {
		if it.count > 0 && y == it.y && x >= it.x && x < it.x+it.w {
			return it.piece, true
		}
	}
	return types.Piece{}, false
}

// CellAt hit-tests the board.
func (hb *HexBoardUI) CellAt(x, y int) (int, bool) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	if hb.layout == nil {
		return -1, false
	}
	return hb.layout.PositionAt(x-hb.originX, y-hb.originY)
}

// Available reports whether a cell is empty in the latest snapshot.
func (hb *HexBoardUI) Available(pos int) bool {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return pos >= 0 && pos < len(hb.cells) && !hb.cells[pos].Occupied
}

func (hb *HexBoardUI) AttachProxy(piece types.Piece, x, y int) {
	hb.mu.Lock()
	hb.proxy = &dragProxy{piece: piece, x: x, y: y}
	hb.mu.Unlock()
	hb.requestDraw()
}

func (hb *HexBoardUI) MoveProxy(x, y int) {
	hb.mu.Lock()
	if hb.proxy != nil {
		hb.proxy.x, hb.proxy.y = x, y
	}
	hb.mu.Unlock()
	hb.requestDraw()
}

// RevertProxy snaps the dragged piece back to the tray.
func (hb *HexBoardUI) RevertProxy() {
	hb.mu.Lock()
	hb.proxy = nil
	hb.mu.Unlock()
	hb.requestDraw()
}

// DropProxy removes the dragged piece after a committed drop.
func (hb *HexBoardUI) DropProxy() {
	hb.RevertProxy()
}

func (hb *HexBoardUI) Highlight(piece types.Piece, on bool) {
	hb.mu.Lock()
	hb.selected = ""
	if on {
		hb.selected = piece.Key()
	}
	hb.mu.Unlock()
	hb.requestDraw()
}

func (hb *HexBoardUI) ShowPreview(pos int, _ types.Piece, on bool) {
	hb.mu.Lock()
	if on {
		hb.preview = pos
	} else if hb.preview == pos {
		hb.preview = -1
	}
	hb.mu.Unlock()
	hb.requestDraw()
}

// handleMouse routes tview mouse actions to the interpreter. Hooks are only
// live while the interpreter is listening for a move.
func (hb *HexBoardUI) handleMouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	hb.mu.Lock()
	in := hb.interp
	hb.mu.Unlock()
	if in == nil || !in.Listening() {
		return action, event
	}
	x, y := event.Position()
	switch action {
	case tview.MouseLeftDown:
		in.Press(x, y)
	case tview.MouseMove:
		in.Motion(x, y)
	case tview.MouseLeftUp:
		in.Release(x, y)
	}
	return action, event
}

// requestDraw redraws from a separate goroutine so it is safe to call from
// inside tview event handlers.
func (hb *HexBoardUI) requestDraw() {
	if hb.app == nil {
		return
	}
	go hb.app.QueueUpdateDraw(func() {})
}

// layoutTray positions the tray items below the board. Must hold mu.
func (hb *HexBoardUI) layoutTray() {
	if hb.layout == nil {
		return
	}
	_, h := hb.layout.Dimensions()
	col := hb.originX
	for i := range hb.tray {
		it := &hb.tray[i]
		it.x = col
		it.y = hb.originY + h + trayGap
		it.w = len([]rune(trayLabel(it.piece, it.count)))
		col += it.w + 2
	}
}

func trayLabel(p types.Piece, count int) string {
	return fmt.Sprintf("▐██▌ %s ×%d", p.Key(), count)
}

func (hb *HexBoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	if hb.layout == nil {
		return x, y, width, height
	}

	bw, bh := hb.layout.Dimensions()
	hb.originX = x + max(boardPadX, (width-bw)/2)
	hb.originY = y + boardPadY
	hb.layoutTray()

	sym := hb.cfg.Theme.Symbols
	colors := hb.cfg.Theme.Colors
	gridStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(colors.Grid))

	for _, c := range hb.centers {
		style, r := gridStyle, sym.Center
		if c.Formed {
			style, r = tcell.StyleDefault.Foreground(hb.styles[c.Color]).Bold(true), sym.Hexagon
		}
		screen.SetContent(hb.originX+c.X, hb.originY+c.Y, r, nil, style)
	}

	for _, c := range hb.cells {
		glyph := sym.Down
		if c.Kind == board.Up {
			glyph = sym.Up
		}
		cx, cy := hb.originX+c.X, hb.originY+c.Y
		if !c.Occupied {
			style := tcell.StyleDefault.Foreground(hb.styles[types.NoColor])
			if c.Position == hb.preview {
				style = style.Foreground(tcell.PaletteColor(colors.Preview))
			}
			screen.SetContent(cx, cy, glyph, nil, style)
			screen.SetContent(cx+1, cy, ' ', nil, style)
			continue
		}
		major, minor := majorityFaces(c.Faces)
		style := tcell.StyleDefault.Foreground(hb.styles[major]).Background(hb.styles[minor])
		first := style
		if c.Position == hb.lastMove {
			first = style.Background(tcell.PaletteColor(colors.LastPlayed))
		}
		screen.SetContent(cx, cy, glyph, nil, first)
		screen.SetContent(cx+1, cy, glyph, nil, style)
	}

	for _, it := range hb.tray {
		label := []rune(trayLabel(it.piece, it.count))
		style := tcell.StyleDefault
		if it.piece.Key() == hb.selected {
			style = style.Background(tcell.PaletteColor(colors.Highlight))
		}
		for i, ch := range label {
			s := style
			switch i {
			case 1:
				s = s.Foreground(hb.styles[it.piece.A])
			case 2:
				s = s.Foreground(hb.styles[it.piece.B])
			}
			screen.SetContent(it.x+i, it.y, ch, nil, s)
		}
	}

	if hb.proxy != nil {
		screen.SetContent(hb.proxy.x, hb.proxy.y, '█', nil, tcell.StyleDefault.Foreground(hb.styles[hb.proxy.piece.A]))
		screen.SetContent(hb.proxy.x+1, hb.proxy.y, '█', nil, tcell.StyleDefault.Foreground(hb.styles[hb.proxy.piece.B]))
	}

	return x, y, max(bw+boardPadX*2, width), bh + boardPadY + trayGap + 1
}

// majorityFaces returns the color shown to two corners and the one shown to the third.
func majorityFaces(f [3]types.Color) (types.Color, types.Color) {
	switch {
	case f[0] == f[1]:
		return f[0], f[2]
	case f[0] == f[2]:
		return f[0], f[1]
	default:
		return f[1], f[0]
	}
}
