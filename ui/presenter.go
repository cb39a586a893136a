package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/rivo/tview"

	"hexsolo/board"
	"hexsolo/engine"
	"hexsolo/engine/human"
	"hexsolo/player"
	"hexsolo/types"
)

const pageDialog = "dialog"

var (
	_ engine.Presenter = (*Presenter)(nil)
	_ human.Prompter   = (*Presenter)(nil)
)

// Presenter bridges the match goroutine and the tview application. Its
// engine-facing methods run on the match goroutine: they snapshot the board
// and players there and hand the copies to the UI goroutine.
type Presenter struct {
	app    *tview.Application
	pages  *tview.Pages
	board  *HexBoardUI
	panel  *ScorePanel
	hint   *tview.TextView
	onDone func(types.GameResult)

	ctx      context.Context
	match    *engine.Match
	layout   *board.Board
	lastMove int
}

// NewPresenter creates a presenter drawing into the given widgets. onDone runs
// on the UI goroutine when the human dismisses the game over screen.
func NewPresenter(app *tview.Application, pages *tview.Pages, b *HexBoardUI, panel *ScorePanel, hint *tview.TextView, onDone func(types.GameResult)) *Presenter {
	return &Presenter{
		app:      app,
		pages:    pages,
		board:    b,
		panel:    panel,
		hint:     hint,
		onDone:   onDone,
		lastMove: -1,
	}
}

// Attach binds the presenter to the match it reports on. It must be called
// before the match is run. Once ctx is done the presenter stops touching the
// widgets, which by then may belong to the next match.
func (p *Presenter) Attach(ctx context.Context, m *engine.Match, b *board.Board) {
	p.ctx = ctx
	p.match = m
	p.layout = b
}

func (p *Presenter) stale() bool {
	return p.ctx != nil && p.ctx.Err() != nil
}

func (p *Presenter) AnnouncePhase(phase engine.Phase, mover types.Side) {
	var status string
	switch phase {
	case engine.PhaseDealing:
		status = "Dealing pieces..."
	case engine.PhaseTossing:
		status = fmt.Sprintf("%s tosses the first piece", p.name(mover))
	case engine.PhaseAwaitingMove:
		if mover == types.Human {
			status = p.moveHint()
		} else {
			status = "Opponent is thinking..."
		}
	case engine.PhaseResolvingPlacement:
		status = ""
	case engine.PhaseTrading:
		status = fmt.Sprintf("%s formed two hexagons and trades a piece", p.name(mover))
	case engine.PhaseGameOver:
		status = "Game over"
	}
	p.sync(status, nil)
}

func (p *Presenter) MoveCompleted(side types.Side, move types.Move, formed []types.Hexagon) {
	p.lastMove = move.Position
	entry := LogEntry{
		Side:   side,
		Label:  p.layout.Label(move.Position),
		Piece:  move.Piece,
		Formed: len(formed),
	}
	p.sync("", func() { p.panel.Append(entry) })
}

func (p *Presenter) ScoreUpdated(types.Side, types.ScoreLedger, int) {
	p.sync("", nil)
}

func (p *Presenter) TradeCompleted(initiator types.Side, offer types.TradeOffer) {
	entry := LogEntry{Side: initiator, Traded: true, Offer: offer}
	p.sync("", func() { p.panel.Append(entry) })
}

func (p *Presenter) AcknowledgeForcedTrade(ctx context.Context, offer types.TradeOffer) error {
	return p.modal(ctx, ForcedTradeText(offer), "OK")
}

func (p *Presenter) GameOver(result types.GameResult) {
	text := fmt.Sprintf("%s\n\nScore %d    Total %d\nBest %d", result.Title, result.Score.Total(), result.Total, result.HighScore)
	if result.Won {
		text += fmt.Sprintf("\n\nincludes %d for the opponent's pieces\nand %d %s bonus",
			result.Score.OpponentPieces, result.Score.Difficulty, result.Difficulty.Label())
	}
	p.sync("Game over", func() {
		modal := tview.NewModal().
			SetText(text).
			AddButtons([]string{"Continue"}).
			SetDoneFunc(func(int, string) {
				p.pages.RemovePage(pageDialog)
				if p.onDone != nil {
					p.onDone(result)
				}
			})
		p.pages.AddPage(pageDialog, modal, true, true)
		p.app.SetFocus(modal)
	})
}

// PromptToss waits for the human to press the toss button.
func (p *Presenter) PromptToss(ctx context.Context) error {
	return p.modal(ctx, "You won the coin flip.\n\nToss your first piece onto the board.", "Toss")
}

// ChooseTrade shows the trade dialog and waits for a choice.
func (p *Presenter) ChooseTrade(ctx context.Context, self, counterpart *player.State) (types.TradeOffer, error) {
	mine, theirs := self.Stats(), counterpart.Stats()
	choice := make(chan types.TradeOffer, 1)
	p.app.QueueUpdateDraw(func() {
		d := NewTradeDialog(p.app, mine, theirs, func(offer types.TradeOffer) {
			p.closeDialog()
			select {
			case choice <- offer:
			default:
			}
		})
		p.pages.AddPage(pageDialog, d.Flex(), true, true)
		p.app.SetFocus(d.Focus())
	})
	select {
	case <-ctx.Done():
		p.app.QueueUpdateDraw(p.closeDialog)
		return types.TradeOffer{}, ctx.Err()
	case offer := <-choice:
		return offer, nil
	}
}

// modal shows a one-button message and waits for it to be dismissed.
func (p *Presenter) modal(ctx context.Context, text, button string) error {
	done := make(chan struct{})
	var once sync.Once
	p.app.QueueUpdateDraw(func() {
		m := tview.NewModal().
			SetText(text).
			AddButtons([]string{button}).
			SetDoneFunc(func(int, string) {
				p.closeDialog()
				once.Do(func() { close(done) })
			})
		p.pages.AddPage(pageDialog, m, true, true)
		p.app.SetFocus(m)
	})
	select {
	case <-ctx.Done():
		p.app.QueueUpdateDraw(p.closeDialog)
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (p *Presenter) closeDialog() {
	if p.pages.HasPage(pageDialog) {
		p.pages.RemovePage(pageDialog)
	}
	p.app.SetFocus(p.board.Box)
}

// sync snapshots the match on the calling goroutine and applies it, plus
// extra, on the UI goroutine.
func (p *Presenter) sync(status string, extra func()) {
	if p.match == nil || p.layout == nil || p.stale() {
		return
	}
	cells, centers := p.layout.Cells(), p.layout.Centers()
	humanView, opponentView := p.sideView(types.Human), p.sideView(types.Opponent)
	mover, lastMove := p.match.Mover(), p.lastMove

	p.app.QueueUpdateDraw(func() {
		if p.stale() {
			return
		}
		p.board.Update(cells, centers, humanView.Inventory, lastMove)
		p.panel.SetSides(humanView, opponentView, mover)
		if status != "" {
			p.hint.SetText(status)
		}
		if extra != nil {
			extra()
		}
	})
}

func (p *Presenter) sideView(side types.Side) SideView {
	s := p.match.Player(side)
	return SideView{
		Name:      s.Name,
		Score:     s.Score,
		Combo:     s.Combo,
		Inventory: s.Stats(),
	}
}

func (p *Presenter) name(side types.Side) string {
	if side == types.Human {
		return p.match.Player(side).Name
	}
	return "Opponent"
}

func (p *Presenter) moveHint() string {
	if p.match.Config().Preview {
		return "[white]Your move:[-] [dimgray]drag a piece onto the board, or click a piece then click a cell twice to confirm[-]"
	}
	return "[white]Your move:[-] [dimgray]drag a piece onto the board, or click a piece then a cell[-]"
}
