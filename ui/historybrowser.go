package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"hexsolo/types"
)

// HistorySource supplies past matches, newest first, and the best score.
type HistorySource interface {
	Records() ([]types.MatchHistoryRecord, error)
	HighScore() (int, error)
}

// HistoryBrowserUI provides a read-only screen for browsing match history.
type HistoryBrowserUI struct {
	flex     *tview.Flex
	gameList *tview.List
	detail   *tview.Box
	hint     *tview.TextView
	source   HistorySource
	records  []types.MatchHistoryRecord
	best     int
	selected int
	onDone   func()
}

// NewHistoryBrowser creates a new history browser screen.
func NewHistoryBrowser(source HistorySource, onDone func()) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		source: source,
		onDone: onDone,
	}

	hb.gameList = tview.NewList()
	hb.gameList.SetBorder(true)
	hb.gameList.SetTitle(" Match History ")
	hb.gameList.ShowSecondaryText(false)
	hb.gameList.SetHighlightFullLine(true)
	hb.gameList.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	hb.gameList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))

	hb.detail = tview.NewBox()
	hb.detail.SetBorder(true)
	hb.detail.SetTitle(" Details ")
	hb.detail.SetDrawFunc(hb.drawDetail)

	hb.hint = tview.NewTextView()
	hb.hint.SetDynamicColors(true)
	hb.hint.SetBorder(false)
	hb.hint.SetText("  [dimgray]q[-] back")

	hb.gameList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.selected = index
	})
	hb.gameList.SetInputCapture(hb.handleInput)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(hb.gameList, 40, 0, true).
		AddItem(hb.detail, 0, 1, false)

	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(hb.hint, 1, 0, false)

	hb.Refresh()
	return hb
}

// Flex returns the flex container for this UI.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the records from storage.
func (hb *HistoryBrowserUI) Refresh() {
	hb.gameList.Clear()
	hb.records = nil
	hb.selected = 0

	if best, err := hb.source.HighScore(); err == nil {
		hb.best = best
	}

	records, err := hb.source.Records()
	if err != nil || len(records) == 0 {
		hb.gameList.AddItem("[dimgray]No matches yet[-]", "", 0, nil)
		return
	}

	hb.records = records
	for _, r := range records {
		outcome := "lost"
		if r.Won {
			outcome = "won "
		}
		label := fmt.Sprintf("%s  %s  %-8s %6d", r.Timestamp.Format("2006-01-02 15:04"), outcome, r.Difficulty.Label(), r.Total)
		hb.gameList.AddItem(label, "", 0, nil)
	}
}

func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if hb.onDone != nil {
			hb.onDone()
		}
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			if hb.onDone != nil {
				hb.onDone()
			}
			return nil
		}
	}
	return event
}

// drawDetail renders the score breakdown of the selected match.
func (hb *HistoryBrowserUI) drawDetail(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	startX, row := x+2, y+1
	infoStyle := tcell.StyleDefault.Foreground(MenuColors.Label)
	dimStyle := tcell.StyleDefault.Foreground(MenuColors.Hint)
	accent := tcell.StyleDefault.Foreground(MenuColors.Selected)

	drawText(screen, startX, row, fmt.Sprintf("Best score: %d", hb.best), accent)
	row += 2

	if hb.selected < 0 || hb.selected >= len(hb.records) || height < 12 {
		return x, y, width, height
	}
	r := hb.records[hb.selected]

	drawText(screen, startX, row, r.Title, infoStyle)
	row++
	drawText(screen, startX, row, r.Timestamp.Format("Mon Jan 2 2006 15:04"), dimStyle)
	row += 2

	lines := []struct {
		label string
		value int
	}{
		{"Hexagons", r.Score.Base},
		{"Combos", r.Score.Combo},
		{"Preview", r.Score.Preview},
		{"Opponent pieces", r.Score.OpponentPieces},
		{r.Difficulty.Label() + " bonus", r.Score.Difficulty},
	}
	for _, l := range lines {
		drawText(screen, startX, row, fmt.Sprintf("%-18s %6d", l.label, l.value), dimStyle)
		row++
	}
	drawText(screen, startX, row, fmt.Sprintf("%-18s %6d", "Total", r.Total), infoStyle)
	row++
	drawText(screen, startX, row, fmt.Sprintf("%-18s %6d", "Best at the time", r.HighScore), dimStyle)

	return x, y, width, height
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
