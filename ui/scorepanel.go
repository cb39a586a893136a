package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"hexsolo/player"
	"hexsolo/types"
)

// LogEntry is one line in the score panel's move log.
type LogEntry struct {
	Side   types.Side
	Label  string
	Piece  types.Piece
	Formed int
	Traded bool
	Offer  types.TradeOffer
}

// SideView is a snapshot of one player for display.
type SideView struct {
	Name      string
	Score     types.ScoreLedger
	Combo     int
	Inventory []player.KeyCount
}

// ScorePanel displays both score ledgers, the inventories and the move log beside the board.
type ScorePanel struct {
	box        *tview.TextView
	difficulty types.Difficulty
	highScore  int
	sides      [2]SideView
	mover      types.Side
	log        []LogEntry
}

// NewScorePanel creates a new score panel.
func NewScorePanel() *ScorePanel {
	panel := &ScorePanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *ScorePanel) Box() *tview.TextView {
	return p.box
}

// Reset clears the panel for a new match.
func (p *ScorePanel) Reset(d types.Difficulty, highScore int) {
	p.difficulty = d
	p.highScore = highScore
	p.sides = [2]SideView{}
	p.log = nil
	p.refresh()
}

// SetSides replaces both player views.
func (p *ScorePanel) SetSides(human, opponent SideView, mover types.Side) {
	p.sides[types.Human] = human
	p.sides[types.Opponent] = opponent
	p.mover = mover
	p.refresh()
}

// Append adds a move log entry.
func (p *ScorePanel) Append(e LogEntry) {
	p.log = append(p.log, e)
	p.refresh()
}

func (p *ScorePanel) refresh() {
	var text strings.Builder

	text.WriteString("[white::b]Match[-:-:-]\n")
	text.WriteString("[dimgray]──────────────────────[-:-:-]\n")
	fmt.Fprintf(&text, "[white]Level:[-:-:-] %s\n", p.difficulty.Label())
	fmt.Fprintf(&text, "[white]Best:[-:-:-]  %d\n", p.highScore)

	for _, side := range []types.Side{types.Human, types.Opponent} {
		v := p.sides[side]
		marker := " "
		if side == p.mover {
			marker = "[yellow]>[-]"
		}
		fmt.Fprintf(&text, "\n%s[white::b]%s[-:-:-]\n", marker, v.Name)
		fmt.Fprintf(&text, "[dimgray]  base[-]  %5d\n", v.Score.Base)
		fmt.Fprintf(&text, "[dimgray]  combo[-] %5d  [dimgray]x%d[-]\n", v.Score.Combo, v.Combo)
		if v.Score.Preview > 0 {
			fmt.Fprintf(&text, "[dimgray]  prev[-]  %5d\n", v.Score.Preview)
		}
		if v.Score.OpponentPieces > 0 || v.Score.Difficulty > 0 {
			fmt.Fprintf(&text, "[dimgray]  win[-]   %5d\n", v.Score.OpponentPieces+v.Score.Difficulty)
		}
		fmt.Fprintf(&text, "[white]  total[-] %5d\n", v.Score.Total())
		for _, kc := range v.Inventory {
			fmt.Fprintf(&text, "[dimgray]  %-12s[-] %d\n", kc.Key, kc.Count)
		}
	}

	if len(p.log) > 0 {
		text.WriteString("\n[white::b]Moves[-:-:-]\n")
		text.WriteString("[dimgray]──────────────────────[-:-:-]\n")

		maxVisible := 10
		start := 0
		if len(p.log) > maxVisible {
			start = len(p.log) - maxVisible
		}
		for i := start; i < len(p.log); i++ {
			marker := " "
			if i == len(p.log)-1 {
				marker = "[white]>[-]"
			}
			fmt.Fprintf(&text, "%s[dimgray]%3d.[-] %s\n", marker, i+1, p.log[i].String())
		}
		if start > 0 {
			fmt.Fprintf(&text, "[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(text.String())
}

func (e LogEntry) String() string {
	who := "[white]Y[-]"
	if e.Side == types.Opponent {
		who = "[dimgray]O[-]"
	}
	switch {
	case e.Traded:
		return fmt.Sprintf("%s trade %s↔%s", who, e.Offer.Give.Key(), e.Offer.Take.Key())
	case e.Formed > 0:
		return fmt.Sprintf("%s %s %s [yellow]+%d⬢[-]", who, e.Label, e.Piece.Key(), e.Formed)
	default:
		return fmt.Sprintf("%s %s %s", who, e.Label, e.Piece.Key())
	}
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *HexBoardUI, panel *ScorePanel, hint *tview.TextView) *tview.Flex {
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(panel.Box(), 28, 0, false)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 2, 0, false)

	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}
