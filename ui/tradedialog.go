package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"hexsolo/player"
	"hexsolo/types"
)

// TradeDialog lets the human pick one own key to give and one of the
// opponent's keys to take, or decline.
type TradeDialog struct {
	flex  *tview.Flex
	give  *tview.List
	take  *tview.List
	form  *tview.Form
	gives []player.KeyCount
	takes []player.KeyCount
}

// NewTradeDialog builds the dialog. onDone receives the chosen offer, with
// Accepted false when the human declines.
func NewTradeDialog(app *tview.Application, self, counterpart []player.KeyCount, onDone func(types.TradeOffer)) *TradeDialog {
	d := &TradeDialog{gives: self, takes: counterpart}

	d.give = tradeList(" You give ", self)
	d.take = tradeList(" You take ", counterpart)

	d.form = tview.NewForm()
	d.form.AddButton("Trade", func() {
		onDone(d.offer())
	})
	d.form.AddButton("Decline", func() {
		onDone(types.TradeOffer{})
	})
	d.form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	d.form.SetButtonTextColor(MenuColors.ButtonText)
	d.form.SetButtonsAlign(tview.AlignCenter)

	d.give.SetSelectedFunc(func(int, string, string, rune) { app.SetFocus(d.take) })
	d.take.SetSelectedFunc(func(int, string, string, rune) { app.SetFocus(d.form) })

	cycle := func(next tview.Primitive) func(*tcell.EventKey) *tcell.EventKey {
		return func(event *tcell.EventKey) *tcell.EventKey {
			if event.Key() == tcell.KeyTab {
				app.SetFocus(next)
				return nil
			}
			return event
		}
	}
	d.give.SetInputCapture(cycle(d.take))
	d.take.SetInputCapture(cycle(d.form))

	lists := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(d.give, 0, 1, true).
		AddItem(d.take, 0, 1, false)

	body := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(lists, 0, 1, true).
		AddItem(d.form, 3, 0, false)
	body.SetBorder(true)
	body.SetTitle(" Two hexagons: trade a piece ")
	body.SetBorderColor(MenuColors.BorderFocus)

	rows := max(len(self), len(counterpart)) + 2
	d.flex = centered(body, 52, rows+5)
	return d
}

// Flex returns the dialog container.
func (d *TradeDialog) Flex() *tview.Flex {
	return d.flex
}

// Focus returns the primitive that should receive focus first.
func (d *TradeDialog) Focus() tview.Primitive {
	return d.give
}

func (d *TradeDialog) offer() types.TradeOffer {
	i, j := d.give.GetCurrentItem(), d.take.GetCurrentItem()
	if i < 0 || i >= len(d.gives) || j < 0 || j >= len(d.takes) {
		return types.TradeOffer{}
	}
	give, err := types.PieceOf(d.gives[i].Key)
	if err != nil {
		return types.TradeOffer{}
	}
	take, err := types.PieceOf(d.takes[j].Key)
	if err != nil {
		return types.TradeOffer{}
	}
	return types.TradeOffer{Give: give, Take: take, Accepted: true}
}

func tradeList(title string, stats []player.KeyCount) *tview.List {
	list := tview.NewList()
	list.SetBorder(true)
	list.SetTitle(title)
	list.ShowSecondaryText(false)
	list.SetHighlightFullLine(true)
	list.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	list.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))
	for _, kc := range stats {
		list.AddItem(fmt.Sprintf("%-12s %d", kc.Key, kc.Count), "", 0, nil)
	}
	return list
}

// ForcedTradeText describes an opponent's forced trade from the human's side.
func ForcedTradeText(offer types.TradeOffer) string {
	return fmt.Sprintf("The opponent formed two hexagons.\n\nIt takes your %s\nand gives you %s.",
		offer.Take.Key(), offer.Give.Key())
}

// centered places p in the middle of the screen at a fixed size.
func centered(p tview.Primitive, width, height int) *tview.Flex {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}
