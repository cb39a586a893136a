package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"hexsolo/config"
	"hexsolo/types"
)

// BoardRadii lists the selectable board sizes.
var BoardRadii = []int{2, 3, 4, 5}

// GameSetupUI provides a form for configuring a new match.
type GameSetupUI struct {
	form *tview.Form
	flex *tview.Flex
	cfg  config.MatchConfig
}

// NewGameSetup creates a new game setup form starting from the saved match settings.
func NewGameSetup(initial config.MatchConfig, onStart func(config.MatchConfig), onHistory func(), onCancel func()) *GameSetupUI {
	setup := &GameSetupUI{cfg: initial}

	levels := make([]string, len(types.Difficulties))
	levelIndex := 0
	for i, d := range types.Difficulties {
		levels[i] = d.Label()
		if d == initial.Difficulty {
			levelIndex = i
		}
	}

	sizes := []string{"Small (24 cells)", "Medium (54 cells)", "Large (96 cells)", "Huge (150 cells)"}
	sizeIndex := 1
	for i, r := range BoardRadii {
		if r == initial.BoardRadius {
			sizeIndex = i
		}
	}

	form := tview.NewForm()

	form.AddDropDown("Difficulty", levels, levelIndex, func(option string, index int) {
		setup.cfg.Difficulty = types.Difficulties[index]
	})

	form.AddDropDown("Board", sizes, sizeIndex, func(option string, index int) {
		setup.cfg.BoardRadius = BoardRadii[index]
	})

	form.AddCheckbox("Preview moves", initial.Preview, func(checked bool) {
		setup.cfg.Preview = checked
	})

	form.AddButton("Start Game", func() {
		onStart(setup.cfg)
	})

	form.AddButton("History", func() {
		if onHistory != nil {
			onHistory()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// Config returns the settings currently selected in the form.
func (s *GameSetupUI) Config() config.MatchConfig {
	return s.cfg
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
