// hexsolo is a terminal game: place two-colored triangle pieces on a
// hexagonal board and form single-colored hexagons before the opponent does.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"hexsolo/board"
	"hexsolo/config"
	"hexsolo/engine"
	"hexsolo/engine/ai"
	"hexsolo/engine/human"
	"hexsolo/history"
	"hexsolo/types"
	"hexsolo/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagDifficulty = flag.String("difficulty", "", "Opponent tier (beginner, easy, normal, hard, insane)")
	flagPreview    = flag.Bool("preview", false, "Preview placements before confirming them")
	flagRadius     = flag.Int("radius", 0, "Board radius (2-5)")
	flagQuickStart = flag.Bool("play", false, "Start a match immediately with the saved settings")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.HexBoardUI
var scorePanel *ui.ScorePanel
var gameHint *tview.TextView
var store *history.Store
var historyUI *ui.HistoryBrowserUI
var cfg *config.Config
var logger zerolog.Logger

// stopMatch cancels the running match, if any.
var stopMatch context.CancelFunc = func() {}

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("hexsolo %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %s\n", err)
		os.Exit(1)
	}
	if err := applyFlags(&cfg.Match); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(2)
	}

	var logOut io.Writer = io.Discard
	if f, err := config.OpenLog(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger = zerolog.New(logOut).With().Timestamp().Logger()

	store, err = history.NewStore(history.DefaultDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: %s\n", err)
		os.Exit(1)
	}

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ⬢ hexsolo ")

	gameHint = tview.NewTextView()
	gameHint.SetDynamicColors(true)
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewHexBoard(app, cfg)
	scorePanel = ui.NewScorePanel()

	gameFrame := ui.CreateGameLayout(gameBoard, scorePanel, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			stopMatch()
			rootPage.SwitchToPage("setup")
			return nil
		}
		return event
	})

	setupUI := ui.NewGameSetup(cfg.Match,
		func(mc config.MatchConfig) {
			cfg.Match = mc
			if err := cfg.Save(); err != nil {
				logger.Warn().Err(err).Msg("save config")
			}
			startGame(mc)
		},
		func() {
			historyUI.Refresh()
			rootPage.SwitchToPage("history")
		},
		func() {
			app.Stop()
		},
	)

	historyUI = ui.NewHistoryBrowser(store, func() {
		rootPage.SwitchToPage("setup")
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !*flagQuickStart)
	rootPage.AddPage("gameview", gameFrame, true, *flagQuickStart)
	rootPage.AddPage("history", historyUI.Flex(), true, false)

	if *flagQuickStart {
		startGame(cfg.Match)
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
	stopMatch()
}

// applyFlags overrides the saved match settings with command-line flags.
func applyFlags(mc *config.MatchConfig) error {
	if *flagDifficulty != "" {
		d, err := types.ParseDifficulty(*flagDifficulty)
		if err != nil {
			return err
		}
		mc.Difficulty = d
	}
	if *flagPreview {
		mc.Preview = true
	}
	if *flagRadius != 0 {
		if *flagRadius < 2 || *flagRadius > 5 {
			return fmt.Errorf("radius must be between 2 and 5, got %d", *flagRadius)
		}
		mc.BoardRadius = *flagRadius
	}
	return nil
}

// startGame wires a new match to the UI and runs it on its own goroutine.
func startGame(mc config.MatchConfig) {
	stopMatch()

	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	b := board.New(mc.BoardRadius, rng)
	in := human.NewInterpreter(gameBoard)
	gameBoard.Reset(b, in)

	best, err := store.HighScore()
	if err != nil {
		logger.Warn().Err(err).Msg("read high score")
	}
	scorePanel.Reset(mc.Difficulty, best)
	gameHint.SetText("")

	presenter := ui.NewPresenter(app, rootPage, gameBoard, scorePanel, gameHint, func(types.GameResult) {
		rootPage.SwitchToPage("setup")
	})

	opponent, err := ai.NewSource(mc.Difficulty, mc.ThinkDelay(), rng, logger)
	if err != nil {
		showError(err)
		return
	}

	matchCfg := engine.DefaultConfig()
	matchCfg.Difficulty = mc.Difficulty
	matchCfg.Preview = mc.Preview
	matchCfg.HumanName = mc.HumanName

	m := engine.NewMatch(matchCfg, b, human.NewSource(in, presenter), opponent, presenter, store,
		engine.WithLogger(logger), engine.WithRand(rng))
	ctx, cancel := context.WithCancel(context.Background())
	presenter.Attach(ctx, m, b)
	stopMatch = func() {
		cancel()
		in.Cancel()
	}

	rootPage.SwitchToPage("gameview")
	app.SetFocus(gameBoard.Box)

	go func() {
		result, err := m.Run(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("match aborted")
			}
			return
		}
		logger.Info().Bool("won", result.Won).Int("total", result.Total).Msg("match finished")
	}()
}

func showError(err error) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}
