package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"hexsolo/player"
	"hexsolo/types"
)

// PiecesPerKey is how many pieces of each color-pair key a player is dealt.
const PiecesPerKey = 9

// DealGroups are the two disjoint two-key groups inventories are split from.
var DealGroups = [2][2]types.Piece{
	{types.NewPiece(types.Yellow, types.Blue), types.NewPiece(types.White, types.Red)},
	{types.NewPiece(types.Blue, types.White), types.NewPiece(types.Red, types.Yellow)},
}

// Match is the turn engine for one match. Run drives it from deal to game over;
// the accessors may be read by the presenter between announcements.
type Match struct {
	cfg       MatchConfig
	board     Board
	players   [2]*player.State
	sources   [2]MoveSource
	presenter Presenter
	store     Storage
	rng       *rand.Rand
	log       zerolog.Logger

	phase   Phase
	mover   types.Side
	passes  int
	started bool
	result  *types.GameResult
	history []MoveRecord
}

// MoveRecord is one resolved placement, kept for the move log.
type MoveRecord struct {
	Side   types.Side
	Move   types.Move
	Formed int
}

// Option customizes a Match.
type Option func(*Match)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Match) { m.log = l }
}

// WithRand sets the random source used for dealing and coin flips.
func WithRand(r *rand.Rand) Option {
	return func(m *Match) { m.rng = r }
}

// NewMatch wires a match. Nothing happens until Run.
func NewMatch(cfg MatchConfig, b Board, human, opponent MoveSource, p Presenter, s Storage, opts ...Option) *Match {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.HumanName == "" {
		cfg.HumanName = "You"
	}
	m := &Match{
		cfg:       cfg,
		board:     b,
		sources:   [2]MoveSource{human, opponent},
		presenter: p,
		store:     s,
		rng:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		log:       zerolog.Nop(),
		players: [2]*player.State{
			player.New(cfg.HumanName, types.Human),
			player.New(cfg.Difficulty.Label()+" bot", types.Opponent),
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Player returns the state of one side.
func (m *Match) Player(side types.Side) *player.State {
	return m.players[side]
}

// Phase returns the current phase.
func (m *Match) Phase() Phase {
	return m.phase
}

// Mover returns the side whose turn it is.
func (m *Match) Mover() types.Side {
	return m.mover
}

// Config returns the match configuration.
func (m *Match) Config() MatchConfig {
	return m.cfg
}

// Result returns the final result once the match is over.
func (m *Match) Result() (types.GameResult, bool) {
	if m.result == nil {
		return types.GameResult{}, false
	}
	return *m.result, true
}

// History returns the resolved placements so far, oldest first.
func (m *Match) History() []MoveRecord {
	return slices.Clone(m.history)
}

// PiecesInPlay counts both hands plus the board.
func (m *Match) PiecesInPlay() int {
	return m.players[types.Human].TotalPieces() + m.players[types.Opponent].TotalPieces() + m.board.Occupied()
}

// Run plays the match to the end. Calling Run again after game over returns
// the same result without touching any state; calling it again after a failed
// run returns ErrAborted.
func (m *Match) Run(ctx context.Context) (types.GameResult, error) {
	if m.result != nil {
		return *m.result, nil
	}
	if m.started {
		return types.GameResult{}, ErrAborted
	}
	m.started = true

	m.deal()
	if err := m.toss(ctx); err != nil {
		return types.GameResult{}, err
	}

	for {
		if winner, over := m.checkGameOver(); over {
			return m.finish(winner), nil
		}

		m.setPhase(PhaseAwaitingMove)
		self, other := m.players[m.mover], m.players[m.mover.Other()]
		move, ok, err := m.sources[m.mover].PlacePiece(ctx, PlaceContext{
			Board:          m.board,
			PreviewEnabled: m.cfg.Preview,
			Self:           self,
			Opponent:       other,
		})
		if err != nil {
			return types.GameResult{}, fmt.Errorf("%s move: %w", m.mover, err)
		}
		if !ok {
			m.log.Info().Str("mover", m.mover.String()).Msg("no move")
			m.passes++
			m.switchMover()
			continue
		}
		m.passes = 0

		winner, over, err := m.resolve(ctx, move)
		if err != nil {
			return types.GameResult{}, err
		}
		if over {
			return m.finish(winner), nil
		}
	}
}

// deal splits the two groups between the players by a coin flip.
func (m *Match) deal() {
	m.setPhase(PhaseDealing)
	humanGroup := m.rng.Intn(2)
	groups := [2]int{humanGroup, 1 - humanGroup}
	for side, p := range m.players {
		for _, piece := range DealGroups[groups[side]] {
			for i := 0; i < PiecesPerKey; i++ {
				p.AddPiece(piece)
			}
		}
	}
	m.log.Info().
		Strs("human", keyStrings(m.players[types.Human].Keys())).
		Strs("opponent", keyStrings(m.players[types.Opponent].Keys())).
		Msg("dealt")
}

// toss places the opener's first piece at a random empty position. This
// placement is never scored.
func (m *Match) toss(ctx context.Context) error {
	m.mover = types.Side(m.rng.Intn(2))
	m.setPhase(PhaseTossing)
	if err := m.sources[m.mover].TossPiece(ctx); err != nil {
		return fmt.Errorf("%s toss: %w", m.mover, err)
	}

	self := m.players[m.mover]
	keys := self.Keys()
	pos := m.board.RandomPosition(true)
	if len(keys) > 0 && pos >= 0 {
		piece, _ := self.PopPiece(keys[0])
		m.board.Place(pos, piece)
		move := types.Move{Position: pos, Piece: piece}
		m.history = append(m.history, MoveRecord{Side: m.mover, Move: move})
		m.presenter.MoveCompleted(m.mover, move, nil)
		m.log.Info().Str("mover", m.mover.String()).Int("pos", pos).Str("piece", string(piece.Key())).Msg("toss")
	}
	m.switchMover()
	return nil
}

// resolve applies a produced move and branches on the number of hexagons formed.
func (m *Match) resolve(ctx context.Context, move types.Move) (types.Side, bool, error) {
	m.setPhase(PhaseResolvingPlacement)
	self := m.players[m.mover]

	key := move.Piece.Key()
	if self.Count(key) == 0 || !slices.Contains(m.board.AvailablePositions(), move.Position) {
		m.log.Warn().
			Str("mover", m.mover.String()).
			Int("pos", move.Position).
			Str("piece", string(key)).
			Msg("unplayable move treated as no move")
		m.passes++
		m.switchMover()
		return 0, false, nil
	}

	piece, _ := self.PopPiece(key)
	move.Piece = piece
	formed := m.board.Place(move.Position, piece)
	m.history = append(m.history, MoveRecord{Side: m.mover, Move: move, Formed: len(formed)})
	m.presenter.MoveCompleted(m.mover, move, formed)
	m.log.Info().
		Str("mover", m.mover.String()).
		Int("pos", move.Position).
		Str("piece", string(key)).
		Int("formed", len(formed)).
		Msg("placement")

	switch n := len(formed); {
	case n == 0:
		for side, p := range m.players {
			p.ResetCombo()
			m.presenter.ScoreUpdated(types.Side(side), p.Score, p.Combo)
		}
		m.switchMover()
	case n >= 3:
		m.award(n)
		return m.mover, true, nil
	case n == 2:
		m.award(n)
		if err := m.trade(ctx); err != nil {
			return 0, false, err
		}
	default:
		m.award(n)
	}
	return 0, false, nil
}

func (m *Match) award(formed int) {
	p := m.players[m.mover]
	awardPlacement(p, formed, m.mover == types.Human && !m.cfg.Preview)
	m.presenter.ScoreUpdated(m.mover, p.Score, p.Combo)
	m.log.Debug().
		Str("mover", m.mover.String()).
		Int("combo", p.Combo).
		Int("total", p.Score.Total()).
		Msg("scored")
}

// checkGameOver runs before every awaiting-move step. Emptying one's hand wins;
// a full board, or both players unable to move, goes to the smaller hand with
// ties going to the human.
func (m *Match) checkGameOver() (types.Side, bool) {
	human, opponent := m.players[types.Human], m.players[types.Opponent]
	switch {
	case human.TotalPieces() == 0:
		return types.Human, true
	case opponent.TotalPieces() == 0:
		return types.Opponent, true
	case len(m.board.AvailablePositions()) == 0, m.passes >= 2:
		if human.TotalPieces() <= opponent.TotalPieces() {
			return types.Human, true
		}
		return types.Opponent, true
	}
	return 0, false
}

// finish freezes the match and records the result.
func (m *Match) finish(winner types.Side) types.GameResult {
	m.mover = winner
	m.setPhase(PhaseGameOver)
	human, opponent := m.players[types.Human], m.players[types.Opponent]

	won := winner == types.Human
	title := "You lose"
	if won {
		title = "You win!"
		awardVictory(human, opponent, m.cfg.Difficulty)
		m.presenter.ScoreUpdated(types.Human, human.Score, human.Combo)
	}
	total := human.Score.Total()

	// An unreadable high score is reported as 0 and never overwritten.
	high, err := m.store.HighScore()
	if err != nil {
		m.log.Error().Err(err).Msg("read high score")
		high = 0
	} else if total > high {
		high = total
		if err := m.store.SaveHighScore(high); err != nil {
			m.log.Error().Err(err).Msg("save high score")
		}
	}

	result := types.GameResult{
		Won:        won,
		Title:      title,
		Score:      human.Score,
		Total:      total,
		HighScore:  high,
		Difficulty: m.cfg.Difficulty,
	}
	if err := m.store.AppendHistory(types.NewHistoryRecord(result, m.cfg.Clock())); err != nil {
		m.log.Error().Err(err).Msg("append history")
	}
	m.result = &result
	m.log.Info().Bool("won", won).Int("total", total).Int("high_score", high).Msg("game over")
	m.presenter.GameOver(result)
	return result
}

func (m *Match) setPhase(p Phase) {
	m.phase = p
	m.log.Debug().Str("phase", p.String()).Str("mover", m.mover.String()).Msg("phase")
	m.presenter.AnnouncePhase(p, m.mover)
}

func (m *Match) switchMover() {
	m.mover = m.mover.Other()
}

func keyStrings(keys []types.ColorKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
