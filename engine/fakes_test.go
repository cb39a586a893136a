package engine

import (
	"context"

	"hexsolo/types"
)

// fakeBoard is a board with scripted formation counts per position.
type fakeBoard struct {
	occupied []bool
	formed   map[int]int
	last     int
	places   int
	backs    int
}

func newFakeBoard(size int, formed map[int]int) *fakeBoard {
	if formed == nil {
		formed = map[int]int{}
	}
	return &fakeBoard{occupied: make([]bool, size), formed: formed, last: -1}
}

func (b *fakeBoard) Place(pos int, piece types.Piece) []types.Hexagon {
	if pos < 0 || pos >= len(b.occupied) || b.occupied[pos] {
		b.last = -1
		return nil
	}
	b.occupied[pos] = true
	b.last = pos
	b.places++
	var out []types.Hexagon
	for i := 0; i < b.formed[pos]; i++ {
		out = append(out, types.Hexagon{Center: pos*10 + i, Color: piece.A})
	}
	return out
}

func (b *fakeBoard) Back() {
	if b.last < 0 {
		return
	}
	b.occupied[b.last] = false
	b.last = -1
	b.backs++
}

func (b *fakeBoard) AvailablePositions() []int {
	var out []int
	for i, o := range b.occupied {
		if !o {
			out = append(out, i)
		}
	}
	return out
}

func (b *fakeBoard) HexagonPositions(types.Piece) []types.Candidate {
	var out []types.Candidate
	for _, pos := range b.AvailablePositions() {
		if n := b.formed[pos]; n > 0 {
			out = append(out, types.Candidate{Position: pos, Count: n})
		}
	}
	return out
}

func (b *fakeBoard) RandomPosition(excludeOccupied bool) int {
	avail := b.AvailablePositions()
	if len(avail) == 0 {
		return -1
	}
	return avail[0]
}

func (b *fakeBoard) Occupied() int {
	return len(b.occupied) - len(b.AvailablePositions())
}

// scriptedSource plays its scripted positions, then the first free one,
// always with its first key. A scripted -1 is a "no move".
type scriptedSource struct {
	positions []int
	pass      bool
	offer     types.TradeOffer
	err       error

	tosses int
	places int
	trades int
}

func (s *scriptedSource) TossPiece(ctx context.Context) error {
	s.tosses++
	return s.err
}

func (s *scriptedSource) PlacePiece(ctx context.Context, pc PlaceContext) (types.Move, bool, error) {
	s.places++
	if s.err != nil {
		return types.Move{}, false, s.err
	}
	keys, avail := pc.Self.Keys(), pc.Board.AvailablePositions()
	if s.pass || len(keys) == 0 || len(avail) == 0 {
		return types.Move{}, false, nil
	}
	pos := avail[0]
	if len(s.positions) > 0 {
		pos, s.positions = s.positions[0], s.positions[1:]
		if pos < 0 {
			return types.Move{}, false, nil
		}
	}
	piece, _ := types.PieceOf(keys[0])
	return types.Move{Position: pos, Piece: piece}, true, nil
}

func (s *scriptedSource) ForceTrade(ctx context.Context, tc TradeContext) (types.TradeOffer, error) {
	s.trades++
	return s.offer, s.err
}

// recorder is a presenter that remembers every announcement.
type recorder struct {
	m *Match

	phases  []Phase
	moves   []types.Move
	inPlay  []int
	scores  int
	trades  []types.TradeOffer
	acks    []types.TradeOffer
	results []types.GameResult
	ackErr  error
}

func (r *recorder) AnnouncePhase(phase Phase, mover types.Side) {
	r.phases = append(r.phases, phase)
}

func (r *recorder) MoveCompleted(side types.Side, move types.Move, formed []types.Hexagon) {
	r.moves = append(r.moves, move)
	if r.m != nil {
		r.inPlay = append(r.inPlay, r.m.PiecesInPlay())
	}
}

func (r *recorder) ScoreUpdated(types.Side, types.ScoreLedger, int) {
	r.scores++
}

func (r *recorder) TradeCompleted(initiator types.Side, offer types.TradeOffer) {
	r.trades = append(r.trades, offer)
}

func (r *recorder) AcknowledgeForcedTrade(ctx context.Context, offer types.TradeOffer) error {
	r.acks = append(r.acks, offer)
	return r.ackErr
}

func (r *recorder) GameOver(result types.GameResult) {
	r.results = append(r.results, result)
}

// memStore keeps persisted values in memory.
type memStore struct {
	high    int
	saved   []int
	records []types.MatchHistoryRecord
	err     error
	readErr error
}

func (s *memStore) HighScore() (int, error) {
	if s.readErr != nil {
		return 0, s.readErr
	}
	return s.high, s.err
}

func (s *memStore) SaveHighScore(score int) error {
	if s.err != nil {
		return s.err
	}
	s.high = score
	s.saved = append(s.saved, score)
	return nil
}

func (s *memStore) AppendHistory(record types.MatchHistoryRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}
