// Package types contains shared data structures for hexsolo.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Color is one face color of the fixed palette.
type Color uint8

const (
	NoColor Color = iota
	Yellow
	Blue
	White
	Red
)

// Palette lists every face color in key-normalization order.
var Palette = []Color{Yellow, Blue, White, Red}

var colorNames = []string{"none", "yellow", "blue", "white", "red"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", c)
}

// ParseColor returns the palette color with the given name.
func ParseColor(name string) (Color, error) {
	for _, c := range Palette {
		if c.String() == strings.ToLower(strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", name)
}

// MarshalText writes the color name so history files stay readable.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a color name.
func (c *Color) UnmarshalText(data []byte) error {
	v, err := ParseColor(string(data))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ColorKey is the order-normalized identity of a piece, e.g. "yellow-blue".
type ColorKey string

// Piece is an unordered pair of face colors. Pieces sharing a key are interchangeable.
type Piece struct {
	A Color `json:"a"`
	B Color `json:"b"`
}

// NewPiece returns the piece for the two colors with its faces normalized.
func NewPiece(a, b Color) Piece {
	if b < a {
		a, b = b, a
	}
	return Piece{A: a, B: b}
}

// Key returns the color-pair key of the piece.
func (p Piece) Key() ColorKey {
	n := NewPiece(p.A, p.B)
	return ColorKey(n.A.String() + "-" + n.B.String())
}

// IsZero reports whether p is the empty "none available" piece.
func (p Piece) IsZero() bool {
	return p == Piece{}
}

// PieceOf parses a color-pair key back into its piece.
func PieceOf(key ColorKey) (Piece, error) {
	parts := strings.SplitN(string(key), "-", 2)
	if len(parts) != 2 {
		return Piece{}, fmt.Errorf("invalid color key %q", key)
	}
	a, err := ParseColor(parts[0])
	if err != nil {
		return Piece{}, err
	}
	b, err := ParseColor(parts[1])
	if err != nil {
		return Piece{}, err
	}
	return NewPiece(a, b), nil
}

// Side identifies one of the two players of a match.
type Side int

const (
	Human Side = iota
	Opponent
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Human {
		return Opponent
	}
	return Human
}

func (s Side) String() string {
	if s == Human {
		return "human"
	}
	return "opponent"
}

// Move is a piece placed on a board cell.
type Move struct {
	Position int
	Piece    Piece
}

// TradeOffer names the piece leaving the initiator and the piece it receives in return.
type TradeOffer struct {
	Give     Piece
	Take     Piece
	Accepted bool
}

// Hexagon is a formation completed around a board center.
type Hexagon struct {
	Center int
	Color  Color
}

// Candidate is a board position where a piece would form Count hexagons.
type Candidate struct {
	Position int
	Count    int
}

// Difficulty is a named opponent tier.
type Difficulty string

const (
	Beginner Difficulty = "beginner"
	Easy     Difficulty = "easy"
	Normal   Difficulty = "normal"
	Hard     Difficulty = "hard"
	Insane   Difficulty = "insane"
)

// Difficulties lists the tiers from weakest to strongest.
var Difficulties = []Difficulty{Beginner, Easy, Normal, Hard, Insane}

// ParseDifficulty validates a tier label.
func ParseDifficulty(label string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(label)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", label)
}

// Bonus is the score awarded to a human who beats this tier.
func (d Difficulty) Bonus() int {
	for i, known := range Difficulties {
		if d == known {
			return (i + 1) * 1000
		}
	}
	return 0
}

// Label returns the display name of the tier.
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// ScoreLedger tracks the independently scored components of a player's total.
type ScoreLedger struct {
	Base           int `json:"base"`
	Combo          int `json:"combo"`
	Preview        int `json:"preview"`
	OpponentPieces int `json:"opponent_pieces"`
	Difficulty     int `json:"difficulty"`
}

// Total returns the sum of all components.
func (s ScoreLedger) Total() int {
	return s.Base + s.Combo + s.Preview + s.OpponentPieces + s.Difficulty
}

// GameResult is the terminal snapshot of a match from the human's point of view.
type GameResult struct {
	Won        bool        `json:"won"`
	Title      string      `json:"title"`
	Score      ScoreLedger `json:"score"`
	Total      int         `json:"total"`
	HighScore  int         `json:"high_score"`
	Difficulty Difficulty  `json:"difficulty"`
}

// MatchHistoryRecord is an append-only history entry derived from a GameResult.
type MatchHistoryRecord struct {
	GameResult
	Timestamp time.Time `json:"timestamp"`
}

// NewHistoryRecord stamps a result with the given time.
func NewHistoryRecord(r GameResult, at time.Time) MatchHistoryRecord {
	return MatchHistoryRecord{GameResult: r, Timestamp: at}
}
