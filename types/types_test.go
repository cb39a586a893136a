package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPieceKey(t *testing.T) {
	tests := []struct {
		a, b Color
		want ColorKey
	}{
		{Yellow, Blue, "yellow-blue"},
		{Blue, Yellow, "yellow-blue"},
		{Red, Yellow, "yellow-red"},
		{White, Red, "white-red"},
		{Red, White, "white-red"},
		{Blue, White, "blue-white"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Piece{A: tt.a, B: tt.b}.Key(), "%s/%s", tt.a, tt.b)
		require.Equal(t, tt.want, NewPiece(tt.a, tt.b).Key())
	}
}

func TestPieceOf(t *testing.T) {
	p, err := PieceOf("red-yellow")
	require.NoError(t, err)
	require.Equal(t, NewPiece(Yellow, Red), p)

	for _, bad := range []ColorKey{"", "yellow", "yellow-green", "none-blue"} {
		_, err := PieceOf(bad)
		require.Error(t, err, "key %q", bad)
	}
}

func TestZeroPiece(t *testing.T) {
	require.True(t, Piece{}.IsZero())
	require.False(t, NewPiece(Yellow, Blue).IsZero())
	require.Equal(t, ColorKey("none-none"), Piece{}.Key())
}

func TestColorText(t *testing.T) {
	data, err := json.Marshal(NewPiece(White, Blue))
	require.NoError(t, err)
	require.JSONEq(t, `{"a":"blue","b":"white"}`, string(data))

	var p Piece
	require.NoError(t, json.Unmarshal(data, &p))
	require.Equal(t, NewPiece(Blue, White), p)

	require.Error(t, json.Unmarshal([]byte(`{"a":"green","b":"white"}`), &p))
}

func TestSideOther(t *testing.T) {
	require.Equal(t, Opponent, Human.Other())
	require.Equal(t, Human, Opponent.Other())
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		label string
		want  Difficulty
		bonus int
	}{
		{"beginner", Beginner, 1000},
		{"Easy", Easy, 2000},
		{" normal ", Normal, 3000},
		{"HARD", Hard, 4000},
		{"insane", Insane, 5000},
	}
	for _, tt := range tests {
		d, err := ParseDifficulty(tt.label)
		require.NoError(t, err)
		require.Equal(t, tt.want, d)
		require.Equal(t, tt.bonus, d.Bonus())
	}

	_, err := ParseDifficulty("impossible")
	require.Error(t, err)
	require.Equal(t, 0, Difficulty("impossible").Bonus())
	require.Equal(t, "Insane", Insane.Label())
}

func TestLedgerTotal(t *testing.T) {
	l := ScoreLedger{Base: 200, Combo: 100, Preview: 200, OpponentPieces: 700, Difficulty: 3000}
	require.Equal(t, 4200, l.Total())
	require.Zero(t, ScoreLedger{}.Total())
}
