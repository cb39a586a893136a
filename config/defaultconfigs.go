package config

import "hexsolo/types"

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		Colors: ConfigColors{
			Yellow:     220,
			Blue:       33,
			White:      255,
			Red:        160,
			Empty:      238,
			Grid:       240,
			Highlight:  109,
			Preview:    108,
			LastPlayed: 60,
		},
		Symbols: ConfigSymbols{
			Up:      '▲',
			Down:    '▼',
			Center:  '·',
			Hexagon: '⬢',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Match: MatchConfig{
			Difficulty:   types.Normal,
			Preview:      false,
			BoardRadius:  3,
			ThinkDelayMs: 700,
			HumanName:    "You",
		},
	}
}
