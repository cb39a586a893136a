package ai

import (
	"fmt"

	"hexsolo/types"
)

// Tier holds the search parameters of one difficulty level.
type Tier struct {
	// Offense is the percent chance of playing the best scoring move instead
	// of a random one when any scoring move exists.
	Offense int
	// Defense enables the defensive search when no scoring move exists.
	Defense bool
	// Cautious is the lookahead on offense: 0 none, 1 minimize the human's
	// scoring options, 2 avoid handing the human a triple.
	Cautious int
	// DominantColorThreshold is the count gap between the two most-held keys
	// above which the defensive search only considers the most-held key.
	DominantColorThreshold int
}

// Tiers maps each difficulty to its parameters.
var Tiers = map[types.Difficulty]Tier{
	types.Beginner: {Offense: 30, Defense: false, Cautious: 0, DominantColorThreshold: 18},
	types.Easy:     {Offense: 50, Defense: false, Cautious: 0, DominantColorThreshold: 18},
	types.Normal:   {Offense: 70, Defense: true, Cautious: 0, DominantColorThreshold: 4},
	types.Hard:     {Offense: 90, Defense: true, Cautious: 1, DominantColorThreshold: 3},
	types.Insane:   {Offense: 100, Defense: true, Cautious: 2, DominantColorThreshold: 2},
}

// TierFor looks up the parameters of a difficulty.
func TierFor(d types.Difficulty) (Tier, error) {
	t, ok := Tiers[d]
	if !ok {
		return Tier{}, fmt.Errorf("unknown difficulty %q", d)
	}
	return t, nil
}
