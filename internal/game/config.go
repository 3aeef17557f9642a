package game

import (
	"github.com/samdwyer/slimequest/internal/combat"
	"github.com/samdwyer/slimequest/internal/encounter"
)

// DefaultStartArea is where new and restarted games begin.
const DefaultStartArea = "village"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible encounters and battles.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// PlayerName is shown in battle messages and the HUD.
	PlayerName string

	// StartArea is the area ID the player starts (and restarts) in.
	StartArea string

	// FPS is the idle tick rate of the terminal loop.
	FPS int

	Encounter encounter.Config
	Battle    combat.Rules
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		PlayerName: "Hero",
		StartArea:  DefaultStartArea,
		FPS:        60,
		Encounter:  encounter.DefaultConfig(),
		Battle:     combat.DefaultRules(),
	}
}
