// Package encounter decides when walking around turns into a battle.
package encounter

import (
	"github.com/samdwyer/slimequest/internal/entity"
	"github.com/samdwyer/slimequest/internal/gamedata"
)

// DefaultStepsThreshold is how many moving ticks must pass after a battle
// before another encounter can roll.
const DefaultStepsThreshold = 30

// Rand is the random source for encounter rolls. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Config sets encounter odds.
type Config struct {
	// StepsThreshold: encounters roll only once steps exceed this.
	StepsThreshold int
	// FixedRate, when positive, applies to every area and ignores Rates.
	FixedRate float64
	// Rates overrides the per-area default chance, keyed by area ID.
	Rates map[string]float64
}

// DefaultConfig uses each area's own encounter chance.
func DefaultConfig() Config {
	return Config{StepsThreshold: DefaultStepsThreshold}
}

// Trigger counts steps and rolls for encounters.
// It must only be ticked while the player is exploring.
type Trigger struct {
	cfg      Config
	monsters *gamedata.MonsterRegistry
	rng      Rand
	steps    int
}

// NewTrigger creates a trigger with a zero step count.
func NewTrigger(cfg Config, monsters *gamedata.MonsterRegistry, rng Rand) *Trigger {
	if cfg.StepsThreshold < 0 {
		cfg.StepsThreshold = 0
	}
	return &Trigger{
		cfg:      cfg,
		monsters: monsters,
		rng:      rng,
	}
}

// Steps returns moving ticks since the last battle.
func (t *Trigger) Steps() int { return t.steps }

// Reset zeroes the step counter.
func (t *Trigger) Reset() { t.steps = 0 }

// Rate returns the per-step encounter chance for an area.
func (t *Trigger) Rate(area *gamedata.AreaDef) float64 {
	if t.cfg.FixedRate > 0 {
		return t.cfg.FixedRate
	}
	if rate, ok := t.cfg.Rates[area.ID]; ok {
		return rate
	}
	return area.EncounterChance
}

// Tick runs one exploration tick. Standing still never counts as a step.
// On an encounter the step counter resets and the area's monster is returned.
func (t *Trigger) Tick(moved bool, area *gamedata.AreaDef) (*entity.Monster, bool) {
	if !moved {
		return nil, false
	}
	t.steps++

	if t.steps <= t.cfg.StepsThreshold {
		return nil, false
	}
	if t.rng.Float64() >= t.Rate(area) {
		return nil, false
	}

	t.steps = 0
	return CreateMonster(t.monsters, area.Tier), true
}

// CreateMonster builds a fresh monster for an area tier. Unknown tiers get
// the strongest monster.
func CreateMonster(monsters *gamedata.MonsterRegistry, tier int) *entity.Monster {
	return entity.NewMonsterFromDef(monsters.ForTier(tier))
}
