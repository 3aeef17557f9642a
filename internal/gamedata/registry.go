package gamedata

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownArea is returned when an area ID is not in the registry.
var ErrUnknownArea = errors.New("unknown area")

// MonsterRegistry maps area tiers to monster definitions.
type MonsterRegistry struct {
	byTier    map[int]*MonsterDef
	strongest *MonsterDef
	all       []MonsterDef
}

// NewMonsterRegistry creates a registry from loaded monster definitions.
// The row with the highest tier becomes the fallback for unknown tiers.
func NewMonsterRegistry(monsters []MonsterDef) *MonsterRegistry {
	registry := &MonsterRegistry{
		byTier: make(map[int]*MonsterDef, len(monsters)),
		all:    monsters,
	}
	for i := range monsters {
		def := &monsters[i]
		registry.byTier[def.Tier] = def
		if registry.strongest == nil || def.Tier > registry.strongest.Tier {
			registry.strongest = def
		}
	}
	return registry
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*MonsterRegistry, error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	return NewMonsterRegistry(monsters), nil
}

// MustLoadMonsterRegistry loads a registry, panicking on error.
func MustLoadMonsterRegistry() *MonsterRegistry {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// ForTier returns the monster for an area tier. Tiers without a row of
// their own get the strongest monster; this is a rule, not an error.
func (r *MonsterRegistry) ForTier(tier int) *MonsterDef {
	if def, ok := r.byTier[tier]; ok && tier < r.strongest.Tier {
		return def
	}
	return r.strongest
}

// Count returns the number of monster rows.
func (r *MonsterRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// AreaRegistry
// =============================================================================

// AreaRegistry holds loaded area definitions keyed by ID.
type AreaRegistry struct {
	areas map[string]*AreaDef
	all   []AreaDef
}

// NewAreaRegistry creates a registry from loaded area definitions.
func NewAreaRegistry(areas []AreaDef) *AreaRegistry {
	registry := &AreaRegistry{
		areas: make(map[string]*AreaDef, len(areas)),
		all:   areas,
	}
	for i := range areas {
		registry.areas[areas[i].ID] = &areas[i]
	}
	return registry
}

// LoadAreaRegistry loads and validates the embedded areas.json.
func LoadAreaRegistry() (*AreaRegistry, error) {
	areas, err := LoadAreas()
	if err != nil {
		return nil, err
	}
	if len(areas) == 0 {
		return nil, errors.New("no areas loaded from areas.json")
	}
	registry := NewAreaRegistry(areas)
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

// MustLoadAreaRegistry loads a registry, panicking on error.
func MustLoadAreaRegistry() *AreaRegistry {
	registry, err := LoadAreaRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Validate checks that every portal points at a known area.
func (r *AreaRegistry) Validate() error {
	for _, area := range r.all {
		if area.Width <= 0 || area.Height <= 0 {
			return fmt.Errorf("area %s: non-positive size %gx%g", area.ID, area.Width, area.Height)
		}
		for _, portal := range area.Portals {
			if _, ok := r.areas[portal.Target]; !ok {
				return fmt.Errorf("area %s portal target %q: %w", area.ID, portal.Target, ErrUnknownArea)
			}
		}
	}
	return nil
}

// Get returns the area with the given ID.
func (r *AreaRegistry) Get(id string) (*AreaDef, error) {
	area, ok := r.areas[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArea, id)
	}
	return area, nil
}

// IDs returns the area IDs sorted by tier.
func (r *AreaRegistry) IDs() []string {
	ids := make([]string, 0, len(r.all))
	for _, area := range r.all {
		ids = append(ids, area.ID)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return r.areas[ids[i]].Tier < r.areas[ids[j]].Tier
	})
	return ids
}

// Count returns the number of areas.
func (r *AreaRegistry) Count() int {
	return len(r.all)
}
