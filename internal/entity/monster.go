package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/slimequest/internal/gamedata"
)

// Monster is an encounter opponent. Each battle owns a fresh one.
type Monster struct {
	Def    *gamedata.MonsterDef // Reference to the table row
	Name   string
	Symbol rune

	HP, MaxHP  int
	Attack     int
	Defense    int
	Speed      int
	ExpReward  int
	GoldReward int
}

// NewMonsterFromDef creates a full-health monster from a table row.
func NewMonsterFromDef(def *gamedata.MonsterDef) *Monster {
	return &Monster{
		Def:        def,
		Name:       def.Name,
		Symbol:     def.GlyphRune(),
		HP:         def.HP,
		MaxHP:      def.HP,
		Attack:     def.Attack,
		Defense:    def.Defense,
		Speed:      def.Speed,
		ExpReward:  def.ExpReward,
		GoldReward: def.GoldReward,
	}
}

// Color returns the display colour for this monster.
func (m *Monster) Color() tcell.Color {
	if m.Def != nil {
		return m.Def.Color.Or(tcell.ColorGreen)
	}
	return tcell.ColorGreen
}

// Tier returns the area tier the monster came from, 0 if unknown.
func (m *Monster) Tier() int {
	if m.Def != nil {
		return m.Def.Tier
	}
	return 0
}

// GetName returns the monster's name.
func (m *Monster) GetName() string { return m.Name }

// IsAlive returns true if the monster has HP remaining.
func (m *Monster) IsAlive() bool { return m.HP > 0 }

// GetHP returns current HP.
func (m *Monster) GetHP() int { return m.HP }

// GetMaxHP returns maximum HP.
func (m *Monster) GetMaxHP() int { return m.MaxHP }

// GetAttack returns attack stat.
func (m *Monster) GetAttack() int { return m.Attack }

// GetDefense returns defense stat.
func (m *Monster) GetDefense() int { return m.Defense }

// GetSpeed returns speed stat.
func (m *Monster) GetSpeed() int { return m.Speed }

// TakeDamage reduces HP and returns actual damage taken.
func (m *Monster) TakeDamage(amount int) int {
	return takeDamage(&m.HP, amount)
}
