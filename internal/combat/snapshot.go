package combat

import "github.com/gdamore/tcell/v2"

// Stats is a read-only copy of a combatant's numbers.
type Stats struct {
	Name    string
	HP      int
	MaxHP   int
	Attack  int
	Defense int
	Speed   int
}

// Snapshot is the HUD view of a battle.
type Snapshot struct {
	Phase            Phase
	Outcome          Outcome
	Lines            []string
	Turns            int
	PlayerDefending  bool
	MonsterDefending bool

	Player           Stats
	PlayerLevel      int
	PlayerExp        int
	PlayerExpToLevel int
	PlayerGold       int

	Monster      Stats
	MonsterGlyph rune
	MonsterColor tcell.Color
	MonsterTier  int
}

func statsOf(c Combatant) Stats {
	return Stats{
		Name:    c.GetName(),
		HP:      c.GetHP(),
		MaxHP:   c.GetMaxHP(),
		Attack:  c.GetAttack(),
		Defense: c.GetDefense(),
		Speed:   c.GetSpeed(),
	}
}
