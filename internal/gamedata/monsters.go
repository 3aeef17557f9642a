package gamedata

// MonsterDef is one row of the monster table.
type MonsterDef struct {
	ID         string `json:"id"`         // Unique identifier (e.g., "small_slime")
	Name       string `json:"name"`       // Display name (e.g., "SmallSlime")
	Tier       int    `json:"tier"`       // Area tier that spawns it
	Glyph      string `json:"glyph"`      // Single character for rendering
	Color      Color  `json:"color"`      // Display colour
	HP         int    `json:"hp"`         // Max hit points
	Attack     int    `json:"attack"`     // Attack power
	Defense    int    `json:"defense"`    // Defense, only applied while defending
	Speed      int    `json:"speed"`      // Not used by resolution
	ExpReward  int    `json:"expReward"`  // Experience granted on kill
	GoldReward int    `json:"goldReward"` // Gold granted on kill
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return rune(m.Glyph[0])
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json.
func LoadMonsters() ([]MonsterDef, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	return file.Monsters, nil
}
