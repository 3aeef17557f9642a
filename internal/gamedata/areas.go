package gamedata

// NPCKind says how an NPC behaves on the map.
type NPCKind string

const (
	// NPCTalker stands still and opens a dialog when the player talks to it.
	NPCTalker NPCKind = "talker"
	// NPCPatroller wanders in a move/wait cycle.
	NPCPatroller NPCKind = "patroller"
)

// PortalDef links a point on one area to another area.
type PortalDef struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Target string  `json:"target"` // Destination area ID
}

// NPCDef places a non-combat character on an area.
type NPCDef struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Kind   NPCKind  `json:"kind"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Dialog []string `json:"dialog,omitempty"`
}

// AreaDef defines one explorable map.
type AreaDef struct {
	ID              string      `json:"id"`              // "village", "hubei", "hunan"
	Name            string      `json:"name"`            // Display name
	Tier            int         `json:"tier"`            // Monster tier spawned here
	Width           float64     `json:"width"`           // Pixels
	Height          float64     `json:"height"`          // Pixels
	EncounterChance float64     `json:"encounterChance"` // Per-step chance once the step threshold is passed
	Portals         []PortalDef `json:"portals"`
	NPCs            []NPCDef    `json:"npcs"`
}

// AreasFile represents the structure of areas.json.
type AreasFile struct {
	Areas []AreaDef `json:"areas"`
}

// LoadAreas loads area definitions from the embedded areas.json.
func LoadAreas() ([]AreaDef, error) {
	file, err := Load[AreasFile]("areas.json")
	if err != nil {
		return nil, err
	}
	return file.Areas, nil
}
