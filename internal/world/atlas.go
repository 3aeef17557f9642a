// Package world tracks which area the player is in and the scenery on it:
// bounds, portals and NPC positions.
package world

import (
	"fmt"
	"math"

	"github.com/samdwyer/slimequest/internal/gamedata"
)

const (
	// PortalRadius is how close (in pixels) the player must get to a portal.
	PortalRadius = 20
	// PortalCooldownTicks blocks portals right after a trip so the player
	// does not bounce straight back.
	PortalCooldownTicks = 60
	// TalkRadius is how close the player must be to talk to an NPC.
	TalkRadius = 50

	// Half the player sprite, so it never walks off the map edge.
	MarginX = 16
	MarginY = 24
)

// Atlas holds the area registry and the current area.
type Atlas struct {
	areas    *gamedata.AreaRegistry
	current  *gamedata.AreaDef
	cooldown int
}

// NewAtlas starts in the area with the given ID.
func NewAtlas(areas *gamedata.AreaRegistry, startID string) (*Atlas, error) {
	start, err := areas.Get(startID)
	if err != nil {
		return nil, fmt.Errorf("start area: %w", err)
	}
	return &Atlas{areas: areas, current: start}, nil
}

// Current returns the current area.
func (a *Atlas) Current() *gamedata.AreaDef { return a.current }

// Cooldown returns the remaining portal cooldown in ticks.
func (a *Atlas) Cooldown() int { return a.cooldown }

// Center returns the centre of the current area.
func (a *Atlas) Center() (float64, float64) {
	return a.current.Width / 2, a.current.Height / 2
}

// Clamp keeps a point inside the current area's walkable bounds.
func (a *Atlas) Clamp(x, y float64) (float64, float64) {
	return clamp(x, MarginX, a.current.Width-MarginX), clamp(y, MarginY, a.current.Height-MarginY)
}

// Tick counts the portal cooldown down by one.
func (a *Atlas) Tick() {
	if a.cooldown > 0 {
		a.cooldown--
	}
}

// PortalAt returns the first portal within PortalRadius of (x, y).
// Portals are inert while the cooldown runs.
func (a *Atlas) PortalAt(x, y float64) (gamedata.PortalDef, bool) {
	if a.cooldown > 0 {
		return gamedata.PortalDef{}, false
	}
	for _, portal := range a.current.Portals {
		if distance(x, y, portal.X, portal.Y) < PortalRadius {
			return portal, true
		}
	}
	return gamedata.PortalDef{}, false
}

// Travel switches to the portal's target area and starts the cooldown.
func (a *Atlas) Travel(portal gamedata.PortalDef) error {
	target, err := a.areas.Get(portal.Target)
	if err != nil {
		return fmt.Errorf("portal travel: %w", err)
	}
	a.current = target
	a.cooldown = PortalCooldownTicks
	return nil
}

// Reset returns to the given area with no cooldown.
func (a *Atlas) Reset(areaID string) error {
	area, err := a.areas.Get(areaID)
	if err != nil {
		return err
	}
	a.current = area
	a.cooldown = 0
	return nil
}

// TalkerNear returns a talking NPC within TalkRadius of (x, y).
func (a *Atlas) TalkerNear(x, y float64) (gamedata.NPCDef, bool) {
	for _, npc := range a.current.NPCs {
		if npc.Kind == gamedata.NPCTalker && distance(x, y, npc.X, npc.Y) < TalkRadius {
			return npc, true
		}
	}
	return gamedata.NPCDef{}, false
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return max(lo, min(hi, v))
}
