package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/samdwyer/slimequest/internal/combat"
	"github.com/samdwyer/slimequest/internal/encounter"
	"github.com/samdwyer/slimequest/internal/entity"
	"github.com/samdwyer/slimequest/internal/gamedata"
	"github.com/samdwyer/slimequest/internal/world"
)

// ErrWrongState is returned when an event is not accepted in the current
// game state. The session is left untouched.
var ErrWrongState = errors.New("event not accepted in this state")

// Rand is the session's random source. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Session is the whole game minus the terminal: it owns the player and
// routes every event to the one subsystem allowed to handle it.
// It is not safe for concurrent use.
type Session struct {
	cfg      Config
	monsters *gamedata.MonsterRegistry
	rng      Rand

	player  *entity.Player
	avatar  *entity.Avatar
	atlas   *world.Atlas
	trigger *encounter.Trigger

	patrollers map[string][]*entity.Patroller // Keyed by area ID

	state State

	battle   *combat.Battle
	battleID string
	levelUp  entity.LevelUp

	dialog     []string
	dialogLine int
	talker     *gamedata.NPCDef // Set while the player stands near a talker

	running bool
	stats   *metrics
}

// NewSession creates a session standing in the centre of the start area.
func NewSession(cfg Config, monsters *gamedata.MonsterRegistry, areas *gamedata.AreaRegistry, rng Rand) (*Session, error) {
	if cfg.StartArea == "" {
		cfg.StartArea = DefaultStartArea
	}
	atlas, err := world.NewAtlas(areas, cfg.StartArea)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:        cfg,
		monsters:   monsters,
		rng:        rng,
		player:     entity.NewPlayer(cfg.PlayerName),
		atlas:      atlas,
		trigger:    encounter.NewTrigger(cfg.Encounter, monsters, rng),
		patrollers: spawnPatrollers(areas),
		state:      StateExploring,
		running:    true,
		stats:      newMetrics(),
	}
	s.avatar = entity.NewAvatar(atlas.Center())
	return s, nil
}

// spawnPatrollers places every area's patrolling NPCs at their start points.
func spawnPatrollers(areas *gamedata.AreaRegistry) map[string][]*entity.Patroller {
	out := make(map[string][]*entity.Patroller)
	for _, id := range areas.IDs() {
		area, err := areas.Get(id)
		if err != nil {
			continue
		}
		for _, npc := range area.NPCs {
			if npc.Kind == gamedata.NPCPatroller {
				out[id] = append(out[id], entity.NewPatroller(npc.ID, npc.X, npc.Y))
			}
		}
	}
	return out
}

// State returns the current game state.
func (s *Session) State() State { return s.state }

// Seed returns the seed the session's random source was built from.
func (s *Session) Seed() int64 { return s.cfg.Seed }

// Running reports whether the player has not quit.
func (s *Session) Running() bool { return s.running }

// Player returns the player.
func (s *Session) Player() *entity.Player { return s.player }

// Avatar returns the player's overworld body.
func (s *Session) Avatar() *entity.Avatar { return s.avatar }

// Area returns the area the player is in.
func (s *Session) Area() *gamedata.AreaDef { return s.atlas.Current() }

// PortalCooldown returns the ticks left before portals work again.
func (s *Session) PortalCooldown() int { return s.atlas.Cooldown() }

// Patrollers returns the patrolling NPCs of the current area.
func (s *Session) Patrollers() []*entity.Patroller {
	return s.patrollers[s.atlas.Current().ID]
}

// Steps returns moving ticks since the last battle.
func (s *Session) Steps() int { return s.trigger.Steps() }

// Battle returns the active battle, or nil outside StateBattle.
func (s *Session) Battle() *combat.Battle { return s.battle }

// LastLevelUp returns the deltas shown on the level-up screen.
func (s *Session) LastLevelUp() entity.LevelUp { return s.levelUp }

// Talker returns the NPC whose talk prompt is showing, if any.
func (s *Session) Talker() (gamedata.NPCDef, bool) {
	if s.talker == nil {
		return gamedata.NPCDef{}, false
	}
	return *s.talker, true
}

// DialogLine returns the dialog line being shown.
func (s *Session) DialogLine() (string, bool) {
	if s.state != StateDialog || s.dialogLine >= len(s.dialog) {
		return "", false
	}
	return s.dialog[s.dialogLine], true
}

// Explore runs one exploration tick with a movement intent of (dx, dy),
// each in {-1, 0, 1}. A zero intent still advances the scenery.
func (s *Session) Explore(ctx context.Context, dx, dy int) error {
	if err := s.require(StateExploring, "explore"); err != nil {
		return err
	}

	speed := float64(s.player.Speed)
	moved := s.avatar.Step(float64(dx)*speed, float64(dy)*speed)
	s.avatar.MoveTo(s.atlas.Clamp(s.avatar.Position()))

	// The encounter belongs to the area the step was taken in, even when
	// the same step lands on a portal.
	source := s.atlas.Current()
	monster, encountered := s.trigger.Tick(moved, source)

	if portal, ok := s.atlas.PortalAt(s.avatar.Position()); ok {
		if err := s.atlas.Travel(portal); err != nil {
			return err
		}
		s.avatar.MoveTo(s.atlas.Center())
		log.Printf("travelled to %s", s.atlas.Current().ID)
	}
	s.atlas.Tick()

	s.advancePatrollers()

	s.talker = nil
	if npc, ok := s.atlas.TalkerNear(s.avatar.Position()); ok {
		s.talker = &npc
	}

	if encountered {
		s.startBattle(ctx, monster, source)
	}
	return nil
}

// advancePatrollers moves the current area's patrollers one tick.
func (s *Session) advancePatrollers() {
	area := s.atlas.Current()
	for _, p := range s.patrollers[area.ID] {
		p.Advance(s.rng)
		p.Clamp(world.MarginX, world.MarginY, area.Width-world.MarginX, area.Height-world.MarginY)
	}
}

// Act forwards a battle action.
func (s *Session) Act(ctx context.Context, action combat.Action) error {
	if err := s.require(StateBattle, action.String()); err != nil {
		return err
	}
	if err := s.executeTurn(ctx, action); err != nil {
		return err
	}
	if s.battle.Over() {
		// Only a successful flee resolves without a Continue.
		s.endBattle(ctx, combat.ExitExplore)
	}
	return nil
}

// Continue acknowledges whatever is on screen: a battle message, a dialog
// line or the level-up screen.
func (s *Session) Continue(ctx context.Context) error {
	switch s.state {
	case StateBattle:
		exit, err := s.battle.Continue()
		if err != nil {
			return s.reject("continue", err)
		}
		if exit != combat.ExitNone {
			s.endBattle(ctx, exit)
		}
		return nil
	case StateDialog:
		s.dialogLine++
		if s.dialogLine >= len(s.dialog) {
			s.closeDialog()
		}
		return nil
	case StateLevelUp:
		s.state = StateExploring
		return nil
	default:
		return s.reject("continue", ErrWrongState)
	}
}

// Talk opens the dialog of the NPC next to the player.
func (s *Session) Talk(ctx context.Context) error {
	if err := s.require(StateExploring, "talk"); err != nil {
		return err
	}
	if s.talker == nil || len(s.talker.Dialog) == 0 {
		return s.reject("talk", fmt.Errorf("%w: nobody to talk to", ErrWrongState))
	}
	s.dialog = s.talker.Dialog
	s.dialogLine = 0
	s.state = StateDialog
	return nil
}

// Escape leaves a dialog; anywhere else it quits the game.
func (s *Session) Escape(ctx context.Context) error {
	if s.state == StateDialog {
		s.closeDialog()
		return nil
	}
	s.running = false
	return nil
}

// Restart brings a defeated player back to life in the start area.
func (s *Session) Restart(ctx context.Context) error {
	if err := s.require(StateGameOver, "restart"); err != nil {
		return err
	}
	if err := s.atlas.Reset(s.cfg.StartArea); err != nil {
		return err
	}
	s.player.Reset()
	s.avatar = entity.NewAvatar(s.atlas.Center())
	s.trigger.Reset()
	s.battle = nil
	s.talker = nil
	s.state = StateExploring
	log.Printf("restarted in %s", s.cfg.StartArea)
	return nil
}

func (s *Session) closeDialog() {
	s.dialog = nil
	s.dialogLine = 0
	s.state = StateExploring
}

// require rejects events that do not belong to the current state.
func (s *Session) require(want State, event string) error {
	if s.state != want {
		return s.reject(event, ErrWrongState)
	}
	return nil
}

// reject logs an ignored event and returns the wrapped cause.
func (s *Session) reject(event string, cause error) error {
	err := fmt.Errorf("%s in %s: %w", event, s.state, cause)
	log.Printf("ignored event: %v", err)
	return err
}
