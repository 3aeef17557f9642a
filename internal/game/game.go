package game

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/slimequest/internal/combat"
	"github.com/samdwyer/slimequest/internal/gamedata"
	"github.com/samdwyer/slimequest/internal/telemetry"
	"github.com/samdwyer/slimequest/internal/ui"
)

// Game drives a Session from the terminal.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	cfg      Config
}

// New loads the game data, builds the session and opens the terminal.
func New(cfg Config) (*Game, error) {
	monsters, err := gamedata.LoadMonsterRegistry()
	if err != nil {
		return nil, err
	}
	areas, err := gamedata.LoadAreaRegistry()
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d monsters and %d areas", monsters.Count(), areas.Count())

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	session, err := NewSession(cfg, monsters, areas, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		session:  session,
		cfg:      cfg,
	}, nil
}

// Run executes the main game loop until the player quits or ctx ends.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	_, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.Int64("seed", g.cfg.Seed),
		attribute.String("area", g.session.Area().ID),
		attribute.Int("encounter.steps_threshold", g.cfg.Encounter.StepsThreshold),
		attribute.Float64("encounter.fixed_rate", g.cfg.Encounter.FixedRate),
	)
	initSpan.End()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go g.tick(ctx, g.screen)

	for g.session.Running() && ctx.Err() == nil {
		g.render()
		g.handleInput(ctx)
	}

	g.Close()
	return nil
}

// tick wakes the loop at the configured frame rate so the scenery moves
// while no key is held.
func (g *Game) tick(ctx context.Context, screen *ui.Screen) {
	fps := g.cfg.FPS
	if fps <= 0 {
		fps = DefaultConfig().FPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Wake the loop so it sees the cancellation.
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
			return
		case <-ticker.C:
			// A full queue drops the frame.
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}
}

// render draws the screen for the current state.
func (g *Game) render() {
	s := g.session
	switch s.State() {
	case StateBattle:
		g.renderer.RenderBattle(s.Battle().Snapshot())
	case StateLevelUp:
		g.renderer.RenderLevelUp(s.LastLevelUp())
	case StateGameOver:
		g.renderer.RenderGameOver(s.Player())
	default:
		view := ui.ExploreView{
			Area:       s.Area(),
			Avatar:     s.Avatar(),
			Patrollers: s.Patrollers(),
			Player:     s.Player(),
			Steps:      s.Steps(),
			Cooldown:   s.PortalCooldown(),
		}
		if npc, ok := s.Talker(); ok {
			view.Prompt = "[Space] Talk to " + npc.Name
		}
		g.renderer.RenderExplore(view)
		if line, ok := s.DialogLine(); ok {
			npc, _ := s.Talker()
			g.renderer.RenderDialog(npc.Name, line)
		}
	}
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventInterrupt:
		if g.session.State() == StateExploring {
			g.dispatch(g.session.Explore(ctx, 0, 0))
		}
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized.
		g.session.running = false
	}
}

// handleKeyEvent maps keyboard input to session events.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	s := g.session

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.dispatch(s.Escape(ctx))
		return
	case tcell.KeyUp:
		g.move(ctx, 0, -1)
		return
	case tcell.KeyDown:
		g.move(ctx, 0, 1)
		return
	case tcell.KeyLeft:
		g.move(ctx, -1, 0)
		return
	case tcell.KeyRight:
		g.move(ctx, 1, 0)
		return
	case tcell.KeyEnter:
		g.dispatch(s.Continue(ctx))
		return
	case tcell.KeyRune:
	default:
		return
	}

	// Battle keys shadow the WASD letters they share.
	if s.State() == StateBattle {
		switch ev.Rune() {
		case '1', 'a', 'A':
			g.dispatch(s.Act(ctx, combat.ActionAttack))
			return
		case '2', 'd', 'D':
			g.dispatch(s.Act(ctx, combat.ActionDefend))
			return
		case '3', 'f', 'F':
			g.dispatch(s.Act(ctx, combat.ActionFlee))
			return
		}
	}

	switch ev.Rune() {
	case 'w', 'W':
		g.move(ctx, 0, -1)
	case 's', 'S':
		g.move(ctx, 0, 1)
	case 'a', 'A':
		g.move(ctx, -1, 0)
	case 'd', 'D':
		g.move(ctx, 1, 0)
	case ' ':
		if s.State() == StateExploring {
			g.dispatch(s.Talk(ctx))
		} else {
			g.dispatch(s.Continue(ctx))
		}
	case 'r', 'R':
		g.dispatch(s.Restart(ctx))
	case 'q', 'Q':
		g.dispatch(s.Escape(ctx))
	}
}

// move sends one exploration tick; movement keys are ignored elsewhere.
func (g *Game) move(ctx context.Context, dx, dy int) {
	if g.session.State() != StateExploring {
		return
	}
	g.dispatch(g.session.Explore(ctx, dx, dy))
}

// dispatch logs failures the session did not already report as rejected
// input. Neither kind stops the game.
func (g *Game) dispatch(err error) {
	if err == nil || rejected(err) {
		return
	}
	log.Printf("input: %v", err)
}

func rejected(err error) bool {
	return errors.Is(err, ErrWrongState) ||
		errors.Is(err, combat.ErrInvalidTransition) ||
		errors.Is(err, combat.ErrBattleOver)
}

// Session returns the game's session.
func (g *Game) Session() *Session { return g.session }

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
