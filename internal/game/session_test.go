package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/slimequest/internal/combat"
	"github.com/samdwyer/slimequest/internal/gamedata"
	"github.com/samdwyer/slimequest/internal/world"
)

// scriptRand replays fixed Float64 rolls, then 0.99 forever. Intn is always 0.
type scriptRand struct {
	rolls []float64
}

func (r *scriptRand) Float64() float64 {
	if len(r.rolls) == 0 {
		return 0.99
	}
	v := r.rolls[0]
	r.rolls = r.rolls[1:]
	return v
}

func (r *scriptRand) Intn(int) int { return 0 }

// quietConfig never rolls an encounter.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Encounter.Rates = map[string]float64{"village": 0, "hubei": 0, "hunan": 0}
	return cfg
}

// eagerConfig starts a battle on the first step.
func eagerConfig() Config {
	cfg := DefaultConfig()
	cfg.Encounter.StepsThreshold = 0
	cfg.Encounter.FixedRate = 1
	return cfg
}

func newTestSession(t *testing.T, cfg Config, rolls ...float64) *Session {
	t.Helper()
	s, err := NewSession(cfg, gamedata.MustLoadMonsterRegistry(), gamedata.MustLoadAreaRegistry(), &scriptRand{rolls: rolls})
	require.NoError(t, err)
	return s
}

// startBattle walks one step in a session built with eagerConfig.
func startBattle(t *testing.T, s *Session) {
	t.Helper()
	require.NoError(t, s.Explore(context.Background(), 1, 0))
	require.Equal(t, StateBattle, s.State())
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, quietConfig())

	assert.Equal(t, StateExploring, s.State())
	assert.True(t, s.Running())
	assert.Equal(t, "village", s.Area().ID)
	assert.Equal(t, 800.0, s.Avatar().X)
	assert.Equal(t, 600.0, s.Avatar().Y)
	assert.Equal(t, 100, s.Player().HP)
	assert.Nil(t, s.Battle())
}

func TestNewSessionUnknownStartArea(t *testing.T) {
	cfg := quietConfig()
	cfg.StartArea = "atlantis"
	_, err := NewSession(cfg, gamedata.MustLoadMonsterRegistry(), gamedata.MustLoadAreaRegistry(), &scriptRand{})
	assert.ErrorIs(t, err, gamedata.ErrUnknownArea)
}

func TestExploreMovesBySpeed(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, quietConfig())

	require.NoError(t, s.Explore(ctx, 1, 0))
	assert.Equal(t, 805.0, s.Avatar().X)
	assert.Equal(t, 1, s.Steps())

	require.NoError(t, s.Explore(ctx, 0, -1))
	assert.Equal(t, 595.0, s.Avatar().Y)
	assert.Equal(t, 2, s.Steps())

	require.NoError(t, s.Explore(ctx, 0, 0))
	assert.Equal(t, 2, s.Steps(), "standing still is not a step")
}

func TestExploreClampsToBounds(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, quietConfig())

	for range 200 {
		require.NoError(t, s.Explore(ctx, -1, 0))
	}
	assert.Equal(t, float64(world.MarginX), s.Avatar().X)
	assert.Equal(t, "village", s.Area().ID)
}

func TestExplorePortalTravel(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, quietConfig())
	assert.Empty(t, s.Patrollers())

	for i := 0; i < 200 && s.Area().ID == "village"; i++ {
		require.NoError(t, s.Explore(ctx, 1, 0))
	}

	require.Equal(t, "hubei", s.Area().ID)
	assert.Equal(t, 800.0, s.Avatar().X, "arrives at the area centre")
	assert.Equal(t, 600.0, s.Avatar().Y)
	assert.Len(t, s.Patrollers(), 2)
	assert.Equal(t, world.PortalCooldownTicks-1, s.PortalCooldown(), "arrival tick already counts down")
}

func TestEncounterOnPortalStepUsesSourceArea(t *testing.T) {
	s := newTestSession(t, eagerConfig(), 0.0)
	s.Avatar().MoveTo(1476, 600)

	require.NoError(t, s.Explore(context.Background(), 1, 0))

	assert.Equal(t, "hubei", s.Area().ID, "the step still goes through the portal")
	require.Equal(t, StateBattle, s.State())
	assert.Equal(t, "SmallSlime", s.Battle().Monster().Name, "monster comes from the village tier")
	assert.Equal(t, 1, s.Battle().Monster().Tier())
}

func TestExploreAdvancesPatrollers(t *testing.T) {
	ctx := context.Background()
	cfg := quietConfig()
	cfg.StartArea = "hubei"
	s := newTestSession(t, cfg)

	first := s.Patrollers()[0]
	startY := first.Y
	require.NoError(t, s.Explore(ctx, 0, 0))
	assert.Equal(t, startY+1.5, first.Y, "patrollers start out walking down")
}

func TestEncounterStartsBattle(t *testing.T) {
	s := newTestSession(t, eagerConfig(), 0.0)

	startBattle(t, s)

	require.NotNil(t, s.Battle())
	assert.Equal(t, "SmallSlime", s.Battle().Monster().Name, "village is tier 1")
	assert.NotEmpty(t, s.battleID)
	assert.Equal(t, 0, s.Steps())
}

func TestEventsRejectedOutsideTheirState(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, eagerConfig(), 0.0)

	assert.ErrorIs(t, s.Act(ctx, combat.ActionAttack), ErrWrongState)
	assert.ErrorIs(t, s.Continue(ctx), ErrWrongState)
	assert.ErrorIs(t, s.Restart(ctx), ErrWrongState)
	assert.ErrorIs(t, s.Talk(ctx), ErrWrongState, "nobody to talk to at the centre")
	assert.Equal(t, StateExploring, s.State())

	startBattle(t, s)
	x, y := s.Avatar().Position()
	hp := s.Player().HP

	assert.ErrorIs(t, s.Explore(ctx, 1, 0), ErrWrongState)
	assert.ErrorIs(t, s.Talk(ctx), ErrWrongState)
	assert.ErrorIs(t, s.Continue(ctx), combat.ErrInvalidTransition, "nothing to acknowledge yet")

	assert.Equal(t, StateBattle, s.State())
	assert.Equal(t, x, s.Avatar().X)
	assert.Equal(t, y, s.Avatar().Y)
	assert.Equal(t, hp, s.Player().HP)
}

func TestBattleFleeReturnsToExploring(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, eagerConfig(), 0.0, 0.5)
	startBattle(t, s)

	require.NoError(t, s.Act(ctx, combat.ActionFlee))

	assert.Equal(t, StateExploring, s.State())
	assert.Nil(t, s.Battle())
	assert.Equal(t, 100, s.Player().HP)
}

func TestBattleVictoryReturnsToExploring(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, eagerConfig(), 0.0)
	startBattle(t, s)

	require.NoError(t, s.Act(ctx, combat.ActionAttack))
	require.NoError(t, s.Continue(ctx))
	assert.Equal(t, StateBattle, s.State())
	assert.Equal(t, 92, s.Player().HP)

	require.NoError(t, s.Act(ctx, combat.ActionAttack))
	require.NoError(t, s.Continue(ctx))

	assert.Equal(t, StateExploring, s.State())
	assert.Equal(t, 20, s.Player().Exp)
	assert.Equal(t, 60, s.Player().Gold)
	assert.Equal(t, 1, s.Player().Level)
}

func TestBattleVictoryWithLevelUp(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, eagerConfig(), 0.0)
	s.Player().Exp = 90
	startBattle(t, s)

	require.NoError(t, s.Act(ctx, combat.ActionAttack))
	require.NoError(t, s.Continue(ctx))
	require.NoError(t, s.Act(ctx, combat.ActionAttack))
	require.NoError(t, s.Continue(ctx))

	require.Equal(t, StateLevelUp, s.State())
	lu := s.LastLevelUp()
	assert.Equal(t, 1, lu.FromLevel)
	assert.Equal(t, 2, lu.ToLevel)
	assert.Equal(t, 120, lu.ToMaxHP)
	assert.Equal(t, 10, s.Player().Exp)
	assert.Equal(t, 120, s.Player().HP, "level-up heals fully")

	require.NoError(t, s.Continue(ctx))
	assert.Equal(t, StateExploring, s.State())
}

func TestDefeatAndRestart(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, eagerConfig(), 0.0)
	player := s.Player()
	player.HP = 1
	player.Gold = 7
	startBattle(t, s)

	require.NoError(t, s.Act(ctx, combat.ActionAttack))
	require.NoError(t, s.Continue(ctx))
	require.Equal(t, StateGameOver, s.State())

	assert.ErrorIs(t, s.Explore(ctx, 1, 0), ErrWrongState)

	require.NoError(t, s.Restart(ctx))
	assert.Equal(t, StateExploring, s.State())
	assert.Same(t, player, s.Player(), "player is reset in place")
	assert.Equal(t, 100, player.HP)
	assert.Equal(t, 50, player.Gold)
	assert.Equal(t, "village", s.Area().ID)
	assert.Equal(t, 800.0, s.Avatar().X)
	assert.Equal(t, 600.0, s.Avatar().Y)
	assert.Equal(t, 0, s.Steps())
}

func TestDialog(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, quietConfig())

	s.Avatar().MoveTo(190, 790)
	require.NoError(t, s.Explore(ctx, 0, 0))
	npc, ok := s.Talker()
	require.True(t, ok)
	assert.Equal(t, "officer", npc.ID)

	require.NoError(t, s.Talk(ctx))
	require.Equal(t, StateDialog, s.State())

	for i, want := range npc.Dialog {
		line, ok := s.DialogLine()
		require.True(t, ok)
		assert.Equal(t, want, line)
		assert.ErrorIs(t, s.Explore(ctx, 1, 0), ErrWrongState, "no walking mid-dialog")
		require.NoError(t, s.Continue(ctx))
		if i < len(npc.Dialog)-1 {
			assert.Equal(t, StateDialog, s.State())
		}
	}
	assert.Equal(t, StateExploring, s.State())

	_, ok = s.DialogLine()
	assert.False(t, ok)
}

func TestEscape(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, quietConfig())

	s.Avatar().MoveTo(190, 790)
	require.NoError(t, s.Explore(ctx, 0, 0))
	require.NoError(t, s.Talk(ctx))

	require.NoError(t, s.Escape(ctx))
	assert.Equal(t, StateExploring, s.State(), "escape leaves the dialog")
	assert.True(t, s.Running())

	require.NoError(t, s.Escape(ctx))
	assert.False(t, s.Running(), "escape while exploring quits")
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateExploring, "exploring"},
		{StateBattle, "battle"},
		{StateDialog, "dialog"},
		{StateLevelUp, "level_up"},
		{StateGameOver, "game_over"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
