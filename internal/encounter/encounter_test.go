package encounter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/slimequest/internal/gamedata"
)

// countingRand returns a fixed roll and counts how often it was asked.
type countingRand struct {
	roll  float64
	calls int
}

func (c *countingRand) Float64() float64 {
	c.calls++
	return c.roll
}

func area(t *testing.T, id string) *gamedata.AreaDef {
	t.Helper()
	a, err := gamedata.MustLoadAreaRegistry().Get(id)
	require.NoError(t, err)
	return a
}

func TestNoRollUntilThresholdPassed(t *testing.T) {
	rng := &countingRand{roll: 0}
	trig := NewTrigger(DefaultConfig(), gamedata.MustLoadMonsterRegistry(), rng)
	village := area(t, "village")

	for i := 0; i < DefaultStepsThreshold; i++ {
		_, ok := trig.Tick(true, village)
		require.False(t, ok, "step %d", i+1)
	}
	assert.Equal(t, 0, rng.calls, "no roll while steps <= threshold")
	assert.Equal(t, DefaultStepsThreshold, trig.Steps())

	monster, ok := trig.Tick(true, village)
	require.True(t, ok)
	assert.Equal(t, "SmallSlime", monster.Name)
	assert.Equal(t, 0, trig.Steps(), "steps reset on encounter")
}

func TestStandingStillDoesNotCount(t *testing.T) {
	rng := &countingRand{roll: 0}
	trig := NewTrigger(DefaultConfig(), gamedata.MustLoadMonsterRegistry(), rng)
	village := area(t, "village")

	for i := 0; i < 100; i++ {
		_, ok := trig.Tick(false, village)
		require.False(t, ok)
	}
	assert.Equal(t, 0, trig.Steps())
	assert.Equal(t, 0, rng.calls)
}

func TestFailedRollKeepsCounting(t *testing.T) {
	rng := &countingRand{roll: 0.5}
	trig := NewTrigger(DefaultConfig(), gamedata.MustLoadMonsterRegistry(), rng)
	hunan := area(t, "hunan")

	for i := 0; i < 40; i++ {
		_, ok := trig.Tick(true, hunan)
		require.False(t, ok)
	}
	assert.Equal(t, 40, trig.Steps())
	assert.Equal(t, 10, rng.calls)
}

func TestMonsterMatchesAreaTier(t *testing.T) {
	tests := map[string]string{
		"village": "SmallSlime",
		"hubei":   "BigSlime",
		"hunan":   "SlimeKing",
	}

	for id, want := range tests {
		trig := NewTrigger(Config{StepsThreshold: 0}, gamedata.MustLoadMonsterRegistry(), &countingRand{roll: 0})
		monster, ok := trig.Tick(true, area(t, id))
		require.True(t, ok, id)
		assert.Equal(t, want, monster.Name, id)
		assert.Equal(t, monster.MaxHP, monster.HP)
	}
}

func TestRateSelection(t *testing.T) {
	monsters := gamedata.MustLoadMonsterRegistry()
	village := area(t, "village")
	hubei := area(t, "hubei")

	trig := NewTrigger(DefaultConfig(), monsters, &countingRand{})
	assert.Equal(t, village.EncounterChance, trig.Rate(village), "area default")

	trig = NewTrigger(Config{Rates: map[string]float64{"village": 0.1}}, monsters, &countingRand{})
	assert.Equal(t, 0.1, trig.Rate(village), "per-area override")
	assert.Equal(t, hubei.EncounterChance, trig.Rate(hubei), "unlisted area keeps its default")

	trig = NewTrigger(Config{FixedRate: 0.02, Rates: map[string]float64{"village": 0.5}}, monsters, &countingRand{})
	assert.Equal(t, 0.02, trig.Rate(village), "fixed rate wins")
	assert.Equal(t, 0.02, trig.Rate(hubei))
}

func TestZeroRateNeverTriggers(t *testing.T) {
	cfg := Config{StepsThreshold: 0, Rates: map[string]float64{"village": 0}}
	trig := NewTrigger(cfg, gamedata.MustLoadMonsterRegistry(), &countingRand{roll: 0})

	for i := 0; i < 1000; i++ {
		_, ok := trig.Tick(true, area(t, "village"))
		require.False(t, ok)
	}
}

func TestEncounterFrequency(t *testing.T) {
	cfg := Config{StepsThreshold: 0, FixedRate: 0.02}
	trig := NewTrigger(cfg, gamedata.MustLoadMonsterRegistry(), rand.New(rand.NewSource(7)))
	village := area(t, "village")

	const ticks = 50000
	encounters := 0
	for i := 0; i < ticks; i++ {
		if _, ok := trig.Tick(true, village); ok {
			encounters++
		}
	}

	assert.InDelta(t, 0.02, float64(encounters)/ticks, 0.005)
}

func TestCreateMonsterFallsBackToStrongest(t *testing.T) {
	monsters := gamedata.MustLoadMonsterRegistry()

	assert.Equal(t, "SmallSlime", CreateMonster(monsters, 1).Name)
	assert.Equal(t, 30, CreateMonster(monsters, 1).HP)

	king := CreateMonster(monsters, 3)
	for _, tier := range []int{0, 4, 5, 99} {
		m := CreateMonster(monsters, tier)
		assert.Equal(t, king.Name, m.Name, "tier %d", tier)
		assert.Equal(t, 80, m.HP, "tier %d", tier)
		assert.NotSame(t, king, m)
	}
}
