package game

import (
	"context"
	"log"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/samdwyer/slimequest/internal/combat"
	"github.com/samdwyer/slimequest/internal/entity"
	"github.com/samdwyer/slimequest/internal/gamedata"
	"github.com/samdwyer/slimequest/internal/telemetry"
)

// metrics holds the game's OpenTelemetry instruments.
type metrics struct {
	encounters metric.Int64Counter
	resolved   metric.Int64Counter
	damage     metric.Int64Histogram
}

// newMetrics creates the instruments on the global meter provider.
// A failed instrument is logged and replaced by a no-op.
func newMetrics() *metrics {
	meter := telemetry.Meter("game")
	fallback := noop.Meter{}
	m := &metrics{}

	var err error
	m.encounters, err = meter.Int64Counter("slimequest.encounters",
		metric.WithDescription("Random encounters started"))
	if err != nil {
		log.Printf("metric slimequest.encounters: %v", err)
		m.encounters, _ = fallback.Int64Counter("slimequest.encounters")
	}
	m.resolved, err = meter.Int64Counter("slimequest.battles.resolved",
		metric.WithDescription("Battles finished, by outcome"))
	if err != nil {
		log.Printf("metric slimequest.battles.resolved: %v", err)
		m.resolved, _ = fallback.Int64Counter("slimequest.battles.resolved")
	}
	m.damage, err = meter.Int64Histogram("slimequest.battle.damage",
		metric.WithDescription("Damage per hit"),
		metric.WithUnit("{hp}"))
	if err != nil {
		log.Printf("metric slimequest.battle.damage: %v", err)
		m.damage, _ = fallback.Int64Histogram("slimequest.battle.damage")
	}
	return m
}

// =============================================================================
// Battle Methods on Session
// =============================================================================

// startBattle hands the player to a new battle against the monster.
func (s *Session) startBattle(ctx context.Context, monster *entity.Monster, area *gamedata.AreaDef) {
	s.battleID = uuid.NewString()

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "encounter.start")
	span.SetAttributes(
		attribute.String("battle.id", s.battleID),
		attribute.String("area", area.ID),
		attribute.Int("area.tier", area.Tier),
		attribute.String("monster", monster.Name),
		attribute.Int("monster.tier", monster.Tier()),
		attribute.Int("player.level", s.player.Level),
		attribute.Int("player.hp", s.player.HP),
	)
	span.End()

	s.stats.encounters.Add(ctx, 1, metric.WithAttributes(
		attribute.String("area", area.ID),
		attribute.String("monster", monster.Name),
	))

	s.battle = combat.NewBattle(s.player, monster, s.rng, s.cfg.Battle)
	s.talker = nil
	s.state = StateBattle
	log.Printf("battle %s: %s in %s", s.battleID, monster.Name, area.ID)
}

// executeTurn resolves one player action inside a traced span.
func (s *Session) executeTurn(ctx context.Context, action combat.Action) error {
	tracer := telemetry.Tracer("combat")
	ctx, span := tracer.Start(ctx, "battle.turn")
	defer span.End()

	span.SetAttributes(
		attribute.String("battle.id", s.battleID),
		attribute.String("action", action.String()),
		attribute.Int("turn", s.battle.Turns()),
	)

	result, err := s.battle.Act(action)
	if err != nil {
		span.SetAttributes(attribute.Bool("rejected", true))
		return s.reject(action.String(), err)
	}

	span.SetAttributes(
		attribute.Int("damage_dealt", result.DamageDealt),
		attribute.Int("damage_taken", result.DamageTaken),
		attribute.Bool("monster_defended", result.MonsterDefended),
		attribute.String("outcome", result.Outcome.String()),
	)
	if result.DamageDealt > 0 {
		s.stats.damage.Record(ctx, int64(result.DamageDealt),
			metric.WithAttributes(attribute.String("target", "monster")))
	}
	if result.MonsterAttacked {
		s.stats.damage.Record(ctx, int64(result.DamageTaken),
			metric.WithAttributes(attribute.String("target", "player")))
	}

	if result.LevelUp != nil {
		s.traceLevelUp(ctx, *result.LevelUp)
	}
	return nil
}

// traceLevelUp records the level-up deltas as their own span.
func (s *Session) traceLevelUp(ctx context.Context, lu entity.LevelUp) {
	tracer := telemetry.Tracer("progression")
	_, span := tracer.Start(ctx, "player.level_up")
	span.SetAttributes(
		attribute.String("battle.id", s.battleID),
		attribute.Int("level.from", lu.FromLevel),
		attribute.Int("level.to", lu.ToLevel),
		attribute.Int("max_hp", lu.ToMaxHP),
		attribute.Int("attack", lu.ToAttack),
		attribute.Int("defense", lu.ToDefense),
		attribute.Int("exp_to_level", lu.NextThreshold),
	)
	span.End()
}

// endBattle closes the battle and moves to the state the exit names.
func (s *Session) endBattle(ctx context.Context, exit combat.Exit) {
	outcome := s.battle.Outcome()

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "battle.end")
	span.SetAttributes(
		attribute.String("battle.id", s.battleID),
		attribute.String("outcome", outcome.String()),
		attribute.String("exit", exit.String()),
		attribute.Int("turns_taken", s.battle.Turns()),
		attribute.Int("player.hp_remaining", s.player.HP),
	)
	span.End()

	s.stats.resolved.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome.String())))
	log.Printf("battle %s: %s after %d turns", s.battleID, outcome, s.battle.Turns())

	switch exit {
	case combat.ExitLevelUp:
		s.levelUp, _ = s.battle.LevelUp()
		s.state = StateLevelUp
	case combat.ExitGameOver:
		s.state = StateGameOver
	default:
		s.state = StateExploring
	}
	s.battle = nil
}
