package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/samdwyer/slimequest/internal/game"
)

// setDefaults registers every config key so that environment variables
// are picked up for keys that no flag or file sets.
func setDefaults(v *viper.Viper) {
	def := game.DefaultConfig()
	v.SetDefault("seed", def.Seed)
	v.SetDefault("player_name", def.PlayerName)
	v.SetDefault("start_area", def.StartArea)
	v.SetDefault("fps", def.FPS)
	v.SetDefault("encounter.steps_threshold", def.Encounter.StepsThreshold)
	v.SetDefault("encounter.fixed_rate", def.Encounter.FixedRate)
	v.SetDefault("battle.monster_defend_chance", def.Battle.MonsterDefendChance)
	v.SetDefault("battle.flee_chance", def.Battle.FleeChance)
}

// loadConfig builds the game configuration from a populated viper instance.
func loadConfig(v *viper.Viper) (game.Config, error) {
	cfg := game.DefaultConfig()
	cfg.Seed = v.GetInt64("seed")
	cfg.PlayerName = v.GetString("player_name")
	cfg.StartArea = v.GetString("start_area")
	cfg.FPS = v.GetInt("fps")
	cfg.Encounter.StepsThreshold = v.GetInt("encounter.steps_threshold")
	cfg.Encounter.FixedRate = v.GetFloat64("encounter.fixed_rate")
	cfg.Battle.MonsterDefendChance = v.GetFloat64("battle.monster_defend_chance")
	cfg.Battle.FleeChance = v.GetFloat64("battle.flee_chance")

	if v.IsSet("encounter.rates") {
		rates := map[string]float64{}
		if err := v.UnmarshalKey("encounter.rates", &rates); err != nil {
			return game.Config{}, fmt.Errorf("encounter.rates: %w", err)
		}
		cfg.Encounter.Rates = rates
	}

	if err := validate(cfg); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

func validate(cfg game.Config) error {
	if cfg.Encounter.StepsThreshold < 0 {
		return fmt.Errorf("encounter.steps_threshold must not be negative, got %d", cfg.Encounter.StepsThreshold)
	}
	chances := map[string]float64{
		"encounter.fixed_rate":         cfg.Encounter.FixedRate,
		"battle.monster_defend_chance": cfg.Battle.MonsterDefendChance,
		"battle.flee_chance":           cfg.Battle.FleeChance,
	}
	for area, rate := range cfg.Encounter.Rates {
		chances["encounter.rates."+area] = rate
	}
	for key, p := range chances {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", key, p)
		}
	}
	return nil
}
