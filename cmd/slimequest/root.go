package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samdwyer/slimequest/internal/game"
	"github.com/samdwyer/slimequest/internal/telemetry"
)

const envPrefix = "SLIMEQUEST"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "slimequest",
	Short: "Walk three maps, meet slimes, win turn-based battles",
	Long: `SlimeQuest is a terminal RPG. Explore the village, Hubei and Hunan,
run into random slime encounters and fight them with attack, defend or flee.

Settings are read from flags, SLIMEQUEST_* environment variables and an
optional config file, in that order of precedence.`,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./slimequest.yaml)")
	flags.Int64("seed", 0, "random seed; 0 picks one from the clock")
	flags.Float64("encounter-rate", 0, "fixed per-step encounter chance for every area; 0 uses the per-area table")
	flags.Int("steps-threshold", game.DefaultConfig().Encounter.StepsThreshold, "moving ticks after a battle before encounters can roll")
	flags.Bool("no-telemetry", false, "do not export traces and metrics")
	flags.String("log-file", "slimequest.log", "file the game log is written to while the screen is in use")

	bindFlag("seed", "seed")
	bindFlag("encounter.fixed_rate", "encounter-rate")
	bindFlag("encounter.steps_threshold", "steps-threshold")
	bindFlag("no_telemetry", "no-telemetry")
	bindFlag("log_file", "log-file")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		log.Fatalf("bind flag %s: %v", flag, err)
	}
}

// initConfig reads the config file and environment.
func initConfig() {
	// Load .env file for local development.
	// This makes HONEYCOMB_SLIMEQUEST_API_KEY available.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("slimequest")
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			log.Printf("Warning: config file not read: %v", err)
		}
	}
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(viper.GetString("log_file"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !viper.GetBool("no_telemetry") {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	log.Printf("starting with seed %d", g.Session().Seed())

	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may hold an unexpanded variable reference, so the
	// header is built here.
	apiKey := os.Getenv("HONEYCOMB_SLIMEQUEST_API_KEY")
	dataset := os.Getenv("HONEYCOMB_SLIMEQUEST_DATASET")
	if dataset == "" {
		dataset = "slimequest"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
