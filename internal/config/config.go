package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/AdamBeresnev/padel-draw/internal/utils"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath        string
	MigrationsPath      string
	Port                int
	ShuffleSeed         *int64
	RandomizeSeedGroups bool
	AllowedOrigins      []string
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		DatabasePath:        orDefault(getenv("DATABASE_PATH"), "padel_draw.db"),
		MigrationsPath:      orDefault(getenv("MIGRATIONS_PATH"), "file://migrations"),
		Port:                8080,
		RandomizeSeedGroups: true,
		AllowedOrigins:      []string{"*"},
	}

	if v := utils.StringOrNil(getenv("PORT")); v != nil {
		port, err := strconv.Atoi(*v)
		if err != nil || port < 1 || port > 65535 {
			return cfg, fmt.Errorf("invalid PORT %q", *v)
		}
		cfg.Port = port
	}

	if v := utils.StringOrNil(getenv("SHUFFLE_SEED")); v != nil {
		seed, err := strconv.ParseInt(*v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid SHUFFLE_SEED %q: %w", *v, err)
		}
		cfg.ShuffleSeed = utils.Ptr(seed)
	}

	if v := utils.StringOrNil(getenv("RANDOMIZE_SEED_GROUPS")); v != nil {
		randomize, err := strconv.ParseBool(*v)
		if err != nil {
			return cfg, fmt.Errorf("invalid RANDOMIZE_SEED_GROUPS %q: %w", *v, err)
		}
		cfg.RandomizeSeedGroups = randomize
	}

	if v := utils.StringOrNil(getenv("CORS_ALLOWED_ORIGINS")); v != nil {
		if origins := utils.SplitNonEmpty(*v, ","); len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	return cfg, nil
}

func orDefault(v, fallback string) string {
	if s := utils.StringOrNil(v); s != nil {
		return *s
	}
	return fallback
}
