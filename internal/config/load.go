// Package config defines environment configuration structs and loaders.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rankgen/internal/ranking"
)

type AppConfig struct {
	ServerEnvConfig
	EngineEnvConfig
	Environment string `env:"ENVIRONMENT" envDefault:"prod"`
}

// LoadConfig reads an optional .env file, then the process environment.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ServerEnvConfig configures the HTTP service.
type ServerEnvConfig struct {
	Host      string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port      int    `env:"SERVER_PORT" envDefault:"8888"`
	BodyLimit int    `env:"SERVER_BODY_LIMIT" envDefault:"4194304"`
}

// EngineEnvConfig holds the ranking engine defaults.
type EngineEnvConfig struct {
	MaxSize         int     `env:"RANKING_MAX_SIZE" envDefault:"1000"`
	RankMethod      string  `env:"RANK_METHOD" envDefault:"average"`
	SamplingMethod  string  `env:"SAMPLING_METHOD" envDefault:"branch"`
	HalveRankMetric bool    `env:"HALVE_RANK_METRIC" envDefault:"false"`
	Seed            uint64  `env:"RANDOM_SEED" envDefault:"0"` // 0 seeds from the runtime
	Precision       int     `env:"DISPLAY_PRECISION" envDefault:"4"`
	P7              float64 `env:"THRESHOLD_P7" envDefault:"0.10"`
	Q1              float64 `env:"THRESHOLD_Q1" envDefault:"0.10"`
}

func (c *AppConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Port)
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("SERVER_BODY_LIMIT must be positive: %d", c.BodyLimit)
	}
	if c.Precision < 0 || c.Precision > 16 {
		return fmt.Errorf("DISPLAY_PRECISION must be within [0, 16]: %d", c.Precision)
	}
	if err := ranking.ValidateThresholds(c.Thresholds()); err != nil {
		return fmt.Errorf("THRESHOLD_P7/THRESHOLD_Q1: %w", err)
	}
	return nil
}

func (c EngineEnvConfig) Thresholds() ranking.Thresholds {
	return ranking.Thresholds{P7: c.P7, Q1: c.Q1}
}

// GeneratorOptions translates the engine config into generator options.
func (c EngineEnvConfig) GeneratorOptions() []ranking.GeneratorOption {
	opts := []ranking.GeneratorOption{
		ranking.WithMaxSize(c.MaxSize),
		ranking.WithRankMethod(ranking.RankMethod(strings.ToLower(c.RankMethod))),
		ranking.WithSamplingMethod(ranking.SamplingMethod(strings.ToLower(c.SamplingMethod))),
		ranking.WithHalveRankMetric(c.HalveRankMetric),
	}
	if c.Seed != 0 {
		opts = append(opts, ranking.WithSeed(c.Seed))
	}
	return opts
}

func (c EngineEnvConfig) NewGenerator() (*ranking.Generator, error) {
	gen, err := ranking.NewGenerator(c.GeneratorOptions()...)
	if err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	return gen, nil
}

func (c ServerEnvConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
