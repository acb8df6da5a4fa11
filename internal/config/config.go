package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type Config struct {
	LogLevel    string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HumanMark   string   `yaml:"human-mark" env:"HUMAN_MARK" env-default:"X"`
	FirstMark   string   `yaml:"first-mark" env:"FIRST_MARK" env-default:"X"`
	StrictMoves bool     `yaml:"strict-moves" env:"STRICT_MOVES" env-default:"false"`
	SelfPlay    SelfPlay `yaml:"selfplay"`
}

type SelfPlay struct {
	Games    int    `yaml:"games" env:"SELFPLAY_GAMES" env-default:"100"`
	Workers  int    `yaml:"workers" env:"SELFPLAY_WORKERS" env-default:"4"`
	Opponent string `yaml:"opponent" env:"SELFPLAY_OPPONENT" env-default:"exhaustive"`
	Seed     int64  `yaml:"seed" env:"SELFPLAY_SEED" env-default:"0"`
}

// GameOptions - session settings derived from the configured marks.
func (that *Config) GameOptions() tictactoe.Options {
	return tictactoe.Options{
		DefaultHumanMark: entity.Mark(that.HumanMark),
		FirstMark:        entity.Mark(that.FirstMark),
	}
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file, applying env overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}
