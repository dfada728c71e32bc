package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"blackqueen/internal/engine"
)

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	WebDist string `yaml:"web_dist"`
}

type GameConfig struct {
	CardsPerHand int   `yaml:"cards_per_hand"`
	TotalRounds  int   `yaml:"total_rounds"`
	Seed         int64 `yaml:"seed"`
}

// BotsConfig assigns a difficulty to each bot seat. The south seat is
// always the human player.
type BotsConfig struct {
	North string `yaml:"north"`
	East  string `yaml:"east"`
	West  string `yaml:"west"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
	Bots   BotsConfig   `yaml:"bots"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:    ":8080",
			WebDist: "web/dist",
		},
		Game: GameConfig{
			CardsPerHand: 13,
			TotalRounds:  4,
		},
		Bots: BotsConfig{
			North: "normal",
			East:  "normal",
			West:  "normal",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not
// an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Game.CardsPerHand < 1 || c.Game.CardsPerHand > 13 {
		return fmt.Errorf("cards_per_hand must be 1..13, got %d", c.Game.CardsPerHand)
	}
	if c.Game.TotalRounds < 1 {
		return fmt.Errorf("total_rounds must be positive, got %d", c.Game.TotalRounds)
	}
	for seat, level := range map[string]string{
		"north": c.Bots.North,
		"east":  c.Bots.East,
		"west":  c.Bots.West,
	} {
		if level != "easy" && level != "normal" {
			return fmt.Errorf("bot %s: unknown difficulty %q", seat, level)
		}
	}
	return nil
}

// Rules maps the game section onto the standard ruleset.
func (c Config) Rules() engine.Rules {
	r := engine.StandardPreset()
	r.CardsPerHand = c.Game.CardsPerHand
	r.TotalRounds = c.Game.TotalRounds
	return r
}
