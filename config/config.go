package config

import (
	"os"

	"github.com/adrg/xdg"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"tictac/game"
)

// File is the location of the configuration below the XDG config directory.
const File = "tictac/config.yaml"

type Config struct {
	Seed     *uint64               `yaml:"seed,omitempty"`
	LogLevel string                `yaml:"log_level"`
	Minimax  Minimax               `yaml:"minimax"`
	Games    map[string]GameConfig `yaml:"games,omitempty"`
}

type Minimax struct {
	MaxDepth int `yaml:"max_depth"` // unlimited when 0
}

type GameConfig struct {
	Simulations int `yaml:"simulations"`
}

func Default() Config {
	return Config{LogLevel: zerolog.LevelInfoValue}
}

// Path returns the path of the configuration file, which may not exist.
func Path() (string, error) {
	path, err := xdg.ConfigFile(File)
	return path, errors.Wrap(err, "locating config file")
}

// Load reads the configuration from its XDG location. A missing file yields
// the defaults.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return Read(path)
}

func Read(path string) (Config, error) {
	config := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}
	if err := config.Validate(); err != nil {
		return Config{}, errors.WithMessagef(err, "invalid %s", path)
	}
	return config, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs error
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = multierror.Append(errs, errors.Wrapf(game.ErrConfiguration, "log_level: %v", err))
	}
	if c.Minimax.MaxDepth < 0 {
		errs = multierror.Append(errs, errors.Wrapf(game.ErrConfiguration, "minimax.max_depth: negative depth %d", c.Minimax.MaxDepth))
	}
	for name, g := range c.Games {
		if g.Simulations < 0 {
			errs = multierror.Append(errs, errors.Wrapf(game.ErrConfiguration, "games.%s.simulations: negative count %d", name, g.Simulations))
		}
	}
	return errs
}

// Level is the configured log level.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Simulations returns the configured MCTS budget of a game, falling back to
// the game's own default.
func (c Config) Simulations(info game.Info) int {
	if g, ok := c.Games[info.Name]; ok && g.Simulations > 0 {
		return g.Simulations
	}
	return info.Simulations
}
