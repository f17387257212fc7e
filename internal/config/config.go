// Package config loads the harness's configuration surface from the
// environment, in the style of the teacher's cmdcommon.LoadCommonConfig.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the configuration surface used by the core (§6): two timeouts,
// each zero meaning "no limit", plus the agent launch commands for a demo
// match.
type Config struct {
	TurnTimeout time.Duration `envconfig:"TURN_TIMEOUT" default:"5s"`
	GameTimeout time.Duration `envconfig:"GAME_TIMEOUT" default:"0"`

	// AgentCommands holds one launch command per agent, e.g.
	// JEDNA_AGENT_COMMANDS="./bots/greedy,./bots/random".
	AgentCommands []string `envconfig:"AGENT_COMMANDS"`
}

// Load reads JEDNA_* environment variables into a Config.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("jedna", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
