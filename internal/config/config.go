package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort  string    `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	WebDir    string    `yaml:"web-dir" env:"WEB_DIR" env-default:"./web"`
	Game      Game      `yaml:"game"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Game struct {
	TurnSeconds       int           `yaml:"turn-seconds" env:"GAME_TURN_SECONDS" env-default:"10"`
	TickInterval      time.Duration `yaml:"tick-interval" env:"GAME_TICK_INTERVAL" env-default:"1s"`
	AIDelay           time.Duration `yaml:"ai-delay" env:"GAME_AI_DELAY" env-default:"1s"`
	DefaultDifficulty string        `yaml:"default-difficulty" env:"GAME_DEFAULT_DIFFICULTY" env-default:"hard"`
	IdleTimeout       time.Duration `yaml:"idle-timeout" env:"GAME_IDLE_TIMEOUT" env-default:"10m"`
}

type Telemetry struct {
	Enabled       bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	CollectorAddr string `yaml:"collector-addr" env:"OTEL_COLLECTOR_ADDR" env-default:"otel-collector:4317"`
	StdoutTraces  bool   `yaml:"stdout-traces" env:"OTEL_STDOUT_TRACES" env-default:"false"`
}

// Load reads the config file at path, if there is one, and overlays the
// environment on top of it.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
		return config, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read config from environment: %w", err)
	}
	return config, nil
}

// MustLoad is Load for main: it panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}
