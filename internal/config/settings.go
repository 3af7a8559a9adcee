package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Settings are process-level knobs read from the environment. Command-line
// flags override them.
type Settings struct {
	LogLevel     string `env:"HPGO_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"HPGO_LOG_FORMAT" envDefault:"text"`
	Workers      int    `env:"HPGO_MC_WORKERS"`
	ListenAddr   string `env:"HPGO_LISTEN_ADDR" envDefault:":8080"`
	MaxBodyBytes int64  `env:"HPGO_MAX_BODY_BYTES" envDefault:"1048576"`
}

// LoadSettings parses the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if s.Workers <= 0 {
		s.Workers = runtime.NumCPU()
	}
	return s, nil
}

// NewLogger builds a logrus logger from the settings. An unknown level falls
// back to info.
func (s Settings) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if strings.EqualFold(s.LogFormat, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
