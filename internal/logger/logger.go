package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"stablecart-api/internal/config"
)

// New builds the application logger from the LOG_LEVEL / LOG_FORMAT config.
func New(cfg config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.Format == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}

	return log.Level(level).With().Timestamp().Logger()
}
