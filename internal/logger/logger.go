package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog instance. Call once, before anything
// logs.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}
	log.Logger = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}
