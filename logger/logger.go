package logger

import (
	"io"
	"os"
	"time"

	"github.com/Burhanmalu/LUMARIYA/config"
	"github.com/rs/zerolog"
)

// New builds the service logger. LOG_FORMAT=console gives human readable
// output for local runs; anything else writes JSON lines.
func New(cfg *config.Config) zerolog.Logger {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.LogFormat == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", "lumariya-api").
		Logger()
}
