package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init configures the global logger. In debug mode it writes
// human-readable console output, otherwise JSON at info level.
func Init(ginMode string) {
	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel

	if ginMode != "release" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}

	logger = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// L returns the application logger.
func L() *zerolog.Logger {
	return &logger
}
