// Package logger builds the process-wide zerolog logger. main calls Init
// once with the configured level; everything downstream receives the logger
// by value, so services and handlers stay testable with zerolog.Nop().
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	instance zerolog.Logger
	once     sync.Once
)

// Init builds the singleton logger. level is one of trace, debug, info,
// warn, or error; anything unrecognised falls back to info. pretty switches
// the JSON output to a console writer for local development. Only the first
// call has any effect.
func Init(level string, pretty bool) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var out io.Writer = os.Stdout
		if pretty {
			out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		}

		lvl, err := zerolog.ParseLevel(level)
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)

		instance = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Caller().
			Logger()
	})
	return instance
}

// Get returns the singleton, initialising it with defaults when Init was
// never called.
func Get() zerolog.Logger {
	return Init("info", false)
}
