package scarlettd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// log.go builds the package-level logger, following go2rtc's
// internal/app/log.go construction style (console-writer with isatty
// autodetection) but scoped down to this module's single component --
// there's no per-module level map or yaml config to load here, just one
// logger every file in the package shares.
var Logger zerolog.Logger

func init() {
	console := zerolog.ConsoleWriter{Out: os.Stderr}
	console.NoColor = !isatty.IsTerminal(os.Stderr.Fd())
	Logger = zerolog.New(console).With().Timestamp().Logger()
}

// SetLogLevel adjusts the package logger's level at runtime, e.g. from a
// CLI flag.
func SetLogLevel(level zerolog.Level) {
	Logger = Logger.Level(level)
}
