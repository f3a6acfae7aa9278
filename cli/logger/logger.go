package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the logger. Logs go to stderr by default so they do not
// mix with the replies printed on stdout.
type Options struct {
	Level  string `doc:"log from debug, info, warn or error, defaults to warn on stderr and info in a file"`
	File   string `doc:"append logs to file, - for stderr"`
	Format string `doc:"format logs as text or json"         default:"text"`
}

// level parses option. An empty option keeps the terminal quiet during a session
// while a log file records loads and saves.
func level(option string, toFile bool) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		if toFile {
			return slog.LevelInfo, true
		}
		return slog.LevelWarn, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// New builds a logger from options. Invalid options are reset
// and reported through the resulting logger.
func New(options *Options) *slog.Logger {
	return newLogger(options, os.Stderr)
}

func newLogger(options *Options, stderr io.Writer) *slog.Logger {
	toFile := options.File != "" && options.File != "-"
	level, ok := level(options.Level, toFile)
	if !ok {
		options.Level = ""
		logger := newLogger(options, stderr)
		logger.Warn("could not parse logger level")
		return logger
	}
	opts := slog.HandlerOptions{Level: level}

	var output io.Writer
	switch options.File {
	case "", "-":
		output = stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		var err error
		output, err = os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.File = ""
			logger := newLogger(options, stderr)
			logger.Warn("could not open logger file", "err", err)
			return logger
		}
	}

	switch strings.ToLower(options.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts))
	case "text":
		return slog.New(slog.NewTextHandler(output, &opts))
	default:
		options.Format = "text"
		logger := newLogger(options, stderr)
		logger.Warn("could not parse logger format")
		return logger
	}
}
