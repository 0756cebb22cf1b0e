package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCliLogger creates a logger for the CLI: info and warnings to stdout,
// errors to stderr, debug messages only in the verbose mode.
func NewCliLogger(stdout io.Writer, stderr io.Writer, verbose bool) Logger {
	var cores []zapcore.Core
	cores = append(cores, stdoutCore(stdout, verbose))
	cores = append(cores, stderrCore(stderr))
	return loggerFromZap(zap.New(zapcore.NewTee(cores...)))
}

// NewNopLogger discards all messages.
func NewNopLogger() Logger {
	return loggerFromZap(zap.NewNop())
}

func stdoutCore(stdout io.Writer, verbose bool) zapcore.Core {
	minLevel := InfoLevel
	if verbose {
		minLevel = DebugLevel
	}
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l < ErrorLevel
	})
	return zapcore.NewCore(consoleEncoder(), zapcore.AddSync(stdout), levels)
}

func stderrCore(stderr io.Writer) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= ErrorLevel
	})
	return zapcore.NewCore(consoleEncoder(), zapcore.AddSync(stderr), levels)
}

func consoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: "  ",
	})
}
