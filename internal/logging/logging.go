// Package logging configures the default slog logger for the commands.
package logging

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelFlag is a flag.Value selecting the minimum log level.
type LevelFlag struct {
	Value slog.Level
}

func (l LevelFlag) String() string {
	return l.Value.String()
}

func (l *LevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}
	l.Value = v
	return nil
}

// Setup applies the level and, when filename is set, sends all log output
// to a rotating file instead of stderr.
func Setup(level slog.Level, filename string) {
	slog.SetLogLoggerLevel(level)
	if filename == "" {
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	})
}
