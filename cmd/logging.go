package cmd

import (
	"fmt"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/viper"
)

// makeLogger builds the logger for a run: a stderr handler (debug level
// when verbose is set, warnings only otherwise), fanned out to a file
// handler when log-file is configured. The returned cleanup closes the
// log file, if any.
func makeLogger() (*slog.Logger, func(), error) {
	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}
	cleanup := func() {}

	if path := viper.GetString("log-file"); path != "" {
		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("couldn't open log file: %w", err)
		}
		handlers = append(handlers, slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
		cleanup = func() { logFile.Close() }
	}

	return slog.New(slogmulti.Fanout(handlers...)), cleanup, nil
}
