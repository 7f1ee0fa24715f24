package app

import (
	"fmt"
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger both binaries write to stdout. An empty level means info.
func NewLogger(levelName string) (*slog.Logger, error) {
	level := slog.LevelInfo
	if levelName != "" {
		if err := level.UnmarshalText([]byte(levelName)); err != nil {
			return nil, fmt.Errorf("LOG_LEVEL not recognised [%s]: %w", levelName, err)
		}
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})), nil
}
