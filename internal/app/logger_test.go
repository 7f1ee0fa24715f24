package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	cases := []struct {
		name      string
		level     string
		wantLevel slog.Level
		wantErr   bool
	}{
		{name: "empty_defaults_to_info", level: "", wantLevel: slog.LevelInfo},
		{name: "debug", level: "DEBUG", wantLevel: slog.LevelDebug},
		{name: "lowercase_warn", level: "warn", wantLevel: slog.LevelWarn},
		{name: "unknown", level: "chatty", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := NewLogger(tc.level)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "chatty")
				return
			}
			require.NoError(t, err)

			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tc.wantLevel))
			assert.False(t, logger.Enabled(ctx, tc.wantLevel-1))
		})
	}
}
