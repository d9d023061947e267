package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "command and item_id",
			setupCtx: func() context.Context {
				ctx := context.Background()
				ctx = WithCommand(ctx, "todo rm")
				ctx = WithItemID(ctx, "lunch")
				return ctx
			},
			wantKeys: []string{"command", "item_id"},
		},
		{
			name: "only command",
			setupCtx: func() context.Context {
				return WithCommand(context.Background(), "timeline")
			},
			wantKeys:  []string{"command"},
			wantEmpty: []string{"item_id"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"command", "item_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := tt.setupCtx()

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(ctx).Msg("test")

			var logEntry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

			for _, key := range tt.wantKeys {
				assert.Contains(t, logEntry, key)
			}
			for _, key := range tt.wantEmpty {
				assert.NotContains(t, logEntry, key)
			}
		})
	}
}
