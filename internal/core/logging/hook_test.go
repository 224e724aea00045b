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
			name: "document and operation",
			setupCtx: func() context.Context {
				ctx := WithDocument(context.Background(), "a.json")
				return WithOperation(ctx, "replace")
			},
			wantKeys: []string{"doc", "op"},
		},
		{
			name: "only document",
			setupCtx: func() context.Context {
				return WithDocument(context.Background(), "a.json")
			},
			wantKeys:  []string{"doc"},
			wantEmpty: []string{"op"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"doc", "op"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for _, key := range tt.wantKeys {
				assert.Contains(t, entry, key)
			}
			for _, key := range tt.wantEmpty {
				assert.NotContains(t, entry, key)
			}
		})
	}
}
