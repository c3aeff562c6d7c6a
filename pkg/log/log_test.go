package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCtxReturnsStoredLogger(t *testing.T) {
	var buf bytes.Buffer
	child := zerolog.New(&buf)
	ctx := WithLogger(context.Background(), child)

	Ctx(ctx).Info().Str(FieldRoomID, "room1").Msg("stored logger used")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "room1", entry[FieldRoomID])
	require.Equal(t, "stored logger used", entry["message"])
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	l := Ctx(context.Background())
	require.NotNil(t, l)

	// Level methods must chain directly off the returned logger.
	l.Debug().Str(FieldEvent, "fallback").Msg("")
	L().Debug().Str(FieldEvent, "global").Msg("")
}

func TestNewHonoursLevel(t *testing.T) {
	logger := New(Config{Level: "warn"})
	require.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger = New(Config{Level: "nonsense"})
	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
