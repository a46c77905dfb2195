package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, parseLevel("development", ""))
	require.Equal(t, zerolog.InfoLevel, parseLevel("production", ""))
	require.Equal(t, zerolog.WarnLevel, parseLevel("development", "WARNING"))
	require.Equal(t, zerolog.ErrorLevel, parseLevel("production", "error"))
	require.Equal(t, zerolog.TraceLevel, parseLevel("production", "trace"))
	require.Equal(t, zerolog.InfoLevel, parseLevel("production", "verbose"))
}

func TestNewLogger_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("production", &buf)

	logger.Info().Str("username", "alice").Msg("fetched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "instagram-profile-compare", entry["service"])
	require.Equal(t, "alice", entry["username"])
	require.Equal(t, "fetched", entry["message"])
}
