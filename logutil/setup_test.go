package logutil_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/andyle182810/boxsdk/logutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

//nolint:paralleltest // mutates the global logger
func TestSetupWriter(t *testing.T) {
	original := log.Logger
	originalLevel := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(originalLevel)
	})

	t.Run("json output", func(t *testing.T) {
		var buf bytes.Buffer

		logutil.SetupWriter(&buf, "info", false)
		log.Debug().Msg("hidden")
		log.Info().Str("user_id", "42").Msg("visible")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "visible", entry["message"])
		require.Equal(t, "42", entry["user_id"])
		require.Contains(t, entry, "time")
	})

	t.Run("pretty output", func(t *testing.T) {
		var buf bytes.Buffer

		logutil.SetupWriter(&buf, "debug", true)
		log.Debug().Msg("console line")

		require.Contains(t, buf.String(), "console line")
		require.False(t, json.Valid(buf.Bytes()))
	})
}
