package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	t.Run("rejects unknown level", func(t *testing.T) {
		err := Init(Config{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("writes rotated file when enabled", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Init(Config{Level: "info", Format: "json", FileEnabled: true, FilePath: dir, ServiceName: "test"}))

		log.Info().Msg("hello")

		data, err := os.ReadFile(filepath.Join(dir, "dashboard.log"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"message":"hello"`)
		assert.Contains(t, string(data), `"service":"test"`)
	})
}
