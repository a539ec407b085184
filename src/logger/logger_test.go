package logger

import (
	"os"
	"path/filepath"
	"testing"

	"dinner_planner/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_InvalidLevel(t *testing.T) {
	err := InitLogger(model.LogConfig{Level: "loud", Format: "json", Output: "stdout"})
	assert.Error(t, err)
}

func TestInitLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	err := InitLogger(model.LogConfig{Level: "debug", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)

	Info().Str("k", "v").Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"service":"dinner_planner"`)
}

func TestComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "component.log")
	require.NoError(t, InitLogger(model.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path}))

	log := Component("planner")
	log.Info().Msg("tagged")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"planner"`)
}
