package lmpplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 14.0, cfg.Width)
	require.Equal(t, 10.0, cfg.Height)
	require.Equal(t, 2.0, cfg.LineWidth)
	require.True(t, cfg.DashedErr)
}

// A style file only overrides the fields it names.
func TestLoadOverlay(t *testing.T) {
	name := filepath.Join(t.TempDir(), "style.yml")
	require.NoError(t, os.WriteFile(name, []byte("width: 20\ndashed_err: false\n"), 0o644))
	cfg, err := Load(name)
	require.NoError(t, err)
	require.Equal(t, 20.0, cfg.Width)
	require.Equal(t, 10.0, cfg.Height) //untouched default
	require.False(t, cfg.DashedErr)
}

func TestLoadMissingKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadBadYAML(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(name, []byte("width: [not a number\n"), 0o644))
	_, err := Load(name)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.yml")
}
