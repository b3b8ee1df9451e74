package lmpplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andersle/lammps-tools/stats"
)

func TestProfiles(t *testing.T) {
	acc := stats.New()
	require.NoError(t, acc.Update("temp", []float64{1.0, 1.1, 0.9}))
	require.NoError(t, acc.Update("temp", []float64{1.2, 1.0, 1.0}))
	require.NoError(t, acc.Update("density", []float64{0.7, 0.8, 0.75}))
	require.NoError(t, acc.Update("density", []float64{0.71, 0.79, 0.77}))

	stem := filepath.Join(t.TempDir(), "averaged")
	files, err := Profiles(Default(), acc, []string{"temp", "density"}, stem)
	require.NoError(t, err)
	require.Equal(t, []string{stem + "-temp.png", stem + "-density.png"}, files)
	for _, f := range files {
		fi, err := os.Stat(f)
		require.NoError(t, err)
		require.Greater(t, fi.Size(), int64(0))
	}
}

// A single observation has an infinite standard deviation; the envelope is
// skipped and the plot still renders.
func TestProfilesInfiniteEnvelope(t *testing.T) {
	acc := stats.New()
	require.NoError(t, acc.Update("temp", []float64{1.0, 1.1}))
	require.True(t, math.IsInf(acc.Std("temp")[0], 1))
	stem := filepath.Join(t.TempDir(), "averaged")
	files, err := Profiles(Default(), acc, []string{"temp"}, stem)
	require.NoError(t, err)
	require.Len(t, files, 1)
}

func TestProfilesUnknownKey(t *testing.T) {
	acc := stats.New()
	_, err := Profiles(Default(), acc, []string{"nope"}, filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
}

func TestXY(t *testing.T) {
	name := filepath.Join(t.TempDir(), "xy.png")
	x := []float64{0, 1, 2, 3}
	y := []float64{1.0, 1.2, 1.1, 1.3}
	yerr := []float64{0.1, 0.1, 0.1, 0.1}
	require.NoError(t, XY(Default(), x, y, yerr, "step", "temp", name))
	fi, err := os.Stat(name)
	require.NoError(t, err)
	require.Greater(t, fi.Size(), int64(0))
}

func TestSeries(t *testing.T) {
	name := filepath.Join(t.TempDir(), "series.png")
	x := []float64{0, 100, 200}
	series := map[string][]float64{
		"temp":  {1.0, 1.1, 1.05},
		"press": {0.2, 0.25, 0.22},
	}
	require.NoError(t, Series(Default(), x, series, []string{"temp", "press"}, true, name))
	fi, err := os.Stat(name)
	require.NoError(t, err)
	require.Greater(t, fi.Size(), int64(0))
}

func TestSeriesUnknownKey(t *testing.T) {
	err := Series(Default(), nil, nil, []string{"nope"}, false, filepath.Join(t.TempDir(), "x.png"))
	require.Error(t, err)
}
