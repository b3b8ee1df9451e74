package stats

import (
	"bufio"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestWelfordMatchesTwoPass(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const bins, sets = 7, 50
	obs := make([][]float64, sets)
	for i := range obs {
		obs[i] = make([]float64, bins)
		for j := range obs[i] {
			//a large offset makes a naive sum-of-squares lose precision,
			//Welford should not care
			obs[i][j] = 1e6 + rng.NormFloat64()
		}
	}
	acc := New()
	for _, x := range obs {
		require.NoError(t, acc.Update("temp", x))
	}
	require.Equal(t, sets, acc.Count("temp"))
	mean := acc.Mean("temp")
	variance := acc.Variance("temp")
	for j := 0; j < bins; j++ {
		column := make([]float64, sets)
		for i := range obs {
			column[i] = obs[i][j]
		}
		require.InDelta(t, stat.Mean(column, nil), mean[j], 1e-9)
		require.InDelta(t, stat.Variance(column, nil), variance[j], 1e-9)
	}
}

func TestMeanOrderIndependence(t *testing.T) {
	obs := [][]float64{{1, 2}, {3, 5}, {-2, 0.5}, {10, 4}}
	forward := New()
	backward := New()
	for _, x := range obs {
		require.NoError(t, forward.Update("k", x))
	}
	for i := len(obs) - 1; i >= 0; i-- {
		require.NoError(t, backward.Update("k", obs[i]))
	}
	fm, bm := forward.Mean("k"), backward.Mean("k")
	for i := range fm {
		require.InDelta(t, fm[i], bm[i], 1e-12)
	}
}

func TestVarianceInfBelowTwo(t *testing.T) {
	acc := New()
	require.NoError(t, acc.Update("k", []float64{1, 2, 3}))
	for _, v := range acc.Variance("k") {
		require.True(t, math.IsInf(v, 1))
	}
	require.NoError(t, acc.Update("k", []float64{2, 3, 4}))
	for _, v := range acc.Variance("k") {
		require.False(t, math.IsInf(v, 1))
	}
}

func TestLengthMismatch(t *testing.T) {
	acc := New()
	require.NoError(t, acc.Update("k", []float64{1, 2}))
	err := acc.Update("k", []float64{5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "length mismatch")
	//the failed update must not have touched the state
	require.Equal(t, 1, acc.Count("k"))
	require.Equal(t, []float64{1, 2}, acc.Mean("k"))
}

func TestKeysInsertionOrder(t *testing.T) {
	acc := New()
	for _, k := range []string{"coord1", "ncount", "v_kintemp"} {
		require.NoError(t, acc.Update(k, []float64{1}))
	}
	require.Equal(t, []string{"coord1", "ncount", "v_kintemp"}, acc.Keys())
}

func TestMeanIsACopy(t *testing.T) {
	acc := New()
	require.NoError(t, acc.Update("k", []float64{1}))
	m := acc.Mean("k")
	m[0] = 99
	require.Equal(t, []float64{1}, acc.Mean("k"))
}

func TestUnknownKey(t *testing.T) {
	acc := New()
	require.Nil(t, acc.Mean("nope"))
	require.Nil(t, acc.Variance("nope"))
	require.Equal(t, 0, acc.Count("nope"))
}

func TestWriteTable(t *testing.T) {
	acc := New()
	require.NoError(t, acc.Update("a", []float64{1, 3}))
	require.NoError(t, acc.Update("a", []float64{3, 5}))
	require.NoError(t, acc.Update("b", []float64{10, 20}))
	require.NoError(t, acc.Update("b", []float64{20, 40}))
	var sb strings.Builder
	require.NoError(t, acc.WriteTable(&sb, []string{"a", "b"}))
	sc := bufio.NewScanner(strings.NewReader(sb.String()))
	require.True(t, sc.Scan())
	require.Equal(t, "# a b", sc.Text())
	require.True(t, sc.Scan())
	row := strings.Fields(sc.Text())
	require.Len(t, row, 2)
	require.Contains(t, row[0], "e+00") //np.savetxt-style scientific notation
}

func TestWriteTableWithError(t *testing.T) {
	acc := New()
	require.NoError(t, acc.Update("a", []float64{1}))
	require.NoError(t, acc.Update("a", []float64{3}))
	var sb strings.Builder
	require.NoError(t, acc.WriteTableWithError(&sb, []string{"a"}))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Equal(t, "# a std_a", lines[0])
	require.Len(t, lines, 2)
}

func TestWriteTableUnknownKey(t *testing.T) {
	acc := New()
	require.NoError(t, acc.Update("a", []float64{1}))
	var sb strings.Builder
	require.Error(t, acc.WriteTable(&sb, []string{"a", "nope"}))
}

func TestWriteTableMismatchedBins(t *testing.T) {
	acc := New()
	require.NoError(t, acc.Update("a", []float64{1, 2}))
	require.NoError(t, acc.Update("b", []float64{1}))
	var sb strings.Builder
	require.Error(t, acc.WriteTable(&sb, []string{"a", "b"}))
}
