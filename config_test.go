package graphtec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, [2]float64{1.0, 4.5}, cfg.Offset)
	require.Equal(t, [2]float64{0, 0}, cfg.Border)
	require.Equal(t, [4]float64{1, 0, 0, 1}, cfg.Matrix)
	require.Equal(t, []float64{2, 2}, cfg.Speeds)
	require.Equal(t, []float64{8, 30}, cfg.Forces)
	require.False(t, cfg.Merge)
	require.Equal(t, [2]float64{0.014, 0.009}, cfg.MergeThreshold)
	require.Equal(t, 0, cfg.CutMode)
	require.Equal(t, 32, cfg.Segments)
	require.Equal(t, 8192, cfg.ChunkSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("G2G_OFFSET", "2.0, 3.0")
	t.Setenv("G2G_SPEED", "1,2,3")
	t.Setenv("G2G_FORCE", "10,20,30")
	t.Setenv("G2G_CUT_MODE", "1")
	t.Setenv("G2G_MERGE", "true")

	cfg := Load()
	require.Equal(t, [2]float64{2, 3}, cfg.Offset)
	require.Equal(t, []float64{1, 2, 3}, cfg.Speeds)
	require.Equal(t, []float64{10, 20, 30}, cfg.Forces)
	require.Equal(t, 1, cfg.CutMode)
	require.True(t, cfg.Merge)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("G2G_SPEED", "fast,slow")
	t.Setenv("G2G_SEGMENTS", "many")

	cfg := Load()
	require.Equal(t, []float64{2, 2}, cfg.Speeds, "некорректное значение заменяется умолчанием")
	require.Equal(t, 32, cfg.Segments)
}

func TestFloats(t *testing.T) {
	vals, err := Floats(" 1.5, -2 ,3 ")
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, -2, 3}, vals)

	_, err = Floats("1,,2")
	require.Error(t, err)

	_, err = Floats("abc")
	require.Error(t, err)
}
