package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/richinsley/glslcanvas/graphics"
	"github.com/stretchr/testify/require"
)

func TestResolutionUniform(t *testing.T) {
	require.Equal(t, [2]float32{600, 800}, ResolutionUniform(800, 600))
	require.Equal(t, [2]float32{1, 1}, ResolutionUniform(1, 1))
	require.Equal(t, [2]float32{1080, 1920}, ResolutionUniform(1920, 1080))
}

func TestMouseUniform(t *testing.T) {
	canvas := graphics.Rect{Left: 10, Top: 20, Right: 810, Bottom: 620}

	m := MouseUniform(canvas, 10, 620)
	require.Equal(t, [2]float32{0, 0}, m)

	m = MouseUniform(canvas, 810, 20)
	require.Equal(t, [2]float32{800, 600}, m)

	for y := canvas.Top; y <= canvas.Bottom; y += 37 {
		m = MouseUniform(canvas, 400, y)
		require.GreaterOrEqual(t, m[1], float32(0))
		require.False(t, math.IsInf(float64(m[1]), 0) || math.IsNaN(float64(m[1])))
	}
}

func TestTimeUniform(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.Zero(t, TimeUniform(base))
	require.InDelta(t, math.Pi/4, TimeUniform(base.Add(250*time.Millisecond)), 1e-6)
	require.InDelta(t, 0.999*math.Pi, TimeUniform(base.Add(999*time.Millisecond+999*time.Microsecond)), 1e-6)
	// wraps at the second boundary
	require.Zero(t, TimeUniform(base.Add(time.Second)))

	for ms := 0; ms < 1000; ms++ {
		v := TimeUniform(base.Add(time.Duration(ms) * time.Millisecond))
		require.GreaterOrEqual(t, v, float32(0))
		require.Less(t, v, float32(math.Pi))
	}
}

func TestTimeUniformIgnoresZone(t *testing.T) {
	tz := time.FixedZone("UTC+5:30", 5*3600+1800)
	at := time.Date(2024, 3, 1, 12, 0, 0, 123*int(time.Millisecond), tz)
	require.Equal(t, TimeUniform(at.UTC()), TimeUniform(at))
}
