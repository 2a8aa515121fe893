package renderer

import (
	"math"
	"time"

	"github.com/richinsley/glslcanvas/graphics"
	"github.com/richinsley/glslcanvas/shader"
)

type uniformLocations struct {
	mouse      int32
	resolution int32
	time       int32
}

func resolveUniforms(g graphics.GL, program uint32) uniformLocations {
	return uniformLocations{
		mouse:      g.UniformLocation(program, shader.MouseUniform),
		resolution: g.UniformLocation(program, shader.ResolutionUniform),
		time:       g.UniformLocation(program, shader.TimeUniform),
	}
}

// ResolutionUniform returns the u_resolution value for a viewport. The pair is
// (height, width); fragment shaders written for this canvas rely on it.
func ResolutionUniform(width, height int) [2]float32 {
	return [2]float32{float32(height), float32(width)}
}

// MouseUniform returns the u_mouse_loc value for a pointer at client
// coordinates (x, y): canvas-relative with a bottom-left origin.
func MouseUniform(canvas graphics.Rect, x, y float64) [2]float32 {
	return [2]float32{float32(x - canvas.Left), float32(canvas.Bottom - y)}
}

// TimeUniform returns the u_time value for t: the millisecond of the second
// scaled to [0, π). It wraps every wall-clock second.
func TimeUniform(t time.Time) float32 {
	ms := t.UTC().Nanosecond() / int(time.Millisecond)
	return float32(float64(ms) / 1000 * math.Pi)
}
