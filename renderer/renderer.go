package renderer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/richinsley/glslcanvas/assets"
	"github.com/richinsley/glslcanvas/graphics"
)

// State is the render loop state.
type State int

const (
	StateIdle State = iota
	StateRendering
)

func (s State) String() string {
	if s == StateRendering {
		return "rendering"
	}
	return "idle"
}

// Session owns the GL objects and the inputs fed to the fragment shader. It
// lives as long as the canvas does.
type Session struct {
	surface  graphics.Context
	gl       graphics.GL
	program  uint32
	buffer   uint32
	uniforms uniformLocations
	// screen resolution, updated on resize
	width  int
	height int
	now    func() time.Time
	state  State
	frames uint64
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock the time uniform is computed from.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Setup is the synchronous phase of startup: it builds the program, uploads
// the quad, resolves the uniforms and wires the input handlers. Any error is
// fatal for the session.
func Setup(surface graphics.Context, res *assets.Resources, opts ...Option) (*Session, error) {
	surface.MakeCurrent()
	g, err := surface.GL()
	if err != nil {
		log.Printf("OpenGL is not supported: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	s := &Session{
		surface: surface,
		gl:      g,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.program, err = newProgram(g, res.VertexSource, res.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	s.buffer, err = setupGeometry(g, s.program)
	if err != nil {
		return nil, fmt.Errorf("failed to set up geometry: %w", err)
	}
	s.uniforms = resolveUniforms(g, s.program)

	s.width, s.height = surface.ViewportSize()
	s.pushResolution()

	surface.OnResize(s.handleResize)
	surface.OnPointerMove(s.handlePointerMove)

	log.Printf("Shader program ready (%s)", res.FragmentRef)
	return s, nil
}

func (s *Session) handleResize(width, height int) {
	s.width, s.height = width, height
	s.pushResolution()
}

func (s *Session) handlePointerMove(x, y float64) {
	m := MouseUniform(s.surface.CanvasBounds(), x, y)
	s.gl.Uniform2f(s.uniforms.mouse, m[0], m[1])
}

func (s *Session) pushResolution() {
	r := ResolutionUniform(s.width, s.height)
	s.gl.Uniform2f(s.uniforms.resolution, r[0], r[1])
}

// Frame renders one tick: time uniform, clear, draw.
func (s *Session) Frame() {
	s.gl.Uniform1f(s.uniforms.time, TimeUniform(s.now()))
	s.gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	s.gl.ClearColorBuffer()
	s.gl.DrawTriangleStrip(0, quadVertexCount)
	s.frames++
}

// Run renders a frame per display refresh until the window is closed or ctx
// is cancelled. It returns ctx.Err() on cancellation and nil on close.
func (s *Session) Run(ctx context.Context) error {
	s.state = StateRendering
	for {
		select {
		case <-ctx.Done():
			log.Printf("Render loop cancelled after %d frames", s.frames)
			return ctx.Err()
		default:
		}
		if s.surface.ShouldClose() {
			log.Printf("Render loop finished after %d frames", s.frames)
			return nil
		}
		s.Frame()
		s.surface.EndFrame()
	}
}

// State reports whether the loop has started.
func (s *Session) State() State {
	return s.state
}

// Frames returns the number of frames drawn.
func (s *Session) Frames() uint64 {
	return s.frames
}

// Resolution returns the current screen resolution state.
func (s *Session) Resolution() (int, int) {
	return s.width, s.height
}
