package renderer

import (
	"strings"

	"github.com/richinsley/glslcanvas/graphics"
	"github.com/richinsley/glslcanvas/shader"
)

const (
	locMouse int32 = iota + 1
	locResolution
	locTime
)

// fakeGL records the calls made against it. Sources containing "syntax
// error" fail to compile.
type fakeGL struct {
	calls int

	failCreateShader  bool
	failCreateProgram bool
	failCreateBuffer  bool
	failLink          bool
	missingAttribute  bool

	nextHandle uint32
	sources    map[uint32]string
	kinds      map[uint32]graphics.ShaderKind
	deleted    []uint32
	programs   []uint32
	attached   map[uint32][]uint32
	current    uint32
	bound      uint32
	uploaded   []float32
	enabled    []uint32
	pointers   int

	uniform1f map[int32]float32
	uniform2f map[int32][2]float32

	clearColor [4]float32
	clears     int
	draws      int
	drawCount  int32
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		sources:   make(map[uint32]string),
		kinds:     make(map[uint32]graphics.ShaderKind),
		attached:  make(map[uint32][]uint32),
		uniform1f: make(map[int32]float32),
		uniform2f: make(map[int32][2]float32),
	}
}

func (f *fakeGL) handle() uint32 {
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeGL) CreateShader(kind graphics.ShaderKind) uint32 {
	f.calls++
	if f.failCreateShader {
		return 0
	}
	h := f.handle()
	f.kinds[h] = kind
	return h
}

func (f *fakeGL) ShaderSource(sh uint32, source string) {
	f.calls++
	f.sources[sh] = source
}

func (f *fakeGL) CompileShader(sh uint32) { f.calls++ }

func (f *fakeGL) ShaderCompiled(sh uint32) bool {
	f.calls++
	return !strings.Contains(f.sources[sh], "syntax error")
}

func (f *fakeGL) ShaderInfoLog(sh uint32) string {
	f.calls++
	return "ERROR: 0:1: 'syntax error' : unexpected token"
}

func (f *fakeGL) DeleteShader(sh uint32) {
	f.calls++
	f.deleted = append(f.deleted, sh)
}

func (f *fakeGL) CreateProgram() uint32 {
	f.calls++
	if f.failCreateProgram {
		return 0
	}
	p := f.handle()
	f.programs = append(f.programs, p)
	return p
}

func (f *fakeGL) AttachShader(program, sh uint32) {
	f.calls++
	f.attached[program] = append(f.attached[program], sh)
}

func (f *fakeGL) LinkProgram(program uint32) { f.calls++ }

func (f *fakeGL) ProgramLinked(program uint32) bool {
	f.calls++
	return !f.failLink
}

func (f *fakeGL) ProgramInfoLog(program uint32) string {
	f.calls++
	return "error: varying v_uv not written by vertex shader"
}

func (f *fakeGL) UseProgram(program uint32) {
	f.calls++
	f.current = program
}

func (f *fakeGL) CreateBuffer() uint32 {
	f.calls++
	if f.failCreateBuffer {
		return 0
	}
	return f.handle()
}

func (f *fakeGL) BindArrayBuffer(buffer uint32) {
	f.calls++
	f.bound = buffer
}

func (f *fakeGL) StaticBufferData(data []float32) {
	f.calls++
	f.uploaded = append([]float32(nil), data...)
}

func (f *fakeGL) AttribLocation(program uint32, name string) int32 {
	f.calls++
	if f.missingAttribute || name != shader.PositionAttribute {
		return -1
	}
	return 0
}

func (f *fakeGL) VertexAttribPointer(index uint32, size int32, normalized bool, stride int32, offset int) {
	f.calls++
	if size == 2 && !normalized && stride == 0 && offset == 0 {
		f.pointers++
	}
}

func (f *fakeGL) EnableVertexAttribArray(index uint32) {
	f.calls++
	f.enabled = append(f.enabled, index)
}

func (f *fakeGL) UniformLocation(program uint32, name string) int32 {
	f.calls++
	switch name {
	case shader.MouseUniform:
		return locMouse
	case shader.ResolutionUniform:
		return locResolution
	case shader.TimeUniform:
		return locTime
	}
	return -1
}

func (f *fakeGL) Uniform1f(location int32, v0 float32) {
	f.calls++
	f.uniform1f[location] = v0
}

func (f *fakeGL) Uniform2f(location int32, v0, v1 float32) {
	f.calls++
	f.uniform2f[location] = [2]float32{v0, v1}
}

func (f *fakeGL) ClearColor(r, g, b, a float32) {
	f.calls++
	f.clearColor = [4]float32{r, g, b, a}
}

func (f *fakeGL) ClearColorBuffer() {
	f.calls++
	f.clears++
}

func (f *fakeGL) DrawTriangleStrip(first, count int32) {
	f.calls++
	f.draws++
	f.drawCount = count
}

// fakeContext is a window whose events are fired by the test.
type fakeContext struct {
	gl     *fakeGL
	glErr  error
	width  int
	height int
	canvas graphics.Rect
	// bottomAnchored derives the canvas from its startup size and the current
	// window height, the way the GLFW window places its viewport.
	bottomAnchored bool
	canvasWidth    int
	canvasHeight   int
	madeCurrent    int

	// closeAfter makes ShouldClose report true once that many frames ended.
	closeAfter int
	endFrames  int
	onEndFrame func()

	resize func(width, height int)
	move   func(x, y float64)
}

func newFakeContext(width, height int) *fakeContext {
	return &fakeContext{
		gl:           newFakeGL(),
		width:        width,
		height:       height,
		canvas:       graphics.Rect{Right: float64(width), Bottom: float64(height)},
		closeAfter:   -1,
		canvasWidth:  width,
		canvasHeight: height,
	}
}

func (c *fakeContext) MakeCurrent() { c.madeCurrent++ }
func (c *fakeContext) Shutdown() {}

func (c *fakeContext) ShouldClose() bool {
	return c.closeAfter >= 0 && c.endFrames >= c.closeAfter
}

func (c *fakeContext) EndFrame() {
	c.endFrames++
	if c.onEndFrame != nil {
		c.onEndFrame()
	}
}

func (c *fakeContext) GL() (graphics.GL, error) {
	if c.glErr != nil {
		return nil, c.glErr
	}
	return c.gl, nil
}

func (c *fakeContext) ViewportSize() (int, int) { return c.width, c.height }

func (c *fakeContext) CanvasBounds() graphics.Rect {
	if c.bottomAnchored {
		return graphics.BottomAnchoredCanvas(c.canvasWidth, c.canvasHeight, c.height)
	}
	return c.canvas
}

func (c *fakeContext) OnResize(f func(width, height int)) { c.resize = f }
func (c *fakeContext) OnPointerMove(f func(x, y float64)) { c.move = f }

// fireResize changes the viewport and delivers the event.
func (c *fakeContext) fireResize(width, height int) {
	c.width, c.height = width, height
	if c.resize != nil {
		c.resize(width, height)
	}
}

func (c *fakeContext) fireMove(x, y float64) {
	if c.move != nil {
		c.move(x, y)
	}
}
