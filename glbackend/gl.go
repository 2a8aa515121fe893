// Package glbackend implements graphics.GL on a desktop OpenGL 4.1 core
// context, keeping WebGL1 semantics for the callers.
package glbackend

import (
	"fmt"
	"log"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glslcanvas/graphics"
	"github.com/richinsley/glslcanvas/translator"
)

var glInitOnce sync.Once

// TranslateFunc converts WebGL source for a stage into desktop GLSL.
type TranslateFunc func(source, stage string) (*translator.Result, error)

type shaderState struct {
	kind     graphics.ShaderKind
	result   *translator.Result
	xlateErr error
}

// GL is a graphics.GL backed by go-gl. The context must be current on the
// calling thread.
type GL struct {
	vao       uint32
	translate TranslateFunc
	shaders   map[uint32]*shaderState
	// names maps program -> WebGL name -> name in the compiled code.
	names map[uint32]map[string]string
}

// New loads the OpenGL entry points for the current context and binds the
// vertex array object every attribute is recorded into. A nil translate
// compiles sources unchanged.
func New(translate TranslateFunc) (*GL, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	g := &GL{
		translate: translate,
		shaders:   make(map[uint32]*shaderState),
		names:     make(map[uint32]map[string]string),
	}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	return g, nil
}

// Destroy releases the vertex array object.
func (g *GL) Destroy() {
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &g.vao)
}

func (g *GL) CreateShader(kind graphics.ShaderKind) uint32 {
	var glKind uint32 = gl.VERTEX_SHADER
	if kind == graphics.FragmentShader {
		glKind = gl.FRAGMENT_SHADER
	}
	shader := gl.CreateShader(glKind)
	if shader != 0 {
		g.shaders[shader] = &shaderState{kind: kind}
	}
	return shader
}

func (g *GL) ShaderSource(shader uint32, source string) {
	source, ok := g.prepareSource(shader, source)
	if !ok {
		return
	}
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

// prepareSource returns the code to hand to the driver. It reports false when
// translation failed; the error is kept for ShaderInfoLog.
func (g *GL) prepareSource(shader uint32, source string) (string, bool) {
	st := g.shaders[shader]
	if st == nil || g.translate == nil {
		return source, true
	}
	st.result, st.xlateErr = g.translate(source, st.kind.String())
	if st.xlateErr != nil {
		return "", false
	}
	return st.result.Code, true
}

func (g *GL) CompileShader(shader uint32) {
	if st := g.shaders[shader]; st != nil && st.xlateErr != nil {
		return
	}
	gl.CompileShader(shader)
}

func (g *GL) ShaderCompiled(shader uint32) bool {
	if st := g.shaders[shader]; st != nil && st.xlateErr != nil {
		return false
	}
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (g *GL) ShaderInfoLog(shader uint32) string {
	if st := g.shaders[shader]; st != nil && st.xlateErr != nil {
		return st.xlateErr.Error()
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (g *GL) DeleteShader(shader uint32) {
	delete(g.shaders, shader)
	gl.DeleteShader(shader)
}

func (g *GL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (g *GL) AttachShader(program, shader uint32) {
	g.recordNames(program, shader)
	gl.AttachShader(program, shader)
}

// recordNames makes the translated names of shader resolvable through program.
func (g *GL) recordNames(program, shader uint32) {
	st := g.shaders[shader]
	if st == nil || st.result == nil {
		return
	}
	names := g.names[program]
	if names == nil {
		names = make(map[string]string)
		g.names[program] = names
	}
	for k, v := range st.result.Names {
		names[k] = v
	}
}

func (g *GL) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (g *GL) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (g *GL) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (g *GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (g *GL) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (g *GL) BindArrayBuffer(buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
}

func (g *GL) StaticBufferData(data []float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (g *GL) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(g.mappedName(program, name)+"\x00"))
}

func (g *GL) VertexAttribPointer(index uint32, size int32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, gl.FLOAT, normalized, stride, gl.PtrOffset(offset))
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (g *GL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(g.mappedName(program, name)+"\x00"))
}

func (g *GL) Uniform1f(location int32, v0 float32) {
	gl.Uniform1f(location, v0)
}

func (g *GL) Uniform2f(location int32, v0, v1 float32) {
	gl.Uniform2f(location, v0, v1)
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	gl.ClearColor(r, gr, b, a)
}

func (g *GL) ClearColorBuffer() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (g *GL) DrawTriangleStrip(first, count int32) {
	gl.DrawArrays(gl.TRIANGLE_STRIP, first, count)
}

func (g *GL) mappedName(program uint32, name string) string {
	if mapped, ok := g.names[program][name]; ok && mapped != "" {
		return mapped
	}
	return name
}
