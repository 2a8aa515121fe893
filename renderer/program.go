package renderer

import (
	"errors"
	"fmt"
	"log"

	"github.com/richinsley/glslcanvas/graphics"
)

var (
	ErrUnsupported   = errors.New("OpenGL not supported")
	ErrShaderCreate  = errors.New("unable to create shader")
	ErrCompile       = errors.New("shader compilation failed")
	ErrProgramCreate = errors.New("failed to create program")
	ErrLink          = errors.New("program linking failed")
	ErrBufferCreate  = errors.New("failed to create buffer")
	ErrAttribute     = errors.New("attribute not found")
)

// compileShader returns a compiled shader, or zero and an error. A failed
// shader object is deleted before returning.
func compileShader(g graphics.GL, kind graphics.ShaderKind, source string) (uint32, error) {
	shader := g.CreateShader(kind)
	if shader == 0 {
		log.Printf("Unable to create %s shader", kind)
		return 0, ErrShaderCreate
	}
	g.ShaderSource(shader, source)
	g.CompileShader(shader)

	if !g.ShaderCompiled(shader) {
		infoLog := g.ShaderInfoLog(shader)
		log.Printf("Error compiling %s shader: %s", kind, infoLog)
		g.DeleteShader(shader)
		return 0, fmt.Errorf("%s: %w: %s", kind, ErrCompile, infoLog)
	}
	return shader, nil
}

// newProgram compiles both stages, links them and makes the program current.
func newProgram(g graphics.GL, vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(g, graphics.VertexShader, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader compilation failed: %w", err)
	}
	fragmentShader, err := compileShader(g, graphics.FragmentShader, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment shader compilation failed: %w", err)
	}
	return linkProgram(g, vertexShader, fragmentShader)
}

func linkProgram(g graphics.GL, vertexShader, fragmentShader uint32) (uint32, error) {
	program := g.CreateProgram()
	if program == 0 {
		return 0, ErrProgramCreate
	}
	g.AttachShader(program, vertexShader)
	g.AttachShader(program, fragmentShader)
	g.LinkProgram(program)

	if !g.ProgramLinked(program) {
		infoLog := g.ProgramInfoLog(program)
		log.Printf("Error linking program: %s", infoLog)
		return 0, fmt.Errorf("%w: %s", ErrLink, infoLog)
	}
	g.UseProgram(program)
	return program, nil
}
