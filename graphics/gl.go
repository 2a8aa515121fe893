package graphics

// ShaderKind selects the pipeline stage a shader object is created for.
type ShaderKind int

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	}
	return "unknown"
}

// GL is the WebGL1-style subset of the rendering API used by the renderer.
// Object handles are non-zero; a zero handle means allocation failed.
// Locations are -1 when the name is not active in the program.
type GL interface {
	CreateShader(kind ShaderKind) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)

	CreateBuffer() uint32
	BindArrayBuffer(buffer uint32)
	// StaticBufferData uploads data to the bound array buffer with a static
	// usage hint.
	StaticBufferData(data []float32)
	AttribLocation(program uint32, name string) int32
	// VertexAttribPointer describes a float attribute read from the bound
	// array buffer.
	VertexAttribPointer(index uint32, size int32, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)

	ClearColor(r, g, b, a float32)
	// ClearColorBuffer clears the color buffer only.
	ClearColorBuffer()
	DrawTriangleStrip(first, count int32)
}
