package shader

// VertexSource passes the quad corners through as clip-space positions.
const VertexSource = `
attribute vec4 a_Position;
void main() {
    gl_Position = a_Position;
}
`

// Names of the variables the fragment shader is fed through.
const (
	PositionAttribute = "a_Position"
	MouseUniform      = "u_mouse_loc"
	ResolutionUniform = "u_resolution"
	TimeUniform       = "u_time"
)
