package renderer

import (
	"fmt"

	"github.com/richinsley/glslcanvas/graphics"
	"github.com/richinsley/glslcanvas/shader"
)

// quadVertices is a triangle strip covering clip space.
var quadVertices = []float32{
	-1.0, -1.0, // bottom left
	1.0, -1.0, // bottom right
	-1.0, 1.0, // top left
	1.0, 1.0, // top right
}

const (
	quadComponents  = 2
	quadVertexCount = int32(4)
)

// setupGeometry uploads the quad and binds it to the position attribute of
// the current program.
func setupGeometry(g graphics.GL, program uint32) (uint32, error) {
	buffer := g.CreateBuffer()
	if buffer == 0 {
		return 0, ErrBufferCreate
	}
	g.BindArrayBuffer(buffer)
	g.StaticBufferData(quadVertices)

	loc := g.AttribLocation(program, shader.PositionAttribute)
	if loc < 0 {
		return 0, fmt.Errorf("%w: %s", ErrAttribute, shader.PositionAttribute)
	}
	g.VertexAttribPointer(uint32(loc), quadComponents, false, 0, 0)
	g.EnableVertexAttribArray(uint32(loc))
	return buffer, nil
}
