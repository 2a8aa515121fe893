package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glslcanvas/glbackend"
	"github.com/richinsley/glslcanvas/graphics"
	options "github.com/richinsley/glslcanvas/options"
	"github.com/richinsley/glslcanvas/translator"
)

// Context is a GLFW window acting as the canvas.
type Context struct {
	window *glfw.Window
	gl     *glbackend.GL
	glErr  error
	// canvas size is fixed at creation; the backing store is never resized.
	canvasWidth  int
	canvasHeight int

	resizeHandler func(width, height int)
	moveHandler   func(x, y float64)
}

var _ graphics.Context = (*Context)(nil)

// New creates the window, sized to the primary monitor's video mode unless
// the options give an explicit size, and makes its context current.
func New(opts *options.ShaderOptions) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	width, height := opts.Window.Width, opts.Window.Height
	var monitor *glfw.Monitor
	if primary := glfw.GetPrimaryMonitor(); primary != nil {
		if mode := primary.GetVideoMode(); mode != nil {
			if width <= 0 {
				width = mode.Width
			}
			if height <= 0 {
				height = mode.Height
			}
		}
		if opts.Window.Fullscreen {
			monitor = primary
		}
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	win, err := glfw.CreateWindow(width, height, opts.Window.Title, monitor, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		canvasWidth:  width,
		canvasHeight: height,
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetSizeCallback(c.glfwSizeCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)

	var translate glbackend.TranslateFunc
	if opts.Shader.Translate {
		translate = translator.ToDesktop
	}
	c.gl, c.glErr = glbackend.New(translate)

	log.Printf("Canvas created: %dx%d", width, height)
	return c, nil
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

func (c *Context) glfwSizeCallback(w *glfw.Window, width, height int) {
	if c.resizeHandler != nil {
		c.resizeHandler(width, height)
	}
}

func (c *Context) glfwCursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if c.moveHandler != nil {
		c.moveHandler(xpos, ypos)
	}
}

// GL returns the OpenGL backend, or the error that prevented loading it.
func (c *Context) GL() (graphics.GL, error) {
	if c.glErr != nil {
		return nil, c.glErr
	}
	return c.gl, nil
}

func (c *Context) OnResize(f func(width, height int)) {
	c.resizeHandler = f
}

func (c *Context) OnPointerMove(f func(x, y float64)) {
	c.moveHandler = f
}

func (c *Context) ViewportSize() (int, int) {
	return c.window.GetSize()
}

// CanvasBounds follows the window height: the GL viewport keeps its startup
// size and GLFW anchors it to the bottom-left corner.
func (c *Context) CanvasBounds() graphics.Rect {
	_, height := c.window.GetSize()
	return graphics.BottomAnchoredCanvas(c.canvasWidth, c.canvasHeight, height)
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown releases the GL backend and destroys the window.
func (c *Context) Shutdown() {
	if c.gl != nil {
		c.gl.Destroy()
	}
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
