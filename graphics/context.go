package graphics

// Rect is a rectangle in window coordinates, origin at the top-left corner.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// BottomAnchoredCanvas returns the bounds of a canvas of fixed size whose
// viewport stays at the bottom-left of a window currently windowHeight tall.
func BottomAnchoredCanvas(canvasWidth, canvasHeight, windowHeight int) Rect {
	return Rect{
		Top:    float64(windowHeight - canvasHeight),
		Right:  float64(canvasWidth),
		Bottom: float64(windowHeight),
	}
}

// Context defines the interface for the window that hosts the canvas.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame and delivers pending input events. It is the
	// "next frame" primitive of the render loop.
	EndFrame()
	// GL returns the rendering API bound to this context, or an error when the
	// platform cannot provide one.
	GL() (GL, error)
	// ViewportSize returns the current window size in screen coordinates.
	ViewportSize() (int, int)
	// CanvasBounds returns the canvas rectangle inside the window as it is
	// now; it moves when the window is resized.
	CanvasBounds() Rect
	// OnResize registers the handler called after the window is resized.
	OnResize(func(width, height int))
	// OnPointerMove registers the handler called when the cursor moves over
	// the window, with client coordinates.
	OnPointerMove(func(x, y float64))
}
