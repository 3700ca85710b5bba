package gallery

const (
	// wheelDolly converts wheel delta units into world units along the view direction.
	wheelDolly = 0.02
	// wheelNotchDelta is the delta one wheel notch is worth, in pixel units.
	wheelNotchDelta = 100
)

// Resize updates the camera aspect, the orbit viewport and the renderer size.
// A non-positive width or height is ignored.
//
// Parameters:
//   - width: logical width
//   - height: logical height
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.camera.SetAspect(float32(width) / float32(height))
	a.controls.SetViewportHeight(float32(height))
	a.renderer.SetSize(width, height)
}

// SetPixelRatio forwards the window's device pixel ratio to the renderer.
func (a *App) SetPixelRatio(ratio float32) {
	a.renderer.SetPixelRatio(ratio)
}

// Wheel moves the camera along its view direction by deltaY*0.02 and hands the
// same delta to the orbit controls' dolly. Positive deltaY means scroll down.
//
// Parameters:
//   - deltaY: wheel delta in pixel units
func (a *App) Wheel(deltaY float64) {
	dir := a.camera.WorldDirection()
	a.camera.SetPosition(a.camera.Position().Add(dir.Mul(float32(deltaY * wheelDolly))))
	a.controls.Wheel(deltaY)
}

// Scroll converts wheel notches to a pixel delta and applies Wheel.
// Scrolling up (positive yoff) gives a negative delta.
//
// Parameters:
//   - xoff: horizontal notches, ignored
//   - yoff: vertical notches
func (a *App) Scroll(xoff, yoff float64) {
	if yoff == 0 {
		return
	}
	a.Wheel(-yoff * wheelNotchDelta)
}

// PointerDown starts an orbit drag.
func (a *App) PointerDown(x, y float64) {
	a.controls.PointerDown(x, y)
}

// PointerMove continues an orbit drag.
func (a *App) PointerMove(x, y float64) {
	a.controls.PointerMove(x, y)
}

// PointerUp ends an orbit drag.
func (a *App) PointerUp(x, y float64) {
	a.controls.PointerUp()
}
