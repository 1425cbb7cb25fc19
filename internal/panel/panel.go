// Package panel decides when the floating control panel of the slideshow
// window should be visible, based on where the pointer is.
package panel

// BottomMargin is how close to the bottom edge of the display surface the
// pointer must be, in screen units, for the panel to show.
const BottomMargin = 50

// Rect is an axis-aligned rectangle in absolute screen coordinates.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether the point lies within the rectangle, edges included.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Controller tracks panel visibility and invokes show/hide exactly once per
// state change, so pointer-move storms do not produce redundant calls.
type Controller struct {
	visible bool
	show    func()
	hide    func()
}

// NewController creates a Controller for an initially hidden panel.
// show and hide may be nil.
func NewController(show, hide func()) *Controller {
	return &Controller{show: show, hide: hide}
}

// Update feeds a pointer position plus the current geometries of the display
// surface and the panel. The panel should be visible iff the pointer is within
// BottomMargin of the surface's bottom edge, or anywhere over the panel itself.
func (c *Controller) Update(x, y float32, surface, panel Rect) {
	overBottom := x >= surface.X && x <= surface.X+surface.Width &&
		y >= surface.Y+surface.Height-BottomMargin
	want := overBottom || panel.Contains(x, y)
	c.set(want)
}

// Visible reports the current state.
func (c *Controller) Visible() bool { return c.visible }

func (c *Controller) set(want bool) {
	if want == c.visible {
		return
	}
	c.visible = want
	if want {
		if c.show != nil {
			c.show()
		}
	} else if c.hide != nil {
		c.hide()
	}
}
