package overlay

import (
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// Surface is a 2D drawing target sized to the camera viewport.
type Surface interface {
	// Clear removes everything drawn since the last Clear.
	Clear()
	// DrawRect outlines or fills r, in top-left origin pixels.
	DrawRect(r math.Rect, c Color)
	// Resize changes the surface dimensions; the content is discarded.
	Resize(width, height int) error
	Size() (width, height int)
}

// DrawnRect is one recorded DrawRect call.
type DrawnRect struct {
	Rect  math.Rect
	Color Color
}

// Recorder is a Surface that only remembers what was drawn. It backs
// headless runs and tests.
type Recorder struct {
	Rects  []DrawnRect
	Clears int
	Draws  int // total DrawRect calls, never reset
	width  int
	height int
}

// NewRecorder creates a recorder of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

// Clear implements Surface.
func (r *Recorder) Clear() {
	r.Rects = r.Rects[:0]
	r.Clears++
}

// DrawRect implements Surface.
func (r *Recorder) DrawRect(rect math.Rect, c Color) {
	r.Rects = append(r.Rects, DrawnRect{Rect: rect, Color: c})
	r.Draws++
}

// Resize implements Surface.
func (r *Recorder) Resize(width, height int) error {
	r.width, r.height = width, height
	r.Rects = r.Rects[:0]
	return nil
}

// Size implements Surface.
func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}
