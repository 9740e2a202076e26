package overlay

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// Style controls how rectangles are painted.
type Style struct {
	LineWidth float64
	Fill      bool
}

// DefaultStyle outlines rectangles with a 2px line.
var DefaultStyle = Style{LineWidth: 2}

// Canvas is a software-rasterised Surface.
type Canvas struct {
	dc    *gg.Context
	style Style
	log   *zap.Logger
}

// NewCanvas creates a transparent canvas.
func NewCanvas(width, height int, style Style, log *zap.Logger) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	if style.LineWidth <= 0 {
		style.LineWidth = DefaultStyle.LineWidth
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Canvas{
		dc:    gg.NewContext(width, height),
		style: style,
		log:   log,
	}, nil
}

// Clear implements Surface.
func (c *Canvas) Clear() {
	c.dc.Clear()
}

// DrawRect implements Surface.
func (c *Canvas) DrawRect(r math.Rect, col Color) {
	c.dc.SetRGBA(float64(col.R), float64(col.G), float64(col.B), float64(col.A))
	c.dc.SetLineWidth(c.style.LineWidth)
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))

	var err error
	if c.style.Fill {
		err = c.dc.Fill()
	} else {
		err = c.dc.Stroke()
	}
	if err != nil {
		c.log.Warn("draw rect failed", zap.Any("rect", r), zap.Error(err))
	}
}

// Resize implements Surface.
func (c *Canvas) Resize(width, height int) error {
	if err := c.dc.Resize(width, height); err != nil {
		return fmt.Errorf("resize canvas: %w", err)
	}
	return nil
}

// Size implements Surface.
func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// Image returns a copy of the current pixels.
func (c *Canvas) Image() *image.RGBA {
	img := c.dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
