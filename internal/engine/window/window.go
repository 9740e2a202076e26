// Package window shows overlay images in an SDL2 window without a GPU
// context: frames are blitted through the window surface.
package window

import (
	"fmt"
	"image"
	"runtime"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Background [3]uint8
}

// Window wraps an SDL2 window.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	log       *zap.Logger
}

// New creates and shows a resizable window.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Window{
		config: cfg,
		log:    log,
	}

	// Initialize SDL2
	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// Present fills the window with the background color and draws img on
// top of it, honouring img's alpha.
func (w *Window) Present(img *image.RGBA) error {
	dst, err := w.sdlWindow.GetSurface()
	if err != nil {
		return fmt.Errorf("SDL_GetWindowSurface failed: %w", err)
	}

	bg := w.config.Background
	if err := dst.FillRect(nil, sdl.MapRGB(dst.Format, bg[0], bg[1], bg[2])); err != nil {
		return fmt.Errorf("SDL_FillRect failed: %w", err)
	}

	b := img.Bounds()
	if b.Empty() {
		return w.sdlWindow.UpdateSurface()
	}

	// image.RGBA stores R, G, B, A bytes in memory order, which SDL
	// calls ABGR8888 on little-endian machines.
	src, err := sdl.CreateRGBSurfaceWithFormatFrom(
		unsafe.Pointer(&img.Pix[0]),
		int32(b.Dx()), int32(b.Dy()),
		32, int32(img.Stride),
		uint32(sdl.PIXELFORMAT_ABGR8888),
	)
	if err != nil {
		return fmt.Errorf("SDL_CreateRGBSurfaceWithFormatFrom failed: %w", err)
	}
	defer src.Free()

	if err := src.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		return fmt.Errorf("SDL_SetSurfaceBlendMode failed: %w", err)
	}
	if err := src.Blit(nil, dst, nil); err != nil {
		return fmt.Errorf("SDL_BlitSurface failed: %w", err)
	}
	runtime.KeepAlive(img)

	return w.sdlWindow.UpdateSurface()
}

// RefreshRate returns the display refresh rate in Hz, or 0 if unknown.
func (w *Window) RefreshRate() int {
	idx, err := w.sdlWindow.GetDisplayIndex()
	if err != nil {
		return 0
	}
	mode, err := sdl.GetCurrentDisplayMode(idx)
	if err != nil {
		return 0
	}
	return int(mode.RefreshRate)
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
