// Package main opens a preview window that shows the tracking overlay
// live. Arrow keys, mouse drag and the wheel orbit the camera; clicking an
// object follows it and Backspace returns to the orbit; Esc quits.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-bbox/internal/app"
	"github.com/Faultbox/midgard-bbox/internal/config"
	"github.com/Faultbox/midgard-bbox/internal/engine/camera"
	"github.com/Faultbox/midgard-bbox/internal/engine/culling"
	"github.com/Faultbox/midgard-bbox/internal/engine/input"
	"github.com/Faultbox/midgard-bbox/internal/engine/picking"
	"github.com/Faultbox/midgard-bbox/internal/engine/window"
	"github.com/Faultbox/midgard-bbox/internal/frame"
	"github.com/Faultbox/midgard-bbox/internal/logger"
	"github.com/Faultbox/midgard-bbox/internal/tracker"
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard BBox Preview ===")

	if err := run(cfg); err != nil {
		logger.Error("preview failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("preview closed normally")
}

func run(cfg *config.Config) error {
	a, err := app.New(cfg, logger.Named("app"), app.ConfigSearchPath())
	if err != nil {
		return err
	}
	defer a.Close()

	win, err := window.New(window.Config{
		Title:      cfg.Preview.Title,
		Width:      cfg.Camera.Width,
		Height:     cfg.Camera.Height,
		Background: [3]uint8{26, 26, 38},
	}, logger.Named("window"))
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	if cfg.Preview.VSync {
		if hz := win.RefreshRate(); hz > 0 {
			a.Loop.FPS = hz
		}
	}

	v := &viewer{app: a, input: input.New(), log: logger.Named("viewer")}
	if a.Orbit == nil {
		// Interactive sessions always have something to steer.
		a.Orbit = camera.NewOrbitRig(a.Camera.Target, a.Camera.Position.Distance(a.Camera.Target))
	}
	if a.Rig == nil {
		a.Rig = a.Orbit
	}
	a.AddControl(frame.UpdateFunc(v.Update))

	var last []tracker.Result
	a.Tracker.Subscribe(func(r tracker.Result) { last = append(last, r) })
	a.Loop.OnFrameEnd(func(n int) error {
		if v.quit {
			return frame.ErrStop
		}
		if n%60 == 0 {
			win.SetTitle(fmt.Sprintf("%s - %d boxes", cfg.Preview.Title, len(last)))
		}
		last = last[:0]
		return win.Present(a.Canvas.Image())
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Loop.Run(ctx, cfg.Tracking.Frames)
}

// viewer translates window input into camera moves.
type viewer struct {
	app      *app.App
	input    *input.Input
	dragging bool
	quit     bool
	log      *zap.Logger
}

func (v *viewer) Update(float64) {
	if v.input.Update() {
		v.quit = true
		return
	}
	a := v.app
	for _, ev := range v.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			a.Camera.Width, a.Camera.Height = ev.Width, ev.Height
		case input.EventKeyDown:
			v.handleKey(ev.Key)
		case input.EventMouseDown:
			switch ev.Button {
			case sdl.BUTTON_LEFT:
				v.dragging = true
				v.pick(ev.MouseX, ev.MouseY)
			case sdl.BUTTON_RIGHT:
				v.orbit()
			}
		case input.EventMouseUp:
			if ev.Button == sdl.BUTTON_LEFT {
				v.dragging = false
			}
		case input.EventMouseMove:
			if v.dragging && a.Rig == a.Orbit {
				a.Orbit.HandleDrag(float32(ev.RelX), float32(ev.RelY))
			}
		case input.EventMouseWheel:
			a.Orbit.HandleZoom(float32(ev.WheelY))
		}
	}
}

func (v *viewer) handleKey(key sdl.Scancode) {
	o := v.app.Orbit
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.quit = true
	case sdl.SCANCODE_BACKSPACE:
		v.orbit()
	case sdl.SCANCODE_LEFT:
		o.HandleKeys(-1, 0)
	case sdl.SCANCODE_RIGHT:
		o.HandleKeys(1, 0)
	case sdl.SCANCODE_UP:
		o.HandleKeys(0, 1)
	case sdl.SCANCODE_DOWN:
		o.HandleKeys(0, -1)
	}
}

// pick follows the tracked object under the cursor, if any.
func (v *viewer) pick(x, y int) {
	a := v.app
	objects := a.Tracker.Objects()
	boxes := make([]math.Box3, len(objects))
	for i, obj := range objects {
		boxes[i] = math.EmptyBox3()
		if obj != nil {
			boxes[i] = culling.Bounds(obj)
		}
	}
	ray := picking.ScreenToRay(a.Camera, float32(x), float32(y))
	i := picking.Pick(ray, boxes)
	if i < 0 {
		return
	}
	a.Rig = camera.NewFollowRig(objects[i].WorldPosition)
	v.log.Info("following object", zap.Int("object", i))
}

func (v *viewer) orbit() {
	if v.app.Rig != v.app.Orbit {
		v.app.Rig = v.app.Orbit
		v.log.Info("back to orbit")
	}
}
