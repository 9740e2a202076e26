// Package app wires configuration, scene, camera, tracker and frame loop
// into a runnable session shared by the command-line tools.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-bbox/internal/assets"
	"github.com/Faultbox/midgard-bbox/internal/config"
	"github.com/Faultbox/midgard-bbox/internal/engine/camera"
	"github.com/Faultbox/midgard-bbox/internal/engine/overlay"
	"github.com/Faultbox/midgard-bbox/internal/engine/scene"
	"github.com/Faultbox/midgard-bbox/internal/frame"
	"github.com/Faultbox/midgard-bbox/internal/tracker"
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// App is one tracking session.
type App struct {
	Config  *config.Config
	Assets  *assets.Manager
	Scene   *scene.Scene
	Camera  *camera.Camera
	Canvas  *overlay.Canvas
	Tracker *tracker.Tracker
	Loop    *frame.Loop

	// Rig positions the camera every update phase; nil keeps it fixed.
	Rig camera.Rig
	// Orbit is set when the configuration asks for an orbiting camera.
	Orbit *camera.OrbitRig

	controls  []frame.Updater
	snapshots *overlay.SnapshotWriter
	orbitRate float32 // radians per second
	log       *zap.Logger
}

// New builds a session from cfg. The scene file is looked up in the
// working directory first, then in searchPaths from last to first.
func New(cfg *config.Config, log *zap.Logger, searchPaths ...string) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{Config: cfg, log: log}

	if err := a.loadScene(searchPaths); err != nil {
		return nil, err
	}
	a.setupCamera()

	color, err := overlay.ParseHex(cfg.Overlay.Color)
	if err != nil {
		return nil, fmt.Errorf("overlay color: %w", err)
	}
	a.Canvas, err = overlay.NewCanvas(cfg.Camera.Width, cfg.Camera.Height, overlay.Style{
		LineWidth: cfg.Overlay.LineWidth,
		Fill:      cfg.Overlay.Fill,
	}, log.Named("overlay"))
	if err != nil {
		return nil, fmt.Errorf("creating overlay: %w", err)
	}

	objects, err := a.Scene.Objects(cfg.Tracking.Objects...)
	if err != nil {
		a.Canvas.Close()
		return nil, fmt.Errorf("selecting tracked objects: %w", err)
	}
	a.Tracker = tracker.New(a.Camera, a.Canvas, tracker.WithLogger(log.Named("tracker")))
	a.Tracker.SetObjects(objects)
	a.Tracker.SetDraw(cfg.Overlay.Draw)
	a.Tracker.SetColor(color)

	if cfg.Snapshot.Dir != "" {
		a.snapshots, err = overlay.NewSnapshotWriter(cfg.Snapshot.Dir, "bbox", cfg.Snapshot.Format, cfg.Snapshot.Scale)
		if err != nil {
			a.Canvas.Close()
			return nil, fmt.Errorf("snapshots: %w", err)
		}
	}

	a.Loop = frame.NewLoop(log.Named("frame"))
	a.Loop.FPS = cfg.Tracking.FPS
	// Animation first, then the camera, then the late-phase tracker.
	for _, p := range []any{a.Scene, frame.UpdateFunc(a.updateCamera), a.Tracker} {
		if err := a.Loop.Add(p); err != nil {
			a.Canvas.Close()
			return nil, err
		}
	}
	if a.snapshots != nil {
		a.Loop.OnFrameEnd(a.writeSnapshot)
	}

	log.Info("session ready",
		zap.String("scene", cfg.Tracking.Scene),
		zap.Int("objects", len(objects)),
		zap.Bool("draw", cfg.Overlay.Draw),
		zap.String("snapshots", cfg.Snapshot.Dir))
	return a, nil
}

func (a *App) loadScene(searchPaths []string) error {
	a.Assets = assets.NewManager()
	dirs := append(append([]string(nil), searchPaths...), ".")
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := a.Assets.AddSearchPath(dir); err != nil {
			a.log.Debug("skipping search path", zap.String("dir", dir), zap.Error(err))
		}
	}

	data, err := a.Assets.Load(a.Config.Tracking.Scene)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	a.Scene, err = scene.LoadScene(data)
	if err != nil {
		return fmt.Errorf("parsing scene %s: %w", a.Config.Tracking.Scene, err)
	}
	return nil
}

func (a *App) setupCamera() {
	cc := a.Config.Camera
	a.Camera = camera.New(cc.Width, cc.Height)
	a.Camera.Position = vec(cc.Position)
	a.Camera.Target = vec(cc.LookAt)
	a.Camera.FovY = cc.FOV
	a.Camera.Near = cc.Near
	a.Camera.Far = cc.Far
	a.Camera.Enabled = cc.Enabled

	if cc.Orbit.Enabled {
		a.Orbit = camera.NewOrbitRig(vec(cc.LookAt), cc.Orbit.Distance)
		a.Orbit.RotationX = math.Radians(cc.Orbit.Pitch)
		a.orbitRate = math.Radians(cc.Orbit.Speed)
		a.Rig = a.Orbit
	}
	if name := a.Config.Preview.Follow; name != "" {
		if n := a.Scene.Find(name); n != nil {
			a.Rig = camera.NewFollowRig(n.WorldPosition)
		} else {
			a.log.Warn("follow target not found", zap.String("node", name))
		}
	}
}

// AddControl registers u to run each frame before the camera rig is
// applied, so rig changes made from input show in the same frame.
func (a *App) AddControl(u frame.Updater) {
	a.controls = append(a.controls, u)
}

func (a *App) updateCamera(dt float64) {
	for _, u := range a.controls {
		u.Update(dt)
	}
	if a.Orbit != nil && a.orbitRate != 0 {
		a.Orbit.RotationY += a.orbitRate * float32(dt)
	}
	if a.Rig != nil {
		a.Rig.Apply(a.Camera)
	}
}

func (a *App) writeSnapshot(frameNo int) error {
	if every := a.Config.Snapshot.Every; every > 1 && frameNo%every != 0 {
		return nil
	}
	path, err := a.snapshots.Write(frameNo, a.Canvas.Image())
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	a.log.Debug("snapshot written", zap.String("path", path))
	return nil
}

// Close releases the overlay.
func (a *App) Close() error {
	return a.Canvas.Close()
}

func vec(v config.Vec3) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// ConfigSearchPath returns the config directory if it exists, so that
// scene files can live next to the user's config.
func ConfigSearchPath() string {
	dir := config.ConfigDir()
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return filepath.Clean(dir)
	}
	return ""
}
