// Package config handles tracker configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all settings.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Tracking TrackingConfig `yaml:"tracking"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Preview  PreviewConfig  `yaml:"preview"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Vec3 is an [x, y, z] triple.
type Vec3 [3]float32

// CameraConfig holds the viewing camera.
type CameraConfig struct {
	Position Vec3        `yaml:"position"`
	LookAt   Vec3        `yaml:"look_at"`
	FOV      float32     `yaml:"fov"` // vertical, degrees
	Near     float32     `yaml:"near"`
	Far      float32     `yaml:"far"`
	Width    int         `yaml:"width"`
	Height   int         `yaml:"height"`
	Enabled  bool        `yaml:"enabled"`
	Orbit    OrbitConfig `yaml:"orbit"`
}

// OrbitConfig moves the camera around LookAt instead of using Position.
type OrbitConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"` // degrees
	Speed    float32 `yaml:"speed"` // degrees of yaw per second
}

// OverlayConfig holds rectangle drawing settings.
type OverlayConfig struct {
	Draw      bool    `yaml:"draw"`
	Color     string  `yaml:"color"` // #rrggbbaa
	LineWidth float64 `yaml:"line_width"`
	Fill      bool    `yaml:"fill"`
}

// TrackingConfig selects the scene and the objects to track.
type TrackingConfig struct {
	Scene   string   `yaml:"scene"`
	Objects []string `yaml:"objects"` // node names; empty tracks every root
	FPS     int      `yaml:"fps"`     // 0 runs unthrottled
	Frames  int      `yaml:"frames"`  // 0 runs until interrupted
}

// SnapshotConfig holds overlay snapshot settings.
type SnapshotConfig struct {
	Dir    string  `yaml:"dir"` // empty disables snapshots
	Format string  `yaml:"format"`
	Every  int     `yaml:"every"` // frames between snapshots
	Scale  float64 `yaml:"scale"`
}

// PreviewConfig holds the preview window settings.
type PreviewConfig struct {
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
	Follow string `yaml:"follow"` // node name the camera trails
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			LookAt:  Vec3{0, 0, 1},
			FOV:     60,
			Near:    0.3,
			Far:     1000,
			Width:   800,
			Height:  600,
			Enabled: true,
			Orbit: OrbitConfig{
				Distance: 10,
				Pitch:    20,
			},
		},
		Overlay: OverlayConfig{
			Draw:      true,
			Color:     "#00000080",
			LineWidth: 2,
		},
		Tracking: TrackingConfig{
			Scene: "scene.yaml",
			FPS:   60,
		},
		Snapshot: SnapshotConfig{
			Format: "png",
			Every:  1,
			Scale:  1,
		},
		Preview: PreviewConfig{
			Title: "Midgard BBox",
			VSync: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	cam := c.Camera
	if cam.Width <= 0 || cam.Height <= 0 {
		errs = append(errs, fmt.Errorf("camera: viewport %dx%d must be positive", cam.Width, cam.Height))
	}
	if cam.FOV <= 0 || cam.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov %v out of range (0, 180)", cam.FOV))
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		errs = append(errs, fmt.Errorf("camera: need 0 < near < far, got near=%v far=%v", cam.Near, cam.Far))
	}
	if cam.Position == cam.LookAt {
		errs = append(errs, fmt.Errorf("camera: look_at %v must differ from position", cam.LookAt))
	}
	if cam.Orbit.Enabled && cam.Orbit.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera: orbit distance %v must be positive", cam.Orbit.Distance))
	}
	if c.Tracking.Scene == "" {
		errs = append(errs, errors.New("tracking: scene is required"))
	}
	if c.Tracking.FPS < 0 || c.Tracking.Frames < 0 {
		errs = append(errs, errors.New("tracking: fps and frames must not be negative"))
	}
	switch strings.ToLower(c.Snapshot.Format) {
	case "png", "webp":
	default:
		errs = append(errs, fmt.Errorf("snapshot: unknown format %q", c.Snapshot.Format))
	}
	if c.Snapshot.Every < 1 {
		errs = append(errs, fmt.Errorf("snapshot: every %d must be at least 1", c.Snapshot.Every))
	}
	return errors.Join(errs...)
}
