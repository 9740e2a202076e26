package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagScene       = flag.String("scene", "", "Scene file to track")
	flagFrames      = flag.Int("frames", -1, "Frames to run (0 = until interrupted)")
	flagNoDraw      = flag.Bool("no-draw", false, "Do not draw rectangles")
	flagSnapshotDir = flag.String("snapshot-dir", "", "Write overlay snapshots to this directory")
	flagWidth       = flag.Int("width", 0, "Viewport width")
	flagHeight      = flag.Int("height", 0, "Viewport height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Tracking.Scene = *flagScene
	}
	if *flagFrames >= 0 {
		cfg.Tracking.Frames = *flagFrames
	}
	if *flagNoDraw {
		cfg.Overlay.Draw = false
	}
	if *flagSnapshotDir != "" {
		cfg.Snapshot.Dir = *flagSnapshotDir
	}
	if *flagWidth > 0 {
		cfg.Camera.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Camera.Height = *flagHeight
	}
}
