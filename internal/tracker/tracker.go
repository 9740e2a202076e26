// Package tracker publishes per-frame screen rectangles for a set of
// tracked objects.
package tracker

import (
	gomath "math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-bbox/internal/engine/camera"
	"github.com/Faultbox/midgard-bbox/internal/engine/culling"
	"github.com/Faultbox/midgard-bbox/internal/engine/extract"
	"github.com/Faultbox/midgard-bbox/internal/engine/overlay"
	"github.com/Faultbox/midgard-bbox/internal/engine/projection"
	"github.com/Faultbox/midgard-bbox/internal/engine/scene"
	"github.com/Faultbox/midgard-bbox/internal/logger"
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// Result is the rectangle of one object in one frame, in whole pixels with
// a top-left origin.
type Result struct {
	ObjectIndex int     `json:"object"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Timestamp   float64 `json:"timestamp"`
}

// Clock returns the current time in seconds.
type Clock func() float64

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. Defaults to the "tracker" global logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// WithExtractor shares an extractor between trackers.
func WithExtractor(e *extract.Extractor) Option {
	return func(t *Tracker) { t.extractor = e }
}

type subscription struct {
	id int
	fn func(Result)
}

// Tracker runs the bounding-box pass once per frame in the late phase.
// LateUpdate must not be called concurrently; subscriptions may change
// from any goroutine.
type Tracker struct {
	cam       *camera.Camera
	surface   overlay.Surface
	extractor *extract.Extractor
	log       *zap.Logger
	clock     Clock

	objects []scene.Object
	draw    bool
	color   overlay.Color

	lastTime float64
	frame    int
	vertices []math.Vec3
	results  []Result

	mu     sync.Mutex
	subs   []subscription
	nextID int
}

// New creates a tracker for cam. surface may be nil when nothing should be
// drawn; otherwise it follows the camera viewport size.
func New(cam *camera.Camera, surface overlay.Surface, opts ...Option) *Tracker {
	t := &Tracker{
		cam:      cam,
		surface:  surface,
		draw:     true,
		color:    overlay.DefaultColor,
		lastTime: gomath.Inf(-1),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = logger.Named("tracker")
	}
	if t.extractor == nil {
		t.extractor = extract.New(t.log.Named("extract"))
	}
	if t.clock == nil {
		start := time.Now()
		t.clock = func() float64 { return time.Since(start).Seconds() }
	}
	return t
}

// SetObjects replaces the tracked objects. Result indices refer to this
// slice.
func (t *Tracker) SetObjects(objs []scene.Object) {
	t.objects = append(t.objects[:0], objs...)
}

// Objects returns the tracked objects.
func (t *Tracker) Objects() []scene.Object {
	return t.objects
}

// SetDraw enables or disables overlay drawing.
func (t *Tracker) SetDraw(draw bool) {
	t.draw = draw
}

// SetColor sets the rectangle color.
func (t *Tracker) SetColor(c overlay.Color) {
	t.color = c
}

// Subscribe registers fn to receive every published result, in object
// order. A panic in fn is logged and does not stop the pass. The returned
// function removes the subscription.
func (t *Tracker) Subscribe(fn func(Result)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.subs = append(t.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, s := range t.subs {
				if s.id == id {
					t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// LateUpdate runs one pass. It belongs in the late phase of the frame,
// after animation has settled the transforms.
func (t *Tracker) LateUpdate(dt float64) {
	t.Process()
}

// Process runs one pass and returns the published results. The slice is
// reused by the next call.
func (t *Tracker) Process() []Result {
	t.frame++
	t.results = t.results[:0]
	t.prepareSurface()

	if t.cam == nil || !t.cam.Enabled {
		t.log.Debug("camera disabled, skipping frame", zap.Int("frame", t.frame))
		return t.results
	}

	now := t.now()
	subs := t.subscribers()
	for i, obj := range t.objects {
		res, ok := t.processObject(i, obj, now)
		if !ok {
			continue
		}
		t.results = append(t.results, res)
		for _, fn := range subs {
			t.deliver(fn, res)
		}
	}

	t.log.Debug("frame processed",
		zap.Int("frame", t.frame),
		zap.Int("objects", len(t.objects)),
		zap.Int("results", len(t.results)))
	return t.results
}

func (t *Tracker) processObject(i int, obj scene.Object, now float64) (res Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Warn("object processing panicked",
				zap.Int("object", i), zap.Any("panic", r))
			ok = false
		}
	}()

	if obj == nil {
		t.log.Warn("nil tracked object", zap.Int("object", i))
		return Result{}, false
	}
	if culling.IsBehindCamera(t.cam, obj) {
		t.log.Debug("object behind camera", zap.Int("object", i))
		return Result{}, false
	}

	t.vertices = t.extractor.AppendTo(t.vertices[:0], obj)
	rect := projection.Project(t.cam, t.vertices)

	if t.draw && t.surface != nil {
		t.surface.DrawRect(rect, t.color)
	}

	return Result{
		ObjectIndex: i,
		X:           int(rect.X),
		Y:           int(rect.Y),
		Width:       int(rect.Width),
		Height:      int(rect.Height),
		Timestamp:   now,
	}, true
}

// deliver calls one subscriber; a panicking subscriber loses this result
// and nothing else.
func (t *Tracker) deliver(fn func(Result), res Result) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Warn("subscriber panicked",
				zap.Int("object", res.ObjectIndex), zap.Any("panic", r))
		}
	}()
	fn(res)
}

// prepareSurface keeps the overlay sized to the viewport and clears it.
func (t *Tracker) prepareSurface() {
	if t.surface == nil {
		return
	}
	if t.cam != nil {
		w, h := t.cam.ViewportSize()
		if sw, sh := t.surface.Size(); sw != w || sh != h {
			if err := t.surface.Resize(w, h); err != nil {
				t.log.Warn("overlay resize failed", zap.Int("width", w), zap.Int("height", h), zap.Error(err))
			}
		}
	}
	t.surface.Clear()
}

// now returns the clock, nudged forward so timestamps strictly increase.
func (t *Tracker) now() float64 {
	now := t.clock()
	if now <= t.lastTime {
		now = gomath.Nextafter(t.lastTime, gomath.Inf(1))
	}
	t.lastTime = now
	return now
}

func (t *Tracker) subscribers() []func(Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fns := make([]func(Result), len(t.subs))
	for i, s := range t.subs {
		fns[i] = s.fn
	}
	return fns
}
