package frame

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

type recorder struct {
	name  string
	calls *[]string
}

func (r recorder) Update(float64)     { *r.calls = append(*r.calls, r.name+".update") }
func (r recorder) LateUpdate(float64) { *r.calls = append(*r.calls, r.name+".late") }

type lateOnly struct{ recorder }

func (l lateOnly) Update() {}

func TestStepPhaseOrder(t *testing.T) {
	var calls []string
	l := NewLoop(nil)

	// The late-phase object is registered first but still runs last.
	if err := l.Add(LateUpdateFunc(func(float64) { calls = append(calls, "tracker.late") })); err != nil {
		t.Fatal(err)
	}
	if err := l.Add(recorder{"anim", &calls}); err != nil {
		t.Fatal(err)
	}
	if err := l.Add(UpdateFunc(func(float64) { calls = append(calls, "rig.update") })); err != nil {
		t.Fatal(err)
	}
	l.OnFrameEnd(func(frame int) error {
		calls = append(calls, "end")
		return nil
	})

	if err := l.Step(0.016); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	want := []string{"anim.update", "rig.update", "tracker.late", "anim.late", "end"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if l.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", l.Frame())
	}
}

func TestAddRejectsNonPhases(t *testing.T) {
	l := NewLoop(nil)
	if err := l.Add(struct{}{}); err == nil {
		t.Error("Add(struct{}) error = nil, want error")
	}
	// Update with the wrong signature does not count.
	if err := l.Add(lateOnly{recorder{"x", new([]string)}}); err != nil {
		t.Errorf("Add(lateOnly) error = %v, want nil", err)
	}
}

func TestRunFrameCount(t *testing.T) {
	l := NewLoop(nil)
	l.FixedStep = 20 * time.Millisecond

	var dts []float64
	if err := l.Add(UpdateFunc(func(dt float64) { dts = append(dts, dt) })); err != nil {
		t.Fatal(err)
	}

	if err := l.Run(context.Background(), 5); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(dts) != 5 || l.Frame() != 5 {
		t.Fatalf("ran %d frames, Frame() = %d, want 5", len(dts), l.Frame())
	}
	for i, dt := range dts {
		if dt != 0.02 {
			t.Errorf("frame %d dt = %v, want 0.02", i, dt)
		}
	}
}

func TestRunStops(t *testing.T) {
	l := NewLoop(nil)
	l.OnFrameEnd(func(frame int) error {
		if frame == 2 {
			return ErrStop
		}
		return nil
	})

	if err := l.Run(context.Background(), 0); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if l.Frame() != 3 {
		t.Errorf("Frame() = %d, want 3", l.Frame())
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	l := NewLoop(nil)
	boom := errors.New("disk full")
	l.OnFrameEnd(func(int) error { return boom })

	if err := l.Run(context.Background(), 10); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(nil)
	l.FPS = 1000
	l.OnFrameEnd(func(frame int) error {
		if frame == 3 {
			cancel()
		}
		return nil
	})

	if err := l.Run(ctx, 0); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if l.Frame() != 4 {
		t.Errorf("Frame() = %d, want 4", l.Frame())
	}
}

func TestRunThrottles(t *testing.T) {
	l := NewLoop(nil)
	l.FPS = 100

	start := time.Now()
	if err := l.Run(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("5 frames at 100 FPS took %v, want at least 40ms", elapsed)
	}
}
