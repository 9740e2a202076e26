// Package frame drives the two-phase per-frame update contract: every
// Update runs before any LateUpdate.
package frame

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrStop ends Run without an error when returned from an end-of-frame
// hook.
var ErrStop = errors.New("stop loop")

// Updater runs in the update phase (animation, input, camera rigs).
type Updater interface {
	Update(dt float64)
}

// LateUpdater runs in the late phase, after all transforms are final.
type LateUpdater interface {
	LateUpdate(dt float64)
}

// UpdateFunc adapts a function to Updater.
type UpdateFunc func(dt float64)

// Update implements Updater.
func (f UpdateFunc) Update(dt float64) { f(dt) }

// LateUpdateFunc adapts a function to LateUpdater.
type LateUpdateFunc func(dt float64)

// LateUpdate implements LateUpdater.
func (f LateUpdateFunc) LateUpdate(dt float64) { f(dt) }

// Loop calls its phases once per frame.
type Loop struct {
	// FPS caps the frame rate in Run; 0 means unthrottled.
	FPS int
	// FixedStep, when set, is passed as dt instead of the measured frame
	// time. Headless runs use it for reproducible output.
	FixedStep time.Duration

	updaters []Updater
	late     []LateUpdater
	endHooks []func(frame int) error

	frame int
	log   *zap.Logger
}

// NewLoop creates an empty loop.
func NewLoop(log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{log: log}
}

// Add registers p in every phase it implements. It fails when p
// implements neither.
func (l *Loop) Add(p any) error {
	u, isUpdater := p.(Updater)
	lu, isLate := p.(LateUpdater)
	if !isUpdater && !isLate {
		return fmt.Errorf("frame: %T implements neither Updater nor LateUpdater", p)
	}
	if isUpdater {
		l.updaters = append(l.updaters, u)
	}
	if isLate {
		l.late = append(l.late, lu)
	}
	return nil
}

// OnFrameEnd registers fn to run after the late phase. Returning ErrStop
// ends Run cleanly; any other error aborts it.
func (l *Loop) OnFrameEnd(fn func(frame int) error) {
	l.endHooks = append(l.endHooks, fn)
}

// Frame returns the number of completed frames.
func (l *Loop) Frame() int {
	return l.frame
}

// Step runs a single frame with the given delta time.
func (l *Loop) Step(dt float64) error {
	for _, u := range l.updaters {
		u.Update(dt)
	}
	for _, lu := range l.late {
		lu.LateUpdate(dt)
	}
	frame := l.frame
	l.frame++
	for _, fn := range l.endHooks {
		if err := fn(frame); err != nil {
			return err
		}
	}
	return nil
}

// Run steps until frames have completed (0 means no limit), the context
// is cancelled, or a hook stops the loop.
func (l *Loop) Run(ctx context.Context, frames int) error {
	var budget time.Duration
	if l.FPS > 0 {
		budget = time.Second / time.Duration(l.FPS)
	}

	l.log.Info("starting frame loop",
		zap.Int("frames", frames), zap.Int("fps", l.FPS), zap.Duration("fixed_step", l.FixedStep))

	lastTime := time.Now()
	fpsTimer := lastTime
	fpsCount := 0

	for done := 0; frames <= 0 || done < frames; done++ {
		if err := ctx.Err(); err != nil {
			l.log.Info("frame loop cancelled", zap.Int("frame", l.frame))
			return nil
		}

		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now
		if l.FixedStep > 0 {
			dt = l.FixedStep.Seconds()
		}

		if err := l.Step(dt); err != nil {
			if errors.Is(err, ErrStop) {
				l.log.Info("frame loop stopped", zap.Int("frame", l.frame))
				return nil
			}
			return fmt.Errorf("frame %d: %w", l.frame-1, err)
		}

		fpsCount++
		if time.Since(fpsTimer) >= time.Second {
			l.log.Debug("fps", zap.Int("count", fpsCount), zap.Float64("dt_ms", dt*1000))
			fpsCount = 0
			fpsTimer = time.Now()
		}

		if budget > 0 {
			if wait := budget - time.Since(now); wait > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(wait):
				}
			}
		}
	}
	return nil
}
