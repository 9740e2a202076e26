package scene

import (
	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// VecKey is a position or scale keyframe. Time is in seconds.
type VecKey struct {
	Time  float32
	Value math.Vec3
}

// RotKey is a rotation keyframe. Time is in seconds.
type RotKey struct {
	Time  float32
	Value math.Quat
}

// Track animates one transform. Empty key lists leave that channel alone.
type Track struct {
	Target   *Transform
	Position []VecKey
	Rotation []RotKey
	Scale    []VecKey
}

// Animator plays a set of tracks on a shared clock. It runs in the update
// phase so transforms are final before the tracker reads them.
type Animator struct {
	Name   string
	Tracks []Track
	Length float32 // seconds; <= 0 means "last keyframe"
	Loop   bool
	Speed  float32 // 0 is treated as 1

	time float32
}

// Time returns the current playback position in seconds.
func (a *Animator) Time() float32 {
	return a.time
}

// Seek moves playback to t and applies the pose.
func (a *Animator) Seek(t float32) {
	a.time = a.wrap(t)
	a.Apply()
}

// Update advances playback by dt seconds and applies the pose.
func (a *Animator) Update(dt float64) {
	speed := a.Speed
	if speed == 0 {
		speed = 1
	}
	a.time = a.wrap(a.time + float32(dt)*speed)
	a.Apply()
}

// Apply writes the pose at the current time into every target.
func (a *Animator) Apply() {
	for i := range a.Tracks {
		tr := &a.Tracks[i]
		if tr.Target == nil {
			continue
		}
		if len(tr.Position) > 0 {
			tr.Target.Position = InterpolateVecKeys(tr.Position, a.time, math.Vec3{})
		}
		if len(tr.Rotation) > 0 {
			tr.Target.Rotation = InterpolateRotKeys(tr.Rotation, a.time)
		}
		if len(tr.Scale) > 0 {
			tr.Target.Scale = InterpolateVecKeys(tr.Scale, a.time, math.One)
		}
	}
}

func (a *Animator) length() float32 {
	if a.Length > 0 {
		return a.Length
	}
	var end float32
	for _, tr := range a.Tracks {
		if n := len(tr.Position); n > 0 {
			end = max(end, tr.Position[n-1].Time)
		}
		if n := len(tr.Rotation); n > 0 {
			end = max(end, tr.Rotation[n-1].Time)
		}
		if n := len(tr.Scale); n > 0 {
			end = max(end, tr.Scale[n-1].Time)
		}
	}
	return end
}

func (a *Animator) wrap(t float32) float32 {
	length := a.length()
	if length <= 0 {
		return 0
	}
	if !a.Loop {
		return min(max(t, 0), length)
	}
	for t >= length {
		t -= length
	}
	for t < 0 {
		t += length
	}
	return t
}

// bracket finds the keys surrounding t. Keys must be sorted by time.
func bracket(n int, timeAt func(int) float32, t float32) (prev, next int, frac float32) {
	for i := 0; i < n; i++ {
		if timeAt(i) > t {
			next = i
			break
		}
		prev = i
		next = i
	}
	if prev == next {
		return prev, next, 0
	}
	t0, t1 := timeAt(prev), timeAt(next)
	if t1 != t0 {
		frac = (t - t0) / (t1 - t0)
	}
	return prev, next, frac
}

// InterpolateRotKeys slerps rotation keyframes at time t.
func InterpolateRotKeys(keys []RotKey, t float32) math.Quat {
	if len(keys) == 0 {
		return math.QuatIdentity()
	}
	if len(keys) == 1 {
		return keys[0].Value
	}
	prev, next, frac := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if prev == next {
		return keys[prev].Value
	}
	return keys[prev].Value.Slerp(keys[next].Value, frac)
}

// InterpolateVecKeys lerps vector keyframes at time t. def is returned when
// there are no keys.
func InterpolateVecKeys(keys []VecKey, t float32, def math.Vec3) math.Vec3 {
	if len(keys) == 0 {
		return def
	}
	if len(keys) == 1 {
		return keys[0].Value
	}
	prev, next, frac := bracket(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if prev == next {
		return keys[prev].Value
	}
	return keys[prev].Value.Lerp(keys[next].Value, frac)
}
