package pull

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// BounceSequence is the short overshoot pulse played at release. Keyframes
// are advanced by the same frame steps as the rope, never by timers, so a
// replay with the same dts gives the same bounce.
type BounceSequence struct {
	cfg     BounceConfig
	eps     float64
	elapsed float64
	value   float64
	vel     float64
	active  bool
}

func NewBounceSequence(cfg BounceConfig, eps float64) *BounceSequence {
	return &BounceSequence{cfg: cfg, eps: eps}
}

func (b *BounceSequence) Start() {
	b.Stop()
	b.active = len(b.cfg.Keyframes) > 0
}

func (b *BounceSequence) Stop() {
	b.active = false
	b.elapsed = 0
	b.value = 0
	b.vel = 0
}

func (b *BounceSequence) Active() bool   { return b.active }
func (b *BounceSequence) Value() float64 { return b.value }

// Step advances the sequence by dt seconds and returns the bounce. Once the
// last keyframe has settled, or the window has run out, the bounce is
// exactly 0 and stays there until the next Start.
func (b *BounceSequence) Step(dt float64) float64 {
	if !b.active || dt <= 0 {
		return b.value
	}

	idx := b.keyframeAt(b.elapsed)
	kf := b.cfg.Keyframes[idx]
	omega := math.Sqrt(kf.Stiffness)
	spring := harmonica.NewSpring(dt, omega, kf.Damping/(2*omega))
	b.value, b.vel = spring.Update(b.value, b.vel, kf.Target)
	b.elapsed += dt

	last := idx == len(b.cfg.Keyframes)-1
	settled := last && math.Abs(b.value) < b.eps && math.Abs(b.vel) < b.eps
	if settled || b.elapsed >= b.cfg.Window {
		b.Stop()
	}
	return b.value
}

func (b *BounceSequence) keyframeAt(elapsed float64) int {
	idx := 0
	for i, kf := range b.cfg.Keyframes {
		if kf.Delay <= elapsed {
			idx = i
		}
	}
	return idx
}
