package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)

	clickLength = 40 * time.Millisecond
	onPitch     = 1760.0
	offPitch    = 1175.0
	clickGain   = 0.3
	clickDecay  = 90.0
)

// Clicker plays a short tick whenever the switch toggles. The pitch is a
// little higher when turning on.
type Clicker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	Active bool
}

func NewClicker() *Clicker {
	return &Clicker{mixer: &beep.Mixer{}}
}

// Start opens the speaker. Calling it again is a no-op.
func (c *Clicker) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Active {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.Active = true
	return nil
}

func (c *Clicker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.Active {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.Active = false
}

// Play queues a click. It does nothing before Start.
func (c *Clicker) Play(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.Active {
		return
	}
	speaker.Lock()
	c.mixer.Add(Click(SampleRate, on))
	speaker.Unlock()
}

// Click is a sine tick with an exponential decay envelope.
func Click(sr beep.SampleRate, on bool) beep.Streamer {
	freq := offPitch
	if on {
		freq = onPitch
	}
	total := sr.N(clickLength)
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(sr)
			v := clickGain * math.Exp(-clickDecay*t) * math.Sin(2*math.Pi*freq*t)
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}
