// Package audio turns the driving frequency into a sine tone.
package audio

import (
	"math"
	"sync"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// glide is the per-sample smoothing factor for frequency and level
	// changes; about 5 ms at 44.1 kHz.
	glide = 0.005

	// MaxLevel keeps the tone below full scale.
	MaxLevel = 0.25
)

// Tone is a sine oscillator whose frequency and level follow targets set
// from another goroutine.
type Tone struct {
	mu        sync.Mutex
	hz, level float64
	last      []float32

	// owned by the rendering goroutine
	phase       float64
	curHz, curL float64
}

func NewTone() *Tone {
	return &Tone{last: make([]float32, 0, BufferSize)}
}

// SetTarget publishes a new frequency in Hz and a level in [0, 1].
func (t *Tone) SetTarget(hz, level float64) {
	level = math.Max(0, math.Min(1, level))
	t.mu.Lock()
	t.hz, t.level = hz, level
	t.mu.Unlock()
}

func (t *Tone) Target() (hz, level float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hz, t.level
}

// Fill renders len(out) samples.
func (t *Tone) Fill(out []float32) {
	hz, level := t.Target()
	if t.curHz == 0 {
		t.curHz = hz
	}
	dt := 1.0 / SampleRate
	for i := range out {
		t.curHz += (hz - t.curHz) * glide
		t.curL += (level - t.curL) * glide
		out[i] = float32(MaxLevel * t.curL * math.Sin(2*math.Pi*t.phase))
		t.phase += t.curHz * dt
		t.phase -= math.Floor(t.phase)
	}
	t.mu.Lock()
	t.last = append(t.last[:0], out...)
	t.mu.Unlock()
}

// Last returns a copy of the most recently rendered block.
func (t *Tone) Last() []float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]float32(nil), t.last...)
}
