package sound

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
)

// note is a sine tone with a linear fade out.
type note struct {
	freq float64
	dur  time.Duration
	gain float64 // relative to full scale, 0..1
}

type cue struct {
	chord bool // play notes together instead of one after another
	notes []note
}

var cues = map[string]cue{
	STEP_DOWN: {notes: []note{{freq: 329.63, dur: 70 * time.Millisecond, gain: 0.35}}},
	STEP_SIDE: {notes: []note{{freq: 440.00, dur: 45 * time.Millisecond, gain: 0.25}}},
	STALL:     {notes: []note{{freq: 110.00, dur: 90 * time.Millisecond, gain: 0.3}}},
	EXIT: {chord: true, notes: []note{
		{freq: 523.25, dur: 450 * time.Millisecond, gain: 0.2},
		{freq: 659.25, dur: 450 * time.Millisecond, gain: 0.2},
		{freq: 783.99, dur: 450 * time.Millisecond, gain: 0.2},
	}},
	DESCEND: {notes: []note{
		{freq: 783.99, dur: 90 * time.Millisecond, gain: 0.3},
		{freq: 659.25, dur: 90 * time.Millisecond, gain: 0.3},
		{freq: 523.25, dur: 90 * time.Millisecond, gain: 0.3},
		{freq: 392.00, dur: 160 * time.Millisecond, gain: 0.3},
	}},
}

// synthesize renders every cue into a buffer.
func (mgr *Manager) synthesize() error {
	sr := mgr.format.SampleRate
	for name, c := range cues {
		streamers := make([]beep.Streamer, 0, len(c.notes))
		for _, n := range c.notes {
			s, err := n.streamer(sr)
			if err != nil {
				return err
			}
			streamers = append(streamers, s)
		}

		var s beep.Streamer
		if c.chord {
			s = beep.Mix(streamers...)
		} else {
			s = beep.Seq(streamers...)
		}
		buf := beep.NewBuffer(mgr.format)
		buf.Append(s)
		mgr.samples[name] = buf
	}
	return nil
}

func (n note) streamer(sr beep.SampleRate) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, n.freq)
	if err != nil {
		return nil, err
	}
	length := sr.N(n.dur)
	return &fadeOut{
		Streamer: &effects.Gain{Streamer: beep.Take(length, tone), Gain: n.gain - 1},
		length:   length,
	}, nil
}

// fadeOut ramps a finite streamer down to silence over length samples.
type fadeOut struct {
	beep.Streamer
	length int
	pos    int
}

func (f *fadeOut) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1 - float64(f.pos)/float64(f.length)
		if g < 0 {
			g = 0
		}
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}
