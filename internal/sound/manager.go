// Package sound synthesizes the short cues of the preview and plays them
// through a single mixer. Playing a cue again interrupts its previous run.
package sound

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// Sound names
const (
	STEP_DOWN = "step_down" // the walk moved one row down
	STEP_SIDE = "step_side" // the walk moved along a row
	STALL     = "stall"     // the walk drew an illegal move
	EXIT      = "exit"      // the walk reached the last row
	DESCEND   = "descend"   // moving to the next depth
)

const CommonSampleRate = beep.SampleRate(44100)

// Manager controls the synthesized samples and their playback.
type Manager struct {
	mu         sync.Mutex
	samples    map[string]*beep.Buffer
	ctrl       map[string]*beep.Ctrl
	mix        *beep.Mixer
	format     beep.Format
	muted      bool
	vol        *effects.Volume    // master volume
	sampleVols map[string]float64 // per-sample volume in dB

	backend   any
	streamMu  sync.Mutex // guards the mixer when the backend pulls from its own goroutine
	pulseCtrl *pulseControl
}

// NewManager synthesizes the samples and starts the audio backend.
func NewManager(sampleRate beep.SampleRate) (*Manager, error) {
	mgr, err := newManager(sampleRate)
	if err != nil {
		return nil, err
	}
	bufferSize := sampleRate.N(time.Second / 10)
	if err := mgr.initBackend(sampleRate, bufferSize); err != nil {
		return nil, err
	}
	return mgr, nil
}

// newManager builds the mixer and the samples without touching an audio device.
func newManager(sampleRate beep.SampleRate) (*Manager, error) {
	mgr := &Manager{
		samples:    make(map[string]*beep.Buffer),
		ctrl:       make(map[string]*beep.Ctrl),
		mix:        &beep.Mixer{},
		format:     beep.Format{SampleRate: sampleRate, NumChannels: 1, Precision: 2},
		sampleVols: make(map[string]float64),
	}
	mgr.vol = &effects.Volume{
		Streamer: mgr.mix,
		Base:     2,
		Volume:   0, // 0 dB
		Silent:   false,
	}
	if err := mgr.synthesize(); err != nil {
		return nil, err
	}
	mgr.SetVolume(STALL, -1.5)
	return mgr, nil
}

func (mgr *Manager) SetMasterVolume(db float64) {
	if mgr == nil {
		return
	}
	mgr.lockStream()
	defer mgr.unlockStream()
	mgr.vol.Volume = db
}

func (mgr *Manager) SetVolume(name string, db float64) {
	if mgr == nil {
		return
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.sampleVols[name] = db
}

// Play stops current playback of the sample (if any) and plays it from the start.
func (mgr *Manager) Play(name string) error {
	if mgr == nil {
		return errors.New("sound manager is nil")
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	buf, ok := mgr.samples[name]
	if !ok {
		return errors.New("sample not loaded: " + name)
	}
	if mgr.muted {
		return nil
	}

	mgr.lockStream()
	defer mgr.unlockStream()

	// Interrupt previous if exists
	if ctrl, exists := mgr.ctrl[name]; exists {
		ctrl.Streamer = nil
	}

	vol := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   mgr.sampleVols[name], // default 0 if not set
		Silent:   false,
	}
	ctrl := &beep.Ctrl{Streamer: vol, Paused: false}
	mgr.mix.Add(ctrl)
	mgr.ctrl[name] = ctrl
	return nil
}

// StopListed stops playback of the specified samples by name.
// If a sample is not currently playing, it is ignored.
func (mgr *Manager) StopListed(names ...string) {
	if mgr == nil {
		return
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.lockStream()
	defer mgr.unlockStream()
	for _, name := range names {
		if ctrl, ok := mgr.ctrl[name]; ok {
			ctrl.Streamer = nil // Drained streamers leave the mixer
			delete(mgr.ctrl, name)
		}
	}
}

// StopAll halts playback of all currently playing samples.
func (mgr *Manager) StopAll() {
	if mgr == nil {
		return
	}
	mgr.mu.Lock()
	names := make([]string, 0, len(mgr.ctrl))
	for name := range mgr.ctrl {
		names = append(names, name)
	}
	mgr.mu.Unlock()
	mgr.StopListed(names...)
}

// Mute disables all audio output.
func (mgr *Manager) Mute() {
	if mgr == nil {
		return
	}
	mgr.mu.Lock()
	mgr.muted = true
	mgr.mu.Unlock()
	mgr.StopAll()
}

// Unmute enables audio output.
func (mgr *Manager) Unmute() {
	if mgr == nil {
		return
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.muted = false
}

// Close stops the backend and frees resources.
func (mgr *Manager) Close() {
	if mgr == nil {
		return
	}
	mgr.StopAll()
	mgr.closeBackend()
}
