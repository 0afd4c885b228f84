//go:build !linux

package sound

import (
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

type pulseControl struct{}

// initBackend hands the master volume to the beep speaker.
func (mgr *Manager) initBackend(sampleRate beep.SampleRate, bufferSize int) error {
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return err
	}
	speaker.Play(mgr.vol)
	mgr.backend = "speaker"
	return nil
}

func (mgr *Manager) lockStream()   { speaker.Lock() }
func (mgr *Manager) unlockStream() { speaker.Unlock() }

func (mgr *Manager) closeBackend() {
	if mgr.backend != nil {
		speaker.Clear()
	}
}
