//go:build linux

package sound

import (
	"sync/atomic"

	"github.com/gopxl/beep/v2"
	"github.com/jfreymuth/pulse"
)

type pulseBackend struct {
	client *pulse.Client
	stream *pulse.PlaybackStream
}

// pulseControl feeds the master volume to the playback stream and
// switches to silence once stopped.
type pulseControl struct {
	mgr     *Manager
	stopped atomic.Bool
	buf     [][2]float64
}

// read fills out with interleaved frames of the requested channel count.
func (pc *pulseControl) read(channels int) func([]float32) (int, error) {
	return func(out []float32) (int, error) {
		if pc.stopped.Load() {
			return 0, pulse.EndOfData
		}
		frames := min(len(out)/channels, len(pc.buf))

		pc.mgr.lockStream()
		n, _ := pc.mgr.vol.Stream(pc.buf[:frames])
		pc.mgr.unlockStream()

		idx := 0
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				out[idx] = float32(pc.buf[i][ch])
				idx++
			}
		}
		return idx, nil
	}
}

// initBackend opens a PulseAudio playback stream fed by the mixer.
func (mgr *Manager) initBackend(sampleRate beep.SampleRate, bufferSize int) error {
	client, err := pulse.NewClient(pulse.ClientApplicationName("descent"))
	if err != nil {
		return err
	}

	ctrl := &pulseControl{mgr: mgr, buf: make([][2]float64, bufferSize)}
	stream, err := client.NewPlayback(
		pulse.Float32Reader(ctrl.read(mgr.format.NumChannels)),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(int(sampleRate)),
		pulse.PlaybackLatency(0.03),
	)
	if err != nil {
		client.Close()
		return err
	}
	stream.Start()

	mgr.backend = &pulseBackend{client: client, stream: stream}
	mgr.pulseCtrl = ctrl
	return nil
}

func (mgr *Manager) lockStream()   { mgr.streamMu.Lock() }
func (mgr *Manager) unlockStream() { mgr.streamMu.Unlock() }

func (mgr *Manager) closeBackend() {
	if mgr.pulseCtrl != nil {
		mgr.pulseCtrl.stopped.Store(true)
	}
	if pb, ok := mgr.backend.(*pulseBackend); ok {
		pb.stream.Close()
		pb.client.Close()
	}
}
