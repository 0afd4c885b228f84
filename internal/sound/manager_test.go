package sound

import (
	"testing"
	"time"
)

func TestSynthesize(t *testing.T) {
	mgr, err := newManager(CommonSampleRate)
	if err != nil {
		t.Fatalf("newManager: %v", err)
	}
	for _, name := range []string{STEP_DOWN, STEP_SIDE, STALL, EXIT, DESCEND} {
		buf, ok := mgr.samples[name]
		if !ok {
			t.Errorf("sample %q not synthesized", name)
			continue
		}
		var want int
		if c := cues[name]; c.chord {
			want = CommonSampleRate.N(c.notes[0].dur)
		} else {
			for _, n := range c.notes {
				want += CommonSampleRate.N(n.dur)
			}
		}
		// Mixing may round up to the mixer's chunk size
		if buf.Len() < want || buf.Len() >= want+512 {
			t.Errorf("sample %q has %d frames, want about %d", name, buf.Len(), want)
		}
	}
}

func TestFadeOutEndsSilent(t *testing.T) {
	n := note{freq: 440, dur: 10 * time.Millisecond, gain: 1}
	s, err := n.streamer(CommonSampleRate)
	if err != nil {
		t.Fatal(err)
	}
	samples := make([][2]float64, CommonSampleRate.N(n.dur))
	got, _ := s.Stream(samples)
	if got != len(samples) {
		t.Fatalf("streamed %d samples, want %d", got, len(samples))
	}
	for i, v := range samples {
		if v[0] > 1 || v[0] < -1 {
			t.Fatalf("sample %d out of range: %v", i, v[0])
		}
	}
	last := samples[len(samples)-1][0]
	if last > 0.01 || last < -0.01 {
		t.Errorf("last sample = %v, want near silence", last)
	}
}

func TestPlay(t *testing.T) {
	mgr, err := newManager(CommonSampleRate)
	if err != nil {
		t.Fatal(err)
	}
	if err := mgr.Play("missing"); err == nil {
		t.Error("Play(missing) should fail")
	}

	if err := mgr.Play(STEP_DOWN); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Play(STEP_DOWN); err != nil {
		t.Fatal(err)
	}
	if len(mgr.ctrl) != 1 {
		t.Errorf("replaying a sample should keep one control, got %d", len(mgr.ctrl))
	}

	mgr.Mute()
	if len(mgr.ctrl) != 0 {
		t.Errorf("Mute should stop playback, %d controls left", len(mgr.ctrl))
	}
	if err := mgr.Play(EXIT); err != nil {
		t.Fatal(err)
	}
	if len(mgr.ctrl) != 0 {
		t.Error("muted Play should not start playback")
	}

	mgr.Unmute()
	if err := mgr.Play(EXIT); err != nil {
		t.Fatal(err)
	}
	if len(mgr.ctrl) != 1 {
		t.Error("Unmute should allow playback again")
	}
}

func TestVolumes(t *testing.T) {
	mgr, err := newManager(CommonSampleRate)
	if err != nil {
		t.Fatal(err)
	}
	if mgr.sampleVols[STALL] >= 0 {
		t.Errorf("stall volume = %v, want it quieter than the rest", mgr.sampleVols[STALL])
	}
	mgr.SetMasterVolume(-2)
	if mgr.vol.Volume != -2 {
		t.Errorf("master volume = %v, want -2", mgr.vol.Volume)
	}
}

func TestNilManager(t *testing.T) {
	var mgr *Manager
	if err := mgr.Play(STEP_DOWN); err == nil {
		t.Error("Play on nil manager should fail")
	}
	mgr.Mute()
	mgr.Unmute()
	mgr.SetMasterVolume(-1)
	mgr.Close()
}
