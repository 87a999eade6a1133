package audio

import (
	"testing"
	"time"
)

func drainStreamer(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestOscillator_FiniteAndInRange(t *testing.T) {
	duration := 50 * time.Millisecond
	osc := newOscillator(440, 440, duration, WaveSine, sampleRate)

	samples := drainStreamer(t, osc)
	if want := sampleRate.N(duration); len(samples) != want {
		t.Fatalf("streamed %d samples, want %d", len(samples), want)
	}
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[1] < -1 || s[1] > 1 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
		if s[0] != s[1] {
			t.Fatalf("sample %d not mono-duplicated: %v", i, s)
		}
	}
}

func TestEnvelope_StartsAndEndsSilent(t *testing.T) {
	duration := 100 * time.Millisecond
	cue := tone(440, 440, WaveSquare, duration, 10*time.Millisecond, 20*time.Millisecond)

	samples := drainStreamer(t, cue)
	if len(samples) == 0 {
		t.Fatal("cue streamed no samples")
	}
	if v := samples[0][0]; v < -0.01 || v > 0.01 {
		t.Fatalf("attack should start near zero, got %v", v)
	}
	if v := samples[len(samples)-1][0]; v < -0.01 || v > 0.01 {
		t.Fatalf("release should end near zero, got %v", v)
	}
	// A square at full sustain hits unity somewhere in the middle.
	peak := 0.0
	for _, s := range samples {
		if s[0] > peak {
			peak = s[0]
		}
	}
	if peak < 0.9 {
		t.Fatalf("sustain peak = %v, envelope flattened the cue", peak)
	}
}

func TestPickupCue_SequencesTwoNotes(t *testing.T) {
	samples := drainStreamer(t, pickupCue())
	want := sampleRate.N(70*time.Millisecond) + sampleRate.N(120*time.Millisecond)
	if len(samples) != want {
		t.Fatalf("streamed %d samples, want %d for both notes", len(samples), want)
	}
}
