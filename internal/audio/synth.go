package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator streams a finite waveform, sweeping linearly from freq to
// endFreq over its duration. Equal start and end frequencies give a plain
// tone.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

func newOscillator(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a finite streamer.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// tone builds an enveloped oscillator cue at the package sample rate.
func tone(freq, endFreq float64, wave WaveType, duration, attack, release time.Duration) beep.Streamer {
	osc := newOscillator(freq, endFreq, duration, wave, sampleRate)
	return newEnvelope(osc, duration, attack, release, sampleRate)
}

// fireCue is a short bright blip for a photon volley.
func fireCue() beep.Streamer {
	return tone(680, 680, WaveSquare, 60*time.Millisecond, 2*time.Millisecond, 40*time.Millisecond)
}

// bumpCue is a low buzz for collisions and photon hits.
func bumpCue() beep.Streamer {
	return tone(110, 110, WaveSaw, 120*time.Millisecond, 4*time.Millisecond, 80*time.Millisecond)
}

// fallCue sweeps downward as a ship drops off the board.
func fallCue() beep.Streamer {
	return tone(420, 70, WaveSine, 350*time.Millisecond, 5*time.Millisecond, 120*time.Millisecond)
}

// pickupCue is the classic two-note rising coin chime.
func pickupCue() beep.Streamer {
	n1 := tone(987.77, 987.77, WaveSquare, 70*time.Millisecond, 2*time.Millisecond, 30*time.Millisecond)
	n2 := tone(1318.51, 1318.51, WaveSquare, 120*time.Millisecond, 2*time.Millisecond, 90*time.Millisecond)
	return beep.Seq(n1, n2)
}
