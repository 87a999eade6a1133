package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/tilefall/tilefall/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// cueGain keeps synthesized cues well below clipping when several overlap.
const cueGain = -0.65

// Engine owns the speaker and a persistent mixer. Cues are synthesized
// streamers added to the mixer; nothing is loaded from disk. If the speaker
// fails to open, the engine runs silently rather than erroring the game.
type Engine struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

func NewEngine() *Engine {
	return &Engine{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer. Safe to call more than
// once.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(e.mixer)
	e.initialized = true
	return nil
}

// Close silences the engine. The speaker itself has no close; clearing the
// mixer stops all cues.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	e.initialized = false
}

// SetMuted toggles cue playback without tearing down the speaker.
func (e *Engine) SetMuted(muted bool) {
	e.mu.Lock()
	e.muted = muted
	e.mu.Unlock()
}

func (e *Engine) play(s beep.Streamer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized || e.muted {
		return
	}
	speaker.Lock()
	e.mixer.Add(&effects.Gain{Streamer: s, Gain: cueGain})
	speaker.Unlock()
}

// HandleEvents plays one cue per drained simulation event.
func (e *Engine) HandleEvents(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.EventFire:
			e.play(fireCue())
		case game.EventBump:
			e.play(bumpCue())
		case game.EventFall:
			e.play(fallCue())
		case game.EventPickup:
			e.play(pickupCue())
		}
	}
}
