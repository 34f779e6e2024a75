package audio

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/litescript/ls-galaxy/internal/view"
)

// Player plays transition cues.
type Player interface {
	Play(cue view.Cue)
	Close()
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Play(view.Cue) {}
func (Nop) Close()        {}

// SpeakerPlayer mixes cues onto the system audio device.
type SpeakerPlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rng    *rand.Rand
	volume float64
	open   bool
}

// NewSpeakerPlayer opens the audio device. It fails when no device is
// available, in which case callers should fall back to Nop.
func NewSpeakerPlayer(volume float64, seed uint64) (*SpeakerPlayer, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	p := &SpeakerPlayer{
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewPCG(seed, seed+1)),
		volume: volume,
		open:   true,
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Play queues the sound for cue.
func (p *SpeakerPlayer) Play(cue view.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return
	}
	s := ForCue(cue, p.rng, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences playback and releases the device.
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.open = false
}
