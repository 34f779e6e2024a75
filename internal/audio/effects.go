// Package audio synthesizes the transition sounds: a rising sweep for the
// warp, a chime on arrival and a falling tone on departure.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/litescript/ls-galaxy/internal/view"
)

// SampleRate is the rate every effect is rendered at.
const SampleRate = beep.SampleRate(44100)

// Effect timings.
const (
	WarpSoundDuration   = view.WarpDuration
	WarpSoundAttack     = 80 * time.Millisecond
	WarpSoundRelease    = 250 * time.Millisecond
	ChimeNoteDuration   = 180 * time.Millisecond
	ChimeAttack         = 5 * time.Millisecond
	ChimeRelease        = 150 * time.Millisecond
	DepartSoundDuration = 400 * time.Millisecond
)

// sweep is a sine whose frequency glides linearly from `from` to `to`,
// optionally blended with white noise.
type sweep struct {
	from, to float64
	noise    float64
	rng      *rand.Rand
	phase    float64
	position int
	total    int
	rate     beep.SampleRate
}

// NewSweep returns a streamer gliding from one frequency to another over
// duration. noise in [0,1] sets how much white noise is blended in.
func NewSweep(from, to float64, duration time.Duration, noise float64, rng *rand.Rand, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:  from,
		to:    to,
		noise: math.Max(0, math.Min(1, noise)),
		rng:   rng,
		total: rate.N(duration),
		rate:  rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.total)
		freq := s.from + (s.to-s.from)*t

		val := math.Sin(2 * math.Pi * s.phase)
		if s.noise > 0 && s.rng != nil {
			val = val*(1-s.noise) + (s.rng.Float64()*2-1)*s.noise
		}
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		att = total / 2
		rel = total - att
	}
	return &envelope{streamer: s, attack: att, release: rel, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.position >= start && e.release > 0 {
			vol = float64(e.total-e.position) / float64(e.release)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. beep's Volume effect is logarithmic, so
// zero becomes an explicit silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// WarpSound is a rising, noisy sweep that lasts as long as the warp.
func WarpSound(rng *rand.Rand, volume float64) beep.Streamer {
	sw := NewSweep(90, 880, WarpSoundDuration, 0.35, rng, SampleRate)
	shaped := NewEnvelope(sw, WarpSoundDuration, WarpSoundAttack, WarpSoundRelease, SampleRate)
	return newVolume(shaped, volume)
}

// ArrivalSound is a two-note rising chime.
func ArrivalSound(volume float64) beep.Streamer {
	note := func(freq float64) beep.Streamer {
		osc := NewSweep(freq, freq, ChimeNoteDuration, 0, nil, SampleRate)
		return NewEnvelope(osc, ChimeNoteDuration, ChimeAttack, ChimeRelease, SampleRate)
	}
	// E5 then B5
	return newVolume(beep.Seq(note(659.25), note(987.77)), volume)
}

// DepartSound is a soft falling tone.
func DepartSound(volume float64) beep.Streamer {
	sw := NewSweep(520, 180, DepartSoundDuration, 0, nil, SampleRate)
	shaped := NewEnvelope(sw, DepartSoundDuration, 20*time.Millisecond, 300*time.Millisecond, SampleRate)
	return newVolume(shaped, volume)
}

// ForCue returns the sound for cue, or nil for view.CueNone.
func ForCue(cue view.Cue, rng *rand.Rand, volume float64) beep.Streamer {
	switch cue {
	case view.CueWarp:
		return WarpSound(rng, volume)
	case view.CueArrive:
		return ArrivalSound(volume)
	case view.CueDepart:
		return DepartSound(volume)
	default:
		return nil
	}
}
