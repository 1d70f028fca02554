package tui

import (
	"log"
	"time"

	"github.com/automoto/pong/shared/session"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type blip struct {
	freq     float64
	duration time.Duration
}

var blips = map[session.EventKind]blip{
	session.EventPaddleHit: {freq: 880, duration: 40 * time.Millisecond},
	session.EventWallHit:   {freq: 440, duration: 30 * time.Millisecond},
	session.EventGoal:      {freq: 220, duration: 150 * time.Millisecond},
	session.EventMatchWon:  {freq: 660, duration: 300 * time.Millisecond},
}

// Beeper plays a short sine tone per session event. A zero Beeper is silent.
type Beeper struct {
	enabled bool
}

// NewBeeper opens the speaker. On failure the viewer runs without sound.
func NewBeeper() *Beeper {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("[tui] audio unavailable: %v", err)
		return &Beeper{}
	}
	return &Beeper{enabled: true}
}

func (b *Beeper) Play(kind session.EventKind) {
	if b == nil || !b.enabled {
		return
	}
	tone, ok := blips[kind]
	if !ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, tone.freq)
	if err != nil {
		log.Printf("[tui] tone %v: %v", kind, err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(tone.duration), sine))
}

func (b *Beeper) Close() {
	if b != nil && b.enabled {
		speaker.Close()
		b.enabled = false
	}
}
