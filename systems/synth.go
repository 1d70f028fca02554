package systems

import (
	"encoding/binary"
	"math"

	cfg "github.com/automoto/pong/config"
)

const bytesPerFrame = 4 // 16-bit little endian, two channels

// GenerateTone renders a tone as PCM ready for audio.Context.NewPlayerFromBytes.
// The pitch sweeps linearly from Freq to EndFreq and the last fadeMs
// milliseconds ramp down to silence.
func GenerateTone(t cfg.Tone, sampleRate, fadeMs int) []byte {
	frames := t.DurationMs * sampleRate / 1000
	if frames <= 0 {
		return nil
	}
	fadeFrames := fadeMs * sampleRate / 1000
	if fadeFrames > frames {
		fadeFrames = frames
	}

	end := t.EndFreq
	if end <= 0 {
		end = t.Freq
	}

	buf := make([]byte, frames*bytesPerFrame)
	phase := 0.0
	for i := 0; i < frames; i++ {
		progress := float64(i) / float64(frames)
		freq := t.Freq + (end-t.Freq)*progress
		phase += freq / float64(sampleRate)
		phase -= math.Floor(phase)

		amp := oscillate(t.Wave, phase) * 0.3
		if remaining := frames - i; remaining <= fadeFrames {
			amp *= float64(remaining) / float64(fadeFrames)
		}

		v := uint16(int16(amp * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame:], v)
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame+2:], v)
	}
	return buf
}

// oscillate returns a sample in [-1, 1] for a phase in [0, 1).
func oscillate(w cfg.Waveform, phase float64) float64 {
	switch w {
	case cfg.WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case cfg.WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		if phase < 0.5 {
			return 1
		}
		return -1
	}
}
