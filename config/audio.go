package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	// Table sounds
	SoundPaddleHit
	SoundWallHit
	SoundGoal
	SoundServe
	SoundMatchWon
	// UI sounds
	SoundMenuNavigate
	SoundMenuSelect
)

// Waveform selects the oscillator used for a tone
type Waveform int

const (
	WaveSquare Waveform = iota
	WaveSine
	WaveTriangle
)

// Tone describes a generated blip. Sweeping from Freq to EndFreq gives the
// goal and serve sounds their rise and fall.
type Tone struct {
	Wave       Waveform
	Freq       float64 // Hz at the start
	EndFreq    float64 // Hz at the end, 0 = constant pitch
	DurationMs int
	Volume     float64 // Multiplier on the SFX volume
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate    int
	DefaultSFXVol float64
	FadeOutMs     int // Release applied to every tone to avoid clicks
}

// SoundConfig maps sound IDs to generated tones
type SoundConfig struct {
	Tones map[SoundID]Tone
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:    44100,
		DefaultSFXVol: 0.75,
		FadeOutMs:     8,
	}

	Sound = SoundConfig{
		Tones: map[SoundID]Tone{
			SoundPaddleHit:    {Wave: WaveSquare, Freq: 460, DurationMs: 60, Volume: 0.5},
			SoundWallHit:      {Wave: WaveSquare, Freq: 230, DurationMs: 50, Volume: 0.4},
			SoundGoal:         {Wave: WaveTriangle, Freq: 520, EndFreq: 130, DurationMs: 380, Volume: 0.7},
			SoundServe:        {Wave: WaveSine, Freq: 330, EndFreq: 660, DurationMs: 120, Volume: 0.4},
			SoundMatchWon:     {Wave: WaveTriangle, Freq: 392, EndFreq: 784, DurationMs: 700, Volume: 0.7},
			SoundMenuNavigate: {Wave: WaveSine, Freq: 880, DurationMs: 30, Volume: 0.3},
			SoundMenuSelect:   {Wave: WaveSine, Freq: 660, EndFreq: 990, DurationMs: 70, Volume: 0.35},
		},
	}
}
