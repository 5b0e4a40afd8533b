package tts

import (
	"context"
	"math"
	"strings"
)

const (
	localSampleRate = 24000
	localToneHz     = 440.0
	localMinSamples = 24000 / 5 // 200ms floor, so even single words are audible
	localPerCharMs  = 35
)

// LocalTTS is a deterministic, offline stand-in for a real voice backend: it
// renders a fixed-pitch tone whose duration scales with the input length.
// It exists so the pipeline can be smoke-tested end to end (--tts-backend
// local) without a network dependency, grounded on the same "no external
// model" approach the procedural sound assets already take.
type LocalTTS struct{}

// NewLocalTTS constructs a LocalTTS collaborator.
func NewLocalTTS() *LocalTTS { return &LocalTTS{} }

func (l *LocalTTS) Initialize(ctx context.Context) error { return nil }

func (l *LocalTTS) Synthesize(ctx context.Context, text, voice, lang string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	n := len(text) * localPerCharMs * localSampleRate / 1000
	if n < localMinSamples {
		n = localMinSamples
	}

	samples := make([]float32, n)
	attack := n / 20
	for i := range samples {
		t := float64(i) / float64(localSampleRate)
		env := 1.0
		if i < attack {
			env = float64(i) / float64(attack)
		}
		if rem := n - i; rem < attack {
			env *= float64(rem) / float64(attack)
		}
		samples[i] = float32(0.3 * env * math.Sin(2*math.Pi*localToneHz*t))
	}
	return samples, nil
}

func (l *LocalTTS) SampleRate() int { return localSampleRate }

func (l *LocalTTS) Cleanup() error { return nil }
</content>
