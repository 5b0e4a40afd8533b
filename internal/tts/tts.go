// Package tts defines the TTS collaborator interface the Synthesizer
// consumes and two concrete implementations: a websocket-streaming remote
// voice and a deterministic local stub for tests and offline smoke runs.
package tts

import "context"

// Collaborator is the TTS backend the Synthesizer invokes for each pending
// Message. Synthesize returning a nil or empty slice means "no audio" — the
// Synthesizer treats that the same as an error: drop the message.
type Collaborator interface {
	Initialize(ctx context.Context) error
	Synthesize(ctx context.Context, text, voice, lang string) ([]float32, error)
	SampleRate() int
	Cleanup() error
}
</content>
