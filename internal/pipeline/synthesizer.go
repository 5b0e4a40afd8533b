package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/audio"
	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/logging"
	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/tts"
)

// Synthesizer is the sole off-axis worker: it pulls one Message at a time
// off the Scheduler, invokes the TTS collaborator, and pushes a ReadyAudio
// record for the Player. Running exactly one Synthesizer goroutine is the
// "at most one synthesis in flight" invariant — do not parallelize this.
type Synthesizer struct {
	scheduler    *Scheduler
	collaborator tts.Collaborator
	voice, lang  string
	ready        chan<- ReadyAudio
	logger       logging.Logger
	tempDir      string
}

// NewSynthesizer builds a Synthesizer that writes ReadyAudio records to ready.
func NewSynthesizer(scheduler *Scheduler, collaborator tts.Collaborator, voice, lang string, ready chan<- ReadyAudio, logger logging.Logger) *Synthesizer {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Synthesizer{
		scheduler:    scheduler,
		collaborator: collaborator,
		voice:        voice,
		lang:         lang,
		ready:        ready,
		logger:       logger,
		tempDir:      os.TempDir(),
	}
}

// Run loops until the Scheduler is closed or ctx is done, synthesizing one
// Message at a time.
func (s *Synthesizer) Run(ctx context.Context) {
	for {
		msg, err := s.scheduler.Pop()
		if err != nil {
			if errors.Is(err, ErrSchedulerClosed) {
				return
			}
			s.logger.Error("scheduler pop failed", "error", err)
			return
		}
		if ctx.Err() != nil {
			return
		}

		s.synthesizeOne(ctx, msg)
	}
}

func (s *Synthesizer) synthesizeOne(ctx context.Context, msg Message) {
	samples, err := s.collaborator.Synthesize(ctx, msg.Text, s.voice, s.lang)
	if err != nil {
		s.logger.Warn("tts synthesis failed, dropping message", "messageID", msg.ID, "error", err)
		return
	}
	if len(samples) == 0 {
		s.logger.Warn("tts synthesis returned no audio, dropping message", "messageID", msg.ID, "error", ErrEmptySynthesis)
		return
	}

	path, err := s.writeWav(samples)
	if err != nil {
		s.logger.Warn("failed to write synthesized audio, dropping message", "messageID", msg.ID, "error", err)
		return
	}

	ready := ReadyAudio{MessageID: msg.ID, Path: path, Text: msg.Text}
	select {
	case s.ready <- ready:
	case <-ctx.Done():
		_ = os.Remove(path)
	}
}

func (s *Synthesizer) writeWav(samples []float32) (string, error) {
	wav := audio.EncodeFloat32Mono(samples, s.collaborator.SampleRate())

	f, err := os.CreateTemp(s.tempDir, fmt.Sprintf("announce-%s-*.wav", uuid.NewString()[:8]))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(wav); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
</content>
