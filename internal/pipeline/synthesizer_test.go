package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/config"
)

type fakeCollaborator struct {
	sampleRate int
	synthesize func(text string) ([]float32, error)
	calls      []string
}

func (f *fakeCollaborator) Initialize(ctx context.Context) error { return nil }

func (f *fakeCollaborator) Synthesize(ctx context.Context, text, voice, lang string) ([]float32, error) {
	f.calls = append(f.calls, text)
	return f.synthesize(text)
}

func (f *fakeCollaborator) SampleRate() int { return f.sampleRate }
func (f *fakeCollaborator) Cleanup() error  { return nil }

func TestSynthesizerProducesReadyAudio(t *testing.T) {
	collab := &fakeCollaborator{
		sampleRate: 24000,
		synthesize: func(text string) ([]float32, error) {
			return []float32{0.1, 0.2, -0.1}, nil
		},
	}
	scheduler := NewScheduler(config.Queue, 10, nil, nil)
	ready := make(chan ReadyAudio, 1)
	synth := NewSynthesizer(scheduler, collab, "default", "en", ready, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go synth.Run(ctx)

	scheduler.Submit(Message{ID: "1", Text: "hello"})

	select {
	case r := <-ready:
		if r.MessageID != "1" || r.Text != "hello" {
			t.Fatalf("unexpected ready audio: %+v", r)
		}
		defer os.Remove(r.Path)
		if _, err := os.Stat(r.Path); err != nil {
			t.Fatalf("expected wav file to exist: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("synthesizer never produced ready audio")
	}

	scheduler.Close()
}

func TestSynthesizerDropsOnEmptyAudio(t *testing.T) {
	collab := &fakeCollaborator{
		sampleRate: 24000,
		synthesize: func(text string) ([]float32, error) { return nil, nil },
	}
	scheduler := NewScheduler(config.Queue, 10, nil, nil)
	ready := make(chan ReadyAudio, 1)
	synth := NewSynthesizer(scheduler, collab, "default", "en", ready, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go synth.Run(ctx)

	scheduler.Submit(Message{ID: "1", Text: "silence"})

	select {
	case r := <-ready:
		t.Fatalf("expected no ready audio for empty synthesis, got %+v", r)
	case <-time.After(100 * time.Millisecond):
	}
	scheduler.Close()
}

func TestSynthesizerDropsOnError(t *testing.T) {
	collab := &fakeCollaborator{
		sampleRate: 24000,
		synthesize: func(text string) ([]float32, error) { return nil, errors.New("backend down") },
	}
	scheduler := NewScheduler(config.Queue, 10, nil, nil)
	ready := make(chan ReadyAudio, 1)
	synth := NewSynthesizer(scheduler, collab, "default", "en", ready, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go synth.Run(ctx)

	scheduler.Submit(Message{ID: "1", Text: "boom"})

	select {
	case r := <-ready:
		t.Fatalf("expected no ready audio on synthesis error, got %+v", r)
	case <-time.After(100 * time.Millisecond):
	}
	scheduler.Close()
}
</content>
