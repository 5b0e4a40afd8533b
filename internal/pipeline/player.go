package pipeline

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/logging"
)

// State is the Player's position in the state machine from SPEC_FULL.md §4.4.
type State int

const (
	Idle State = iota
	Playing
	Interrupting
	Terminal
)

// launcher is the subset of *Launcher the Player depends on. Extracted as an
// interface so tests can substitute a fake audio-player process.
type launcher interface {
	Start(path string) (Process, <-chan error, error)
	PlayBlocking(path string, maxWait time.Duration) error
}

const chimeMaxWait = 500 * time.Millisecond

// Player consumes ReadyAudio records and drives the external audio-player
// subprocess, implementing gap-free interrupts: an in-progress utterance is
// only terminated once a successor's audio is fully synthesized, and the
// transition chime plays between the terminated utterance and its successor.
type Player struct {
	ready     <-chan ReadyAudio
	launcher  launcher
	interrupt bool
	minDur    time.Duration

	chimePath    string
	chimeEnabled bool

	logger logging.Logger

	mu          sync.Mutex
	state       State
	currentPath string
	startTime   time.Time
}

// NewPlayer builds a Player draining ready. l may be nil, in which case
// DiscoverPlayer was unable to find a player executable — all playback
// becomes a no-op per SPEC_FULL.md §7: Run logs and discards each utterance.
func NewPlayer(ready <-chan ReadyAudio, l launcher, interrupt bool, minDuration time.Duration, chimePath string, chimeEnabled bool, logger logging.Logger) *Player {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Player{
		ready:        ready,
		launcher:     l,
		interrupt:    interrupt,
		minDur:       minDuration,
		chimePath:    chimePath,
		chimeEnabled: chimeEnabled,
		logger:       logger,
		state:        Idle,
	}
}

// Run drains ready until ctx is done or the channel is closed, driving the
// state machine one utterance at a time. A successor picked up while an
// utterance plays but before MIN_DURATION elapses is carried forward to the
// next loop iteration rather than lost.
func (p *Player) Run(ctx context.Context) {
	var pending *ReadyAudio
	for {
		var ra ReadyAudio
		if pending != nil {
			ra = *pending
			pending = nil
		} else {
			select {
			case <-ctx.Done():
				p.setState(Terminal)
				return
			case r, ok := <-p.ready:
				if !ok {
					p.setState(Terminal)
					return
				}
				ra = r
			}
		}

		if p.launcher == nil {
			p.logger.Error("no audio player available, dropping utterance", "messageID", ra.MessageID, "error", ErrPlayerUnavailable)
			_ = os.Remove(ra.Path)
			continue
		}

		pending = p.playOne(ctx, ra)
	}
}

// playOne plays one ReadyAudio to completion (natural exit or interrupt) and
// returns the successor it took from the ready buffer during playback, if
// any, to play next — after an interrupt or after a natural exit.
func (p *Player) playOne(ctx context.Context, ra ReadyAudio) *ReadyAudio {
	proc, done, err := p.launcher.Start(ra.Path)
	if err != nil {
		p.logger.Error("failed to launch audio player", "messageID", ra.MessageID, "error", err)
		_ = os.Remove(ra.Path)
		return nil
	}
	p.beginPlaying(ra.Path)

	var successor *ReadyAudio
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			p.finish()
			_ = os.Remove(ra.Path)
			return successor

		case <-ctx.Done():
			proc.Terminate(done, 100*time.Millisecond)
			p.finish()
			_ = os.Remove(ra.Path)
			if successor != nil {
				_ = os.Remove(successor.Path)
			}
			return nil

		case <-ticker.C:
			if successor == nil && p.interrupt {
				select {
				case r, ok := <-p.ready:
					if ok {
						successor = &r
					}
				default:
				}
			}

			if successor != nil && p.interrupt && p.elapsed() >= p.minDur {
				p.setState(Interrupting)
				p.logger.Info("interrupting utterance for successor", "messageID", ra.MessageID, "successorID", successor.MessageID)
				proc.Terminate(done, 100*time.Millisecond)
				if p.chimeEnabled && p.chimePath != "" {
					if err := p.launcher.PlayBlocking(p.chimePath, chimeMaxWait); err != nil {
						p.logger.Warn("chime playback failed", "error", err)
					}
				}
				p.finish()
				_ = os.Remove(ra.Path)
				return successor
			}
		}
	}
}

func (p *Player) beginPlaying(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = Playing
	p.currentPath = path
	p.startTime = time.Now()
}

func (p *Player) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = Idle
	p.currentPath = ""
}

func (p *Player) setState(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = s
}

func (p *Player) elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Since(p.startTime)
}

// State reports the Player's current position in the state machine.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
</content>
