package pipeline

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/config"
	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/logging"
	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/tts"
)

// readyBufferDepth matches SPEC_FULL.md §3: the ReadyBuffer is in practice
// bounded to a small number because the Synthesizer processes one at a time
// and the Player drains eagerly.
const readyBufferDepth = 2

// Server owns every component's state — PendingBuffer, ReadyBuffer,
// PlayerState, SoundAssets — as fields of one value constructed at startup,
// per SPEC_FULL.md §9's guidance against module-level singletons. This makes
// shutdown deterministic and embedded testing straightforward.
type Server struct {
	cfg    config.Config
	logger logging.Logger

	scheduler   *Scheduler
	synthesizer *Synthesizer
	player      *Player
	ingress     *Ingress
	assets      *Assets

	collaborator tts.Collaborator
	playerLauncher *Launcher
}

// New wires a Server from cfg: it discovers the audio player (non-fatal if
// absent), generates the sound assets, and constructs the Scheduler,
// Synthesizer and Player around collaborator. It does not bind the listener
// — Run does that, so startup failures (port already in use) surface
// separately from construction failures (TTS init).
func New(cfg config.Config, collaborator tts.Collaborator, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	if err := collaborator.Initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("tts collaborator initialization failed: %w", err)
	}

	assets, err := InitAssets()
	if err != nil {
		return nil, err
	}

	launcher, err := DiscoverPlayer()
	if err != nil {
		logger.Error("no audio player executable found; playback will be a no-op", "error", err)
		launcher = nil
	}

	var dropSoundPath string
	if cfg.DropSound {
		dropSoundPath = assets.DropPath
	}

	scheduler := NewScheduler(cfg.Dispatch, cfg.MaxQueue, func(m Message) {
		if dropSoundPath == "" || launcher == nil {
			return
		}
		if err := launcher.PlayFireAndForget(dropSoundPath); err != nil {
			logger.Debug("drop-tone playback failed", "error", err)
		}
	}, logger)

	ready := make(chan ReadyAudio, readyBufferDepth)
	synthesizer := NewSynthesizer(scheduler, collaborator, cfg.Voice, cfg.Lang, ready, logger)

	chimePath := ""
	if cfg.InterruptChime {
		chimePath = assets.ChimePath
	}
	player := NewPlayer(ready, launcherOrNil(launcher), cfg.Interrupt, cfg.MinDuration, chimePath, cfg.InterruptChime, logger)

	return &Server{
		cfg:            cfg,
		logger:         logger,
		scheduler:      scheduler,
		synthesizer:    synthesizer,
		player:         player,
		assets:         assets,
		collaborator:   collaborator,
		playerLauncher: launcher,
	}, nil
}

// launcherOrNil adapts a possibly-nil *Launcher to the launcher interface:
// a nil *Launcher boxed in an interface is not itself a nil interface, so
// NewPlayer's "if l == nil" check needs an actual nil interface value.
func launcherOrNil(l *Launcher) launcher {
	if l == nil {
		return nil
	}
	return l
}

// Run binds addr and runs Ingress, the Synthesizer and the Player until ctx
// is canceled, then drains: the listener stops accepting, the workers exit
// at their next suspension point, any active player child is terminated,
// and all temp files (ready-audio and sound assets) are unlinked.
func (s *Server) Run(ctx context.Context, addr string) error {
	ingress, err := Listen(addr, s.scheduler, s.logger)
	if err != nil {
		return err
	}
	s.ingress = ingress

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		ingress.Serve(ctx)
	}()
	go func() {
		defer wg.Done()
		s.synthesizer.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		s.player.Run(ctx)
	}()

	<-ctx.Done()
	s.scheduler.Close()
	wg.Wait()

	// Ready audio still buffered once both workers have stopped has no other
	// owner left; unlink it here.
	for drained := false; !drained; {
		select {
		case ra := <-s.player.ready:
			_ = os.Remove(ra.Path)
		default:
			drained = true
		}
	}

	s.assets.Close()
	if err := s.collaborator.Cleanup(); err != nil {
		s.logger.Debug("tts collaborator cleanup failed", "error", err)
	}
	return nil
}

// Addr returns the bound listener address once Run has started; nil before
// that.
func (s *Server) Addr() net.Addr {
	if s.ingress == nil {
		return nil
	}
	return s.ingress.Addr()
}
</content>
