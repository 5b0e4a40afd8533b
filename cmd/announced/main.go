// Command announced is the long-running local audio announcement service:
// it binds the loopback Ingress socket, wires the configured TTS
// collaborator and audio-player discovery, and runs the pipeline.Server
// until SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/config"
	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/logging"
	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/pipeline"
	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/tts"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "announced",
		Short: "Local audio announcement service for a coding-assistant workflow",
		Long: `announced accepts short text messages over a loopback TCP socket,
synthesizes them to speech with a neural TTS backend, and plays the
result through the host's audio subsystem, coordinating bursty
arrivals with queueing or latest-wins dispatch and gap-free
interrupts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnvFile()
			return run(cmd.Context(), config.FromViper(v))
		},
	}

	config.BindFlags(cmd.Flags(), v)
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel)

	collaborator, err := buildCollaborator(cfg)
	if err != nil {
		return fmt.Errorf("announced: %w", err)
	}

	srv, err := pipeline.New(cfg, collaborator, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	logger.Info("announced starting", "addr", addr, "dispatch", cfg.Dispatch, "ttsBackend", cfg.TTSBackend)

	if err := srv.Run(sigCtx, addr); err != nil {
		logger.Error("server exited with error", "error", err)
		return err
	}

	logger.Info("announced shut down cleanly")
	return nil
}

// buildCollaborator selects the TTS collaborator implementation named by
// cfg.TTSBackend. Only configuration errors (an unknown backend, or the
// remote backend without an API key) fail here — Initialize (called by
// pipeline.New) is where a real connection failure surfaces as a fatal
// startup error.
func buildCollaborator(cfg config.Config) (tts.Collaborator, error) {
	switch cfg.TTSBackend {
	case config.BackendLocal:
		return tts.NewLocalTTS(), nil
	case config.BackendRemote:
		if cfg.TTSAPIKey == "" {
			return nil, fmt.Errorf("--tts-backend remote requires ANNOUNCE_TTS_API_KEY to be set")
		}
		return tts.NewRemoteTTS(defaultRemoteHost, cfg.TTSAPIKey, remoteSampleRate), nil
	default:
		return nil, fmt.Errorf("unknown tts backend %q", cfg.TTSBackend)
	}
}

const (
	defaultRemoteHost = "api.lokutor.ai"
	remoteSampleRate  = 24000
)
</content>
