package pipeline

import "errors"

var (
	// ErrSchedulerClosed is returned by Scheduler.Pop when the pipeline is
	// shutting down and no message will ever arrive.
	ErrSchedulerClosed = errors.New("scheduler closed")

	// ErrEmptySynthesis is the drop reason logged when a TTS collaborator
	// returns no audio for otherwise well-formed text.
	ErrEmptySynthesis = errors.New("tts collaborator returned no audio")

	// ErrPlayerUnavailable indicates no supported audio-player executable
	// was found at startup; playback becomes a no-op rather than fatal.
	ErrPlayerUnavailable = errors.New("audio player unavailable")
)
</content>
