package pipeline

import (
	"fmt"
	"os"

	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/audio"
)

// Assets owns the two procedurally-generated sound files (chime, drop tone):
// created once at startup, read-only afterward, removed on Close.
type Assets struct {
	ChimePath string
	DropPath  string
}

// InitAssets synthesizes the chime and drop tone and writes them to the OS
// temp directory.
func InitAssets() (*Assets, error) {
	chime, err := writeAsset("chime", audio.GenerateChime(audio.DefaultSampleRate))
	if err != nil {
		return nil, fmt.Errorf("failed to write chime asset: %w", err)
	}
	drop, err := writeAsset("drop", audio.GenerateDropTone(audio.DefaultSampleRate))
	if err != nil {
		_ = os.Remove(chime)
		return nil, fmt.Errorf("failed to write drop-tone asset: %w", err)
	}
	return &Assets{ChimePath: chime, DropPath: drop}, nil
}

func writeAsset(name string, samples []float32) (string, error) {
	wav := audio.EncodeFloat32Mono(samples, audio.DefaultSampleRate)
	f, err := os.CreateTemp("", fmt.Sprintf("announce-%s-*.wav", name))
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

// Close removes both asset files. Safe to call once; a missing file is not
// an error.
func (a *Assets) Close() {
	_ = os.Remove(a.ChimePath)
	_ = os.Remove(a.DropPath)
}
</content>
