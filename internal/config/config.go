// Package config loads the announcement service's configuration from CLI
// flags, environment variables (ANNOUNCE_ prefix) and an optional .env file.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DispatchPolicy selects how the Scheduler handles pending messages.
type DispatchPolicy string

const (
	Queue      DispatchPolicy = "queue"
	LatestWins DispatchPolicy = "latest-wins"
)

// TTSBackend selects which TTS collaborator implementation the Synthesizer uses.
type TTSBackend string

const (
	BackendRemote TTSBackend = "remote"
	BackendLocal  TTSBackend = "local"
)

// Config is the fully resolved, process-wide configuration. Every field here
// traces back to a CLI flag or the docs in SPEC_FULL.md's CLI surface.
type Config struct {
	Port int

	Voice string
	Lang  string

	Interrupt         bool
	MinDuration       time.Duration
	Dispatch          DispatchPolicy
	MaxQueue          int
	InterruptChime    bool
	DropSound         bool
	TTSBackend        TTSBackend
	TTSAPIKey         string
	LogLevel          string
}

// Default returns the configuration in effect when no flags or env vars are set.
func Default() Config {
	return Config{
		Port:           20202,
		Voice:          "default",
		Lang:           "en",
		Interrupt:      true,
		MinDuration:    1500 * time.Millisecond,
		Dispatch:       Queue,
		MaxQueue:       10,
		InterruptChime: true,
		DropSound:      true,
		TTSBackend:     BackendRemote,
		LogLevel:       "info",
	}
}

// BindFlags registers every CLI flag named in SPEC_FULL.md's external
// interfaces section onto fs, and binds each one through v so that
// ANNOUNCE_-prefixed environment variables can also supply values. No
// config file is read.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) {
	def := Default()

	fs.Int("port", def.Port, "TCP port to listen on (loopback)")
	fs.String("voice", def.Voice, "TTS collaborator voice parameter")
	fs.String("lang", def.Lang, "TTS collaborator language parameter")
	fs.Bool("interrupt", def.Interrupt, "allow interrupting an in-progress utterance")
	fs.Bool("no-interrupt", !def.Interrupt, "disable interrupting an in-progress utterance")
	fs.Float64("min-duration", def.MinDuration.Seconds(), "minimum seconds an utterance plays before it may be interrupted")
	fs.Bool("queue", def.Dispatch == Queue, "use FIFO dispatch policy")
	fs.Bool("no-queue", def.Dispatch != Queue, "use latest-wins dispatch policy")
	fs.Int("max-queue", def.MaxQueue, "maximum pending messages before front-eviction")
	fs.Bool("interrupt-chime", def.InterruptChime, "play a transition chime on interrupt")
	fs.Bool("no-interrupt-chime", !def.InterruptChime, "suppress the transition chime on interrupt")
	fs.Bool("drop-sound", def.DropSound, "play a drop tone when a message is evicted")
	fs.Bool("no-drop-sound", !def.DropSound, "suppress the drop tone when a message is evicted")
	fs.String("tts-backend", string(def.TTSBackend), "TTS collaborator implementation: remote or local")
	fs.String("tts-api-key", "", "API key for the remote TTS collaborator (or ANNOUNCE_TTS_API_KEY)")
	fs.String("log-level", def.LogLevel, "zerolog level: debug, info, warn, error")

	v.SetEnvPrefix("ANNOUNCE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_ = v.BindPFlags(fs)
}

// LoadEnvFile loads a .env file if present, mirroring the teacher's
// best-effort godotenv.Load() call. A missing file is not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// FromViper resolves a Config from v after flags have been bound and parsed.
// The --no-* flags win over their positive counterpart only when explicitly
// set, so that "--no-interrupt" reliably disables interrupts regardless of
// flag declaration order.
func FromViper(v *viper.Viper) Config {
	cfg := Default()

	cfg.Port = v.GetInt("port")
	cfg.Voice = v.GetString("voice")
	cfg.Lang = v.GetString("lang")
	cfg.MinDuration = time.Duration(v.GetFloat64("min-duration") * float64(time.Second))
	cfg.MaxQueue = v.GetInt("max-queue")
	cfg.TTSBackend = TTSBackend(v.GetString("tts-backend"))
	cfg.LogLevel = v.GetString("log-level")
	cfg.TTSAPIKey = v.GetString("tts-api-key")

	cfg.Interrupt = v.GetBool("interrupt")
	if v.GetBool("no-interrupt") {
		cfg.Interrupt = false
	}

	cfg.Dispatch = Queue
	if v.GetBool("no-queue") {
		cfg.Dispatch = LatestWins
	}
	if v.IsSet("queue") && !v.GetBool("queue") {
		cfg.Dispatch = LatestWins
	}

	cfg.InterruptChime = v.GetBool("interrupt-chime")
	if v.GetBool("no-interrupt-chime") {
		cfg.InterruptChime = false
	}

	cfg.DropSound = v.GetBool("drop-sound")
	if v.GetBool("no-drop-sound") {
		cfg.DropSound = false
	}

	return cfg
}
</content>
