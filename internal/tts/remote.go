package tts

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"net/url"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// RemoteTTS streams synthesis requests to a voice backend over a websocket,
// adapted from the orchestrator's lokutor TTS provider: same connect-once,
// reconnect-on-error shape, but the wire payload here is raw little-endian
// float32 PCM rather than opaque audio-codec bytes, and the collaborator
// contract is synchronous (one text in, one sample buffer out) rather than
// the orchestrator's chunk-streaming callback.
type RemoteTTS struct {
	apiKey     string
	host       string
	sampleRate int

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewRemoteTTS builds a remote collaborator against host, authenticating with
// apiKey. sampleRate is the fixed rate this backend reports its audio at.
func NewRemoteTTS(host, apiKey string, sampleRate int) *RemoteTTS {
	return &RemoteTTS{host: host, apiKey: apiKey, sampleRate: sampleRate}
}

func (t *RemoteTTS) Initialize(ctx context.Context) error {
	_, err := t.getConn(ctx)
	return err
}

func (t *RemoteTTS) getConn(ctx context.Context) (*websocket.Conn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return t.conn, nil
	}

	u := url.URL{Scheme: "wss", Host: t.host, Path: "/ws/tts", RawQuery: "api_key=" + t.apiKey}
	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("tts: failed to connect to %s: %w", t.host, err)
	}
	t.conn = conn
	return conn, nil
}

func (t *RemoteTTS) Synthesize(ctx context.Context, text, voice, lang string) ([]float32, error) {
	conn, err := t.getConn(ctx)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	req := map[string]interface{}{
		"text":  text,
		"voice": voice,
		"lang":  lang,
	}
	if err := wsjson.Write(ctx, conn, req); err != nil {
		t.conn = nil
		conn.Close(websocket.StatusAbnormalClosure, "failed to write json")
		return nil, fmt.Errorf("tts: failed to send synthesis request: %w", err)
	}

	var samples []float32
	for {
		messageType, payload, err := conn.Read(ctx)
		if err != nil {
			t.conn = nil
			conn.Close(websocket.StatusAbnormalClosure, "failed to read")
			return nil, fmt.Errorf("tts: failed to read from backend: %w", err)
		}

		switch messageType {
		case websocket.MessageBinary:
			samples = append(samples, decodeFloat32LE(payload)...)
		case websocket.MessageText:
			msg := string(payload)
			if msg == "EOS" {
				return samples, nil
			}
			if len(msg) >= 4 && msg[:4] == "ERR:" {
				return nil, fmt.Errorf("tts: backend error: %s", msg)
			}
		}
	}
}

func (t *RemoteTTS) SampleRate() int { return t.sampleRate }

func (t *RemoteTTS) Cleanup() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		err := t.conn.Close(websocket.StatusNormalClosure, "")
		t.conn = nil
		return err
	}
	return nil
}

func decodeFloat32LE(b []byte) []float32 {
	n := len(b) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}
</content>
