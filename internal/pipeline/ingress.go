package pipeline

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/logging"
)

const (
	readBufferBytes = 4 * 1024
	readDeadline    = 300 * time.Millisecond
	pingPayload     = "ping"
	pongPayload     = "pong"
)

// Ingress accepts loopback TCP connections, answers ping/pong liveness
// checks, and admits everything else as a Message to the Scheduler.
type Ingress struct {
	listener  net.Listener
	scheduler *Scheduler
	logger    logging.Logger
}

// Listen binds addr (e.g. "127.0.0.1:20202") and returns an Ingress ready to
// Serve. Binding is separated from serving so startup failures (port already
// bound) surface to the caller before any goroutines start.
func Listen(addr string, scheduler *Scheduler, logger logging.Logger) (*Ingress, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Ingress{listener: ln, scheduler: scheduler, logger: logger}, nil
}

// Addr returns the bound address, useful when port 0 was requested.
func (in *Ingress) Addr() net.Addr { return in.listener.Addr() }

// Serve accepts connections until ctx is done or the listener is closed.
// Each connection is handled in its own goroutine and never blocks the
// Scheduler: handing off text is an atomic insert plus a condition signal.
func (in *Ingress) Serve(ctx context.Context) {
	go func() {
		<-ctx.Done()
		_ = in.listener.Close()
	}()

	for {
		conn, err := in.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			in.logger.Warn("accept failed", "error", err)
			continue
		}
		go in.handleConn(conn)
	}
}

func (in *Ingress) handleConn(conn net.Conn) {
	defer conn.Close()

	requestID := uuid.NewString()[:8]

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		in.logger.Debug("failed to set read deadline", "requestID", requestID, "error", err)
	}

	// A single Read bounded by readBufferBytes and readDeadline: bytes that
	// arrive after it returns are not read, so a payload sent in several
	// segments (e.g. by a slow writer) can be truncated.
	buf := make([]byte, readBufferBytes)
	n, err := conn.Read(buf)
	if err != nil && err != io.EOF && n == 0 {
		in.logger.Debug("client read failed", "requestID", requestID, "error", err)
		return
	}

	trimmed := strings.TrimSpace(string(buf[:n]))

	if trimmed == pingPayload {
		if _, err := conn.Write([]byte(pongPayload)); err != nil {
			in.logger.Debug("failed to write pong", "requestID", requestID, "error", err)
		}
		return
	}

	if trimmed == "" {
		return
	}

	text := strings.ToValidUTF8(trimmed, "")
	in.logger.Info("message admitted", "requestID", requestID, "length", len(text))
	in.scheduler.Submit(Message{
		ID:        uuid.NewString(),
		Text:      text,
		ArrivedAt: time.Now(),
	})
}
</content>
