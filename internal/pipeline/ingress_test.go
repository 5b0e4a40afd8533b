package pipeline

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/config"
)

func TestIngressPingPong(t *testing.T) {
	sched := NewScheduler(config.Queue, 10, nil, nil)
	in, err := Listen("127.0.0.1:0", sched, nil)
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go in.Serve(ctx)

	for i := 0; i < 3; i++ {
		conn, err := net.Dial("tcp", in.Addr().String())
		if err != nil {
			t.Fatalf("dial %d failed: %v", i, err)
		}
		if _, err := conn.Write([]byte("ping")); err != nil {
			t.Fatalf("write ping failed: %v", err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		buf := make([]byte, 16)
		n, err := conn.Read(buf)
		conn.Close()
		if err != nil {
			t.Fatalf("read pong failed: %v", err)
		}
		if got := string(buf[:n]); got != "pong" {
			t.Fatalf("expected pong, got %q", got)
		}
	}

	if sched.Len() != 0 {
		t.Fatalf("ping should not admit a message, pending=%d", sched.Len())
	}
}

func TestIngressAdmitsText(t *testing.T) {
	sched := NewScheduler(config.Queue, 10, nil, nil)
	in, err := Listen("127.0.0.1:0", sched, nil)
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go in.Serve(ctx)

	conn, err := net.Dial("tcp", in.Addr().String())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	if _, err := conn.Write([]byte("  hello world  ")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	conn.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if sched.Len() == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	msg, err := sched.Pop()
	if err != nil {
		t.Fatalf("expected a pending message: %v", err)
	}
	if msg.Text != "hello world" {
		t.Fatalf("expected trimmed text %q, got %q", "hello world", msg.Text)
	}
}

func TestIngressDropsEmptyPayload(t *testing.T) {
	sched := NewScheduler(config.Queue, 10, nil, nil)
	in, err := Listen("127.0.0.1:0", sched, nil)
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go in.Serve(ctx)

	conn, err := net.Dial("tcp", in.Addr().String())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	if _, err := conn.Write([]byte("   ")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	conn.Close()

	time.Sleep(50 * time.Millisecond)
	if sched.Len() != 0 {
		t.Fatalf("expected empty payload to be dropped, pending=%d", sched.Len())
	}
}
</content>
