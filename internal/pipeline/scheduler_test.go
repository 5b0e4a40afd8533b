package pipeline

import (
	"sync"
	"testing"
	"time"

	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/config"
)

func TestSchedulerQueueFIFO(t *testing.T) {
	s := NewScheduler(config.Queue, 10, nil, nil)
	s.Submit(Message{ID: "a", Text: "a"})
	s.Submit(Message{ID: "b", Text: "b"})

	first, err := s.Pop()
	if err != nil || first.ID != "a" {
		t.Fatalf("expected a first, got %+v err=%v", first, err)
	}
	second, err := s.Pop()
	if err != nil || second.ID != "b" {
		t.Fatalf("expected b second, got %+v err=%v", second, err)
	}
}

func TestSchedulerQueueFrontEviction(t *testing.T) {
	var dropped []Message
	var mu sync.Mutex
	onDrop := func(m Message) {
		mu.Lock()
		dropped = append(dropped, m)
		mu.Unlock()
	}

	s := NewScheduler(config.Queue, 2, onDrop, nil)
	s.Submit(Message{ID: "1"})
	s.Submit(Message{ID: "2"})
	s.Submit(Message{ID: "3"})
	s.Submit(Message{ID: "4"})

	if got := s.Len(); got != 2 {
		t.Fatalf("expected 2 pending messages, got %d", got)
	}

	mu.Lock()
	dropCount := len(dropped)
	mu.Unlock()
	if dropCount != 2 {
		t.Fatalf("expected 2 drops, got %d", dropCount)
	}

	first, _ := s.Pop()
	second, _ := s.Pop()
	if first.ID != "3" || second.ID != "4" {
		t.Fatalf("expected FIFO suffix 3,4 got %s,%s", first.ID, second.ID)
	}
}

func TestSchedulerLatestWinsKeepsOne(t *testing.T) {
	var dropped []Message
	onDrop := func(m Message) { dropped = append(dropped, m) }

	s := NewScheduler(config.LatestWins, 10, onDrop, nil)
	s.Submit(Message{ID: "a"})
	s.Submit(Message{ID: "b"})
	s.Submit(Message{ID: "c"})

	if got := s.Len(); got != 1 {
		t.Fatalf("expected at most 1 pending message, got %d", got)
	}
	if len(dropped) != 2 {
		t.Fatalf("expected 2 drops, got %d", len(dropped))
	}

	msg, err := s.Pop()
	if err != nil || msg.ID != "c" {
		t.Fatalf("expected c to survive, got %+v err=%v", msg, err)
	}
}

func TestSchedulerPopBlocksUntilSubmit(t *testing.T) {
	s := NewScheduler(config.Queue, 10, nil, nil)
	result := make(chan Message, 1)
	go func() {
		msg, err := s.Pop()
		if err == nil {
			result <- msg
		}
	}()

	select {
	case <-result:
		t.Fatal("Pop returned before any Submit")
	case <-time.After(20 * time.Millisecond):
	}

	s.Submit(Message{ID: "x"})

	select {
	case msg := <-result:
		if msg.ID != "x" {
			t.Fatalf("expected x, got %s", msg.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("Pop never returned after Submit")
	}
}

func TestSchedulerCloseUnblocksPop(t *testing.T) {
	s := NewScheduler(config.Queue, 10, nil, nil)
	done := make(chan error, 1)
	go func() {
		_, err := s.Pop()
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	s.Close()

	select {
	case err := <-done:
		if err != ErrSchedulerClosed {
			t.Fatalf("expected ErrSchedulerClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Pop never unblocked after Close")
	}
}
</content>
