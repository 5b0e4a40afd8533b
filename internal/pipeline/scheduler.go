package pipeline

import (
	"sync"

	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/config"
	"github.com/jordangarside/claude-code-kokoru-tts-summary/internal/logging"
)

// Scheduler owns the PendingBuffer: an ordered sequence of Messages bounded
// by maxQueue, protected by a single mutex with a condition variable waking
// a parked Synthesizer. A plain channel is deliberately not used here — the
// eviction policies need ordered inspection and front-eviction, which a
// channel cannot offer.
type Scheduler struct {
	mu   sync.Mutex
	cond *sync.Cond

	policy   config.DispatchPolicy
	maxQueue int
	pending  []Message
	closed   bool

	onDrop func(Message)
	logger logging.Logger
}

// NewScheduler builds a Scheduler enforcing policy and maxQueue. onDrop, if
// non-nil, is invoked (outside the lock) once per evicted message — the
// Server wires this to fire-and-forget drop-tone playback.
func NewScheduler(policy config.DispatchPolicy, maxQueue int, onDrop func(Message), logger logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	s := &Scheduler{policy: policy, maxQueue: maxQueue, onDrop: onDrop, logger: logger}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Submit admits msg into the PendingBuffer, applying the configured dispatch
// policy and backlog bound. Evicted messages are reported via onDrop after
// the lock is released.
func (s *Scheduler) Submit(msg Message) {
	s.mu.Lock()

	var evicted []Message

	if s.policy == config.LatestWins {
		evicted = append(evicted, s.pending...)
		s.pending = []Message{msg}
	} else {
		s.pending = append(s.pending, msg)
		for len(s.pending) > s.maxQueue {
			evicted = append(evicted, s.pending[0])
			s.pending = s.pending[1:]
		}
	}

	s.mu.Unlock()
	s.cond.Signal()

	for _, m := range evicted {
		s.logger.Info("message evicted from pending buffer", "messageID", m.ID, "policy", s.policy)
		if s.onDrop != nil {
			s.onDrop(m)
		}
	}
}

// Pop blocks until the PendingBuffer is non-empty or the Scheduler is
// closed, then removes and returns one Message per the dispatch policy
// (front of the queue in queue mode; the sole entry in latest-wins mode —
// the two coincide since latest-wins never holds more than one message).
func (s *Scheduler) Pop() (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.pending) == 0 && !s.closed {
		s.cond.Wait()
	}
	if len(s.pending) == 0 {
		return Message{}, ErrSchedulerClosed
	}

	msg := s.pending[0]
	s.pending = s.pending[1:]
	return msg, nil
}

// Len reports the current PendingBuffer length.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close wakes any parked Pop call and causes subsequent Pop calls to return
// ErrSchedulerClosed once the buffer drains.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cond.Broadcast()
}
</content>
