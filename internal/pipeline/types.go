// Package pipeline implements the announcement pipeline: Ingress, Scheduler,
// Synthesizer, Player and Sound Assets, wired together by a Server value.
package pipeline

import "time"

// Message is a unit of work admitted by Ingress and consumed by the
// Synthesizer.
type Message struct {
	ID        string
	Text      string
	ArrivedAt time.Time
}

// ReadyAudio is a unit of work produced by the Synthesizer and consumed by
// the Player. Path is owned by this record: whoever holds it is responsible
// for unlinking the file exactly once.
type ReadyAudio struct {
	MessageID string
	Path      string
	Text      string
}
</content>
