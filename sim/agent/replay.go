package agent

import (
	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Transition is one on-policy step: the agent took Action in State, earned
// Reward, and then would take NextAction in Next.
type Transition struct {
	State      StateKey
	Action     int
	Reward     float64
	Next       StateKey
	NextAction int
}

// ReplayBuffer is a fixed-capacity ring of transitions. Once full, each push
// overwrites the oldest entry.
type ReplayBuffer struct {
	buf  []Transition
	head int // next write position
	full bool
}

// NewReplayBuffer creates a buffer holding at most capacity transitions.
func NewReplayBuffer(capacity int) *ReplayBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &ReplayBuffer{buf: make([]Transition, capacity)}
}

// Push appends tr, evicting the oldest transition when the ring is full.
func (rb *ReplayBuffer) Push(tr Transition) {
	rb.buf[rb.head] = tr
	rb.head++
	if rb.head == len(rb.buf) {
		rb.head = 0
		rb.full = true
	}
}

// Len returns the number of transitions held.
func (rb *ReplayBuffer) Len() int {
	if rb.full {
		return len(rb.buf)
	}
	return rb.head
}

// Cap returns the ring capacity.
func (rb *ReplayBuffer) Cap() int {
	return len(rb.buf)
}

// Sample draws n distinct transitions uniformly. It returns nil when fewer
// than n are held.
func (rb *ReplayBuffer) Sample(n int, src erand.Source) []Transition {
	size := rb.Len()
	if n <= 0 || n > size {
		return nil
	}
	idxs := make([]int, n)
	sampleuv.WithoutReplacement(idxs, size, src)
	out := make([]Transition, n)
	for i, idx := range idxs {
		out[i] = rb.buf[idx]
	}
	return out
}
