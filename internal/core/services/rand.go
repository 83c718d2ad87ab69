package services

import (
	"math/rand"
	"sync"
)

// lockedRand serializes access to one rand.Rand. HTTP handlers run on
// separate goroutines and rand.Rand is not safe for concurrent use, so
// every component wraps its injected source in one of these. The source
// itself must not be shared across components: each wrapper owns its lock.
type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

func newLockedRand(src *rand.Rand) *lockedRand {
	return &lockedRand{src: src}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}

func (l *lockedRand) Perm(n int) []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Perm(n)
}
