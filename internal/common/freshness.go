package common

import (
	"sync"
	"time"
)

// Generations hands out monotonically increasing request tokens per key so that
// a slow response cannot overwrite state set by a later request for the same key.
// A request that fails never commits, so it does not block older in-flight ones.
//
//	tok := g.Begin(userID)
//	snap, err := fetch(ctx)
//	if err == nil { g.Commit(userID, tok, func() { cache[userID] = snap }) }
type Generations struct {
	mu        sync.Mutex
	latest    map[string]uint64
	committed map[string]uint64
}

// NewGenerations creates an empty generation tracker
func NewGenerations() *Generations {
	return &Generations{
		latest:    make(map[string]uint64),
		committed: make(map[string]uint64),
	}
}

// Begin starts a new request generation for key and returns its token.
func (g *Generations) Begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest[key]++
	return g.latest[key]
}

// Commit runs apply only if token is newer than the last committed generation
// for key. The check and apply happen under one lock.
func (g *Generations) Commit(key string, token uint64, apply func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if token <= g.committed[key] {
		return false
	}
	g.committed[key] = token
	apply()
	return true
}

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
