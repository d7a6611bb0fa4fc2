// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"sync"

	"github.com/google/uuid"
)

// draftLocks serializes mutations per draft. Entries are reference counted
// and dropped when the last holder unlocks.
type draftLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*draftLock
}

type draftLock struct {
	mu   sync.Mutex
	refs int
}

func newDraftLocks() *draftLocks {
	return &draftLocks{locks: make(map[uuid.UUID]*draftLock)}
}

// lock blocks until id is free and returns the matching unlock.
func (l *draftLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	dl, ok := l.locks[id]
	if !ok {
		dl = &draftLock{}
		l.locks[id] = dl
	}
	dl.refs++
	l.mu.Unlock()

	dl.mu.Lock()
	return func() {
		dl.mu.Unlock()
		l.mu.Lock()
		dl.refs--
		if dl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *draftLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
