// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pagesmith/internal/models"
)

const (
	// DefaultDraftTTL is how long an untouched draft is kept.
	DefaultDraftTTL = 24 * time.Hour

	draftKeyPrefix = "draft:"
)

// ErrDraftNotFound is returned for unknown or expired drafts.
var ErrDraftNotFound = errors.New("draft not found")

// DraftStore persists drafts between requests. Every Save resets the TTL.
type DraftStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Draft, error)
	Save(ctx context.Context, d *models.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ValkeyDrafts stores drafts as JSON in Valkey with automatic TTL expiry.
type ValkeyDrafts struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeyDrafts creates a draft store backed by the given Valkey client.
func NewValkeyDrafts(client *redis.Client, ttl time.Duration) *ValkeyDrafts {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &ValkeyDrafts{client: client, ttl: ttl}
}

func (s *ValkeyDrafts) Get(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	payload, err := s.client.Get(ctx, draftKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("draft get: %w", err)
	}
	return decodeDraft(payload)
}

func (s *ValkeyDrafts) Save(ctx context.Context, d *models.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft marshal: %w", err)
	}
	if err := s.client.Set(ctx, draftKeyPrefix+d.ID.String(), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("draft store: %w", err)
	}
	return nil
}

func (s *ValkeyDrafts) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.client.Del(ctx, draftKeyPrefix+id.String()).Result()
	if err != nil {
		return fmt.Errorf("draft delete: %w", err)
	}
	if n == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// MemoryDrafts keeps drafts in process memory. Entries are stored in their
// JSON form, so callers never share state with the store.
type MemoryDrafts struct {
	mu    sync.Mutex
	items map[uuid.UUID]memEntry
	ttl   time.Duration
	now   func() time.Time
}

type memEntry struct {
	payload []byte
	expires time.Time
}

// NewMemoryDrafts creates an in-memory draft store.
func NewMemoryDrafts(ttl time.Duration) *MemoryDrafts {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &MemoryDrafts{items: make(map[uuid.UUID]memEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryDrafts) Get(_ context.Context, id uuid.UUID) (*models.Draft, error) {
	s.mu.Lock()
	e, ok := s.items[id]
	if ok && !s.now().Before(e.expires) {
		delete(s.items, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrDraftNotFound
	}
	return decodeDraft(e.payload)
}

func (s *MemoryDrafts) Save(_ context.Context, d *models.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft marshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.items[d.ID] = memEntry{payload: payload, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryDrafts) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrDraftNotFound
	}
	delete(s.items, id)
	return nil
}

// Len returns the number of live drafts.
func (s *MemoryDrafts) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.items)
}

// sweep drops expired entries. Callers hold mu.
func (s *MemoryDrafts) sweep() {
	now := s.now()
	for id, e := range s.items {
		if !now.Before(e.expires) {
			delete(s.items, id)
		}
	}
}

func decodeDraft(payload []byte) (*models.Draft, error) {
	var d models.Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("draft unmarshal: %w", err)
	}
	return &d, nil
}
