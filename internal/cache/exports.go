// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pagesmith/internal/export"
)

const (
	exportKeyPrefix = "export:"

	// DefaultExportTTL is how long a built artifact stays cached.
	DefaultExportTTL = 10 * time.Minute
)

// ExportCache holds built artifacts keyed by draft, revision and format.
// A new revision never sees an old artifact, so writers only need to
// Invalidate when a draft is discarded. Errors are logged, never returned.
type ExportCache interface {
	Get(ctx context.Context, draftID uuid.UUID, revision int, f export.Format) (export.Artifact, bool)
	Set(ctx context.Context, draftID uuid.UUID, revision int, a export.Artifact)
	Invalidate(ctx context.Context, draftID uuid.UUID)
}

// ExportKey returns the cache key of one artifact.
func ExportKey(draftID uuid.UUID, revision int, f export.Format) string {
	return fmt.Sprintf("%s%s:%d:%s", exportKeyPrefix, draftID, revision, f)
}

type cachedArtifact struct {
	Format      export.Format `json:"format"`
	Filename    string        `json:"filename"`
	ContentType string        `json:"content_type"`
	Body        []byte        `json:"body"`
}

func (c cachedArtifact) artifact() export.Artifact {
	return export.Artifact{Format: c.Format, Filename: c.Filename, ContentType: c.ContentType, Body: c.Body}
}

// ValkeyExports caches artifacts in Valkey.
type ValkeyExports struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeyExports creates an export cache backed by the given Valkey client.
func NewValkeyExports(client *redis.Client, ttl time.Duration) *ValkeyExports {
	if ttl <= 0 {
		ttl = DefaultExportTTL
	}
	return &ValkeyExports{client: client, ttl: ttl}
}

func (c *ValkeyExports) Get(ctx context.Context, draftID uuid.UUID, revision int, f export.Format) (export.Artifact, bool) {
	key := ExportKey(draftID, revision, f)
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return export.Artifact{}, false
	}
	if err != nil {
		slog.Warn("export cache get error", "key", key, "error", err)
		return export.Artifact{}, false
	}
	var ca cachedArtifact
	if err := json.Unmarshal(val, &ca); err != nil {
		slog.Warn("export cache decode error", "key", key, "error", err)
		return export.Artifact{}, false
	}
	slog.Debug("export cache hit", "key", key)
	return ca.artifact(), true
}

func (c *ValkeyExports) Set(ctx context.Context, draftID uuid.UUID, revision int, a export.Artifact) {
	key := ExportKey(draftID, revision, a.Format)
	payload, err := json.Marshal(cachedArtifact(a))
	if err != nil {
		slog.Warn("export cache encode error", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("export cache set error", "key", key, "error", err)
	}
}

func (c *ValkeyExports) Invalidate(ctx context.Context, draftID uuid.UUID) {
	n, err := deleteByPattern(ctx, c.client, fmt.Sprintf("%s%s:*", exportKeyPrefix, draftID))
	if err != nil {
		slog.Warn("export cache invalidate error", "draft", draftID, "error", err)
		return
	}
	slog.Debug("export cache invalidated", "draft", draftID, "deleted", n)
}

// MemoryExports caches artifacts in process memory.
type MemoryExports struct {
	mu    sync.Mutex
	items map[string]memArtifact
	ttl   time.Duration
	now   func() time.Time
}

type memArtifact struct {
	a       export.Artifact
	expires time.Time
}

// NewMemoryExports creates an in-memory export cache.
func NewMemoryExports(ttl time.Duration) *MemoryExports {
	if ttl <= 0 {
		ttl = DefaultExportTTL
	}
	return &MemoryExports{items: make(map[string]memArtifact), ttl: ttl, now: time.Now}
}

func (c *MemoryExports) Get(_ context.Context, draftID uuid.UUID, revision int, f export.Format) (export.Artifact, bool) {
	key := ExportKey(draftID, revision, f)
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[key]
	if !ok || !c.now().Before(e.expires) {
		delete(c.items, key)
		return export.Artifact{}, false
	}
	a := e.a
	a.Body = append([]byte(nil), e.a.Body...)
	return a, true
}

func (c *MemoryExports) Set(_ context.Context, draftID uuid.UUID, revision int, a export.Artifact) {
	a.Body = append([]byte(nil), a.Body...)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[ExportKey(draftID, revision, a.Format)] = memArtifact{a: a, expires: c.now().Add(c.ttl)}
}

func (c *MemoryExports) Invalidate(_ context.Context, draftID uuid.UUID) {
	prefix := fmt.Sprintf("%s%s:", exportKeyPrefix, draftID)
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}
