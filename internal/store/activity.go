// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the PostgreSQL-backed activity log. Each entry records
// one operation on a draft: generation, an applied edit, an export or a
// publish. Writes are best-effort; a failed insert is logged and dropped.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// MaxEntries caps RecentEntries and ForDraft.
const MaxEntries = 500

// Activity actions.
const (
	ActionGenerate = "generate"
	ActionEdit     = "edit"
	ActionExport   = "export"
	ActionPublish  = "publish"
	ActionDiscard  = "discard"
)

// ActivityEntry is one logged operation.
type ActivityEntry struct {
	ID        int64     `json:"id"`
	DraftID   uuid.UUID `json:"draft_id"`
	Action    string    `json:"action"`
	SectionID string    `json:"section_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Revision  int       `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityStore handles activity log operations.
type ActivityStore struct {
	db *sql.DB
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Log records an operation. It never fails the caller.
func (s *ActivityStore) Log(ctx context.Context, e ActivityEntry) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO page_activity (draft_id, action, section_id, detail, revision)
		VALUES ($1, $2, $3, $4, $5)
	`, e.DraftID, e.Action, e.SectionID, e.Detail, e.Revision)
	if err != nil {
		slog.Warn("failed to log page activity",
			"draft_id", e.DraftID,
			"action", e.Action,
			"error", err,
		)
		return
	}
	slog.Debug("page activity logged", "draft_id", e.DraftID, "action", e.Action)
}

// RecentEntries returns the newest entries across all drafts.
func (s *ActivityStore) RecentEntries(ctx context.Context, limit int) ([]ActivityEntry, error) {
	return s.query(ctx, `
		SELECT id, draft_id, action, section_id, detail, revision, created_at
		FROM page_activity
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, clampLimit(limit))
}

// ForDraft returns the newest entries of one draft.
func (s *ActivityStore) ForDraft(ctx context.Context, draftID uuid.UUID, limit int) ([]ActivityEntry, error) {
	return s.query(ctx, `
		SELECT id, draft_id, action, section_id, detail, revision, created_at
		FROM page_activity
		WHERE draft_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, clampLimit(limit), draftID)
}

func (s *ActivityStore) query(ctx context.Context, q string, args ...any) ([]ActivityEntry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query page activity: %w", err)
	}
	defer rows.Close()

	entries := []ActivityEntry{}
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.DraftID, &e.Action, &e.SectionID, &e.Detail, &e.Revision, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan page activity: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return min(limit, MaxEntries)
}
