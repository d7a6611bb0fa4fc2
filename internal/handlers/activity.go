// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"pagesmith/internal/store"
)

// ActivityReader lists logged operations. *store.ActivityStore implements it.
type ActivityReader interface {
	RecentEntries(ctx context.Context, limit int) ([]store.ActivityEntry, error)
	ForDraft(ctx context.Context, draftID uuid.UUID, limit int) ([]store.ActivityEntry, error)
}

// Activity serves the activity log.
type Activity struct {
	log ActivityReader
}

// NewActivity creates the activity handler.
func NewActivity(log ActivityReader) *Activity {
	return &Activity{log: log}
}

type activityResponse struct {
	Entries []store.ActivityEntry `json:"entries"`
}

// List returns recent entries, newest first. ?draft=<id> narrows the list
// to one draft and ?limit=N caps it.
func (a *Activity) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	var (
		entries []store.ActivityEntry
		err     error
	)
	if v := q.Get("draft"); v != "" {
		id, perr := uuid.Parse(v)
		if perr != nil {
			writeError(w, http.StatusBadRequest, errBadDraftID.Error())
			return
		}
		entries, err = a.log.ForDraft(r.Context(), id, limit)
	} else {
		entries, err = a.log.RecentEntries(r.Context(), limit)
	}
	if err != nil {
		slog.Error("list activity failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load the activity log.")
		return
	}
	if entries == nil {
		entries = []store.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, activityResponse{Entries: entries})
}
