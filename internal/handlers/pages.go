// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"pagesmith/internal/cache"
	"pagesmith/internal/editor"
	"pagesmith/internal/export"
	"pagesmith/internal/generator"
	"pagesmith/internal/metrics"
	"pagesmith/internal/models"
	"pagesmith/internal/storage"
	"pagesmith/internal/store"
)

// ActivityLogger records operations on drafts. *store.ActivityStore
// implements it.
type ActivityLogger interface {
	Log(ctx context.Context, e store.ActivityEntry)
}

// Deps holds the collaborators of the page handlers. Storage, Activity and
// Metrics may be nil.
type Deps struct {
	Drafts    cache.DraftStore
	Exports   cache.ExportCache
	Generator *generator.Generator
	Editor    *editor.Editor
	Exporter  *export.Exporter
	Storage   *storage.Client
	Activity  ActivityLogger
	Metrics   *metrics.Metrics
	BaseURL   string
}

// Pages groups the draft, editing and artifact handlers.
type Pages struct {
	drafts   cache.DraftStore
	exports  cache.ExportCache
	gen      *generator.Generator
	ed       *editor.Editor
	exporter *export.Exporter
	storage  *storage.Client
	activity ActivityLogger
	metrics  *metrics.Metrics
	baseURL  string
	locks    *draftLocks
}

// NewPages creates the page handler group.
func NewPages(d Deps) *Pages {
	return &Pages{
		drafts:   d.Drafts,
		exports:  d.Exports,
		gen:      d.Generator,
		ed:       d.Editor,
		exporter: d.Exporter,
		storage:  d.Storage,
		activity: d.Activity,
		metrics:  d.Metrics,
		baseURL:  d.BaseURL,
		locks:    newDraftLocks(),
	}
}

type createRequest struct {
	Prompt string `json:"prompt"`
}

type draftResponse struct {
	Draft *models.Draft `json:"draft"`
}

// Create generates a page from a prompt and opens a draft for it.
func (h *Pages) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	provider := h.gen.Provider()
	start := time.Now()
	page, err := h.gen.Generate(r.Context(), req.Prompt)
	if err != nil {
		var gerr *generator.Error
		if !errors.As(err, &gerr) {
			slog.Error("page generation failed", "error", err)
			h.metrics.ObserveGeneration(provider, "error", time.Since(start))
			writeError(w, http.StatusInternalServerError, "Page generation failed.")
			return
		}
		slog.Warn("page generation failed", "provider", provider, "reason", gerr.Reason, "error", gerr.Err)
		h.metrics.ObserveGeneration(provider, string(gerr.Reason), time.Since(start))
		writeJSON(w, generationStatus(gerr), errorBody{Error: gerr.Message, Reason: string(gerr.Reason)})
		return
	}
	h.metrics.ObserveGeneration(provider, "success", time.Since(start))

	now := time.Now().UTC()
	d := &models.Draft{
		ID:        uuid.New(),
		Prompt:    req.Prompt,
		Provider:  provider,
		Page:      *page,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.drafts.Save(r.Context(), d); err != nil {
		slog.Error("save draft failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save the generated page.")
		return
	}

	slog.Info("page generated", "draft", d.ID, "provider", provider, "sections", len(page.Sections))
	h.log(r.Context(), d, store.ActionGenerate, "", provider)
	writeJSON(w, http.StatusCreated, draftResponse{Draft: d})
}

// generationStatus maps a generation failure onto an HTTP status.
func generationStatus(err *generator.Error) int {
	switch err.Reason {
	case generator.ReasonPrompt:
		return http.StatusBadRequest
	case generator.ReasonFlagged:
		return http.StatusUnprocessableEntity
	case generator.ReasonProvider:
		if errors.Is(err.Err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// Get returns a draft.
func (h *Pages) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{Draft: d})
}

// Discard deletes a draft and its cached artifacts.
func (h *Pages) Discard(w http.ResponseWriter, r *http.Request) {
	id, err := draftID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	unlock := h.locks.lock(id)
	defer unlock()

	d, err := h.drafts.Get(r.Context(), id)
	if err != nil {
		h.draftError(w, id, err)
		return
	}
	if err := h.drafts.Delete(r.Context(), id); err != nil && !errors.Is(err, cache.ErrDraftNotFound) {
		slog.Error("delete draft failed", "draft", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not discard the draft.")
		return
	}
	h.exports.Invalidate(r.Context(), id)

	slog.Info("draft discarded", "draft", id)
	h.log(r.Context(), d, store.ActionDiscard, "", "")
	w.WriteHeader(http.StatusNoContent)
}

// load reads the draft named by the URL, writing the error response when
// it cannot.
func (h *Pages) load(w http.ResponseWriter, r *http.Request) (*models.Draft, bool) {
	id, err := draftID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	d, err := h.drafts.Get(r.Context(), id)
	if err != nil {
		h.draftError(w, id, err)
		return nil, false
	}
	return d, true
}

func (h *Pages) draftError(w http.ResponseWriter, id uuid.UUID, err error) {
	if errors.Is(err, cache.ErrDraftNotFound) {
		writeError(w, http.StatusNotFound, "Draft not found. It may have expired.")
		return
	}
	slog.Error("load draft failed", "draft", id, "error", err)
	writeError(w, http.StatusInternalServerError, "Could not load the draft.")
}

// log writes an activity entry when the activity log is enabled.
func (h *Pages) log(ctx context.Context, d *models.Draft, action, sectionID, detail string) {
	if h.activity == nil {
		return
	}
	h.activity.Log(ctx, store.ActivityEntry{
		DraftID:   d.ID,
		Action:    action,
		SectionID: sectionID,
		Detail:    detail,
		Revision:  d.Revision,
	})
}
