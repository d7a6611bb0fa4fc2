// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pagesmith/internal/editor"
	"pagesmith/internal/models"
	"pagesmith/internal/schema"
	"pagesmith/internal/store"
)

// mutationResponse is returned by every editing endpoint.
type mutationResponse struct {
	Draft  *models.Draft  `json:"draft"`
	Notice editor.Outcome `json:"notice"`
	Error  string         `json:"error,omitempty"`
}

// mutate loads the draft under its lock, applies fn and saves the draft
// when fn changed it. Rejected operations answer 404 for unknown sections
// and 422 otherwise, with the unchanged draft.
func (h *Pages) mutate(w http.ResponseWriter, r *http.Request, op string, fn func(p *models.Page) editor.Outcome) {
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

	out := fn(&d.Page)
	h.metrics.ObserveEdit(op, string(out.Status))

	if out.Err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(out.Err, editor.ErrSectionNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, mutationResponse{Draft: d, Notice: out, Error: out.Message})
		return
	}

	if out.Applied() {
		d.Touch()
		if err := h.drafts.Save(r.Context(), d); err != nil {
			slog.Error("save draft failed", "draft", id, "op", op, "error", err)
			writeError(w, http.StatusInternalServerError, "Could not save the change.")
			return
		}
		slog.Debug("draft updated", "draft", id, "op", op, "revision", d.Revision)
		h.log(r.Context(), d, store.ActionEdit, out.SectionID, op)
	}
	writeJSON(w, http.StatusOK, mutationResponse{Draft: d, Notice: out})
}

// decodeOr400 decodes the body, answering 400 on failure.
func decodeOr400(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(w, r, v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

type metaRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UpdateMeta sets the page title and description. Omitted fields keep
// their current value.
func (h *Pages) UpdateMeta(w http.ResponseWriter, r *http.Request) {
	var req metaRequest
	if !decodeOr400(w, r, &req) {
		return
	}
	h.mutate(w, r, "meta", func(p *models.Page) editor.Outcome {
		title, desc := p.Title, p.Description
		if req.Title != nil {
			title = *req.Title
		}
		if req.Description != nil {
			desc = *req.Description
		}
		return h.ed.UpdateMeta(p, title, desc)
	})
}

// SetColors applies a custom palette.
func (h *Pages) SetColors(w http.ResponseWriter, r *http.Request) {
	var req models.ColorScheme
	if !decodeOr400(w, r, &req) {
		return
	}
	h.mutate(w, r, "colors", func(p *models.Page) editor.Outcome {
		return h.ed.SetColorScheme(p, req)
	})
}

type presetRequest struct {
	Name string `json:"name"`
}

// ApplyPreset applies a named palette, "default" or "random".
func (h *Pages) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if !decodeOr400(w, r, &req) {
		return
	}
	h.mutate(w, r, "preset", func(p *models.Page) editor.Outcome {
		return h.ed.ApplyPreset(p, req.Name)
	})
}

type addRequest struct {
	Kind string `json:"kind"`
}

// AddSection appends a section with starter content.
func (h *Pages) AddSection(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if !decodeOr400(w, r, &req) {
		return
	}
	kind, ok := models.ParseKind(req.Kind)
	if !ok {
		kind = models.Kind(req.Kind)
	}
	h.mutate(w, r, "add", func(p *models.Page) editor.Outcome {
		return h.ed.AddSection(p, kind)
	})
}

type moveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MoveSection moves the section at from to index to.
func (h *Pages) MoveSection(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !decodeOr400(w, r, &req) {
		return
	}
	h.mutate(w, r, "move", func(p *models.Page) editor.Outcome {
		return h.ed.MoveSection(p, req.From, req.To)
	})
}

// ToggleSection flips a section's enabled flag.
func (h *Pages) ToggleSection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sectionID")
	h.mutate(w, r, "toggle", func(p *models.Page) editor.Outcome {
		return h.ed.ToggleSection(p, sid)
	})
}

type contentRequest struct {
	Content json.RawMessage `json:"content"`
}

// UpdateContent replaces a section's content. The body is decoded against
// the section's own kind.
func (h *Pages) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !decodeOr400(w, r, &req) {
		return
	}
	sid := chi.URLParam(r, "sectionID")
	h.mutate(w, r, "update", func(p *models.Page) editor.Outcome {
		s := p.Find(sid)
		if s == nil {
			return h.ed.UpdateSectionContent(p, sid, nil)
		}
		c, err := models.DecodeContent(s.Kind, req.Content)
		if err != nil {
			return editor.Outcome{
				Status:    editor.StatusNoop,
				Message:   "The section content could not be read.",
				SectionID: sid,
				Err:       err,
			}
		}
		return h.ed.UpdateSectionContent(p, sid, c)
	})
}

type renameRequest struct {
	Name string `json:"name"`
}

// RenameSection changes a section's display name.
func (h *Pages) RenameSection(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !decodeOr400(w, r, &req) {
		return
	}
	sid := chi.URLParam(r, "sectionID")
	h.mutate(w, r, "rename", func(p *models.Page) editor.Outcome {
		return h.ed.RenameSection(p, sid, req.Name)
	})
}

// DuplicateSection inserts a copy after the section.
func (h *Pages) DuplicateSection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sectionID")
	h.mutate(w, r, "duplicate", func(p *models.Page) editor.Outcome {
		return h.ed.DuplicateSection(p, sid)
	})
}

// DeleteSection removes a section.
func (h *Pages) DeleteSection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sectionID")
	h.mutate(w, r, "delete", func(p *models.Page) editor.Outcome {
		return h.ed.DeleteSection(p, sid)
	})
}

type insertItemRequest struct {
	Index *int        `json:"index"`
	Item  models.Item `json:"item"`
}

// InsertItem adds an entry to one of a section's lists. Without an index
// the entry is appended; without an item the list's starter entry is used.
func (h *Pages) InsertItem(w http.ResponseWriter, r *http.Request) {
	var req insertItemRequest
	if !decodeOr400(w, r, &req) {
		return
	}
	edit := schema.ItemEdit{List: chi.URLParam(r, "list"), Op: schema.ItemInsert, Index: -1, Item: req.Item}
	if req.Index != nil {
		edit.Index = *req.Index
	}
	h.editItems(w, r, edit)
}

type updateItemRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdateItem sets one field of a list entry.
func (h *Pages) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if !decodeOr400(w, r, &req) {
		return
	}
	index, ok := itemIndex(w, r)
	if !ok {
		return
	}
	h.editItems(w, r, schema.ItemEdit{
		List:  chi.URLParam(r, "list"),
		Op:    schema.ItemUpdate,
		Index: index,
		Field: req.Field,
		Value: req.Value,
	})
}

// RemoveItem deletes a list entry.
func (h *Pages) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, ok := itemIndex(w, r)
	if !ok {
		return
	}
	h.editItems(w, r, schema.ItemEdit{List: chi.URLParam(r, "list"), Op: schema.ItemRemove, Index: index})
}

func (h *Pages) editItems(w http.ResponseWriter, r *http.Request, edit schema.ItemEdit) {
	sid := chi.URLParam(r, "sectionID")
	h.mutate(w, r, "items", func(p *models.Page) editor.Outcome {
		return h.ed.EditItems(p, sid, edit)
	})
}

func itemIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item index")
		return 0, false
	}
	return index, true
}
