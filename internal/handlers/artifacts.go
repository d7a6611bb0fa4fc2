// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pagesmith/internal/export"
	"pagesmith/internal/models"
	"pagesmith/internal/share"
	"pagesmith/internal/storage"
	"pagesmith/internal/store"
)

// artifact builds the export for the draft's current revision, going
// through the export cache.
func (h *Pages) artifact(r *http.Request, d *models.Draft, f export.Format) (export.Artifact, error) {
	if a, ok := h.exports.Get(r.Context(), d.ID, d.Revision, f); ok {
		h.metrics.ObserveExport(string(f), true)
		return a, nil
	}
	a, err := h.exporter.Build(&d.Page, f)
	if err != nil {
		return export.Artifact{}, err
	}
	h.exports.Set(r.Context(), d.ID, d.Revision, a)
	h.metrics.ObserveExport(string(f), false)
	return a, nil
}

// Preview serves the standalone document inline.
func (h *Pages) Preview(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	a, err := h.artifact(r, d, export.FormatHTML)
	if err != nil {
		slog.Error("preview failed", "draft", d.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not render the preview.")
		return
	}
	w.Header().Set("Content-Type", a.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Body)
}

// Export downloads the artifact for the requested format.
func (h *Pages) Export(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	a, err := h.artifact(r, d, f)
	if err != nil {
		slog.Error("export failed", "draft", d.ID, "format", f, "error", err)
		writeError(w, http.StatusInternalServerError, "Export failed.")
		return
	}

	h.log(r.Context(), d, store.ActionExport, "", string(f))
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Body)
}

// Publish uploads the artifact to object storage and returns its URL.
func (h *Pages) Publish(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "Publishing is not configured.")
		return
	}
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	a, err := h.artifact(r, d, f)
	if err != nil {
		slog.Error("export failed", "draft", d.ID, "format", f, "error", err)
		writeError(w, http.StatusInternalServerError, "Export failed.")
		return
	}

	pub, err := h.storage.Publish(r.Context(), d.ID, a)
	h.metrics.ObservePublish(string(f), err)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "Publishing is not configured.")
			return
		}
		slog.Error("publish failed", "draft", d.ID, "format", f, "error", err)
		writeError(w, http.StatusBadGateway, "Upload failed. Please try again.")
		return
	}

	slog.Info("artifact published", "draft", d.ID, "format", f, "key", pub.Key)
	h.log(r.Context(), d, store.ActionPublish, "", pub.Key)
	writeJSON(w, http.StatusOK, pub)
}

// Share returns the share payload. ?qr=1 embeds the QR code as a data URI.
func (h *Pages) Share(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	withQR, _ := strconv.ParseBool(r.URL.Query().Get("qr"))
	payload, err := share.NewPayload(&d.Page, share.PreviewURL(h.baseURL, d.ID), withQR)
	if err != nil {
		slog.Error("share payload failed", "draft", d.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not build the share link.")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// ShareQR serves the QR code of the share URL as a PNG. ?size=N sets the
// edge length in pixels.
func (h *Pages) ShareQR(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	size := share.DefaultQRSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid size %q", v))
			return
		}
		size = n
	}

	png, err := share.QRCode(share.PreviewURL(h.baseURL, d.ID), size)
	if err != nil {
		slog.Error("qr code failed", "draft", d.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not create the QR code.")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
