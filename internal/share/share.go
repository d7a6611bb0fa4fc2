// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package share builds the share surface of a draft: the title/text/url
// payload a browser hands to the Web Share API, and a QR code of the url.
package share

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"pagesmith/internal/models"
)

// QR code size limits in pixels.
const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

// ErrEmptyURL is returned when there is nothing to encode.
var ErrEmptyURL = errors.New("share url is empty")

// Payload mirrors the Web Share API's ShareData.
type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
	QR    string `json:"qr,omitempty"` // data: URI of the QR code PNG
}

// PreviewURL is the public link to a draft's live preview.
func PreviewURL(baseURL string, draftID uuid.UUID) string {
	return strings.TrimRight(baseURL, "/") + "/api/pages/" + draftID.String() + "/preview"
}

// NewPayload describes the page for sharing. When withQR is set the QR code
// is embedded as a data URI.
func NewPayload(p *models.Page, url string, withQR bool) (Payload, error) {
	out := Payload{Title: p.Title, Text: p.Description, URL: url}
	if !withQR {
		return out, nil
	}
	png, err := QRCode(url, DefaultQRSize)
	if err != nil {
		return Payload{}, err
	}
	out.QR = DataURI(png)
	return out, nil
}

// QRCode encodes url as a PNG. size is clamped to [MinQRSize, MaxQRSize];
// zero means DefaultQRSize.
func QRCode(url string, size int) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyURL
	}
	switch {
	case size == 0:
		size = DefaultQRSize
	case size < MinQRSize:
		size = MinQRSize
	case size > MaxQRSize:
		size = MaxQRSize
	}
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return png, nil
}

// DataURI wraps a PNG for inline use in an <img> tag.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
