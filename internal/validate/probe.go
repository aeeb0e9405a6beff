package validate

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"
)

// imageContentTypes is the allow-list for logo resources.
var imageContentTypes = map[string]struct{}{
	"image/png":     {},
	"image/jpeg":    {},
	"image/jpg":     {},
	"image/svg+xml": {},
}

func isImageContentType(ct string) bool {
	media, _, err := mime.ParseMediaType(ct)
	if err != nil {
		media = strings.ToLower(strings.TrimSpace(ct))
	}
	_, ok := imageContentTypes[media]
	return ok
}

// LogoProbe checks what content type a remote logo URL answers with.
type LogoProbe interface {
	ContentType(ctx context.Context, url string) (string, error)
}

// probeTimeout bounds a single logo HEAD request.
const probeTimeout = 15 * time.Second

// HTTPProbe issues one HEAD request per logo. There is no retry: a logo
// host that fails even once is a registry-quality issue worth surfacing.
type HTTPProbe struct {
	client *http.Client
}

// NewHTTPProbe creates a probe. A nil client gets a default with a
// bounded timeout.
func NewHTTPProbe(client *http.Client) *HTTPProbe {
	if client == nil {
		client = &http.Client{Timeout: probeTimeout}
	}
	return &HTTPProbe{client: client}
}

// ContentType performs the HEAD request and returns the Content-Type
// header of the response.
func (p *HTTPProbe) ContentType(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("head request: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Header.Get("Content-Type"), nil
}
