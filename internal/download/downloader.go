// Package download fetches remote PDF files into per-request temporary files.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

const defaultTimeout = 120 * time.Second

// Downloader fetches a PDF over HTTP and writes it to a temporary *.pdf file.
// The returned path is owned by the calling conversion; the downloader never
// deletes it.
type Downloader struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewDownloader creates a downloader with the given per-request timeout.
func NewDownloader(timeout time.Duration, logger zerolog.Logger) *Downloader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Downloader{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Download fetches url and returns the path of the temporary file holding its
// body. The response must look like a PDF: either the Content-Type mentions
// pdf or the URL ends in .pdf. Everything else is a DownloadError.
func (d *Downloader) Download(ctx context.Context, url string) (string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", domain.DownloadError("invalid PDF URL", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", domain.DownloadError("failed to download PDF", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.DownloadError(fmt.Sprintf("failed to download PDF: HTTP %d", resp.StatusCode), nil)
	}

	if err := validatePDFResponse(resp, url); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.DownloadError("failed to read PDF body", err)
	}

	path, err := writeTempFile(body)
	if err != nil {
		return "", err
	}

	d.logger.Info().
		Int("bytes", len(body)).
		Str("content_type", resp.Header.Get("Content-Type")).
		Dur("elapsed", time.Since(start)).
		Msg("PDF downloaded")

	return path, nil
}

// validatePDFResponse rejects responses that do not appear to be a PDF.
func validatePDFResponse(resp *http.Response, url string) error {
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	isPDFContentType := strings.Contains(contentType, "pdf")
	isPDFURL := strings.HasSuffix(strings.ToLower(url), ".pdf")

	if !isPDFContentType && !isPDFURL {
		return domain.DownloadError("URL does not point to a PDF file", nil)
	}
	return nil
}

func writeTempFile(content []byte) (string, error) {
	tmp, err := os.CreateTemp("", "pdf2html-*.pdf")
	if err != nil {
		return "", domain.IOError("failed to create temp file", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", domain.IOError("failed to write temp file", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", domain.IOError("failed to close temp file", err)
	}

	return tmp.Name(), nil
}
