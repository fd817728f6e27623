package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

const samplePDF = "%PDF-1.7 minimal body"

func newTestDownloader() *Downloader {
	return NewDownloader(5*time.Second, zerolog.Nop())
}

func TestDownloadWithPDFContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte(samplePDF))
	}))
	defer server.Close()

	path, err := newTestDownloader().Download(context.Background(), server.URL+"/document")
	require.NoError(t, err)
	defer os.Remove(path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, samplePDF, string(body))
	assert.Contains(t, path, ".pdf")
}

func TestDownloadWithPDFURLSuffix(t *testing.T) {
	// No pdf content type, but the URL path ends in .pdf
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte(samplePDF))
	}))
	defer server.Close()

	path, err := newTestDownloader().Download(context.Background(), server.URL+"/document.pdf")
	require.NoError(t, err)
	defer os.Remove(path)
}

func TestDownloadRejectsNonPDFResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not a pdf</html>"))
	}))
	defer server.Close()

	_, err := newTestDownloader().Download(context.Background(), server.URL+"/page")
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeDownload))
	assert.Contains(t, err.Error(), "URL does not point to a PDF file")
}

func TestDownloadRejectsNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestDownloader().Download(context.Background(), server.URL+"/missing.pdf")
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeDownload))
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestDownloadUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before use

	_, err := newTestDownloader().Download(context.Background(), server.URL+"/doc.pdf")
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeDownload))
}

func TestDownloadRespectsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestDownloader().Download(ctx, server.URL+"/doc.pdf")
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeDownload))
}
