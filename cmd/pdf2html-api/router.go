// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/prathamudeshmukh/pdf2html/cmd/pdf2html-api/handlers"
	"github.com/prathamudeshmukh/pdf2html/internal/config"
	"github.com/prathamudeshmukh/pdf2html/internal/convert"
	"github.com/prathamudeshmukh/pdf2html/internal/download"
	"github.com/prathamudeshmukh/pdf2html/internal/llm"
	"github.com/prathamudeshmukh/pdf2html/internal/pdf"
	"github.com/prathamudeshmukh/pdf2html/internal/render"
	"github.com/prathamudeshmukh/pdf2html/internal/variables"
)

// NewRouter creates the main API router with all routes configured.
func NewRouter(logger zerolog.Logger, cfg *config.Config, llmClient *llm.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	// Liveness (unauthenticated)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"pdf2html"}`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"service":"pdf2html","endpoints":{"convert":"/convert","convert_html":"/convert/html","health":"/health"}}`))
	})

	// Pipeline collaborators
	downloader := download.NewDownloader(cfg.Convert.DownloadTimeout, logger)
	rasterizer := pdf.NewRasterizer(logger)
	batch := convert.NewBatchProcessor(cfg.Convert.WorkerCeiling, logger)

	newRenderer := func(s convert.Settings) convert.PageRenderer {
		return render.NewGenerator(llmClient, s.Model, s.MaxTokens, s.Temperature)
	}
	newDetector := func(s convert.Settings) convert.VariableDetector {
		return variables.NewDetector(llmClient, s.Model, s.MaxTokens, s.Temperature, logger)
	}

	pipeline := convert.NewPipeline(downloader, rasterizer, batch, newRenderer, newDetector, logger)

	convertHandler := handlers.NewConvertHandler(logger, cfg.Convert, pipeline)

	r.Post("/convert", convertHandler.Convert)
	r.Post("/convert/html", convertHandler.ConvertHTML)

	return r
}
