// Package handlers provides HTTP handlers for the pdf2html API.
package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/prathamudeshmukh/pdf2html/internal/config"
	"github.com/prathamudeshmukh/pdf2html/internal/convert"
	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

// ConvertHandler handles PDF-to-HTML conversion requests.
type ConvertHandler struct {
	logger   zerolog.Logger
	defaults config.ConvertConfig
	pipeline *convert.Pipeline
}

// NewConvertHandler creates a new conversion handler.
func NewConvertHandler(logger zerolog.Logger, defaults config.ConvertConfig, pipeline *convert.Pipeline) *ConvertHandler {
	return &ConvertHandler{
		logger:   logger,
		defaults: defaults,
		pipeline: pipeline,
	}
}

// ConvertRequestDTO represents the API request for conversion. Optional
// fields fall back to the configured defaults.
type ConvertRequestDTO struct {
	PDFURL             string   `json:"pdf_url"`
	Model              *string  `json:"model,omitempty"`
	DPI                *int     `json:"dpi,omitempty"`
	MaxTokens          *int     `json:"max_tokens,omitempty"`
	Temperature        *float64 `json:"temperature,omitempty"`
	CSSMode            *string  `json:"css_mode,omitempty"`
	MaxParallelWorkers *int     `json:"max_parallel_workers,omitempty"`
	ExtractVariables   *bool    `json:"extract_variables,omitempty"`
}

// ConvertResponseDTO represents the API response for conversion. SampleJSON
// is omitted entirely when variable detection was not requested or failed.
type ConvertResponseDTO struct {
	HTML           string            `json:"html"`
	PagesProcessed int               `json:"pages_processed"`
	ModelUsed      string            `json:"model_used"`
	CSSMode        string            `json:"css_mode"`
	SampleJSON     map[string]string `json:"sample_json,omitempty"`
}

// ErrorResponseDTO is the error body returned on 422 and 500.
type ErrorResponseDTO struct {
	Error string `json:"error"`
}

// Convert handles POST /convert.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runConversion(w, r)
	if !ok {
		return
	}

	resp := ConvertResponseDTO{
		HTML:           result.HTML,
		PagesProcessed: result.PagesProcessed,
		ModelUsed:      result.ModelUsed,
		CSSMode:        string(result.CSSMode),
		SampleJSON:     result.SampleJSON,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)

	h.scheduleCleanup(result.Artifacts)
}

// ConvertHTML handles POST /convert/html, returning the merged document as
// the raw response body.
func (h *ConvertHandler) ConvertHTML(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runConversion(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(result.HTML))

	h.scheduleCleanup(result.Artifacts)
}

// runConversion parses and validates the request, executes the pipeline, and
// writes the error response itself when anything fails.
func (h *ConvertHandler) runConversion(w http.ResponseWriter, r *http.Request) (*domain.ConversionResult, bool) {
	ctx := r.Context()
	requestID := chimiddleware.GetReqID(ctx)

	var reqDTO ConvertRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return nil, false
	}

	if reqDTO.PDFURL == "" {
		h.writeError(w, http.StatusUnprocessableEntity, "pdf_url is required")
		return nil, false
	}
	if u, err := url.Parse(reqDTO.PDFURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		h.writeError(w, http.StatusUnprocessableEntity, "pdf_url must be an http(s) URL")
		return nil, false
	}

	settings, err := convert.NewSettings(h.defaults, convert.Params{
		Model:              reqDTO.Model,
		DPI:                reqDTO.DPI,
		MaxTokens:          reqDTO.MaxTokens,
		Temperature:        reqDTO.Temperature,
		CSSMode:            reqDTO.CSSMode,
		MaxParallelWorkers: reqDTO.MaxParallelWorkers,
		ExtractVariables:   reqDTO.ExtractVariables,
	})
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}

	result, err := h.pipeline.Execute(ctx, reqDTO.PDFURL, settings, requestID)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("Conversion failed")
		h.writeError(w, http.StatusInternalServerError, "Conversion failed: "+err.Error())
		return nil, false
	}

	return result, true
}

// scheduleCleanup disposes of a conversion's temporary files after the
// response has been written. Cleanup never raises into the handler.
func (h *ConvertHandler) scheduleCleanup(artifacts domain.Artifacts) {
	go artifacts.Cleanup(h.logger)
}

func (h *ConvertHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponseDTO{Error: message})
}
