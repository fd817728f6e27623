// Package convert implements the conversion pipeline core: validated
// per-request settings, the bounded page batch processor, and the
// orchestrating pipeline.
package convert

import (
	"fmt"

	"github.com/prathamudeshmukh/pdf2html/internal/config"
	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

// Bounds for caller-supplied generation parameters.
const (
	MinDPI         = 72
	MaxDPI         = 600
	MinTokens      = 100
	MaxTokens      = 8000
	MinTemperature = 0.0
	MaxTemperature = 2.0
	MinWorkers     = 1
	MaxWorkers     = 10
)

// Settings is the immutable per-request configuration of one conversion.
// It is constructed once via NewSettings from validated bounds; fields are
// never patched afterwards.
type Settings struct {
	Model              string
	DPI                int
	MaxTokens          int
	Temperature        float64
	CSSMode            domain.CSSMode
	MaxParallelWorkers int
	ExtractVariables   bool
}

// Params carries caller-supplied overrides of the configured defaults.
// A nil field means "use the default".
type Params struct {
	Model              *string
	DPI                *int
	MaxTokens          *int
	Temperature        *float64
	CSSMode            *string
	MaxParallelWorkers *int
	ExtractVariables   *bool
}

// NewSettings merges defaults with caller overrides and validates every
// bound. Any violation is a ConfigError; nothing is clamped or silently
// defaulted.
func NewSettings(defaults config.ConvertConfig, p Params) (Settings, error) {
	s := Settings{
		Model:              defaults.Model,
		DPI:                defaults.DPI,
		MaxTokens:          defaults.MaxTokens,
		Temperature:        defaults.Temperature,
		MaxParallelWorkers: defaults.MaxParallelWorkers,
	}

	cssMode := defaults.CSSMode

	if p.Model != nil && *p.Model != "" {
		s.Model = *p.Model
	}
	if p.DPI != nil {
		s.DPI = *p.DPI
	}
	if p.MaxTokens != nil {
		s.MaxTokens = *p.MaxTokens
	}
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
	}
	if p.CSSMode != nil {
		cssMode = *p.CSSMode
	}
	if p.MaxParallelWorkers != nil {
		s.MaxParallelWorkers = *p.MaxParallelWorkers
	}
	if p.ExtractVariables != nil {
		s.ExtractVariables = *p.ExtractVariables
	}

	mode, err := domain.ParseCSSMode(cssMode)
	if err != nil {
		return Settings{}, err
	}
	s.CSSMode = mode

	if s.Model == "" {
		return Settings{}, domain.ConfigError("model must not be empty", nil)
	}
	if s.DPI < MinDPI || s.DPI > MaxDPI {
		return Settings{}, domain.ConfigError(fmt.Sprintf("dpi must be between %d and %d, got %d", MinDPI, MaxDPI, s.DPI), nil)
	}
	if s.MaxTokens < MinTokens || s.MaxTokens > MaxTokens {
		return Settings{}, domain.ConfigError(fmt.Sprintf("max_tokens must be between %d and %d, got %d", MinTokens, MaxTokens, s.MaxTokens), nil)
	}
	if s.Temperature < MinTemperature || s.Temperature > MaxTemperature {
		return Settings{}, domain.ConfigError(fmt.Sprintf("temperature must be between %.1f and %.1f, got %g", MinTemperature, MaxTemperature, s.Temperature), nil)
	}
	if s.MaxParallelWorkers < MinWorkers || s.MaxParallelWorkers > MaxWorkers {
		return Settings{}, domain.ConfigError(fmt.Sprintf("max_parallel_workers must be between %d and %d, got %d", MinWorkers, MaxWorkers, s.MaxParallelWorkers), nil)
	}

	return s, nil
}
