package domain

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// CSSMode selects the layout CSS applied to the merged document.
type CSSMode string

const (
	CSSModeGrid    CSSMode = "grid"
	CSSModeColumns CSSMode = "columns"
	CSSModeSingle  CSSMode = "single"
)

// ValidCSSModes lists the closed set of accepted layout modes.
var ValidCSSModes = []CSSMode{CSSModeGrid, CSSModeColumns, CSSModeSingle}

// ParseCSSMode validates a layout mode string against the closed enumeration.
// Anything outside the set is a configuration error, never silently defaulted.
func ParseCSSMode(s string) (CSSMode, error) {
	switch CSSMode(s) {
	case CSSModeGrid, CSSModeColumns, CSSModeSingle:
		return CSSMode(s), nil
	}
	return "", ConfigError(fmt.Sprintf("css_mode must be one of [columns grid single], got %q", s), nil)
}

// PageImage represents a single rasterized PDF page
type PageImage struct {
	PageNumber int    // 1-based position in the document
	ImagePath  string // Path to temporary PNG file
	Width      int
	Height     int
}

// PageFragment is the HTML produced for exactly one page. Failed fragments
// hold a placeholder instead of model output; they are never dropped.
type PageFragment struct {
	PageNumber int
	HTML       string
	Failed     bool
}

// VariableMap is a flat placeholder-key to sample-value mapping detected from
// one assembled document. Nil means detection was not requested or failed.
type VariableMap map[string]string

// Artifacts references the temporary files created during one conversion.
// They are owned by that invocation alone; the pipeline never deletes them.
// The caller schedules Cleanup after the response has been delivered.
type Artifacts struct {
	PDFPath    string
	ImagePaths []string
	TempDir    string
}

// Cleanup removes all referenced temporary files. It never returns an error;
// failures are logged and swallowed so disposal cannot surface into a caller
// that has already produced its response.
func (a Artifacts) Cleanup(log zerolog.Logger) {
	if a.PDFPath != "" {
		if err := os.Remove(a.PDFPath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", a.PDFPath).Msg("Failed to remove downloaded PDF")
		}
	}
	if a.TempDir != "" {
		if err := os.RemoveAll(a.TempDir); err != nil {
			log.Warn().Err(err).Str("path", a.TempDir).Msg("Failed to remove image directory")
		}
		return
	}
	for _, p := range a.ImagePaths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", p).Msg("Failed to remove page image")
		}
	}
}

// ConversionResult is the terminal artifact of one conversion. PagesProcessed
// counts every fragment, placeholders included.
type ConversionResult struct {
	HTML           string
	PagesProcessed int
	ModelUsed      string
	CSSMode        CSSMode
	SampleJSON     VariableMap
	Artifacts      Artifacts
}
