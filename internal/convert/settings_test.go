package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prathamudeshmukh/pdf2html/internal/config"
	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

func testDefaults() config.ConvertConfig {
	return config.ConvertConfig{
		Model:              "gpt-4o-mini",
		DPI:                200,
		MaxTokens:          4000,
		Temperature:        0.0,
		CSSMode:            "grid",
		MaxParallelWorkers: 3,
	}
}

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestNewSettingsDefaults(t *testing.T) {
	s, err := NewSettings(testDefaults(), Params{})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", s.Model)
	assert.Equal(t, 200, s.DPI)
	assert.Equal(t, 4000, s.MaxTokens)
	assert.Equal(t, 0.0, s.Temperature)
	assert.Equal(t, domain.CSSModeGrid, s.CSSMode)
	assert.Equal(t, 3, s.MaxParallelWorkers)
	assert.False(t, s.ExtractVariables)
}

func TestNewSettingsOverrides(t *testing.T) {
	s, err := NewSettings(testDefaults(), Params{
		Model:              strPtr("gpt-4o"),
		DPI:                intPtr(300),
		MaxTokens:          intPtr(2000),
		Temperature:        f64Ptr(0.7),
		CSSMode:            strPtr("columns"),
		MaxParallelWorkers: intPtr(5),
		ExtractVariables:   boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", s.Model)
	assert.Equal(t, 300, s.DPI)
	assert.Equal(t, 2000, s.MaxTokens)
	assert.Equal(t, 0.7, s.Temperature)
	assert.Equal(t, domain.CSSModeColumns, s.CSSMode)
	assert.Equal(t, 5, s.MaxParallelWorkers)
	assert.True(t, s.ExtractVariables)
}

func TestNewSettingsEmptyModelOverrideKeepsDefault(t *testing.T) {
	s, err := NewSettings(testDefaults(), Params{Model: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", s.Model)
}

func TestNewSettingsBounds(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr string
	}{
		{
			name:    "dpi below minimum",
			params:  Params{DPI: intPtr(71)},
			wantErr: "dpi must be between 72 and 600",
		},
		{
			name:    "dpi above maximum",
			params:  Params{DPI: intPtr(601)},
			wantErr: "dpi must be between 72 and 600",
		},
		{
			name:    "dpi at lower bound is valid",
			params:  Params{DPI: intPtr(72)},
			wantErr: "",
		},
		{
			name:    "dpi at upper bound is valid",
			params:  Params{DPI: intPtr(600)},
			wantErr: "",
		},
		{
			name:    "max_tokens below minimum",
			params:  Params{MaxTokens: intPtr(99)},
			wantErr: "max_tokens must be between 100 and 8000",
		},
		{
			name:    "max_tokens above maximum",
			params:  Params{MaxTokens: intPtr(8001)},
			wantErr: "max_tokens must be between 100 and 8000",
		},
		{
			name:    "temperature below minimum",
			params:  Params{Temperature: f64Ptr(-0.1)},
			wantErr: "temperature must be between",
		},
		{
			name:    "temperature above maximum",
			params:  Params{Temperature: f64Ptr(2.1)},
			wantErr: "temperature must be between",
		},
		{
			name:    "temperature at upper bound is valid",
			params:  Params{Temperature: f64Ptr(2.0)},
			wantErr: "",
		},
		{
			name:    "workers below minimum",
			params:  Params{MaxParallelWorkers: intPtr(0)},
			wantErr: "max_parallel_workers must be between 1 and 10",
		},
		{
			name:    "workers above maximum",
			params:  Params{MaxParallelWorkers: intPtr(11)},
			wantErr: "max_parallel_workers must be between 1 and 10",
		},
		{
			name:    "unknown css mode",
			params:  Params{CSSMode: strPtr("flexbox")},
			wantErr: "css_mode must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSettings(testDefaults(), tt.params)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, domain.IsType(err, domain.ErrorTypeConfig))
		})
	}
}
