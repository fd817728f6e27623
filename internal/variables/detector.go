// Package variables implements the optional enrichment step that detects
// per-document literal values in assembled HTML and replaces them with
// {{key}}-style placeholders.
package variables

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prathamudeshmukh/pdf2html/internal/domain"
	"github.com/prathamudeshmukh/pdf2html/internal/llm"
)

const sampleMapSystemPrompt = `You analyze an HTML document and identify literal text values that look like per-document variables: person and company names, dates, identifiers, amounts, addresses.

Return ONLY a flat JSON object mapping a short snake_case key to the exact literal value as it appears in the document, for example:

{"customer_name": "John Smith", "invoice_date": "2024-03-01"}

RULES:
- Flat object only: every value MUST be a string, never a nested object or array
- Keys are lowercase snake_case, descriptive of the value's role
- Values are copied verbatim from the document text
- Do not include boilerplate, headings, or labels that stay the same across documents
- No markdown formatting, no explanations, JSON only`

const rewriteSystemPrompt = `You receive an HTML document. Replace every occurrence of a per-document literal value (names, dates, identifiers, amounts) with a Handlebars-style placeholder {{key}}, where key is a short snake_case name for the value's role.

RULES:
- Output HTML ONLY - the full document with placeholders substituted
- NEVER output JSON
- NEVER wrap the output in markdown codeblock delimiters
- Preserve all markup, attributes and whitespace exactly; only text content changes
- Use the same {{key}} for repeated occurrences of the same value`

// Detector identifies recurring literal values in an assembled document via
// two model sub-calls: one producing a flat sample map, one rewriting the
// HTML with placeholders. Failures propagate to the pipeline, which treats
// them as non-fatal.
type Detector struct {
	client      *llm.Client
	model       string
	maxTokens   int
	temperature float64
	logger      zerolog.Logger
}

// NewDetector creates a variable detector bound to one conversion's settings.
func NewDetector(client *llm.Client, model string, maxTokens int, temperature float64, logger zerolog.Logger) *Detector {
	return &Detector{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Detect returns the HTML rewritten with {{key}} placeholders and the flat
// key to sample-value mapping detected from it.
func (d *Detector) Detect(ctx context.Context, html string) (string, domain.VariableMap, error) {
	vars, err := d.extractSampleMap(ctx, html)
	if err != nil {
		return "", nil, err
	}

	rewritten, err := d.rewriteWithPlaceholders(ctx, html)
	if err != nil {
		return "", nil, err
	}

	if !strings.Contains(rewritten, "{{") {
		// The model returned HTML but substituted nothing; fall back to
		// deterministic text-node matching driven by the sample map.
		d.logger.Warn().Msg("No template variables in model rewrite, applying structural substitution")
		rewritten, err = ApplySampleValues(html, vars)
		if err != nil {
			return "", nil, err
		}
	}

	return rewritten, vars, nil
}

// extractSampleMap asks the model for the flat key to value mapping.
func (d *Detector) extractSampleMap(ctx context.Context, html string) (domain.VariableMap, error) {
	content, err := d.client.Complete(ctx, llm.ChatRequest{
		Model: d.model,
		Messages: []llm.Message{
			llm.TextMessage("system", sampleMapSystemPrompt),
			llm.TextMessage("user", "HTML:\n"+html),
		},
		MaxTokens:   d.maxTokens,
		Temperature: d.temperature,
	})
	if err != nil {
		return nil, domain.VariableError("sample map call failed", err)
	}

	content = stripCodeFences(content)

	var raw map[string]any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, domain.VariableError("model returned invalid JSON for sample map", err)
	}

	// The mapping must be flat string-to-string; anything else is rejected,
	// never coerced.
	vars := make(domain.VariableMap, len(raw))
	for key, value := range raw {
		s, ok := value.(string)
		if !ok {
			return nil, domain.VariableError("sample map must be a flat string-to-string object", nil)
		}
		vars[key] = s
	}

	return vars, nil
}

// rewriteWithPlaceholders asks the model to substitute placeholders directly
// in the HTML.
func (d *Detector) rewriteWithPlaceholders(ctx context.Context, html string) (string, error) {
	content, err := d.client.Complete(ctx, llm.ChatRequest{
		Model: d.model,
		Messages: []llm.Message{
			llm.TextMessage("system", rewriteSystemPrompt),
			llm.TextMessage("user", html),
		},
		MaxTokens:   d.maxTokens,
		Temperature: d.temperature,
	})
	if err != nil {
		return "", domain.VariableError("placeholder rewrite call failed", err)
	}

	content = strings.TrimSpace(stripCodeFences(content))

	if content == "" {
		return "", domain.VariableError("model returned empty output", nil)
	}

	// Guardrail: the rewrite must be HTML, not JSON
	if strings.HasPrefix(content, "{") {
		return "", domain.VariableError("model returned JSON instead of HTML", nil)
	}

	return content, nil
}

// stripCodeFences removes a surrounding markdown code block, if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
