// Package render turns single page images into cleaned HTML fragments via a
// vision-capable model.
package render

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/prathamudeshmukh/pdf2html/internal/domain"
	"github.com/prathamudeshmukh/pdf2html/internal/llm"
)

// Generator converts one page image into an HTML fragment. It is safe for
// concurrent use by the batch processor's workers.
type Generator struct {
	client      *llm.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewGenerator creates a page renderer bound to one conversion's settings.
func NewGenerator(client *llm.Client, model string, maxTokens int, temperature float64) *Generator {
	return &Generator{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// RenderPage converts a single page image to a cleaned HTML fragment.
func (g *Generator) RenderPage(ctx context.Context, image domain.PageImage, mode domain.CSSMode) (string, error) {
	if _, err := os.Stat(image.ImagePath); os.IsNotExist(err) {
		return "", domain.RenderError(fmt.Sprintf("image file not found: %s", image.ImagePath), err)
	}

	dataURL, err := llm.EncodeImage(image.ImagePath)
	if err != nil {
		return "", err
	}

	content, err := g.client.Complete(ctx, llm.ChatRequest{
		Model: g.model,
		Messages: []llm.Message{
			llm.TextMessage("system", systemPrompt),
			llm.VisionMessage(userPromptForMode(string(mode)), dataURL),
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", domain.RenderError(fmt.Sprintf("model call failed for page %d", image.PageNumber), err)
	}

	return cleanHTMLResponse(content), nil
}

var (
	openFenceRe   = regexp.MustCompile(`(?i)^` + "```" + `html?\s*`)
	closeFenceRe  = regexp.MustCompile("```" + `\s*$`)
	sectionOpenRe = regexp.MustCompile(`<section([^>]*)>`)
)

// cleanHTMLResponse normalizes a raw model response into a page fragment:
// code fences are stripped and the content is forced into a single
// <section class="page"> wrapper.
func cleanHTMLResponse(response string) string {
	response = strings.TrimSpace(response)
	response = openFenceRe.ReplaceAllString(response, "")
	response = closeFenceRe.ReplaceAllString(response, "")
	response = strings.TrimSpace(response)

	if !strings.HasPrefix(response, `<section class="page">`) {
		if strings.HasPrefix(response, "<section") {
			// Fix the opening wrapper only; nested sections stay untouched
			if loc := sectionOpenRe.FindStringSubmatchIndex(response); loc != nil {
				attrs := response[loc[2]:loc[3]]
				response = response[:loc[0]] + "<section" + attrs + ` class="page">` + response[loc[1]:]
			}
		} else {
			response = fmt.Sprintf(`<section class="page">%s</section>`, response)
		}
	}

	if !strings.HasSuffix(response, "</section>") {
		response += "</section>"
	}

	return response
}
