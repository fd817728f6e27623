// Package assemble deterministically merges per-page HTML fragments into one
// standalone document.
package assemble

import (
	"fmt"
	"strings"

	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

// Merge joins the page fragments in order inside a single document shell and
// attaches the stylesheet selected by the layout mode. It is a pure function:
// identical inputs always produce byte-identical output, and an empty
// fragment list still yields a well-formed document.
func Merge(fragments []domain.PageFragment, mode domain.CSSMode) string {
	pages := make([]string, 0, len(fragments))
	for _, f := range fragments {
		pages = append(pages, f.HTML)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>PDF to HTML Conversion</title>
    <style>
%s
    </style>
</head>
<body>
    <main class="document">
%s
    </main>
</body>
</html>`, cssForMode(mode), strings.Join(pages, "\n"))
}

// cssForMode selects the stylesheet for the given layout mode. The mode has
// been validated upstream; anything unrecognized gets the base stylesheet
// with no layout helpers, matching the single mode.
func cssForMode(mode domain.CSSMode) string {
	switch mode {
	case domain.CSSModeGrid:
		return baseCSS + gridCSS
	case domain.CSSModeColumns:
		return baseCSS + columnsCSS
	default:
		return baseCSS
	}
}
