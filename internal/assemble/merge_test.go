package assemble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

func TestMergeProducesWellFormedDocument(t *testing.T) {
	fragments := []domain.PageFragment{
		{PageNumber: 1, HTML: `<section class="page"><h1>Title</h1></section>`},
		{PageNumber: 2, HTML: `<section class="page"><p>Body</p></section>`},
	}

	doc := Merge(fragments, domain.CSSModeGrid)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, `<html lang="en">`)
	assert.Contains(t, doc, `<meta charset="UTF-8">`)
	assert.Contains(t, doc, "<title>PDF to HTML Conversion</title>")
	assert.Contains(t, doc, `<main class="document">`)
	assert.Contains(t, doc, "<h1>Title</h1>")
	assert.Contains(t, doc, "<p>Body</p>")
	assert.True(t, strings.HasSuffix(doc, "</html>"))
}

func TestMergePreservesFragmentOrder(t *testing.T) {
	fragments := []domain.PageFragment{
		{PageNumber: 1, HTML: `<section class="page">first</section>`},
		{PageNumber: 2, HTML: `<section class="page">second</section>`},
		{PageNumber: 3, HTML: `<section class="page">third</section>`},
	}

	doc := Merge(fragments, domain.CSSModeSingle)

	first := strings.Index(doc, "first")
	second := strings.Index(doc, "second")
	third := strings.Index(doc, "third")
	assert.True(t, first < second && second < third, "fragments must appear in input order")
}

func TestMergeIsDeterministic(t *testing.T) {
	fragments := []domain.PageFragment{
		{PageNumber: 1, HTML: `<section class="page"><p>one</p></section>`},
		{PageNumber: 2, HTML: `<section class="page"><p>two</p></section>`},
	}

	a := Merge(fragments, domain.CSSModeColumns)
	b := Merge(fragments, domain.CSSModeColumns)
	assert.Equal(t, a, b, "identical inputs must produce byte-identical output")
}

func TestMergeEmptyFragmentList(t *testing.T) {
	doc := Merge(nil, domain.CSSModeGrid)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, `<main class="document">`)
	assert.Contains(t, doc, ".grid-2col", "grid stylesheet should still be attached")
	assert.True(t, strings.HasSuffix(doc, "</html>"))
}

func TestMergeCSSSelection(t *testing.T) {
	fragments := []domain.PageFragment{{PageNumber: 1, HTML: `<section class="page"></section>`}}

	t.Run("grid", func(t *testing.T) {
		doc := Merge(fragments, domain.CSSModeGrid)
		assert.Contains(t, doc, ".grid-2col")
		assert.Contains(t, doc, ".grid-3col")
		assert.NotContains(t, doc, ".columns-2")
	})

	t.Run("columns", func(t *testing.T) {
		doc := Merge(fragments, domain.CSSModeColumns)
		assert.Contains(t, doc, ".columns-2")
		assert.Contains(t, doc, ".columns-3")
		assert.NotContains(t, doc, ".grid-2col")
	})

	t.Run("single carries only the base stylesheet", func(t *testing.T) {
		doc := Merge(fragments, domain.CSSModeSingle)
		assert.Contains(t, doc, ".document")
		assert.NotContains(t, doc, ".grid-2col")
		assert.NotContains(t, doc, ".columns-2")
	})
}

func TestMergeIncludesFailedPagePlaceholders(t *testing.T) {
	fragments := []domain.PageFragment{
		{PageNumber: 1, HTML: `<section class="page"><p>fine</p></section>`},
		{PageNumber: 2, HTML: `<section class="page"><p class="ocr-uncertain">[Error processing page 2: boom]</p></section>`, Failed: true},
	}

	doc := Merge(fragments, domain.CSSModeGrid)

	assert.Contains(t, doc, "[Error processing page 2: boom]")
	assert.Contains(t, doc, "<p>fine</p>")
}
