package convert

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

// PageRenderer converts one page image into an HTML fragment.
type PageRenderer interface {
	RenderPage(ctx context.Context, image domain.PageImage, mode domain.CSSMode) (string, error)
}

// BatchProcessor runs a PageRenderer over every page image with bounded
// parallelism. Output length and order always mirror the input: a page whose
// render fails contributes a placeholder fragment instead of aborting or
// cancelling its siblings.
type BatchProcessor struct {
	ceiling int
	logger  zerolog.Logger
}

// NewBatchProcessor creates a batch processor. The ceiling is the
// process-wide upper bound on workers regardless of what a request asks for.
func NewBatchProcessor(ceiling int, logger zerolog.Logger) *BatchProcessor {
	if ceiling <= 0 {
		ceiling = MaxWorkers
	}
	return &BatchProcessor{ceiling: ceiling, logger: logger}
}

// Process renders every image and returns one fragment per image, in input
// order. It never returns an error.
func (bp *BatchProcessor) Process(
	ctx context.Context,
	renderer PageRenderer,
	images []domain.PageImage,
	mode domain.CSSMode,
	maxWorkers int,
) []domain.PageFragment {
	if len(images) == 0 {
		return []domain.PageFragment{}
	}

	// Single page: render inline, no dispatch overhead
	if len(images) == 1 {
		return []domain.PageFragment{bp.renderOne(ctx, renderer, images[0], mode, 1)}
	}

	workers := maxWorkers
	if workers > bp.ceiling {
		workers = bp.ceiling
	}
	if workers > len(images) {
		workers = len(images)
	}
	if workers < 1 {
		workers = 1
	}

	bp.logger.Info().
		Int("pages", len(images)).
		Int("workers", workers).
		Msg("Starting parallel page processing")

	// Worker pool pattern: results are stored by original index, never by
	// completion order.
	type workItem struct {
		index int
		image domain.PageImage
	}

	workChan := make(chan workItem, len(images))
	results := make([]domain.PageFragment, len(images))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, image := range images {
		workChan <- workItem{index: i, image: image}
	}
	close(workChan)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workChan {
				fragment := bp.renderOne(ctx, renderer, item.image, mode, len(images))

				mu.Lock()
				results[item.index] = fragment
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	bp.logger.Info().Int("pages", len(images)).Msg("Parallel page processing complete")

	return results
}

// renderOne renders a single page, converting any failure into a
// deterministic placeholder fragment.
func (bp *BatchProcessor) renderOne(
	ctx context.Context,
	renderer PageRenderer,
	image domain.PageImage,
	mode domain.CSSMode,
	totalPages int,
) domain.PageFragment {
	start := time.Now()

	html, err := renderer.RenderPage(ctx, image, mode)
	if err != nil {
		bp.logger.Error().
			Err(err).
			Int("page", image.PageNumber).
			Dur("elapsed", time.Since(start)).
			Msg("Page render failed")
		return domain.PageFragment{
			PageNumber: image.PageNumber,
			HTML:       errorPlaceholder(image.PageNumber, err),
			Failed:     true,
		}
	}

	bp.logger.Info().
		Int("page", image.PageNumber).
		Int("total", totalPages).
		Int("chars", len(html)).
		Dur("elapsed", time.Since(start)).
		Msg("Page rendered")

	return domain.PageFragment{PageNumber: image.PageNumber, HTML: html}
}

// errorPlaceholder synthesizes the fragment substituted for a failed page.
// It carries the 1-based page number and a visible uncertainty marker.
func errorPlaceholder(pageNumber int, err error) string {
	return fmt.Sprintf(
		`<section class="page"><p class="ocr-uncertain">[Error processing page %d: %v]</p></section>`,
		pageNumber, err,
	)
}
