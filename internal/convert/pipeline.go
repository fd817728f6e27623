package convert

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/prathamudeshmukh/pdf2html/internal/assemble"
	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

// Downloader fetches a remote PDF into a temporary file and returns its path.
type Downloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// Rasterizer renders a PDF into ordered page images inside a fresh temp dir.
type Rasterizer interface {
	Render(ctx context.Context, pdfPath string, dpi int) ([]domain.PageImage, string, error)
}

// VariableDetector rewrites assembled HTML with placeholders and returns the
// detected sample map.
type VariableDetector interface {
	Detect(ctx context.Context, html string) (string, domain.VariableMap, error)
}

// Pipeline orchestrates one conversion: download, rasterize, per-page
// rendering, merge, and optional variable detection. Renderer and detector
// are built per request because they carry request-scoped generation
// parameters.
type Pipeline struct {
	downloader  Downloader
	rasterizer  Rasterizer
	batch       *BatchProcessor
	newRenderer func(Settings) PageRenderer
	newDetector func(Settings) VariableDetector
	logger      zerolog.Logger
}

// NewPipeline wires the pipeline's collaborators.
func NewPipeline(
	downloader Downloader,
	rasterizer Rasterizer,
	batch *BatchProcessor,
	newRenderer func(Settings) PageRenderer,
	newDetector func(Settings) VariableDetector,
	logger zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		downloader:  downloader,
		rasterizer:  rasterizer,
		batch:       batch,
		newRenderer: newRenderer,
		newDetector: newDetector,
		logger:      logger,
	}
}

// Execute runs one conversion of the PDF at pdfURL. Configuration, download
// and rasterization failures propagate as typed errors; page-level and
// variable-detection failures degrade into the successful result. The
// returned result references temporary artifacts the caller must dispose of;
// the pipeline deletes nothing on the success path.
func (p *Pipeline) Execute(ctx context.Context, pdfURL string, s Settings, requestID string) (*domain.ConversionResult, error) {
	log := p.logger.With().Str("request_id", requestID).Logger()
	totalStart := time.Now()

	// Fail fast on an invalid layout mode before any network work
	if _, err := domain.ParseCSSMode(string(s.CSSMode)); err != nil {
		return nil, err
	}

	log.Info().Str("pdf_url", pdfURL).Str("model", s.Model).Msg("Conversion pipeline started")

	pdfPath, err := p.downloader.Download(ctx, pdfURL)
	if err != nil {
		return nil, err
	}

	images, tempDir, err := p.rasterizer.Render(ctx, pdfPath, s.DPI)
	if err != nil {
		// Error path: nothing is handed back to the caller, so dispose of
		// the downloaded file here.
		domain.Artifacts{PDFPath: pdfPath}.Cleanup(log)
		return nil, err
	}

	renderer := p.newRenderer(s)
	fragments := p.batch.Process(ctx, renderer, images, s.CSSMode, s.MaxParallelWorkers)

	finalHTML := assemble.Merge(fragments, s.CSSMode)

	var sampleJSON domain.VariableMap
	if s.ExtractVariables {
		finalHTML, sampleJSON = p.detectVariables(ctx, finalHTML, s, log)
	}

	imagePaths := make([]string, 0, len(images))
	for _, img := range images {
		imagePaths = append(imagePaths, img.ImagePath)
	}

	log.Info().
		Int("pages", len(fragments)).
		Int("chars", len(finalHTML)).
		Dur("elapsed", time.Since(totalStart)).
		Msg("Conversion pipeline complete")

	return &domain.ConversionResult{
		HTML:           finalHTML,
		PagesProcessed: len(fragments),
		ModelUsed:      s.Model,
		CSSMode:        s.CSSMode,
		SampleJSON:     sampleJSON,
		Artifacts: domain.Artifacts{
			PDFPath:    pdfPath,
			ImagePaths: imagePaths,
			TempDir:    tempDir,
		},
	}, nil
}

// detectVariables runs the optional enrichment step. Any failure falls back
// to the unmodified HTML and a nil map; it never fails the conversion.
func (p *Pipeline) detectVariables(ctx context.Context, mergedHTML string, s Settings, log zerolog.Logger) (string, domain.VariableMap) {
	detector := p.newDetector(s)

	rewritten, vars, err := detector.Detect(ctx, mergedHTML)
	if err != nil {
		log.Warn().Err(err).Msg("Variable detection failed, returning unmodified HTML")
		return mergedHTML, nil
	}
	if rewritten == "" {
		log.Warn().Msg("Variable detection produced empty HTML, returning unmodified HTML")
		return mergedHTML, nil
	}

	log.Info().Int("variables", len(vars)).Msg("Variable detection complete")
	return rewritten, vars
}
