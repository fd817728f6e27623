// Package pdf rasterizes PDF documents into ordered page images using go-fitz.
package pdf

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog"

	"github.com/prathamudeshmukh/pdf2html/internal/domain"
)

// Rasterizer converts a PDF file into one PNG image per page. Every call
// creates a fresh temporary directory owned by that conversion; the
// rasterizer never deletes it.
type Rasterizer struct {
	logger zerolog.Logger
}

// NewRasterizer creates a new PDF rasterizer.
func NewRasterizer(logger zerolog.Logger) *Rasterizer {
	return &Rasterizer{logger: logger}
}

// Render rasterizes every page of the PDF at pdfPath to a PNG at the given
// resolution. It returns the ordered page images and the temporary directory
// that contains them. A document with zero pages is a RasterizeError.
func (r *Rasterizer) Render(ctx context.Context, pdfPath string, dpi int) ([]domain.PageImage, string, error) {
	validator := NewValidator()
	if err := validator.ValidatePDFPath(pdfPath); err != nil {
		return nil, "", err
	}
	if err := validator.ValidateDPI(dpi); err != nil {
		return nil, "", err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, "", domain.RasterizeError("failed to open PDF", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, "", domain.RasterizeError("PDF has no pages", nil)
	}

	tempDir, err := os.MkdirTemp("", "pdf2html-pages-*")
	if err != nil {
		return nil, "", domain.IOError("failed to create temp directory", err)
	}

	images := make([]domain.PageImage, 0, pageCount)

	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			os.RemoveAll(tempDir)
			return nil, "", ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(pageNum, float64(dpi))
		if err != nil {
			os.RemoveAll(tempDir)
			return nil, "", domain.RasterizeError(fmt.Sprintf("failed to render page %d", pageNum+1), err)
		}

		outputPath := filepath.Join(tempDir, fmt.Sprintf("page_%03d.png", pageNum+1))
		outputFile, err := os.Create(outputPath)
		if err != nil {
			os.RemoveAll(tempDir)
			return nil, "", domain.IOError(fmt.Sprintf("failed to create output file for page %d", pageNum+1), err)
		}

		err = png.Encode(outputFile, img)
		outputFile.Close()
		if err != nil {
			os.RemoveAll(tempDir)
			return nil, "", domain.RasterizeError(fmt.Sprintf("failed to encode page %d as PNG", pageNum+1), err)
		}

		bounds := img.Bounds()
		images = append(images, domain.PageImage{
			PageNumber: pageNum + 1,
			ImagePath:  outputPath,
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		})
	}

	r.logger.Info().Int("pages", pageCount).Int("dpi", dpi).Msg("Rendered page images")

	return images, tempDir, nil
}
