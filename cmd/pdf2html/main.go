// Package main provides a one-shot command line PDF-to-HTML converter.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/prathamudeshmukh/pdf2html/internal/config"
	"github.com/prathamudeshmukh/pdf2html/internal/convert"
	"github.com/prathamudeshmukh/pdf2html/internal/download"
	"github.com/prathamudeshmukh/pdf2html/internal/llm"
	"github.com/prathamudeshmukh/pdf2html/internal/observability"
	"github.com/prathamudeshmukh/pdf2html/internal/pdf"
	"github.com/prathamudeshmukh/pdf2html/internal/render"
	"github.com/prathamudeshmukh/pdf2html/internal/variables"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pdf2html",
		Short: "Convert a remotely hosted PDF into a single merged HTML document",
	}
	rootCmd.AddCommand(newConvertCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newConvertCmd() *cobra.Command {
	var (
		outPath          string
		varsPath         string
		model            string
		dpi              int
		maxTokens        int
		temperature      float64
		cssMode          string
		workers          int
		extractVariables bool
	)

	cmd := &cobra.Command{
		Use:   "convert <pdf-url>",
		Short: "Run one conversion and write the merged HTML to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
			if err != nil {
				return err
			}

			logger := observability.NewLogger(observability.LogConfig{
				Level:       cfg.Observability.LogLevel,
				Format:      "console",
				ServiceName: "pdf2html-cli",
			})

			llmClient, err := llm.NewClient(llm.Config{
				APIKey:  cfg.LLM.APIKey,
				BaseURL: cfg.LLM.BaseURL,
				Timeout: cfg.LLM.RequestTimeout,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			// Flags override config defaults only when set explicitly
			params := convert.Params{}
			flags := cmd.Flags()
			if flags.Changed("model") {
				params.Model = &model
			}
			if flags.Changed("dpi") {
				params.DPI = &dpi
			}
			if flags.Changed("max-tokens") {
				params.MaxTokens = &maxTokens
			}
			if flags.Changed("temperature") {
				params.Temperature = &temperature
			}
			if flags.Changed("css-mode") {
				params.CSSMode = &cssMode
			}
			if flags.Changed("workers") {
				params.MaxParallelWorkers = &workers
			}
			if flags.Changed("extract-variables") {
				params.ExtractVariables = &extractVariables
			}

			settings, err := convert.NewSettings(cfg.Convert, params)
			if err != nil {
				return err
			}

			downloader := download.NewDownloader(cfg.Convert.DownloadTimeout, logger)
			rasterizer := pdf.NewRasterizer(logger)
			batch := convert.NewBatchProcessor(cfg.Convert.WorkerCeiling, logger)
			pipeline := convert.NewPipeline(
				downloader,
				rasterizer,
				batch,
				func(s convert.Settings) convert.PageRenderer {
					return render.NewGenerator(llmClient, s.Model, s.MaxTokens, s.Temperature)
				},
				func(s convert.Settings) convert.VariableDetector {
					return variables.NewDetector(llmClient, s.Model, s.MaxTokens, s.Temperature, logger)
				},
				logger,
			)

			requestID := uuid.New().String()[:8]
			result, err := pipeline.Execute(context.Background(), args[0], settings, requestID)
			if err != nil {
				return err
			}
			defer result.Artifacts.Cleanup(logger)

			if err := os.WriteFile(outPath, []byte(result.HTML), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			logger.Info().Str("path", outPath).Int("pages", result.PagesProcessed).Msg("Wrote merged HTML")

			if result.SampleJSON != nil && varsPath != "" {
				data, err := json.MarshalIndent(result.SampleJSON, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal sample values: %w", err)
				}
				if err := os.WriteFile(varsPath, data, 0o644); err != nil {
					return fmt.Errorf("write sample values: %w", err)
				}
				logger.Info().Str("path", varsPath).Int("variables", len(result.SampleJSON)).Msg("Wrote sample values")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "out.html", "output HTML file")
	cmd.Flags().StringVar(&varsPath, "vars-out", "variables.json", "output file for detected sample values")
	cmd.Flags().StringVar(&model, "model", "", "vision model identifier")
	cmd.Flags().IntVar(&dpi, "dpi", 0, "rasterization resolution (72-600)")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "max output tokens per page (100-8000)")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature (0.0-2.0)")
	cmd.Flags().StringVar(&cssMode, "css-mode", "", "layout mode: grid, columns or single")
	cmd.Flags().IntVar(&workers, "workers", 0, "max parallel page workers (1-10)")
	cmd.Flags().BoolVar(&extractVariables, "extract-variables", false, "detect template variables in the result")

	return cmd
}
