// cleanipp cleans IPP sales report exports.
//
// Usage:
//
//	cleanipp clean --in report.xlsx --out cleaned.xlsx [--summary-csv focus.csv]
//	cleanipp serve [--config config.yaml]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/rydeebs/cleanupIPP/internal/app"
	"github.com/rydeebs/cleanupIPP/internal/config"
	"github.com/rydeebs/cleanupIPP/internal/exporter"
	"github.com/rydeebs/cleanupIPP/internal/infrastructure"
	"github.com/rydeebs/cleanupIPP/internal/services"
	"github.com/rydeebs/cleanupIPP/internal/validation"
	"github.com/rydeebs/cleanupIPP/pkg/contracts"
)

func main() {
	cliApp := &cli.App{
		Name:    "cleanipp",
		Usage:   "Clean IPP sales report exports: aggregate, dedup, rank by velocity and flag focus SKUs",
		Version: contracts.GetVersionString(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
				EnvVars: []string{"CLEANIPP_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			cleanCommand(),
			serveCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cleanCommand() *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "Clean a single report file and write the result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "Input report (.xlsx or .csv)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Output path; extension picks the format (.xlsx or .csv)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "summary-csv",
				Usage: "Also write the focus SKU summary to this CSV path",
			},
			&cli.BoolFlag{
				Name:  "bom",
				Value: true,
				Usage: "Prefix CSV output with a UTF-8 BOM for Excel compatibility",
			},
		},
		Action: runClean,
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP cleaning service",
		Action: runServe,
	}
}

func runClean(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	logger := infrastructure.MustLogger(cfg.Logging)
	service := services.NewCleanService(logger, cfg.Pipeline.PipelineSettings(), nil)

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputReport(c.String("in")); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(filepath.Dir(c.String("out"))); err != nil {
		return err
	}

	ctx := context.Background()
	result, err := service.CleanFile(ctx, c.String("in"))
	if err != nil {
		return err
	}

	outPath := c.String("out")
	if err := writeResult(outPath, result, c.Bool("bom")); err != nil {
		return err
	}

	if summaryPath := c.String("summary-csv"); summaryPath != "" {
		writer := exporter.NewCSVWriter()
		opts := exporter.FocusSummaryOptions(result.Summary)
		opts.BOMPrefix = c.Bool("bom")
		if err := writer.WriteFile(summaryPath, opts); err != nil {
			return fmt.Errorf("failed to write focus summary: %w", err)
		}
	}

	logger.InfoContext(ctx, "clean complete",
		slog.String("in", c.String("in")),
		slog.String("out", outPath),
		slog.Int("total_skus", result.Summary.TotalSKUs),
		slog.Int("focus_skus", result.Summary.FocusCount),
		slog.Float64("total_quantity", result.Summary.TotalQuantity))

	for _, w := range result.Warnings {
		logger.WarnContext(ctx, "pipeline warning",
			slog.String("stage", w.Stage),
			slog.String("message", w.Message))
	}

	return nil
}

// writeResult persists the cleaned table in the format implied by the
// output extension.
func writeResult(path string, result *services.CleanResult, withBOM bool) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		writer := exporter.NewCSVWriter()
		return writer.WriteFile(path, exporter.TableOptions(result.Table, withBOM))
	case ".xlsx":
		return os.WriteFile(path, result.Workbook, 0o644)
	default:
		return fmt.Errorf("unsupported output format %q (use .xlsx or .csv)", filepath.Ext(path))
	}
}

func runServe(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		return err
	}
	return application.Run()
}
