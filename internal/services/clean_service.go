package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rydeebs/cleanupIPP/internal/dataprocessing"
	apierrors "github.com/rydeebs/cleanupIPP/internal/errors"
	"github.com/rydeebs/cleanupIPP/internal/exporter"
	"github.com/rydeebs/cleanupIPP/internal/infrastructure"
	"github.com/rydeebs/cleanupIPP/internal/pipeline"
	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

// CleanService orchestrates one cleaning run: decode the upload, run
// the pipeline, render the output workbook. The pipeline itself is a
// pure function; every side effect (logging, metrics) lives here.
type CleanService struct {
	logger   *slog.Logger
	pipeline *pipeline.Pipeline
	excel    *exporter.ExcelWriter
	metrics  *infrastructure.Metrics
}

// NewCleanService creates a clean service with the given pipeline
// settings. A nil metrics sink disables metric recording.
func NewCleanService(logger *slog.Logger, cfg pipeline.Config, metrics *infrastructure.Metrics) *CleanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanService{
		logger:   logger.With(slog.String("component", "clean_service")),
		pipeline: pipeline.New(cfg),
		excel:    exporter.NewExcelWriter(),
		metrics:  metrics,
	}
}

// CleanResult is the complete outcome of a run, ready for delivery.
type CleanResult struct {
	RunID    string           `json:"run_id"`
	Table    domain.Table     `json:"table"`
	Summary  domain.Summary   `json:"summary"`
	Warnings []domain.Warning `json:"warnings,omitempty"`
	// Workbook is the rendered .xlsx, with focus rows highlighted.
	Workbook []byte `json:"-"`
}

// Clean runs the full decode-clean-export sequence on one upload. The
// filename is only used to pick the decode format. A decode failure is
// terminal; everything downstream degrades to warnings.
func (s *CleanService) Clean(ctx context.Context, filename string, data io.Reader) (*CleanResult, error) {
	table, err := dataprocessing.Parse(data, filename)
	if err != nil {
		s.logger.ErrorContext(ctx, "decode failed",
			slog.String("filename", filename), slog.String("error", err.Error()))
		s.observe("decode_error", 0, 0, 0, 0, time.Now())
		return nil, apierrors.DecodeError(err)
	}
	return s.cleanTable(ctx, filename, table)
}

// CleanFile is the disk-based variant used by the CLI.
func (s *CleanService) CleanFile(ctx context.Context, path string) (*CleanResult, error) {
	table, err := dataprocessing.ParseFile(path)
	if err != nil {
		s.logger.ErrorContext(ctx, "decode failed",
			slog.String("filename", path), slog.String("error", err.Error()))
		s.observe("decode_error", 0, 0, 0, 0, time.Now())
		return nil, apierrors.DecodeError(err)
	}
	return s.cleanTable(ctx, path, table)
}

// cleanTable shares the post-decode path between Clean and CleanFile.
func (s *CleanService) cleanTable(ctx context.Context, filename string, table domain.Table) (*CleanResult, error) {
	runID := uuid.New().String()
	start := time.Now()
	logger := s.logger.With(slog.String("run_id", runID), slog.String("filename", filename))

	rowsIn := table.Len()
	result := s.pipeline.Run(table)

	var workbook bytes.Buffer
	exportWarnings, err := s.excel.Write(&workbook, result.Table)
	if err != nil {
		logger.ErrorContext(ctx, "export failed", slog.String("error", err.Error()))
		s.observe("export_error", rowsIn, result.Table.Len(), 0, len(result.Warnings), start)
		return nil, apierrors.ExportError(err)
	}
	warnings := append(result.Warnings, exportWarnings...)

	logger.InfoContext(ctx, "run complete",
		slog.Int("rows_in", rowsIn),
		slog.Int("rows_out", result.Table.Len()),
		slog.Float64("total_quantity", result.Summary.TotalQuantity),
		slog.Int("focus_skus", result.Summary.FocusCount),
		slog.Int("warnings", len(warnings)),
		slog.Duration("elapsed", time.Since(start)),
	)
	s.observe("success", rowsIn, result.Table.Len(), result.Summary.FocusCount, len(warnings), start)

	return &CleanResult{
		RunID:    runID,
		Table:    result.Table,
		Summary:  result.Summary,
		Warnings: warnings,
		Workbook: workbook.Bytes(),
	}, nil
}

func (s *CleanService) observe(outcome string, rowsIn, rowsOut, focus, warnings int, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveRun(outcome, rowsIn, rowsOut, focus, warnings, time.Since(start))
}
