package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/rydeebs/cleanupIPP/internal/errors"
	"github.com/rydeebs/cleanupIPP/internal/services"
	"github.com/rydeebs/cleanupIPP/pkg/contracts/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CleanHandler handles report upload and cleaning requests.
type CleanHandler struct {
	service        *services.CleanService
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewCleanHandler creates a new clean handler.
func NewCleanHandler(service *services.CleanService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *CleanHandler {
	return &CleanHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "clean_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the clean routes.
func (h *CleanHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Clean)
	r.Post("/preview", h.Preview)

	return r
}

// Clean handles POST /api/clean. It accepts a multipart upload in the
// "file" field and responds with the cleaned workbook as an attachment.
// Run summary fields travel in response headers so clients that stream
// the attachment to disk still see the outcome.
func (h *CleanHandler) Clean(w http.ResponseWriter, r *http.Request) {
	result, filename, ok := h.runClean(w, r)
	if !ok {
		return
	}

	writeSummaryHeaders(w, result)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cleanedFilename(filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Workbook)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(result.Workbook); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write workbook response",
			slog.String("error", err.Error()),
			slog.String("run_id", result.RunID),
		)
	}
}

// Preview handles POST /api/clean/preview. Same input as Clean, but the
// response is a JSON body carrying the cleaned rows instead of a workbook.
func (h *CleanHandler) Preview(w http.ResponseWriter, r *http.Request) {
	result, _, ok := h.runClean(w, r)
	if !ok {
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":   "success",
		"run_id":   result.RunID,
		"summary":  result.Summary,
		"warnings": domain.WarningMessages(result.Warnings),
		"columns":  result.Table.Columns,
		"rows":     result.Table.Rows,
	})
}

// runClean extracts the upload and runs the cleaning service, handling
// errors in place. The boolean reports whether a result was produced.
func (h *CleanHandler) runClean(w http.ResponseWriter, r *http.Request) (*services.CleanResult, string, bool) {
	filename, file, apiErr := h.readUpload(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return nil, "", false
	}
	defer file.Close()

	result, err := h.service.Clean(r.Context(), filename, file)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "clean run failed",
			slog.String("error", err.Error()),
			slog.String("filename", filename),
		)
		h.errorHandler.HandleError(w, r, err)
		return nil, "", false
	}

	return result, filename, true
}

// readUpload pulls the "file" field out of the multipart form. The body
// is capped at maxUploadBytes before parsing.
func (h *CleanHandler) readUpload(r *http.Request) (string, io.ReadCloser, *apierrors.APIError) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, apierrors.ErrPayloadTooLarge
		}
		return "", nil, apierrors.NewWithDetails(
			http.StatusBadRequest,
			"INVALID_REQUEST",
			"Request body must be multipart/form-data",
			map[string]string{"error": err.Error()},
		)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, apierrors.ErrMissingFile
	}

	return header.Filename, file, nil
}

// writeSummaryHeaders mirrors the run summary into response headers.
func writeSummaryHeaders(w http.ResponseWriter, result *services.CleanResult) {
	w.Header().Set("X-Run-ID", result.RunID)
	w.Header().Set("X-Total-Skus", strconv.Itoa(result.Summary.TotalSKUs))
	w.Header().Set("X-Focus-Skus", strconv.Itoa(result.Summary.FocusCount))
	w.Header().Set("X-Total-Quantity", strconv.FormatFloat(result.Summary.TotalQuantity, 'f', -1, 64))
	w.Header().Set("X-Warnings", strconv.Itoa(len(result.Warnings)))
}

// cleanedFilename derives the attachment name from the uploaded name.
func cleanedFilename(uploaded string) string {
	base := filepath.Base(uploaded)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "report"
	}
	return base + "_cleaned.xlsx"
}
