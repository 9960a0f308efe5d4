package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rydeebs/cleanupIPP/internal/config"
	"github.com/rydeebs/cleanupIPP/internal/pipeline"
	"github.com/rydeebs/cleanupIPP/internal/services"
)

const sampleCSV = `SKU,Name,Category,Retired,Quantity,Price,Reference
A,Widget,Tools,no,10,1.50,300
B,Gadget,Tools,no,30,2.00,40
A,Widget,Tools,no,10,1.50,300
,,,,3,,
`

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	service := services.NewCleanService(logger, pipeline.DefaultConfig(), nil)
	cfg := config.Default()
	cfg.Server.RateLimit.Enabled = false
	return NewRouter(cfg, logger, service, nil)
}

func multipartUpload(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCleanHandler_Clean(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "/api/clean", "sales.csv", sampleCSV))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="sales_cleaned.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", rec.Header().Get("X-Total-Skus"))
	assert.Equal(t, "53", rec.Header().Get("X-Total-Quantity"))
	assert.NotEmpty(t, rec.Header().Get("X-Run-Id"))

	// xlsx files are zip archives
	body := rec.Body.Bytes()
	require.Greater(t, len(body), 4)
	assert.Equal(t, []byte("PK"), body[:2])
}

func TestCleanHandler_Preview(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "/api/clean/preview", "sales.csv", sampleCSV))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status  string `json:"status"`
		RunID   string `json:"run_id"`
		Summary struct {
			TotalSKUs     int     `json:"total_skus"`
			TotalQuantity float64 `json:"total_quantity"`
		} `json:"summary"`
		Columns []string          `json:"columns"`
		Rows    [][]interface{}   `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 2, resp.Summary.TotalSKUs)
	assert.InDelta(t, 53.0, resp.Summary.TotalQuantity, 1e-9)
	assert.Len(t, resp.Rows, 2)
	assert.Contains(t, resp.Columns, "Velocity")
	assert.Contains(t, resp.Columns, "FocusSKU")
}

func TestCleanHandler_MissingFile(t *testing.T) {
	router := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/clean", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_FILE")
}

func TestCleanHandler_NotMultipart(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/clean", strings.NewReader(sampleCSV))
	req.Header.Set("Content-Type", "text/csv")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")
}

func TestCleanHandler_DecodeFailure(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "/api/clean", "broken.xlsx", "this is not a workbook"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "DECODE_FAILED")
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestRouter_RateLimit(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	service := services.NewCleanService(logger, pipeline.DefaultConfig(), nil)
	cfg := config.Default()
	cfg.Server.RateLimit.Enabled = true
	cfg.Server.RateLimit.RPS = 0
	cfg.Server.RateLimit.Burst = 1
	router := NewRouter(cfg, logger, service, nil)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, multipartUpload(t, "/api/clean/preview", "sales.csv", sampleCSV))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, multipartUpload(t, "/api/clean/preview", "sales.csv", sampleCSV))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMIT_EXCEEDED")
}
