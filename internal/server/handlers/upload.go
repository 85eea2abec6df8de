// Implements the raw spreadsheet upload and export endpoints. These bypass
// the JSON Wrap adapter: upload consumes multipart form data and export
// streams a file back.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/internal/export"
	"github.com/rosterd/rosterd/internal/ingest"
	"github.com/rosterd/rosterd/internal/roster"
	"github.com/rosterd/rosterd/internal/server/dto"
)

// UploadHandler ingests spreadsheet uploads and serves dataset exports.
type UploadHandler struct {
	store *roster.Store
	views *roster.Views
	cfg   *config.Config
}

// NewUploadHandler creates the upload/export handler.
func NewUploadHandler(store *roster.Store, views *roster.Views, cfg *config.Config) *UploadHandler {
	return &UploadHandler{store: store, views: views, cfg: cfg}
}

// Upload replaces the dataset with the spreadsheet in the "file" form field.
// Accepts .csv, .xlsx and legacy .xls.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, dto.PayloadTooLarge(maxErr.Limit))
			return
		}
		writeError(w, dto.MissingField("file"))
		return
	}
	defer func() { _ = file.Close() }()

	table, err := ingest.Read(header.Filename, file, ingest.Options{DateColumns: h.cfg.DateColumns})
	if err != nil {
		writeError(w, apiError(err))
		return
	}
	h.store.Load(table)
	slog.InfoContext(r.Context(), "Dataset loaded",
		"file", header.Filename, "rows", table.Len(), "columns", len(table.Columns))

	writeJSON(w, &dto.UploadResponse{
		DatasetID: h.store.DatasetID().String(),
		Rows:      table.Len(),
		Columns:   []string(table.Columns),
	})
}

// Export streams the current dataset. The format query parameter selects
// csv (default) or xlsx.
func (h *UploadHandler) Export(w http.ResponseWriter, r *http.Request) {
	t := h.views.Snapshot()
	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="roster.csv"`)
		if err := export.CSV(t, w); err != nil {
			slog.ErrorContext(r.Context(), "CSV export failed", "err", err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="roster.xlsx"`)
		if err := export.XLSX(t, w); err != nil {
			slog.ErrorContext(r.Context(), "XLSX export failed", "err", err)
		}
	default:
		writeError(w, dto.BadRequest("unknown export format: "+format))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := dto.ErrorResponse{Error: dto.ErrorDetails{Code: dto.ErrorCodeInternal, Message: err.Error()}}
	var ews dto.ErrorWithStatus
	if errors.As(err, &ews) {
		status = ews.StatusCode()
		resp.Error.Code = ews.Code()
		if d := ews.Details(); len(d) > 0 {
			resp.Details = d
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		slog.Error("Failed to encode error response", "err", err)
	}
}
