package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/csvcodec"
	"github.com/yadhurtech/leadquote/internal/entity"
	"github.com/yadhurtech/leadquote/internal/usecase"
)

const (
	ImportModeCSV         = "csv"
	ImportModeJSON        = "json"
	ImportModeGoogleSheet = "googleSheet"
)

type ImportHandler struct {
	Store  *usecase.LeadStore
	Logger *zap.Logger
}

func NewImportHandler(store *usecase.LeadStore, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{Store: store, Logger: logger}
}

type ImportRequest struct {
	Mode    string                `json:"mode"`
	Content string                `json:"content"`
	Records []entity.ImportRecord `json:"records"`
}

type ImportResponse struct {
	OK       bool `json:"ok"`
	Upserted int  `json:"upserted"`
}

func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var (
		n   int
		err error
	)
	switch req.Mode {
	case ImportModeCSV:
		n, err = h.Store.Import(r.Context(), csvcodec.DecodeRecords(req.Content))
	case ImportModeJSON:
		n, err = h.Store.Import(r.Context(), req.Records)
	case ImportModeGoogleSheet:
		n, err = h.Store.ImportFromMirror(r.Context())
		if errors.Is(err, entity.ErrMirrorNotConfigured) {
			writeErrorResponse(w, http.StatusBadRequest, entity.MirrorNotConfiguredReason)
			return
		}
	default:
		writeErrorResponse(w, http.StatusBadRequest, "Invalid import mode")
		return
	}
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, ImportResponse{OK: true, Upserted: n})
}

type ExportHandler struct {
	Store  *usecase.LeadStore
	Logger *zap.Logger
}

func NewExportHandler(store *usecase.LeadStore, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{Store: store, Logger: logger}
}

// HandleExport serves the database as JSON (default) or CSV. With
// ?toGoogleSheet=1 it writes the spreadsheet mirror instead and reports the
// sync outcome.
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if toSheet, _ := strconv.ParseBool(q.Get("toGoogleSheet")); toSheet {
		res, err := h.Store.SyncMirror(r.Context())
		if err != nil {
			writeUsecaseError(w, h.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	db, err := h.Store.List(r.Context())
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}

	if q.Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="crm-leads.csv"`)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(csvcodec.Encode(csvcodec.LeadRows(db.Leads))))
		return
	}

	writeJSON(w, http.StatusOK, db)
}
