package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/entity"
	"github.com/yadhurtech/leadquote/internal/usecase"
)

type LeadHandler struct {
	Store  *usecase.LeadStore
	Logger *zap.Logger
}

func NewLeadHandler(store *usecase.LeadStore, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{Store: store, Logger: logger}
}

type DeleteLeadResponse struct {
	OK      bool               `json:"ok"`
	Deleted entity.DeletedLead `json:"deleted"`
}

// HandleList returns the whole database: leads, deleted leads and stages.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	db, err := h.Store.List(r.Context())
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.Store.Create(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch usecase.LeadPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.Store.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteLeadResponse{OK: true, Deleted: *deleted})
}

// HandleBoard serves the stage columns for the kanban view, filtered by ?q=.
func (h *LeadHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.Store.Board(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
