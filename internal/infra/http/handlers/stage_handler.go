package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/entity"
	"github.com/yadhurtech/leadquote/internal/usecase"
)

type StageHandler struct {
	Store  *usecase.LeadStore
	Logger *zap.Logger
}

func NewStageHandler(store *usecase.LeadStore, logger *zap.Logger) *StageHandler {
	return &StageHandler{Store: store, Logger: logger}
}

type StagesResponse struct {
	Stages entity.Stages `json:"stages"`
}

type SetStagesRequest struct {
	Stages []string `json:"stages"`
}

type SetStagesResponse struct {
	OK         bool          `json:"ok"`
	Stages     entity.Stages `json:"stages"`
	Reassigned int           `json:"reassigned"`
}

func (h *StageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	db, err := h.Store.List(r.Context())
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, StagesResponse{Stages: db.Stages})
}

func (h *StageHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	var req SetStagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	out, err := h.Store.SetStages(r.Context(), req.Stages)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, SetStagesResponse{OK: true, Stages: out.Stages, Reassigned: out.Reassigned})
}
