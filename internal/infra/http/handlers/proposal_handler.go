package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/entity"
	"github.com/yadhurtech/leadquote/internal/proposal"
	"github.com/yadhurtech/leadquote/internal/usecase"
)

const maxUploadBytes = 20 << 20

type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

type ProposalHandler struct {
	UseCase      *usecase.GenerateProposalUseCase
	Company      proposal.CompanyProfile
	ValidityDays int
	PDF          PDFRenderer
	Logger       *zap.Logger
}

func NewProposalHandler(uc *usecase.GenerateProposalUseCase, company proposal.CompanyProfile, validityDays int, pdf PDFRenderer, logger *zap.Logger) *ProposalHandler {
	return &ProposalHandler{
		UseCase:      uc,
		Company:      company,
		ValidityDays: validityDays,
		PDF:          pdf,
		Logger:       logger,
	}
}

// HandleGenerate accepts the intake form as JSON, or as multipart form data
// when reference files are attached, and returns the assembled proposal.
func (h *ProposalHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	input, files, err := parseProposalRequest(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.UseCase.Execute(r.Context(), input, files)
	if err != nil {
		writeUsecaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleHTML renders a proposal previously returned by HandleGenerate.
func (h *ProposalHandler) HandleHTML(w http.ResponseWriter, r *http.Request) {
	html, _, ok := h.render(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html)
}

func (h *ProposalHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	html, doc, ok := h.render(w, r)
	if !ok {
		return
	}

	pdf, err := h.PDF.Render(r.Context(), html)
	if err != nil {
		if errors.Is(err, proposal.ErrPDFDependencyMissing) {
			writeErrorResponse(w, http.StatusServiceUnavailable, "PDF export is not available on this server.")
			return
		}
		h.Logger.Error("pdf render failed", zap.Error(err))
		writeErrorResponse(w, http.StatusInternalServerError, "failed to render pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, proposal.Filename(doc.Title())))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

func (h *ProposalHandler) render(w http.ResponseWriter, r *http.Request) (string, proposal.Document, bool) {
	var p entity.Proposal
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return "", proposal.Document{}, false
	}

	doc := proposal.Document{Proposal: p, Company: h.Company, ValidityDays: h.ValidityDays}
	html, err := proposal.RenderHTML(doc)
	if err != nil {
		h.Logger.Error("proposal render failed", zap.Error(err))
		writeErrorResponse(w, http.StatusInternalServerError, "failed to render proposal")
		return "", doc, false
	}
	return html, doc, true
}

func parseProposalRequest(r *http.Request) (entity.ProposalInput, []entity.Attachment, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		input := proposal.DefaultInput()
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return input, nil, errors.New("invalid JSON")
		}
		return input, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return entity.ProposalInput{}, nil, errors.New("invalid form data")
	}
	input, err := formInput(r)
	if err != nil {
		return input, nil, err
	}

	var files []entity.Attachment
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			return input, nil, fmt.Errorf("cannot read %s", fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return input, nil, fmt.Errorf("cannot read %s", fh.Filename)
		}
		files = append(files, entity.Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return input, files, nil
}

func formInput(r *http.Request) (entity.ProposalInput, error) {
	in := proposal.DefaultInput()
	set := func(dst *string, key string) {
		if _, ok := r.MultipartForm.Value[key]; ok {
			*dst = r.FormValue(key)
		}
	}

	set(&in.ClientName, "clientName")
	set(&in.BusinessName, "businessName")
	set(&in.QuickPrompt, "quickPrompt")
	set(&in.BusinessOverview, "businessOverview")
	set(&in.BusinessActivities, "businessActivities")
	set(&in.SoftwareType, "softwareType")
	set(&in.PaymentTerms, "paymentTerms")
	set(&in.TargetUsers, "targetUsers")
	set(&in.KeyFeatures, "keyFeatures")
	set(&in.ProjectFlow, "projectFlow")
	set(&in.Integrations, "integrations")

	if raw := strings.TrimSpace(r.FormValue("serviceTypes")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.ServiceTypes); err != nil {
			return in, errors.New("serviceTypes must be a JSON array")
		}
	}
	if raw := strings.TrimSpace(r.FormValue("timelineWeeks")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return in, errors.New("timelineWeeks must be a number")
		}
		in.TimelineWeeks = n
	}
	if raw := strings.TrimSpace(r.FormValue("budget")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, errors.New("budget must be a number")
		}
		in.Budget = v
	}
	return in, nil
}
