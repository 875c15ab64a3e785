package entity

import (
	"context"
	"time"
)

// ProposalInput is the project intake form.
type ProposalInput struct {
	ClientName         string   `json:"clientName"`
	BusinessName       string   `json:"businessName"`
	QuickPrompt        string   `json:"quickPrompt"`
	BusinessOverview   string   `json:"businessOverview"`
	BusinessActivities string   `json:"businessActivities"`
	SoftwareType       string   `json:"softwareType"`
	ServiceTypes       []string `json:"serviceTypes"`
	PaymentTerms       string   `json:"paymentTerms"`
	TargetUsers        string   `json:"targetUsers"`
	KeyFeatures        string   `json:"keyFeatures"`
	ProjectFlow        string   `json:"projectFlow"`
	Integrations       string   `json:"integrations"`
	TimelineWeeks      int      `json:"timelineWeeks"`
	Budget             float64  `json:"budget"`
}

type StackItem struct {
	Layer      string `json:"layer"`
	Technology string `json:"technology"`
}

// AIProposal is the content block returned by the generation endpoint.
type AIProposal struct {
	Summary            string      `json:"summary"`
	BusinessActivities []string    `json:"businessActivities"`
	KeyFeatures        []string    `json:"keyFeatures"`
	ProjectFlow        []string    `json:"projectFlow"`
	Integrations       []string    `json:"integrations"`
	Assumptions        []string    `json:"assumptions"`
	Risks              []string    `json:"risks"`
	SuggestedStack     []StackItem `json:"suggestedStack"`
}

// ExtractedFields are intake values the AI inferred from the quick prompt.
// Nil means the AI did not provide the field.
type ExtractedFields struct {
	ClientName         *string  `json:"clientName,omitempty"`
	BusinessName       *string  `json:"businessName,omitempty"`
	SoftwareType       *string  `json:"softwareType,omitempty"`
	ServiceTypes       []string `json:"serviceTypes,omitempty"`
	TargetUsers        *string  `json:"targetUsers,omitempty"`
	BusinessOverview   *string  `json:"businessOverview,omitempty"`
	BusinessActivities []string `json:"businessActivities,omitempty"`
	KeyFeatures        []string `json:"keyFeatures,omitempty"`
	ProjectFlow        []string `json:"projectFlow,omitempty"`
	Integrations       []string `json:"integrations,omitempty"`
	PaymentTerms       *string  `json:"paymentTerms,omitempty"`
	TimelineWeeks      *int     `json:"timelineWeeks,omitempty"`
	Budget             *float64 `json:"budget,omitempty"`
}

type GenerateResponse struct {
	OK         bool             `json:"ok"`
	ProposalID *int64           `json:"proposalId,omitempty"`
	AI         *AIProposal      `json:"ai,omitempty"`
	Extracted  *ExtractedFields `json:"extracted,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type BudgetSplit struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

type BudgetLine struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Amount  int64   `json:"amount"`
}

// Proposal is the assembled document content. It is never persisted.
type Proposal struct {
	Input              ProposalInput `json:"input"`
	Summary            string        `json:"summary"`
	BusinessActivities []string      `json:"businessActivities"`
	KeyFeatures        []string      `json:"keyFeatures"`
	ProjectFlow        []string      `json:"projectFlow"`
	Integrations       []string      `json:"integrations"`
	Assumptions        []string      `json:"assumptions"`
	Risks              []string      `json:"risks"`
	Stack              []StackItem   `json:"stack"`
	Budget             []BudgetLine  `json:"budget"`
	ProposalID         *int64        `json:"proposalId,omitempty"`
	AIUsed             bool          `json:"aiUsed"`
	StatusMessage      string        `json:"statusMessage"`
	IssuedAt           time.Time     `json:"issuedAt"`
	ValidUntil         time.Time     `json:"validUntil"`
}

// ProposalGenerator is the remote AI call. Implementations return the raw
// response; callers decide what counts as a usable result.
type ProposalGenerator interface {
	Generate(ctx context.Context, input ProposalInput, files []Attachment) (*GenerateResponse, error)
}
