package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/entity"
	"github.com/yadhurtech/leadquote/internal/proposal"
)

const (
	StatusProposalGenerated = "Proposal generated and saved."
	StatusAIFallbackPrefix  = "AI unavailable, showing form-based draft. "
	defaultAIFailure        = "AI generation failed"
)

type GenerateProposalUseCase struct {
	Generator    entity.ProposalGenerator
	Splits       []entity.BudgetSplit
	ValidityDays int
	Now          Clock
	Logger       *zap.Logger
	// OnOutcome is told whether the AI call produced a usable result.
	OnOutcome func(aiUsed bool)
}

// NewGenerateProposalUseCase accepts a nil generator; every proposal is then
// assembled from the form alone.
func NewGenerateProposalUseCase(gen entity.ProposalGenerator, validityDays int, logger *zap.Logger) *GenerateProposalUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerateProposalUseCase{
		Generator:    gen,
		Splits:       proposal.DefaultSplits,
		ValidityDays: validityDays,
		Now:          SystemClock,
		Logger:       logger,
	}
}

// Execute never fails because of the AI call. A transport error, a non-ok
// response and a response without content all fall back to a draft built
// from the form.
func (uc *GenerateProposalUseCase) Execute(ctx context.Context, input entity.ProposalInput, files []entity.Attachment) (*entity.Proposal, error) {
	if strings.TrimSpace(input.QuickPrompt) == "" && strings.TrimSpace(input.BusinessOverview) == "" {
		return nil, &ValidationError{Field: "quickPrompt", Message: "Please add a quick prompt or business overview."}
	}

	issued := uc.Now()
	resp, err := uc.generate(ctx, input, files)

	var p entity.Proposal
	if err != nil {
		uc.Logger.Warn("proposal ai unavailable", zap.Error(err))
		p = proposal.Assemble(input, nil, uc.Splits)
		p.StatusMessage = StatusAIFallbackPrefix + err.Error()
	} else {
		input = proposal.ApplyExtracted(input, resp.Extracted)
		p = proposal.Assemble(input, resp.AI, uc.Splits)
		p.ProposalID = resp.ProposalID
		p.StatusMessage = StatusProposalGenerated
	}
	if uc.OnOutcome != nil {
		uc.OnOutcome(p.AIUsed)
	}

	p.IssuedAt = issued
	p.ValidUntil = issued.AddDate(0, 0, uc.ValidityDays)
	return &p, nil
}

func (uc *GenerateProposalUseCase) generate(ctx context.Context, input entity.ProposalInput, files []entity.Attachment) (*entity.GenerateResponse, error) {
	if uc.Generator == nil {
		return nil, errors.New("no proposal generator configured")
	}
	resp, err := uc.Generator.Generate(ctx, input, files)
	if err != nil {
		return nil, err
	}
	if resp == nil || !resp.OK || resp.AI == nil {
		msg := defaultAIFailure
		if resp != nil && resp.Error != "" {
			msg = resp.Error
		}
		return nil, errors.New(msg)
	}
	return resp, nil
}
