package app

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yadhurtech/leadquote/internal/config"
	"github.com/yadhurtech/leadquote/internal/entity"
	"github.com/yadhurtech/leadquote/internal/infra/integration/gemini"
	"github.com/yadhurtech/leadquote/internal/infra/integration/proposalai"
)

func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}

// NewProposalGenerator prefers the remote proposal function and falls back to
// Gemini. With neither configured it returns nil and every proposal is a
// form-based draft.
func NewProposalGenerator(ctx context.Context, cfg config.Config) (entity.ProposalGenerator, string, error) {
	switch {
	case cfg.ProposalAIURL != "":
		return proposalai.NewClient(cfg.ProposalAIURL), "proposal-function", nil
	case cfg.GeminiAPIKey != "":
		gen, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, "", err
		}
		return gen, "gemini", nil
	}
	return nil, "", nil
}
