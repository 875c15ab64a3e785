package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/yadhurtech/leadquote/internal/config"
	"github.com/yadhurtech/leadquote/internal/infra/integration/proposalai"
)

func TestNewLoggerLevel(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("nonsense")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewProposalGeneratorSelection(t *testing.T) {
	gen, name, err := NewProposalGenerator(context.Background(), config.Config{})
	require.NoError(t, err)
	assert.Nil(t, gen)
	assert.Empty(t, name)

	gen, name, err = NewProposalGenerator(context.Background(), config.Config{
		ProposalAIURL: "https://example.test/generate-proposal",
		GeminiAPIKey:  "key",
	})
	require.NoError(t, err)
	assert.IsType(t, &proposalai.Client{}, gen)
	assert.Equal(t, "proposal-function", name)
}
