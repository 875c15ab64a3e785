package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yadhurtech/leadquote/internal/entity"
)

const DefaultModel = "gemini-2.5-flash"

const systemPrompt = `You write software development proposals for an agency.
Reply with one JSON object and nothing else, shaped as:
{"ai": {"summary": string, "businessActivities": [string], "keyFeatures": [string],
"projectFlow": [string], "integrations": [string], "assumptions": [string],
"risks": [string], "suggestedStack": [{"layer": string, "technology": string}]},
"extracted": {"clientName": string, "businessName": string, "softwareType": string,
"serviceTypes": [string], "targetUsers": string, "businessOverview": string,
"businessActivities": [string], "keyFeatures": [string], "projectFlow": [string],
"integrations": [string], "paymentTerms": string, "timelineWeeks": number, "budget": number}}
Only include an "extracted" field when the brief states it.`

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator drafts proposal content with Gemini. It stands in for the
// remote proposal function when only an API key is configured.
type Generator struct {
	models contentGenerator
	model  string
}

func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Generator{models: client.Models, model: model}, nil
}

type modelReply struct {
	AI        *entity.AIProposal      `json:"ai"`
	Extracted *entity.ExtractedFields `json:"extracted"`
}

func (g *Generator) Generate(ctx context.Context, input entity.ProposalInput, files []entity.Attachment) (*entity.GenerateResponse, error) {
	brief, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{genai.NewPartFromText("Intake form:\n" + string(brief))}
	for _, f := range files {
		if f.ContentType == "" {
			continue
		}
		parts = append(parts, genai.NewPartFromBytes(f.Data, f.ContentType))
	}

	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	var reply modelReply
	if err := json.Unmarshal([]byte(stripFence(resp.Text())), &reply); err != nil {
		return &entity.GenerateResponse{OK: false, Error: "AI returned malformed JSON"}, nil
	}
	return &entity.GenerateResponse{
		OK:        reply.AI != nil,
		AI:        reply.AI,
		Extracted: reply.Extracted,
	}, nil
}

// stripFence drops a ```json fence some models add despite the MIME type.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
