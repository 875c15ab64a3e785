package proposal

import (
	"strings"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// ToLines splits free text into trimmed, non-empty lines.
func ToLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ApplyExtracted fills the fields the operator left empty with values the AI
// inferred. Operator-entered values are never overwritten.
func ApplyExtracted(in entity.ProposalInput, ex *entity.ExtractedFields) entity.ProposalInput {
	if ex == nil {
		return in
	}

	fillString(&in.ClientName, ex.ClientName)
	fillString(&in.BusinessName, ex.BusinessName)
	fillString(&in.SoftwareType, ex.SoftwareType)
	fillString(&in.TargetUsers, ex.TargetUsers)
	fillString(&in.BusinessOverview, ex.BusinessOverview)
	fillString(&in.PaymentTerms, ex.PaymentTerms)
	fillJoined(&in.BusinessActivities, ex.BusinessActivities)
	fillJoined(&in.KeyFeatures, ex.KeyFeatures)
	fillJoined(&in.ProjectFlow, ex.ProjectFlow)
	fillJoined(&in.Integrations, ex.Integrations)

	if len(in.ServiceTypes) == 0 && ex.ServiceTypes != nil {
		in.ServiceTypes = append([]string(nil), ex.ServiceTypes...)
	}
	if in.TimelineWeeks == 0 && ex.TimelineWeeks != nil {
		in.TimelineWeeks = *ex.TimelineWeeks
	}
	if in.Budget == 0 && ex.Budget != nil {
		in.Budget = *ex.Budget
	}
	return in
}

func fillString(dst *string, v *string) {
	if *dst == "" && v != nil {
		*dst = *v
	}
}

func fillJoined(dst *string, v []string) {
	if *dst == "" && v != nil {
		*dst = strings.Join(v, "\n")
	}
}

// Assemble builds the document content. AI lists win when non-empty, the
// operator's free text is the fallback. Assumptions and risks only ever come
// from the AI.
func Assemble(in entity.ProposalInput, ai *entity.AIProposal, splits []entity.BudgetSplit) entity.Proposal {
	p := entity.Proposal{
		Input:              in,
		Summary:            in.BusinessOverview,
		BusinessActivities: ToLines(in.BusinessActivities),
		KeyFeatures:        ToLines(in.KeyFeatures),
		ProjectFlow:        ToLines(in.ProjectFlow),
		Integrations:       ToLines(in.Integrations),
		Assumptions:        []string{},
		Risks:              []string{},
		Stack:              StackFor(in.SoftwareType),
		Budget:             SplitBudget(in.Budget, splits),
		AIUsed:             ai != nil,
	}
	if ai == nil {
		return p
	}

	p.Summary = ai.Summary
	p.BusinessActivities = prefer(ai.BusinessActivities, p.BusinessActivities)
	p.KeyFeatures = prefer(ai.KeyFeatures, p.KeyFeatures)
	p.ProjectFlow = prefer(ai.ProjectFlow, p.ProjectFlow)
	p.Integrations = prefer(ai.Integrations, p.Integrations)
	p.Assumptions = prefer(ai.Assumptions, p.Assumptions)
	p.Risks = prefer(ai.Risks, p.Risks)
	if len(ai.SuggestedStack) > 0 && ai.SuggestedStack[0].Layer != "" {
		p.Stack = ai.SuggestedStack
	}
	return p
}

func prefer(ai, fallback []string) []string {
	if len(ai) > 0 {
		return ai
	}
	return fallback
}
