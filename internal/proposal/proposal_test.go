package proposal

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadhurtech/leadquote/internal/entity"
)

func TestSplitBudget(t *testing.T) {
	lines := SplitBudget(12000, []entity.BudgetSplit{{Label: "App", Percent: 60}})
	require.Len(t, lines, 1)
	assert.Equal(t, int64(7200), lines[0].Amount)
	assert.Equal(t, "App", lines[0].Label)

	lines = SplitBudget(100, []entity.BudgetSplit{
		{Label: "A", Percent: 33},
		{Label: "B", Percent: 33},
		{Label: "C", Percent: 34},
	})
	assert.Equal(t, []int64{33, 33, 34}, amounts(lines))
}

func TestSplitBudgetDoesNotNormalise(t *testing.T) {
	lines := SplitBudget(1000, []entity.BudgetSplit{{Label: "A", Percent: 50}, {Label: "B", Percent: 70}})
	assert.Equal(t, []int64{500, 700}, amounts(lines))

	lines = SplitBudget(10, []entity.BudgetSplit{{Label: "A", Percent: 33.3}, {Label: "B", Percent: 33.3}, {Label: "C", Percent: 33.3}})
	assert.Equal(t, []int64{3, 3, 3}, amounts(lines))
}

func TestSplitBudgetDefaults(t *testing.T) {
	lines := SplitBudget(12000, DefaultSplits)
	assert.Equal(t, []int64{7200, 3000, 1800}, amounts(lines))
}

func amounts(lines []entity.BudgetLine) []int64 {
	out := make([]int64, len(lines))
	for i, l := range lines {
		out[i] = l.Amount
	}
	return out
}

func TestToLines(t *testing.T) {
	assert.Equal(t, []string{"one", "two"}, ToLines("  one \n\n   \ntwo\n"))
	assert.Equal(t, []string{}, ToLines(""))
}

func TestApplyExtractedFillsOnlyEmptyFields(t *testing.T) {
	client := "Extracted Client"
	business := "Extracted Biz"
	weeks := 20
	budget := 50000.0

	in := entity.ProposalInput{
		BusinessName:  "Operator Biz",
		KeyFeatures:   "Login",
		TimelineWeeks: 0,
		Budget:        9000,
	}
	out := ApplyExtracted(in, &entity.ExtractedFields{
		ClientName:    &client,
		BusinessName:  &business,
		ServiceTypes:  []string{"PWA"},
		KeyFeatures:   []string{"Search", "Chat"},
		ProjectFlow:   []string{"Sign up", "Order"},
		TimelineWeeks: &weeks,
		Budget:        &budget,
	})

	assert.Equal(t, "Extracted Client", out.ClientName)
	assert.Equal(t, "Operator Biz", out.BusinessName)
	assert.Equal(t, "Login", out.KeyFeatures)
	assert.Equal(t, "Sign up\nOrder", out.ProjectFlow)
	assert.Equal(t, []string{"PWA"}, out.ServiceTypes)
	assert.Equal(t, 20, out.TimelineWeeks)
	assert.Equal(t, 9000.0, out.Budget)
}

func TestApplyExtractedNil(t *testing.T) {
	in := DefaultInput()
	assert.Equal(t, in, ApplyExtracted(in, nil))
}

func TestAssembleWithoutAI(t *testing.T) {
	in := DefaultInput()
	in.BusinessOverview = "A clinic chain"
	in.KeyFeatures = "Booking\nPayments"
	in.SoftwareType = SoftwareMobile

	p := Assemble(in, nil, DefaultSplits)

	assert.False(t, p.AIUsed)
	assert.Equal(t, "A clinic chain", p.Summary)
	assert.Equal(t, []string{"Booking", "Payments"}, p.KeyFeatures)
	assert.Empty(t, p.Assumptions)
	assert.Empty(t, p.Risks)
	assert.Equal(t, "Mobile", p.Stack[0].Layer)
	assert.Equal(t, []int64{7200, 3000, 1800}, amounts(p.Budget))
}

func TestAssemblePrefersNonEmptyAILists(t *testing.T) {
	in := DefaultInput()
	in.KeyFeatures = "Booking"
	in.Integrations = "Razorpay"

	ai := &entity.AIProposal{
		Summary:        "AI summary",
		KeyFeatures:    []string{"AI feature"},
		Integrations:   []string{},
		Risks:          []string{"Scope creep"},
		SuggestedStack: []entity.StackItem{{Layer: "Frontend", Technology: "Svelte"}},
	}
	p := Assemble(in, ai, DefaultSplits)

	assert.True(t, p.AIUsed)
	assert.Equal(t, "AI summary", p.Summary)
	assert.Equal(t, []string{"AI feature"}, p.KeyFeatures)
	assert.Equal(t, []string{"Razorpay"}, p.Integrations)
	assert.Equal(t, []string{"Scope creep"}, p.Risks)
	assert.Equal(t, []entity.StackItem{{Layer: "Frontend", Technology: "Svelte"}}, p.Stack)
}

func TestAssembleIgnoresStackWithBlankFirstLayer(t *testing.T) {
	in := DefaultInput()
	ai := &entity.AIProposal{SuggestedStack: []entity.StackItem{{Layer: "", Technology: "?"}}}

	p := Assemble(in, ai, DefaultSplits)

	assert.Equal(t, StackFor(SoftwareWeb), p.Stack)
}

func TestStackForUnknownType(t *testing.T) {
	assert.Equal(t, StackFor(SoftwareCustom), StackFor("Quantum"))
	for _, st := range SoftwareTypes {
		assert.Len(t, StackFor(st), 5, st)
	}
}

func TestFormatINR(t *testing.T) {
	cases := map[float64]string{
		0:       "₹0",
		999:     "₹999",
		12000:   "₹12,000",
		120000:  "₹1,20,000",
		1234567: "₹12,34,567",
		7200.4:  "₹7,200",
		-1500:   "-₹1,500",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatINR(in))
	}
}

func TestRenderHTML(t *testing.T) {
	in := DefaultInput()
	in.ClientName = "Meera"
	in.BusinessName = "Meera Foods"
	in.BusinessOverview = "Cloud kitchen <brand>"
	in.ProjectFlow = "Browse\nOrder\nDeliver"

	issued := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	id := int64(42)
	p := Assemble(in, nil, DefaultSplits)
	p.IssuedAt = issued
	p.ValidUntil = issued.AddDate(0, 0, 15)
	p.ProposalID = &id

	html, err := RenderHTML(Document{
		Proposal:     p,
		Company:      CompanyProfile{Name: "Yadhurtech", BankName: "CITY UNION BANK"},
		ValidityDays: 15,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Prepared for <strong>Meera</strong> (Meera Foods)")
	assert.Contains(t, html, "Cloud kitchen &lt;brand&gt;")
	assert.Contains(t, html, "₹7,200")
	assert.Contains(t, html, "Issue Date: 01 Mar 2024")
	assert.Contains(t, html, "Valid Until: 16 Mar 2024")
	assert.Contains(t, html, "Proposal ID: #42")
	assert.Contains(t, html, "Quotation validity: 15 days")
	assert.Equal(t, 2, strings.Count(html, `class="flow-arrow"`))
	assert.NotContains(t, html, "<h3>Integrations</h3>")
}

func TestDocumentTitleAndFilename(t *testing.T) {
	doc := Document{Company: CompanyProfile{Name: "Yadhurtech"}}
	assert.Equal(t, "Yadhurtech-Proposal-Client", doc.Title())

	doc.Proposal.Input.ClientName = "Ann Lee"
	assert.Equal(t, "Yadhurtech-Proposal-Ann-Lee.pdf", Filename(doc.Title()))
	assert.Equal(t, "proposal.pdf", Filename("???"))
}

func TestPDFRendererWithoutChromium(t *testing.T) {
	r := NewPDFRenderer()
	r.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	assert.False(t, r.Available())
	_, err := r.Render(context.Background(), "<html></html>")
	assert.ErrorIs(t, err, ErrPDFDependencyMissing)
}

func TestEncodeDataURL(t *testing.T) {
	assert.Equal(t, "a%20b%3C%2F%3E", encodeDataURL("a b</>"))
	assert.Equal(t, "%E2%82%B9", encodeDataURL("₹"))
}
