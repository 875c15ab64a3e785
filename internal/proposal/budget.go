package proposal

import (
	"math"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// DefaultSplits is the standard pricing breakdown of a quotation.
var DefaultSplits = []entity.BudgetSplit{
	{Label: "App / Website", Percent: 60},
	{Label: "Admin Portal", Percent: 25},
	{Label: "UI/UX", Percent: 15},
}

// SplitBudget applies each percentage to total independently. Percentages are
// not normalised, and the rounded amounts need not add up to total.
func SplitBudget(total float64, splits []entity.BudgetSplit) []entity.BudgetLine {
	lines := make([]entity.BudgetLine, 0, len(splits))
	for _, s := range splits {
		lines = append(lines, entity.BudgetLine{
			Label:   s.Label,
			Percent: s.Percent,
			Amount:  int64(math.Round(total * s.Percent / 100)),
		})
	}
	return lines
}
