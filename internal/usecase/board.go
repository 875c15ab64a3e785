package usecase

import (
	"context"
	"math"
	"strings"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// BoardColumn is one stage of the pipeline view.
type BoardColumn struct {
	Stage   entity.Stage  `json:"stage"`
	Leads   []entity.Lead `json:"leads"`
	Count   int           `json:"count"`
	Percent int           `json:"percent"`
}

type BoardOutput struct {
	Query   string        `json:"query"`
	Total   int           `json:"total"`
	Columns []BoardColumn `json:"columns"`
}

// Board groups the leads by stage, in stage order. The query matches
// case-insensitively against name, email, company, phone and notes. Percent
// is the column's share of all leads, not of the filtered ones.
func (s *LeadStore) Board(ctx context.Context, query string) (*BoardOutput, error) {
	db, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return BuildBoard(db, query), nil
}

func BuildBoard(db *entity.Database, query string) *BoardOutput {
	term := strings.ToLower(strings.TrimSpace(query))
	total := len(db.Leads)
	denom := float64(max(total, 1))

	out := &BoardOutput{Query: term, Total: total, Columns: make([]BoardColumn, 0, len(db.Stages))}
	for _, stage := range db.Stages {
		col := BoardColumn{Stage: stage, Leads: []entity.Lead{}}
		for _, lead := range db.Leads {
			if lead.Status != stage || !matchesLead(lead, term) {
				continue
			}
			col.Leads = append(col.Leads, lead)
		}
		col.Count = len(col.Leads)
		col.Percent = min(100, int(math.Round(float64(col.Count)/denom*100)))
		out.Columns = append(out.Columns, col)
	}
	return out
}

func matchesLead(lead entity.Lead, term string) bool {
	if term == "" {
		return true
	}
	haystack := strings.Join([]string{lead.Name, lead.Email, lead.Company, lead.Phone, lead.Notes}, " ")
	return strings.Contains(strings.ToLower(haystack), term)
}
