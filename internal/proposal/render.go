package proposal

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// CompanyProfile is the issuer block printed on every quotation.
type CompanyProfile struct {
	Name          string
	Tagline       string
	Address       string
	Phone         string
	Email         string
	Website       string
	BankName      string
	AccountName   string
	AccountNumber string
	IFSC          string
}

// Document is everything the quotation template needs.
type Document struct {
	Proposal     entity.Proposal
	Company      CompanyProfile
	ValidityDays int
}

// Title is used for the browser title and the PDF filename.
func (d Document) Title() string {
	client := strings.TrimSpace(d.Proposal.Input.ClientName)
	if client == "" {
		client = "Client"
	}
	return fmt.Sprintf("%s-Proposal-%s", d.Company.Name, client)
}

//go:embed templates/*.html
var templateFS embed.FS

var proposalTemplate = template.Must(
	template.New("proposal.html").Funcs(template.FuncMap{
		"inr":  formatAmount,
		"date": FormatDate,
		"join": strings.Join,
		"last": func(i int, list []string) bool { return i == len(list)-1 },
	}).ParseFS(templateFS, "templates/proposal.html"),
)

func RenderHTML(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := proposalTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render proposal: %w", err)
	}
	return buf.String(), nil
}

func formatAmount(v any) string {
	switch n := v.(type) {
	case int64:
		return FormatINR(float64(n))
	case int:
		return FormatINR(float64(n))
	case float64:
		return FormatINR(n)
	default:
		return fmt.Sprint(v)
	}
}
