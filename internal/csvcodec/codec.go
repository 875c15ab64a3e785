// Package csvcodec reads and writes the CSV dialect used by lead import and
// export. Output always quotes every cell; input is parsed leniently, one
// physical line per record.
package csvcodec

import (
	"regexp"
	"strings"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// LeadHeader is the export column order. Spreadsheet tabs use the same order.
var LeadHeader = []string{"id", "name", "email", "phone", "company", "status", "notes", "createdAt", "updatedAt"}

// importFields are the attributes an import row is mapped onto.
var importFields = []string{"name", "email", "phone", "company", "status", "notes"}

const defaultImportStatus = "New"

var lineBreak = regexp.MustCompile(`\r?\n`)

// Encode quotes every cell, doubling inner quotes, and joins rows with \n.
func Encode(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

// LeadRow is a lead's cells in LeadHeader order.
func LeadRow(l entity.Lead) []string {
	return []string{
		l.ID,
		l.Name,
		l.Email,
		l.Phone,
		l.Company,
		string(l.Status),
		l.Notes,
		l.CreatedAt.UTC().Format(entity.TimeLayout),
		l.UpdatedAt.UTC().Format(entity.TimeLayout),
	}
}

// LeadRows returns the header followed by one row per lead.
func LeadRows(leads []entity.Lead) [][]string {
	rows := make([][]string, 0, len(leads)+1)
	rows = append(rows, append([]string(nil), LeadHeader...))
	for _, l := range leads {
		rows = append(rows, LeadRow(l))
	}
	return rows
}

// Decode parses text into records keyed by name, email, phone, company,
// status and notes. The header row is matched case-insensitively; absent
// columns yield "" (status yields "New"). Fewer than two non-blank lines
// yield no records. A leading byte order mark is ignored.
func Decode(text string) []map[string]string {
	text = strings.TrimPrefix(text, "\ufeff")
	var lines []string
	for _, line := range lineBreak.Split(text, -1) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return []map[string]string{}
	}

	header := ParseLine(lines[0])
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	records := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells := ParseLine(line)
		rec := make(map[string]string, len(importFields))
		for _, field := range importFields {
			i, ok := index[field]
			switch {
			case ok && i < len(cells):
				rec[field] = cells[i]
			case field == "status":
				rec[field] = defaultImportStatus
			default:
				rec[field] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// DecodeRecords is Decode followed by conversion to import records.
func DecodeRecords(text string) []entity.ImportRecord {
	fields := Decode(text)
	out := make([]entity.ImportRecord, 0, len(fields))
	for _, f := range fields {
		out = append(out, entity.RecordFromFields(f))
	}
	return out
}

// ParseLine splits one line into trimmed fields. A quote toggles quoted mode,
// a doubled quote inside quoted mode is a literal quote, and a comma outside
// quoted mode ends the field.
func ParseLine(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if quoted && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			quoted = !quoted
		case c == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}
