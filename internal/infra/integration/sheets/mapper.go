package sheets

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yadhurtech/leadquote/internal/csvcodec"
	"github.com/yadhurtech/leadquote/internal/entity"
)

var deletedHeader = append(append([]string{}, csvcodec.LeadHeader...), "deletedAt")

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// cellOr distinguishes a missing cell from an empty one.
func cellOr(row []interface{}, i int, def string) string {
	if i >= len(row) || row[i] == nil {
		return def
	}
	return cell(row, i)
}

func cellTime(row []interface{}, i int, now time.Time) time.Time {
	t, err := time.Parse(time.RFC3339Nano, cell(row, i))
	if err != nil {
		return now
	}
	return t.UTC()
}

func rowToLead(row []interface{}, now time.Time) entity.Lead {
	return entity.Lead{
		ID:        cell(row, 0),
		Name:      cell(row, 1),
		Email:     cell(row, 2),
		Phone:     cell(row, 3),
		Company:   cell(row, 4),
		Status:    entity.Stage(cellOr(row, 5, "New")),
		Notes:     cell(row, 6),
		CreatedAt: cellTime(row, 7, now),
		UpdatedAt: cellTime(row, 8, now),
	}
}

func rowToDeleted(row []interface{}, now time.Time) entity.DeletedLead {
	return entity.DeletedLead{Lead: rowToLead(row, now), DeletedAt: cellTime(row, 9, now)}
}

func rowToRecord(row []interface{}) entity.ImportRecord {
	phone, company, status, notes := cell(row, 3), cell(row, 4), cellOr(row, 5, "New"), cell(row, 6)
	return entity.ImportRecord{
		Name:    cell(row, 1),
		Email:   cell(row, 2),
		Phone:   &phone,
		Company: &company,
		Status:  &status,
		Notes:   &notes,
	}
}

func toValues(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		out[i] = vals
	}
	return out
}

func leadValues(leads []entity.Lead) [][]interface{} {
	return toValues(csvcodec.LeadRows(leads))
}

func deletedValues(deleted []entity.DeletedLead) [][]interface{} {
	rows := make([][]string, 0, len(deleted)+1)
	rows = append(rows, deletedHeader)
	for _, d := range deleted {
		row := csvcodec.LeadRow(d.Lead)
		rows = append(rows, append(row, d.DeletedAt.UTC().Format(entity.TimeLayout)))
	}
	return toValues(rows)
}
