package csvcodec

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadhurtech/leadquote/internal/entity"
)

func TestEncodeQuotesEveryCell(t *testing.T) {
	out := Encode([][]string{{"a", `say "hi"`}, {"", "x,y"}})
	assert.Equal(t, "\"a\",\"say \"\"hi\"\"\"\n\"\",\"x,y\"", out)
}

func TestLeadHeaderRow(t *testing.T) {
	rows := LeadRows(nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "id,name,email,phone,company,status,notes,createdAt,updatedAt", strings.Join(rows[0], ","))
}

func TestLeadExportGolden(t *testing.T) {
	leads := []entity.Lead{{
		ID:        "lead-1",
		Name:      "Ann Lee",
		Email:     "ann@example.com",
		Company:   `Acme "Labs"`,
		Status:    "New",
		Notes:     "call back, Tuesday",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 678_000_000, time.UTC),
		UpdatedAt: time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC),
	}}

	g := goldie.New(t)
	g.Assert(t, "lead_export", []byte(Encode(LeadRows(leads))))
}

func TestDecodeRoundTripWithMissingColumns(t *testing.T) {
	records := Decode(Encode([][]string{{"id", "name"}, {"1", "Ann"}}))

	require.Len(t, records, 1)
	assert.Equal(t, map[string]string{
		"name":    "Ann",
		"email":   "",
		"phone":   "",
		"company": "",
		"status":  "New",
		"notes":   "",
	}, records[0])
}

func TestDecodeHeaderIsCaseInsensitive(t *testing.T) {
	text := "Name,EMAIL,Status\r\n  Bob , bob@x.com ,Won\r\n"

	records := Decode(text)

	require.Len(t, records, 1)
	assert.Equal(t, "Bob", records[0]["name"])
	assert.Equal(t, "bob@x.com", records[0]["email"])
	assert.Equal(t, "Won", records[0]["status"])
}

func TestDecodeIgnoresByteOrderMark(t *testing.T) {
	records := Decode("\ufeffName,Email\r\nAnn,ann@x.com\r\n")

	require.Len(t, records, 1)
	assert.Equal(t, "Ann", records[0]["name"])
	assert.Equal(t, "ann@x.com", records[0]["email"])
}

func TestDecodeNeedsHeaderAndData(t *testing.T) {
	assert.Empty(t, Decode(""))
	assert.Empty(t, Decode("name,email\n\n   \n"))
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	records := Decode("name,email\n\nA,a@x.com\n   \nB,b@x.com")

	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0]["name"])
	assert.Equal(t, "B", records[1]["name"])
}

func TestDecodeShortRowUsesDefaults(t *testing.T) {
	records := Decode("name,email,phone,status\nCara,cara@x.com")

	require.Len(t, records, 1)
	assert.Equal(t, "", records[0]["phone"])
	assert.Equal(t, "New", records[0]["status"])
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `"a,b",c`, []string{"a,b", "c"}},
		{"escaped quote", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"trims fields", `  a ,  " b "  `, []string{"a", "b"}},
		{"trailing empty", "a,", []string{"a", ""}},
		{"quote mid field", `ab"c,d"e`, []string{"abc,de"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}

func TestDecodeRecordsMarksFieldsPresent(t *testing.T) {
	records := DecodeRecords("name,email\nDan,dan@x.com")

	require.Len(t, records, 1)
	require.NotNil(t, records[0].Phone)
	assert.Equal(t, "", *records[0].Phone)
	require.NotNil(t, records[0].Status)
	assert.Equal(t, "New", *records[0].Status)
}
