package entity

// ImportRecord is one row of a batch import. Optional fields are nil when the
// source did not carry them; a nil field never overwrites an existing lead.
type ImportRecord struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Status  *string `json:"status,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// RecordFromFields converts a decoded CSV or spreadsheet row. Every optional
// field is present, possibly as an empty string.
func RecordFromFields(fields map[string]string) ImportRecord {
	return ImportRecord{
		Name:    fields["name"],
		Email:   fields["email"],
		Phone:   strPtr(fields["phone"]),
		Company: strPtr(fields["company"]),
		Status:  strPtr(fields["status"]),
		Notes:   strPtr(fields["notes"]),
	}
}

func strPtr(s string) *string { return &s }
