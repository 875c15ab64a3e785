package entity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the timestamp format used in spreadsheet cells and exports.
// It matches the millisecond ISO-8601 strings the JSON file has always held.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Status    Stage     `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeletedLead is a snapshot taken when a lead is removed. It is never mutated.
type DeletedLead struct {
	Lead
	DeletedAt time.Time `json:"deletedAt"`
}

type leadFields Lead

// leadJSON shadows the timestamps so they always carry milliseconds.
type leadJSON struct {
	leadFields
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func (l Lead) wire() leadJSON {
	return leadJSON{leadFields: leadFields(l), CreatedAt: formatTime(l.CreatedAt), UpdatedAt: formatTime(l.UpdatedAt)}
}

func (l Lead) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.wire())
}

// MarshalJSON is required here too: the promoted Lead method would drop
// DeletedAt.
func (d DeletedLead) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		leadJSON
		DeletedAt string `json:"deletedAt"`
	}{d.Lead.wire(), formatTime(d.DeletedAt)})
}

// NewLead assigns a fresh id and stamps both timestamps with now.
func NewLead(name, email, phone, company, notes string, status Stage, now time.Time) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Company:   company,
		Status:    status,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes UpdatedAt. CreatedAt is never modified after creation.
func (l *Lead) Touch(now time.Time) {
	l.UpdatedAt = now
}

func (l Lead) Delete(now time.Time) DeletedLead {
	return DeletedLead{Lead: l, DeletedAt: now}
}

// Backend persists the whole database root as one unit.
type Backend interface {
	Load(ctx context.Context) (*Database, error)
	Save(ctx context.Context, db *Database) error
}
