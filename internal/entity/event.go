package entity

import (
	"errors"
	"time"
)

const (
	EventLeadCreated   = "lead.created"
	EventLeadUpdated   = "lead.updated"
	EventLeadDeleted   = "lead.deleted"
	EventLeadsImported = "leads.imported"
	EventStagesChanged = "stages.changed"
)

// LeadEvent is published after a successful store mutation.
type LeadEvent struct {
	Type   string    `json:"type"`
	LeadID string    `json:"leadId,omitempty"`
	Name   string    `json:"name,omitempty"`
	Email  string    `json:"email,omitempty"`
	Count  int       `json:"count,omitempty"`
	At     time.Time `json:"at"`
}

// SyncResult is the outcome of a full mirror write.
type SyncResult struct {
	OK         bool   `json:"ok"`
	Reason     string `json:"reason,omitempty"`
	Configured bool   `json:"configured"`
}

// MirrorNotConfiguredReason is reported when the spreadsheet credentials are
// incomplete.
const MirrorNotConfiguredReason = "Google Sheets credentials are not configured."

var ErrMirrorNotConfigured = errors.New("google sheets mirror is not configured")
