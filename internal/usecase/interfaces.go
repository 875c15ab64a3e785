package usecase

import (
	"context"
	"time"

	"github.com/yadhurtech/leadquote/internal/entity"
)

type CreateLeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
	Status  string `json:"status"`
}

// LeadPatch is a partial update: nil fields are left untouched.
type LeadPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Status  *string `json:"status,omitempty"`
}

type StagesOutput struct {
	Stages     entity.Stages `json:"stages"`
	Reassigned int           `json:"reassigned"`
}

// Mirror is the optional remote copy of the lead set.
type Mirror interface {
	Configured() bool
	Write(ctx context.Context, leads []entity.Lead, deleted []entity.DeletedLead) (entity.SyncResult, error)
	ImportRows(ctx context.Context) ([]entity.ImportRecord, error)
}

type EventPublisher interface {
	PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error
}

// Observer is told about best-effort side effects that failed.
type Observer interface {
	MirrorSyncFailed(err error)
	EventPublishFailed(err error)
}

type Clock func() time.Time

// SystemClock returns UTC wall time truncated to the millisecond precision
// the stored timestamps carry.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

type noopObserver struct{}

func (noopObserver) MirrorSyncFailed(error)   {}
func (noopObserver) EventPublishFailed(error) {}
