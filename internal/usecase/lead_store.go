package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// LeadStore owns the database root. Every operation is one full
// read-modify-write cycle against the backend. Cycles are serialised within
// the process; separate processes sharing a file can still overwrite each
// other.
type LeadStore struct {
	backend  entity.Backend
	mirror   Mirror
	events   EventPublisher
	observer Observer
	now      Clock
	logger   *zap.Logger

	mu sync.Mutex
}

type LeadStoreOption func(*LeadStore)

// WithMirror enables a best-effort full sync after each write. When the
// mirror is also the primary backend the extra sync is skipped.
func WithMirror(m Mirror) LeadStoreOption {
	return func(s *LeadStore) { s.mirror = m }
}

func WithEventPublisher(p EventPublisher) LeadStoreOption {
	return func(s *LeadStore) { s.events = p }
}

func WithObserver(o Observer) LeadStoreOption {
	return func(s *LeadStore) { s.observer = o }
}

func WithClock(c Clock) LeadStoreOption {
	return func(s *LeadStore) { s.now = c }
}

func WithLogger(l *zap.Logger) LeadStoreOption {
	return func(s *LeadStore) { s.logger = l }
}

func NewLeadStore(backend entity.Backend, opts ...LeadStoreOption) *LeadStore {
	s := &LeadStore{
		backend:  backend,
		observer: noopObserver{},
		now:      SystemClock,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LeadStore) List(ctx context.Context) (*entity.Database, error) {
	return s.load(ctx)
}

func (s *LeadStore) Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, &ValidationError{Field: errs[0].Field, Message: "name and email are required"}
	}

	var created entity.Lead
	_, err := s.mutate(ctx, "create", func(db *entity.Database) error {
		lead := entity.NewLead(
			strings.TrimSpace(input.Name),
			strings.TrimSpace(input.Email),
			input.Phone,
			input.Company,
			input.Notes,
			db.Stages.Resolve(input.Status),
			s.now(),
		)
		db.Prepend(*lead)
		created = *lead
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lead created", zap.String("id", created.ID), zap.String("status", created.Status.String()))
	s.publish(ctx, entity.LeadEvent{
		Type: entity.EventLeadCreated, LeadID: created.ID, Name: created.Name, Email: created.Email, At: created.CreatedAt,
	})
	return &created, nil
}

func (s *LeadStore) Update(ctx context.Context, id string, patch LeadPatch) (*entity.Lead, error) {
	var updated entity.Lead
	_, err := s.mutate(ctx, "update", func(db *entity.Database) error {
		i := db.IndexOf(id)
		if i < 0 {
			return &NotFoundError{Resource: "lead", ID: id}
		}
		if errs := ValidateLeadPatch(patch, db.Stages); len(errs) > 0 {
			return &errs[0]
		}

		lead := &db.Leads[i]
		if patch.Name != nil {
			lead.Name = *patch.Name
		}
		if patch.Email != nil {
			lead.Email = *patch.Email
		}
		if patch.Phone != nil {
			lead.Phone = *patch.Phone
		}
		if patch.Company != nil {
			lead.Company = *patch.Company
		}
		if patch.Notes != nil {
			lead.Notes = *patch.Notes
		}
		if patch.Status != nil {
			lead.Status, _ = db.Stages.Lookup(*patch.Status)
		}
		lead.Touch(s.now())
		updated = *lead
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, entity.LeadEvent{
		Type: entity.EventLeadUpdated, LeadID: updated.ID, Name: updated.Name, Email: updated.Email, At: updated.UpdatedAt,
	})
	return &updated, nil
}

func (s *LeadStore) Delete(ctx context.Context, id string) (*entity.DeletedLead, error) {
	var deleted entity.DeletedLead
	_, err := s.mutate(ctx, "delete", func(db *entity.Database) error {
		i := db.IndexOf(id)
		if i < 0 {
			return &NotFoundError{Resource: "lead", ID: id}
		}
		deleted = db.Remove(i, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lead deleted", zap.String("id", deleted.ID))
	s.publish(ctx, entity.LeadEvent{
		Type: entity.EventLeadDeleted, LeadID: deleted.ID, Name: deleted.Name, Email: deleted.Email, At: deleted.DeletedAt,
	})
	return &deleted, nil
}

// Import upserts records by exact email match and returns how many were
// accepted. Records without a name or email are skipped silently. The batch
// is persisted once.
func (s *LeadStore) Import(ctx context.Context, records []entity.ImportRecord) (int, error) {
	accepted := 0
	_, err := s.mutate(ctx, "import", func(db *entity.Database) error {
		now := s.now()
		for _, rec := range records {
			if !isImportable(rec) {
				continue
			}

			if i := db.IndexOfEmail(rec.Email); i >= 0 {
				lead := &db.Leads[i]
				lead.Name = rec.Name
				if rec.Phone != nil {
					lead.Phone = *rec.Phone
				}
				if rec.Company != nil {
					lead.Company = *rec.Company
				}
				if rec.Notes != nil {
					lead.Notes = *rec.Notes
				}
				if rec.Status != nil {
					lead.Status = db.Stages.Resolve(*rec.Status)
				}
				lead.Touch(now)
			} else {
				status := db.Stages.First()
				if rec.Status != nil {
					status = db.Stages.Resolve(*rec.Status)
				}
				db.Prepend(*entity.NewLead(rec.Name, rec.Email,
					deref(rec.Phone), deref(rec.Company), deref(rec.Notes), status, now))
			}
			accepted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("leads imported", zap.Int("received", len(records)), zap.Int("accepted", accepted))
	s.publish(ctx, entity.LeadEvent{Type: entity.EventLeadsImported, Count: accepted, At: s.now()})
	return accepted, nil
}

// ImportFromMirror pulls the spreadsheet's lead rows and imports them.
// Original ids and timestamps are not carried over.
func (s *LeadStore) ImportFromMirror(ctx context.Context) (int, error) {
	if s.mirror == nil || !s.mirror.Configured() {
		return 0, entity.ErrMirrorNotConfigured
	}
	rows, err := s.mirror.ImportRows(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrMirrorNotConfigured) {
			return 0, err
		}
		return 0, &BackingStoreError{Op: "mirror import", Err: err}
	}
	return s.Import(ctx, rows)
}

// SetStages replaces the stage set. Leads whose status is no longer a member
// are moved to the new first stage; their previous status is only kept in
// the log.
func (s *LeadStore) SetStages(ctx context.Context, raw []string) (*StagesOutput, error) {
	stages, err := entity.NewStages(raw)
	if err != nil {
		return nil, &ValidationError{Field: "stages", Message: "stages required"}
	}

	out := &StagesOutput{Stages: stages}
	_, err = s.mutate(ctx, "set stages", func(db *entity.Database) error {
		db.Stages = stages
		now := s.now()
		for i := range db.Leads {
			lead := &db.Leads[i]
			if stages.Contains(lead.Status) {
				continue
			}
			s.logger.Info("lead stage reassigned",
				zap.String("id", lead.ID),
				zap.String("from", lead.Status.String()),
				zap.String("to", stages.First().String()))
			lead.Status = stages.First()
			lead.Touch(now)
			out.Reassigned++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, entity.LeadEvent{Type: entity.EventStagesChanged, Count: out.Reassigned, At: s.now()})
	return out, nil
}

// SyncMirror writes the current lead set to the mirror on demand.
func (s *LeadStore) SyncMirror(ctx context.Context) (entity.SyncResult, error) {
	if s.mirror == nil {
		return entity.SyncResult{Reason: entity.MirrorNotConfiguredReason}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load(ctx)
	if err != nil {
		return entity.SyncResult{}, err
	}
	res, err := s.mirror.Write(ctx, db.Leads, db.DeletedLeads)
	if err != nil {
		return entity.SyncResult{}, &BackingStoreError{Op: "mirror sync", Err: err}
	}
	res.Configured = s.mirror.Configured()
	return res, nil
}

func (s *LeadStore) load(ctx context.Context) (*entity.Database, error) {
	db, err := s.backend.Load(ctx)
	if err != nil {
		return nil, &BackingStoreError{Op: "load", Err: err}
	}
	db.Normalize()
	return db, nil
}

// mutate runs one read-modify-write cycle. fn errors abort the cycle before
// anything is written.
func (s *LeadStore) mutate(ctx context.Context, op string, fn func(db *entity.Database) error) (*entity.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(db); err != nil {
		return nil, err
	}
	if err := s.backend.Save(ctx, db); err != nil {
		return nil, &BackingStoreError{Op: op, Err: err}
	}

	s.syncMirror(ctx, db)
	return db, nil
}

// syncMirror never fails the primary operation.
func (s *LeadStore) syncMirror(ctx context.Context, db *entity.Database) {
	if s.mirror == nil || s.mirrorIsPrimary() || !s.mirror.Configured() {
		return
	}
	res, err := s.mirror.Write(ctx, db.Leads, db.DeletedLeads)
	if err == nil && !res.OK {
		err = errors.New(res.Reason)
	}
	if err != nil {
		s.logger.Warn("mirror sync failed", zap.Error(err))
		s.observer.MirrorSyncFailed(err)
	}
}

func (s *LeadStore) mirrorIsPrimary() bool {
	m, ok := s.backend.(Mirror)
	return ok && m == s.mirror
}

func (s *LeadStore) publish(ctx context.Context, ev entity.LeadEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLeadEvent(ctx, ev); err != nil {
		s.logger.Warn("lead event not published", zap.String("type", ev.Type), zap.Error(err))
		s.observer.EventPublishFailed(err)
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
