package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// ErrNotConfigured is returned by reads when the credentials are incomplete.
var ErrNotConfigured = entity.ErrMirrorNotConfigured

// Mirror keeps a full copy of the leads and deleted leads in two tabs of one
// spreadsheet. It can also serve as the primary Backend, in which case the
// stage set is never persisted and every load uses DefaultStages.
type Mirror struct {
	cfg           Config
	api           ValuesAPI
	defaultStages entity.Stages
	now           func() time.Time
}

// New connects to the Sheets API when cfg is complete. An incomplete cfg
// yields an inactive mirror, not an error.
func New(ctx context.Context, cfg Config) (*Mirror, error) {
	if !cfg.Configured() {
		return NewWithAPI(cfg, nil), nil
	}
	api, err := NewValuesAPI(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithAPI(cfg, api), nil
}

func NewWithAPI(cfg Config, api ValuesAPI) *Mirror {
	return &Mirror{
		cfg:           cfg.withDefaults(),
		api:           api,
		defaultStages: entity.DefaultStages(),
		now:           func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (m *Mirror) Configured() bool {
	return m.cfg.Configured() && m.api != nil
}

func (m *Mirror) leadsRange() string   { return m.cfg.LeadsTab + "!A2:I" }
func (m *Mirror) deletedRange() string { return m.cfg.DeletedTab + "!A2:J" }

// Read fetches both tabs concurrently. Rows without an email are dropped and
// lead statuses outside the stage set fall back to the first stage.
func (m *Mirror) Read(ctx context.Context) (*entity.Database, error) {
	if !m.Configured() {
		return nil, ErrNotConfigured
	}

	var leadRows, deletedRows [][]interface{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leadRows, err = m.api.Get(gctx, m.cfg.SheetID, m.leadsRange())
		return err
	})
	g.Go(func() error {
		var err error
		deletedRows, err = m.api.Get(gctx, m.cfg.SheetID, m.deletedRange())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("read google sheet: %w", err)
	}

	now := m.now()
	db := &entity.Database{
		Leads:        []entity.Lead{},
		DeletedLeads: []entity.DeletedLead{},
		Stages:       append(entity.Stages(nil), m.defaultStages...),
	}
	for _, row := range leadRows {
		if lead := rowToLead(row, now); lead.Email != "" {
			lead.Status = db.Stages.Resolve(string(lead.Status))
			db.Leads = append(db.Leads, lead)
		}
	}
	for _, row := range deletedRows {
		if d := rowToDeleted(row, now); d.Email != "" {
			db.DeletedLeads = append(db.DeletedLeads, d)
		}
	}
	return db, nil
}

// Write replaces both tabs, leads first. Each tab's data rows are cleared
// before the update, since an update leaves rows past its block untouched.
// The two tabs are independent: a failure on the second leaves them out of
// step.
func (m *Mirror) Write(ctx context.Context, leads []entity.Lead, deleted []entity.DeletedLead) (entity.SyncResult, error) {
	if !m.Configured() {
		return entity.SyncResult{OK: false, Reason: entity.MirrorNotConfiguredReason}, nil
	}
	if err := m.replace(ctx, m.cfg.LeadsTab, m.leadsRange(), leadValues(leads)); err != nil {
		return entity.SyncResult{}, fmt.Errorf("write leads tab: %w", err)
	}
	if err := m.replace(ctx, m.cfg.DeletedTab, m.deletedRange(), deletedValues(deleted)); err != nil {
		return entity.SyncResult{}, fmt.Errorf("write deleted tab: %w", err)
	}
	return entity.SyncResult{OK: true, Configured: true}, nil
}

func (m *Mirror) replace(ctx context.Context, tab, dataRange string, values [][]interface{}) error {
	if err := m.api.Clear(ctx, m.cfg.SheetID, dataRange); err != nil {
		return err
	}
	return m.api.Update(ctx, m.cfg.SheetID, tab+"!A1", values)
}

// ImportRows returns the leads tab as import records. Ids and timestamps are
// not carried.
func (m *Mirror) ImportRows(ctx context.Context) ([]entity.ImportRecord, error) {
	if !m.Configured() {
		return nil, ErrNotConfigured
	}
	rows, err := m.api.Get(ctx, m.cfg.SheetID, m.leadsRange())
	if err != nil {
		return nil, fmt.Errorf("import google sheet: %w", err)
	}
	out := make([]entity.ImportRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToRecord(row))
	}
	return out, nil
}

func (m *Mirror) Load(ctx context.Context) (*entity.Database, error) {
	return m.Read(ctx)
}

func (m *Mirror) Save(ctx context.Context, db *entity.Database) error {
	res, err := m.Write(ctx, db.Leads, db.DeletedLeads)
	if err != nil {
		return err
	}
	if !res.OK {
		return errors.New(res.Reason)
	}
	return nil
}
