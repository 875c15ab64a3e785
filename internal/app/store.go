package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/yadhurtech/leadquote/internal/config"
	"github.com/yadhurtech/leadquote/internal/entity"
	"github.com/yadhurtech/leadquote/internal/infra/database"
	"github.com/yadhurtech/leadquote/internal/infra/integration/sheets"
	"github.com/yadhurtech/leadquote/internal/usecase"
)

// Store bundles the lead store with the resources it was built on.
type Store struct {
	*usecase.LeadStore
	Backend string
	Mirror  *sheets.Mirror
	DB      *sql.DB
}

func (s *Store) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// OpenStore picks the primary backend from cfg and attaches the spreadsheet
// mirror. When the spreadsheet is primary it is not also synced as a mirror.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...usecase.LeadStoreOption) (*Store, error) {
	mirror, err := sheets.New(ctx, cfg.Sheets)
	if err != nil {
		return nil, fmt.Errorf("google sheets: %w", err)
	}

	s := &Store{Backend: cfg.Backend(), Mirror: mirror}

	var backend entity.Backend
	switch s.Backend {
	case config.BackendSheets:
		if !mirror.Configured() {
			return nil, fmt.Errorf("google sheets: %w", sheets.ErrNotConfigured)
		}
		backend = mirror
	case config.BackendPostgres:
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo := database.NewDocumentRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		s.DB = db
		backend = repo
	default:
		backend = database.NewJSONFileStore(cfg.DataFile)
	}

	opts = append([]usecase.LeadStoreOption{usecase.WithLogger(logger), usecase.WithMirror(mirror)}, opts...)
	s.LeadStore = usecase.NewLeadStore(backend, opts...)

	logger.Info("lead store ready",
		zap.String("backend", s.Backend),
		zap.Bool("sheets_mirror", mirror.Configured() && s.Backend != config.BackendSheets))
	return s, nil
}
