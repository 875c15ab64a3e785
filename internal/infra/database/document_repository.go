package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// ErrConflict means another writer saved the document after it was loaded.
var ErrConflict = errors.New("crm document was modified concurrently")

const schema = `
CREATE TABLE IF NOT EXISTS crm_documents (
	id         TEXT PRIMARY KEY,
	body       JSONB NOT NULL,
	version    BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DocumentRepository stores the database root as a single JSONB row and
// rejects saves whose loaded version is stale.
type DocumentRepository struct {
	DB  *sql.DB
	ID  string
	Now func() time.Time

	mu      sync.Mutex
	version int64
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{
		DB:  db,
		ID:  "default",
		Now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create crm_documents: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Load(ctx context.Context) (*entity.Database, error) {
	body, version, err := r.fetch(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		if err := r.seed(ctx); err != nil {
			return nil, err
		}
		body, version, err = r.fetch(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load crm document: %w", err)
	}

	var db entity.Database
	if err := json.Unmarshal(body, &db); err != nil {
		return nil, fmt.Errorf("parse crm document: %w", err)
	}

	r.mu.Lock()
	r.version = version
	r.mu.Unlock()

	if db.Normalize() {
		if err := r.Save(ctx, &db); err != nil {
			return nil, err
		}
	}
	return &db, nil
}

func (r *DocumentRepository) Save(ctx context.Context, db *entity.Database) error {
	body, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("encode crm document: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		UPDATE crm_documents
		SET body = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
	`
	res, err := r.DB.ExecContext(ctx, query, body, r.ID, r.version)
	if err != nil {
		return fmt.Errorf("save crm document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save crm document: %w", err)
	}
	if n == 0 {
		return ErrConflict
	}
	r.version++
	return nil
}

func (r *DocumentRepository) fetch(ctx context.Context) ([]byte, int64, error) {
	var (
		body    []byte
		version int64
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT body, version FROM crm_documents WHERE id = $1`, r.ID,
	).Scan(&body, &version)
	return body, version, err
}

func (r *DocumentRepository) seed(ctx context.Context) error {
	body, err := json.Marshal(entity.NewSeedDatabase(r.Now()))
	if err != nil {
		return fmt.Errorf("encode seed document: %w", err)
	}
	query := `
		INSERT INTO crm_documents (id, body, version)
		VALUES ($1, $2, 1)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, query, r.ID, body); err != nil {
		return fmt.Errorf("seed crm document: %w", err)
	}
	return nil
}
