package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// JSONFileStore keeps the whole database root in one JSON document. Writes
// replace the file atomically; concurrent processes sharing the file are not
// coordinated.
type JSONFileStore struct {
	Path string
	Now  func() time.Time
}

func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{Path: path, Now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }}
}

// Load seeds the file on first use and writes back the default stages when
// the stored set is empty. A malformed file is a hard error.
func (s *JSONFileStore) Load(ctx context.Context) (*entity.Database, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}

	var db entity.Database
	if err := json.Unmarshal(content, &db); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}

	if db.Normalize() {
		if err := s.Save(ctx, &db); err != nil {
			return nil, err
		}
	}
	return &db, nil
}

func (s *JSONFileStore) Save(_ context.Context, db *entity.Database) error {
	content, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encode database: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := atomic.WriteFile(s.Path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	return nil
}

func (s *JSONFileStore) ensure() error {
	_, err := os.Stat(s.Path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.Path, err)
	}
	return s.Save(context.Background(), entity.NewSeedDatabase(s.Now()))
}
