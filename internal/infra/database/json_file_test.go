package database

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadhurtech/leadquote/internal/entity"
)

func TestJSONFileStoreSeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "simple-crm-db.json")
	store := NewJSONFileStore(path)

	db, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, db.Leads, 2)
	assert.Equal(t, "Alicia Khan", db.Leads[0].Name)
	assert.Equal(t, entity.DefaultStages(), db.Stages)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestJSONFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewJSONFileStore(filepath.Join(t.TempDir(), "db.json"))

	db, err := store.Load(ctx)
	require.NoError(t, err)
	db.Stages = entity.Stages{"Open", "Closed"}
	db.Leads = db.Leads[:1]
	require.NoError(t, store.Save(ctx, db))

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Stages{"Open", "Closed"}, again.Stages)
	assert.Equal(t, db.Leads[0].ID, again.Leads[0].ID)
	assert.True(t, db.Leads[0].CreatedAt.Equal(again.Leads[0].CreatedAt))
}

func TestJSONFileStoreWritesIndentedCamelCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	store := NewJSONFileStore(path)
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"leads\": ["))
	assert.Contains(t, string(raw), `"deletedLeads": []`)
	assert.Contains(t, string(raw), `"createdAt"`)
}

func TestJSONFileStoreRepairsEmptyStages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"leads":[],"deletedLeads":[],"stages":[]}`), 0o644))
	store := NewJSONFileStore(path)

	db, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultStages(), db.Stages)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk entity.Database
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, entity.DefaultStages(), onDisk.Stages, "repair is written back")
}

func TestJSONFileStoreMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"leads": [`), 0o644))

	_, err := NewJSONFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}
