package sheets

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// MockValuesAPI
type MockValuesAPI struct {
	mock.Mock
}

func (m *MockValuesAPI) Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
	args := m.Called(ctx, spreadsheetID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]interface{}), args.Error(1)
}

func (m *MockValuesAPI) Update(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	return m.Called(ctx, spreadsheetID, rng, values).Error(0)
}

func (m *MockValuesAPI) Clear(ctx context.Context, spreadsheetID, rng string) error {
	return m.Called(ctx, spreadsheetID, rng).Error(0)
}

// memorySheet follows the values API: an update overwrites from the top-left
// cell and leaves rows below its block in place.
type memorySheet struct {
	tabs map[string][][]interface{}
}

func newMemorySheet() *memorySheet {
	return &memorySheet{tabs: map[string][][]interface{}{}}
}

func splitRange(rng string) (tab string, firstRow int) {
	tab, cells, _ := strings.Cut(rng, "!")
	if strings.HasPrefix(cells, "A2") {
		return tab, 1
	}
	return tab, 0
}

func (s *memorySheet) Get(_ context.Context, _, rng string) ([][]interface{}, error) {
	tab, first := splitRange(rng)
	rows := s.tabs[tab]
	if len(rows) <= first {
		return nil, nil
	}
	return append([][]interface{}(nil), rows[first:]...), nil
}

func (s *memorySheet) Update(_ context.Context, _, rng string, values [][]interface{}) error {
	tab, first := splitRange(rng)
	rows := s.tabs[tab]
	for len(rows) < first+len(values) {
		rows = append(rows, nil)
	}
	for i, v := range values {
		rows[first+i] = v
	}
	s.tabs[tab] = rows
	return nil
}

func (s *memorySheet) Clear(_ context.Context, _, rng string) error {
	tab, first := splitRange(rng)
	if rows := s.tabs[tab]; len(rows) > first {
		s.tabs[tab] = rows[:first]
	}
	return nil
}

var testConfig = Config{Email: "svc@project.iam.gserviceaccount.com", PrivateKey: `-----BEGIN\nKEY`, SheetID: "sheet-1"}

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestMirror(api ValuesAPI) *Mirror {
	m := NewWithAPI(testConfig, api)
	m.now = func() time.Time { return fixedNow }
	return m
}

func TestConfigDefaults(t *testing.T) {
	cfg := testConfig.withDefaults()
	assert.Equal(t, "-----BEGIN\nKEY", cfg.PrivateKey)
	assert.Equal(t, "Leads", cfg.LeadsTab)
	assert.Equal(t, "Deleted", cfg.DeletedTab)

	assert.False(t, Config{Email: "a", SheetID: "b"}.Configured())
}

func TestInactiveMirror(t *testing.T) {
	m, err := New(context.Background(), Config{Email: "only-email"})
	require.NoError(t, err)
	assert.False(t, m.Configured())

	res, err := m.Write(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "Google Sheets credentials are not configured.", res.Reason)

	_, err = m.Read(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = m.ImportRows(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestReadMapsRowsPositionally(t *testing.T) {
	api := new(MockValuesAPI)
	api.On("Get", mock.Anything, "sheet-1", "Leads!A2:I").Return([][]interface{}{
		{"id-1", "Ann", "ann@x.com", "555", "Acme", "Won", "vip", "2024-01-02T03:04:05.678Z", "2024-01-03T00:00:00.000Z"},
		{"id-2", "Bob", "bob@x.com"},
		{"id-3", "No Email", ""},
		{"id-4", "Cid", "cid@x.com", "", "", "", "", "not-a-date"},
	}, nil)
	api.On("Get", mock.Anything, "sheet-1", "Deleted!A2:J").Return([][]interface{}{
		{"id-9", "Old", "old@x.com", "", "", "Lost", "", "2024-01-01T00:00:00.000Z", "2024-01-01T00:00:00.000Z", "2024-02-01T00:00:00.000Z"},
	}, nil)

	db, err := newTestMirror(api).Read(context.Background())
	require.NoError(t, err)

	require.Len(t, db.Leads, 3)
	assert.Equal(t, entity.DefaultStages(), db.Stages)

	ann := db.Leads[0]
	assert.Equal(t, entity.Stage("Won"), ann.Status)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC), ann.CreatedAt)

	bob := db.Leads[1]
	assert.Equal(t, "", bob.Phone)
	assert.Equal(t, entity.Stage("New"), bob.Status, "missing status cell")
	assert.Equal(t, fixedNow, bob.CreatedAt)

	cid := db.Leads[2]
	assert.Equal(t, entity.Stage("New"), cid.Status, "empty status falls back to the first stage")
	assert.Equal(t, fixedNow, cid.CreatedAt)

	require.Len(t, db.DeletedLeads, 1)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), db.DeletedLeads[0].DeletedAt)
}

func TestReadPropagatesErrors(t *testing.T) {
	api := new(MockValuesAPI)
	api.On("Get", mock.Anything, "sheet-1", "Leads!A2:I").Return(nil, errors.New("403"))
	api.On("Get", mock.Anything, "sheet-1", "Deleted!A2:J").Return([][]interface{}{}, nil)

	_, err := newTestMirror(api).Read(context.Background())
	assert.ErrorContains(t, err, "403")
}

func TestWriteReplacesBothTabs(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC)
	lead := entity.Lead{ID: "1", Name: "Ann", Email: "ann@x.com", Status: "New", CreatedAt: at, UpdatedAt: at}

	api := new(MockValuesAPI)
	api.On("Clear", mock.Anything, "sheet-1", "Leads!A2:I").Return(nil).Once()
	api.On("Clear", mock.Anything, "sheet-1", "Deleted!A2:J").Return(nil).Once()
	api.On("Update", mock.Anything, "sheet-1", "Leads!A1", mock.MatchedBy(func(v [][]interface{}) bool {
		return len(v) == 2 && v[0][0] == "id" && v[1][2] == "ann@x.com" && v[1][7] == "2024-01-02T03:04:05.678Z"
	})).Return(nil).Once()
	api.On("Update", mock.Anything, "sheet-1", "Deleted!A1", mock.MatchedBy(func(v [][]interface{}) bool {
		return len(v) == 2 && len(v[0]) == 10 && v[0][9] == "deletedAt" && v[1][9] == "2024-01-02T03:04:05.678Z"
	})).Return(nil).Once()

	res, err := newTestMirror(api).Write(context.Background(), []entity.Lead{lead}, []entity.DeletedLead{lead.Delete(at)})
	require.NoError(t, err)
	assert.True(t, res.OK)
	api.AssertExpectations(t)
}

func TestWriteStopsAfterFirstFailure(t *testing.T) {
	api := new(MockValuesAPI)
	api.On("Clear", mock.Anything, "sheet-1", "Leads!A2:I").Return(nil)
	api.On("Update", mock.Anything, "sheet-1", "Leads!A1", mock.Anything).Return(errors.New("quota"))

	_, err := newTestMirror(api).Write(context.Background(), nil, nil)
	require.Error(t, err)
	api.AssertNotCalled(t, "Clear", mock.Anything, "sheet-1", "Deleted!A2:J")
	api.AssertNotCalled(t, "Update", mock.Anything, "sheet-1", "Deleted!A1", mock.Anything)
}

func TestWriteClearFailureSkipsUpdate(t *testing.T) {
	api := new(MockValuesAPI)
	api.On("Clear", mock.Anything, "sheet-1", "Leads!A2:I").Return(errors.New("403"))

	_, err := newTestMirror(api).Write(context.Background(), nil, nil)
	assert.ErrorContains(t, err, "write leads tab")
	api.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShrinkingWriteDropsTrailingRows(t *testing.T) {
	ctx := context.Background()
	m := newTestMirror(newMemorySheet())

	db := &entity.Database{Stages: entity.DefaultStages()}
	for _, name := range []string{"L0", "L1", "L2"} {
		db.Prepend(*entity.NewLead(name, strings.ToLower(name)+"@x.com", "", "", "", "New", fixedNow))
	}
	require.NoError(t, m.Save(ctx, db))

	loaded, err := m.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Leads, 3)

	loaded.Remove(0, fixedNow)
	require.NoError(t, m.Save(ctx, loaded))

	after, err := m.Load(ctx)
	require.NoError(t, err)
	require.Len(t, after.Leads, 2)
	assert.Equal(t, "L1", after.Leads[0].Name)
	assert.Equal(t, "L0", after.Leads[1].Name)
	assert.NotEqual(t, after.Leads[0].ID, after.Leads[1].ID)
	require.Len(t, after.DeletedLeads, 1)
	assert.Equal(t, "L2", after.DeletedLeads[0].Name)

	recs, err := m.ImportRows(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestImportRows(t *testing.T) {
	api := new(MockValuesAPI)
	api.On("Get", mock.Anything, "sheet-1", "Leads!A2:I").Return([][]interface{}{
		{"id-1", "Ann", "ann@x.com", "555", "Acme"},
	}, nil)

	recs, err := newTestMirror(api).ImportRows(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Ann", recs[0].Name)
	assert.Equal(t, "555", *recs[0].Phone)
	assert.Equal(t, "New", *recs[0].Status)
	assert.Equal(t, "", *recs[0].Notes)
}

func TestSaveAsPrimaryBackend(t *testing.T) {
	api := new(MockValuesAPI)
	api.On("Clear", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	api.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := newTestMirror(api).Save(context.Background(), &entity.Database{Stages: entity.DefaultStages()})
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "Update", 2)

	inactive := NewWithAPI(Config{}, nil)
	assert.Error(t, inactive.Save(context.Background(), &entity.Database{}))
}

func TestCellStringifiesNumbers(t *testing.T) {
	assert.Equal(t, "9176002530", cell([]interface{}{float64(9176002530)}, 0))
	assert.Equal(t, "", cell([]interface{}{nil}, 0))
}
