package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "DATA_FILE", "STORE_BACKEND", "GOOGLE_SERVICE_ACCOUNT_EMAIL", "GOOGLE_PRIVATE_KEY", "GOOGLE_SHEET_ID", "QUOTE_VALIDITY_DAYS", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data/simple-crm-db.json", cfg.DataFile)
	assert.Equal(t, 15, cfg.ValidityDays)
	assert.Equal(t, "Leads", cfg.Sheets.LeadsTab)
	assert.Equal(t, "Deleted", cfg.Sheets.DeletedTab)
	assert.Equal(t, "Yadhurtech", cfg.Company.Name)
	assert.Equal(t, "CIUB0000516", cfg.Company.IFSC)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, BackendFile, cfg.Backend())
	assert.False(t, cfg.MailEnabled())
}

func TestFromEnvProductionDataFile(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATA_FILE", "")
	assert.Equal(t, "/tmp/simple-crm-db.json", FromEnv().DataFile)

	t.Setenv("DATA_FILE", "/srv/crm.json")
	assert.Equal(t, "/srv/crm.json", FromEnv().DataFile)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("QUOTE_VALIDITY_DAYS", "30")
	t.Setenv("MAIL_PORT", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := FromEnv()
	assert.Equal(t, 30, cfg.ValidityDays)
	assert.Equal(t, 587, cfg.MailPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestBackendSelection(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, BackendFile, cfg.Backend())

	cfg.Sheets.Email = "svc@example.iam.gserviceaccount.com"
	cfg.Sheets.PrivateKey = "key"
	cfg.Sheets.SheetID = "sheet"
	assert.Equal(t, BackendSheets, cfg.Backend())

	cfg.StoreBackend = " File "
	assert.Equal(t, BackendFile, cfg.Backend())

	cfg.StoreBackend = "postgres"
	assert.Equal(t, BackendPostgres, cfg.Backend())

	cfg.StoreBackend = "redis"
	assert.Equal(t, BackendSheets, cfg.Backend())
}
