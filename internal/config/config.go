package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yadhurtech/leadquote/internal/infra/integration/sheets"
	"github.com/yadhurtech/leadquote/internal/proposal"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSheets   = "sheets"
)

type Config struct {
	Addr            string
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	StoreBackend string
	DataFile     string
	DatabaseURL  string
	Sheets       sheets.Config

	ProposalAIURL string
	GeminiAPIKey  string
	GeminiModel   string
	ValidityDays  int
	Company       proposal.CompanyProfile

	AMQPURL string
	// SMTP - notifications are disabled unless host and recipient are set
	MailHost     string
	MailPort     int
	MailUser     string
	MailPassword string
	MailFrom     string
	NotifyEmail  string
}

// Load reads .env when present and then the process environment.
func Load() Config {
	godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	env := getenv("APP_ENV", "development")
	cfg := Config{
		Addr:            getenv("API_ADDR", ":8080"),
		Env:             env,
		LogLevel:        getenv("LOG_LEVEL", "info"),
		ShutdownTimeout: time.Duration(getenvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		CORSOrigins:     splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),

		StoreBackend: os.Getenv("STORE_BACKEND"),
		DataFile:     getenv("DATA_FILE", defaultDataFile(env)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Sheets: sheets.Config{
			Email:      os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
			PrivateKey: os.Getenv("GOOGLE_PRIVATE_KEY"),
			SheetID:    os.Getenv("GOOGLE_SHEET_ID"),
			LeadsTab:   getenv("GOOGLE_SHEET_LEADS_TAB", "Leads"),
			DeletedTab: getenv("GOOGLE_SHEET_DELETED_TAB", "Deleted"),
		},

		ProposalAIURL: os.Getenv("PROPOSAL_AI_URL"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		ValidityDays:  getenvInt("QUOTE_VALIDITY_DAYS", 15),
		Company: proposal.CompanyProfile{
			Name:          getenv("COMPANY_NAME", "Yadhurtech"),
			Tagline:       getenv("COMPANY_TAGLINE", "Empowering business with smart digital and solutions."),
			Address:       getenv("COMPANY_ADDRESS", "7-8/2 vgp lane, Dharmaraja koil street, Saidapet, Chennai-600015."),
			Phone:         getenv("COMPANY_PHONE", "9176002530"),
			Email:         getenv("COMPANY_EMAIL", "info@yadhurtech.com"),
			Website:       getenv("COMPANY_WEBSITE", "yadhurtech.com"),
			BankName:      getenv("BANK_NAME", "CITY UNION BANK, Saidapet"),
			AccountName:   getenv("BANK_ACCOUNT_NAME", "S. Kishor"),
			AccountNumber: getenv("BANK_ACCOUNT_NUMBER", "500101013782072"),
			IFSC:          getenv("BANK_IFSC", "CIUB0000516"),
		},

		AMQPURL:      os.Getenv("AMQP_URL"),
		MailHost:     os.Getenv("MAIL_HOST"),
		MailPort:     getenvInt("MAIL_PORT", 587),
		MailUser:     os.Getenv("MAIL_USER"),
		MailPassword: os.Getenv("MAIL_PASS"),
		MailFrom:     getenv("MAIL_FROM", os.Getenv("MAIL_USER")),
		NotifyEmail:  os.Getenv("NOTIFY_EMAIL"),
	}
	return cfg
}

// Backend resolves the primary store. Without an explicit STORE_BACKEND the
// spreadsheet is primary when its credentials are complete, the JSON file
// otherwise.
func (c Config) Backend() string {
	switch strings.ToLower(strings.TrimSpace(c.StoreBackend)) {
	case BackendPostgres:
		return BackendPostgres
	case BackendSheets:
		return BackendSheets
	case BackendFile:
		return BackendFile
	}
	if c.Sheets.Configured() {
		return BackendSheets
	}
	return BackendFile
}

func (c Config) MailEnabled() bool {
	return c.MailHost != "" && c.NotifyEmail != ""
}

func defaultDataFile(env string) string {
	if env == "production" {
		return "/tmp/simple-crm-db.json"
	}
	return "data/simple-crm-db.json"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
