package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	scopeReadWrite    = "https://www.googleapis.com/auth/spreadsheets"
	defaultLeadsTab   = "Leads"
	defaultDeletedTab = "Deleted"
)

// Config holds the service-account credentials and tab names. The mirror is
// active only when Email, PrivateKey and SheetID are all set.
type Config struct {
	Email      string
	PrivateKey string
	SheetID    string
	LeadsTab   string
	DeletedTab string
}

func (c Config) Configured() bool {
	return c.Email != "" && c.PrivateKey != "" && c.SheetID != ""
}

// withDefaults expands escaped newlines in the key, as they arrive from
// single-line environment variables.
func (c Config) withDefaults() Config {
	c.PrivateKey = strings.ReplaceAll(c.PrivateKey, `\n`, "\n")
	if c.LeadsTab == "" {
		c.LeadsTab = defaultLeadsTab
	}
	if c.DeletedTab == "" {
		c.DeletedTab = defaultDeletedTab
	}
	return c
}

// ValuesAPI is the slice of the Sheets values resource the mirror uses.
type ValuesAPI interface {
	Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error)
	Update(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error
	Clear(ctx context.Context, spreadsheetID, rng string) error
}

type googleValues struct {
	svc *gsheets.Service
}

// NewValuesAPI authenticates with the service account using the JWT flow.
func NewValuesAPI(ctx context.Context, cfg Config) (ValuesAPI, error) {
	cfg = cfg.withDefaults()
	conf := &jwt.Config{
		Email:      cfg.Email,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{scopeReadWrite},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := gsheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &googleValues{svc: svc}, nil
}

func (g *googleValues) Get(ctx context.Context, spreadsheetID, rng string) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rng, err)
	}
	return resp.Values, nil
}

func (g *googleValues) Update(ctx context.Context, spreadsheetID, rng string, values [][]interface{}) error {
	_, err := g.svc.Spreadsheets.Values.
		Update(spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (g *googleValues) Clear(ctx context.Context, spreadsheetID, rng string) error {
	_, err := g.svc.Spreadsheets.Values.
		Clear(spreadsheetID, rng, &gsheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	return nil
}
