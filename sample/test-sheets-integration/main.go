package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/yadhurtech/leadquote/internal/config"
	"github.com/yadhurtech/leadquote/internal/infra/integration/sheets"
)

// Reads the configured spreadsheet once and prints what the CRM would see.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env not found, using system environment")
	}

	cfg := config.FromEnv()
	if !cfg.Sheets.Configured() {
		log.Fatal("GOOGLE_SERVICE_ACCOUNT_EMAIL, GOOGLE_PRIVATE_KEY and GOOGLE_SHEET_ID must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mirror, err := sheets.New(ctx, cfg.Sheets)
	if err != nil {
		log.Fatalf("failed to connect to Google Sheets: %v", err)
	}

	fmt.Printf("Reading sheet %s (tabs %q, %q)...\n", cfg.Sheets.SheetID, cfg.Sheets.LeadsTab, cfg.Sheets.DeletedTab)
	db, err := mirror.Read(ctx)
	if err != nil {
		log.Fatalf("failed to read sheet: %v", err)
	}

	fmt.Printf("Leads: %d\n", len(db.Leads))
	for _, l := range db.Leads {
		fmt.Printf("   %-24s %-32s %s\n", l.Name, l.Email, l.Status)
	}
	fmt.Printf("Deleted: %d\n", len(db.DeletedLeads))
}
