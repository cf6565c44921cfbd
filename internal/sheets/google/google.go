package google

import (
	"context"
	"errors"
	"fmt"
	"os"

	"kasa/internal/core"
	ports "kasa/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config locates the spreadsheet and the three ranges the dashboard
// reads from.
type Config struct {
	SpreadsheetID     string
	TransactionsRange string
	AccountsRange     string
	CategoriesRange   string

	// Service account credentials: inline JSON wins over the file.
	CredentialsJSON string
	CredentialsFile string
}

// Client reads the dashboard's source spreadsheet through the Sheets
// API. It is read-only; the service itself has no write path.
type Client struct {
	svc *gsheet.Service
	cfg Config
}

var _ ports.SnapshotSource = (*Client)(nil)

// New creates a Sheets client with service account credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if cfg.TransactionsRange == "" || cfg.AccountsRange == "" || cfg.CategoriesRange == "" {
		return nil, errors.New("all three sheet ranges must be set")
	}

	var credentials []byte
	switch {
	case cfg.CredentialsJSON != "":
		credentials = []byte(cfg.CredentialsJSON)
	case cfg.CredentialsFile != "":
		var err error
		credentials, err = os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{svc: svc, cfg: cfg}, nil
}

// Fetch reads the transactions, accounts and categories ranges in a
// single batch call and returns them untouched; normalization happens
// on the consuming side.
func (c *Client) Fetch(ctx context.Context) (core.RawSnapshot, error) {
	if c.svc == nil {
		return core.RawSnapshot{}, errors.New("sheets service not initialized")
	}

	resp, err := c.svc.Spreadsheets.Values.
		BatchGet(c.cfg.SpreadsheetID).
		Ranges(c.cfg.TransactionsRange, c.cfg.AccountsRange, c.cfg.CategoriesRange).
		Context(ctx).Do()
	if err != nil {
		return core.RawSnapshot{}, fmt.Errorf("batch read %s: %w", c.cfg.SpreadsheetID, err)
	}
	if len(resp.ValueRanges) != 3 {
		return core.RawSnapshot{}, fmt.Errorf("batch read returned %d ranges, want 3", len(resp.ValueRanges))
	}

	return core.RawSnapshot{
		Transactions: resp.ValueRanges[0].Values,
		Accounts:     resp.ValueRanges[1].Values,
		Categories:   resp.ValueRanges[2].Values,
	}, nil
}
