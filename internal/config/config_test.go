package config

import (
	"strings"
	"testing"
	"time"
)

func validMemoryConfig() Config {
	return Config{
		Port:        "8081",
		DataBackend: "memory",
		SnapshotTTL: 5 * time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid memory backend config",
			mutate: func(c *Config) {},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.DataBackend = "postgres" },
			wantErr:     true,
			errorString: "invalid data backend 'postgres'",
		},
		{
			name: "sheets backend missing spreadsheet id",
			mutate: func(c *Config) {
				c.DataBackend = "sheets"
				c.TransactionsRange = "A!A:H"
				c.AccountsRange = "B!A:B"
				c.CategoriesRange = "C!A:B"
				c.ServiceAccountJSON = "{}"
			},
			wantErr:     true,
			errorString: "GOOGLE_SPREADSHEET_ID is required",
		},
		{
			name: "sheets backend missing credentials",
			mutate: func(c *Config) {
				c.DataBackend = "sheets"
				c.SpreadsheetID = "abc123"
				c.TransactionsRange = "A!A:H"
				c.AccountsRange = "B!A:B"
				c.CategoriesRange = "C!A:B"
			},
			wantErr:     true,
			errorString: "GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON",
		},
		{
			name:        "half a basic auth pair",
			mutate:      func(c *Config) { c.BasicAuthUser = "admin" },
			wantErr:     true,
			errorString: "must be set together",
		},
		{
			name:        "snapshot TTL too small",
			mutate:      func(c *Config) { c.SnapshotTTL = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validMemoryConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseProjectBonuses(t *testing.T) {
	got, err := ParseProjectBonuses("Альфа:10:20; Бета:5: ;Гамма::")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(got))
	}

	alpha := got["Альфа"]
	if alpha.BonusFromSum == nil || *alpha.BonusFromSum != 10 {
		t.Fatalf("alpha sum bonus: %+v", alpha)
	}
	if alpha.BonusFromBalance == nil || *alpha.BonusFromBalance != 20 {
		t.Fatalf("alpha balance bonus: %+v", alpha)
	}

	beta := got["Бета"]
	if beta.BonusFromSum == nil || *beta.BonusFromSum != 5 {
		t.Fatalf("beta sum bonus: %+v", beta)
	}
	if beta.BonusFromBalance != nil {
		t.Fatalf("blank percentage must stay unconfigured")
	}

	gamma := got["Гамма"]
	if gamma.BonusFromSum != nil || gamma.BonusFromBalance != nil {
		t.Fatalf("gamma must have no bonuses configured")
	}
}

func TestParseProjectBonusesRejectsBadInput(t *testing.T) {
	bad := []string{
		"Альфа:10",        // missing field
		"Альфа:abc:20",    // non-numeric
		"Альфа:120:20",    // out of range
		":10:20",          // empty name
	}
	for _, raw := range bad {
		if _, err := ParseProjectBonuses(raw); err == nil {
			t.Fatalf("%q: expected error", raw)
		}
	}
}

func TestParseProjectBonusesEmpty(t *testing.T) {
	got, err := ParseProjectBonuses("")
	if err != nil || len(got) != 0 {
		t.Fatalf("empty input must yield empty map, got %v / %v", got, err)
	}
}

func TestBasicAuthEnabled(t *testing.T) {
	cfg := validMemoryConfig()
	if cfg.BasicAuthEnabled() {
		t.Fatalf("unset credentials must disable the gate")
	}
	cfg.BasicAuthUser = "admin"
	cfg.BasicAuthPassword = "s3cret"
	if !cfg.BasicAuthEnabled() {
		t.Fatalf("configured credentials must enable the gate")
	}
}
