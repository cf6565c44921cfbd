package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"kasa/internal/core"
)

// Config is the process-wide configuration, read once at startup and
// passed explicitly to collaborators. Derivation code never reads the
// environment.
type Config struct {
	// HTTP server
	Port string

	// Edge gate (HTTP Basic). Empty credentials disable the gate:
	// this layer fails open, unlike the data token below.
	BasicAuthUser     string
	BasicAuthPassword string

	// Data endpoint token, expected in the X-Api-Token header. An
	// empty token rejects every data request (fail closed).
	DataToken string

	// Backend selection
	DataBackend string

	// Google Sheets
	SpreadsheetID      string
	TransactionsRange  string
	AccountsRange      string
	CategoriesRange    string
	ServiceAccountFile string
	ServiceAccountJSON string

	// Memory backend seed file (optional)
	SeedFile string

	// Snapshot cache
	SnapshotTTL time.Duration

	// Categories kept out of income-trend aggregation regardless of
	// user selection.
	ExcludedEarnCategories []string

	// Per-project profit-sharing percentages, keyed by project name.
	ProjectBonuses map[string]core.ProjectBonuses
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		BasicAuthUser:     getEnv("BASIC_AUTH_USER", ""),
		BasicAuthPassword: getEnv("BASIC_AUTH_PASSWORD", ""),
		DataToken:         getEnv("DATA_API_TOKEN", ""),

		DataBackend: getEnv("DATA_BACKEND", "memory"),

		SpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		TransactionsRange:  getEnv("TRANSACTIONS_RANGE", "Транзакції!A2:H"),
		AccountsRange:      getEnv("ACCOUNTS_RANGE", "Рахунки!A2:B"),
		CategoriesRange:    getEnv("CATEGORIES_RANGE", "Категорії!A2:B"),
		ServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		ServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),

		SeedFile: getEnv("SEED_FILE", ""),

		SnapshotTTL: getEnvDuration("SNAPSHOT_TTL", 5*time.Minute),

		ExcludedEarnCategories: getEnvList("EXCLUDED_EARN_CATEGORIES",
			[]string{"Початковий залишок", "Вхідний переказ"}),
	}

	cfg.ProjectBonuses, _ = ParseProjectBonuses(getEnv("PROJECT_BONUSES", ""))

	return cfg
}

// Validate checks the configuration and returns one combined error.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory":
		// Seed file is optional; a missing one falls back to the
		// built-in fixture.
	case "sheets":
		if c.SpreadsheetID == "" {
			errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when using sheets backend")
		}
		if c.TransactionsRange == "" || c.AccountsRange == "" || c.CategoriesRange == "" {
			errs = append(errs, "all three sheet ranges must be set for the sheets backend")
		}
		if c.ServiceAccountFile == "" && c.ServiceAccountJSON == "" {
			errs = append(errs, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided for sheets backend")
		}
		if c.ServiceAccountFile != "" {
			if _, err := os.Stat(c.ServiceAccountFile); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("service account file does not exist: %s", c.ServiceAccountFile))
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets]", c.DataBackend))
	}

	// Basic auth pair must come whole or not at all; half a pair is a
	// misconfiguration, not a disabled gate.
	if (c.BasicAuthUser == "") != (c.BasicAuthPassword == "") {
		errs = append(errs, "BASIC_AUTH_USER and BASIC_AUTH_PASSWORD must be set together")
	}

	if c.SnapshotTTL < time.Second {
		errs = append(errs, fmt.Sprintf("invalid snapshot TTL %v: must be at least 1 second", c.SnapshotTTL))
	} else if c.SnapshotTTL > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid snapshot TTL %v: must be at most 24 hours", c.SnapshotTTL))
	}

	if _, err := ParseProjectBonuses(os.Getenv("PROJECT_BONUSES")); err != nil {
		errs = append(errs, fmt.Sprintf("invalid PROJECT_BONUSES: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// BasicAuthEnabled reports whether the edge gate is configured.
func (c *Config) BasicAuthEnabled() bool {
	return c.BasicAuthUser != "" && c.BasicAuthPassword != ""
}

// ParseProjectBonuses parses the PROJECT_BONUSES format: semicolon
// separated "name:bonusFromSum:bonusFromBalance" entries where either
// percentage may be blank (meaning unconfigured). Example:
// "Альфа:10:20;Бета:5:".
func ParseProjectBonuses(raw string) (map[string]core.ProjectBonuses, error) {
	out := map[string]core.ProjectBonuses{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, nil
	}
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("entry %q: want name:sum%%:balance%%", entry)
		}
		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, fmt.Errorf("entry %q: empty project name", entry)
		}
		pb := core.ProjectBonuses{Name: name}
		var err error
		if pb.BonusFromSum, err = parsePercent(parts[1]); err != nil {
			return nil, fmt.Errorf("entry %q: %v", entry, err)
		}
		if pb.BonusFromBalance, err = parsePercent(parts[2]); err != nil {
			return nil, fmt.Errorf("entry %q: %v", entry, err)
		}
		out[name] = pb
	}
	return out, nil
}

func parsePercent(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("bad percentage %q", raw)
	}
	if v < 0 || v > 100 {
		return nil, fmt.Errorf("percentage %v out of range 0-100", v)
	}
	return &v, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
