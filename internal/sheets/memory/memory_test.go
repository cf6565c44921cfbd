package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"kasa/internal/core"
)

func TestFetchReturnsCopies(t *testing.T) {
	store := New(core.RawSnapshot{
		Transactions: [][]any{{"2024-01-01", "10", "Витрата", "Mono", "Їжа"}},
	})
	first, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	first.Transactions[0][0] = "mutated"

	second, _ := store.Fetch(context.Background())
	if second.Transactions[0][0] != "2024-01-01" {
		t.Fatalf("seed mutated through a fetched copy")
	}
}

func TestNewFromFile(t *testing.T) {
	raw := core.RawSnapshot{
		Transactions: [][]any{{"2024-03-01", "77", "Надходження", "Mono", "Зарплата"}},
		Accounts:     [][]any{{"Mono"}},
		Categories:   [][]any{{"Зарплата", "Надходження"}},
	}
	data, _ := json.Marshal(raw)
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	got, err := NewFromFile(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got.Transactions) != 1 || got.Transactions[0][1] != "77" {
		t.Fatalf("seed file not loaded: %v", got.Transactions)
	}
}

func TestNewFromFileFallsBackToFixture(t *testing.T) {
	got, err := NewFromFile("/does/not/exist.json").Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got.Transactions) == 0 || len(got.Accounts) == 0 || len(got.Categories) == 0 {
		t.Fatalf("built-in fixture must cover all three ranges")
	}
	// The fixture has to survive normalization, or dev mode renders
	// empty views.
	snap := core.Normalize(got)
	if len(snap.Transactions) == 0 {
		t.Fatalf("fixture rows all rejected by normalization")
	}
}
