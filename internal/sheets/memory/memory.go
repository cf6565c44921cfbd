package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"kasa/internal/core"
	ports "kasa/internal/sheets"
)

// Store is an in-memory snapshot source for development and tests.
type Store struct {
	mu  sync.Mutex
	raw core.RawSnapshot
}

var _ ports.SnapshotSource = (*Store)(nil)

// New creates a store serving the given raw rows.
func New(raw core.RawSnapshot) *Store {
	return &Store{raw: raw}
}

// NewFromFile loads a raw snapshot from a JSON file with the shape of
// the data endpoint payload. A missing or unreadable file yields the
// built-in fixture instead of an error.
func NewFromFile(path string) *Store {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			var raw core.RawSnapshot
			if err := json.Unmarshal(data, &raw); err == nil {
				return New(raw)
			}
		}
	}
	return New(seedSnapshot())
}

// Fetch returns a copy of the raw rows so callers cannot mutate the
// seed.
func (s *Store) Fetch(_ context.Context) (core.RawSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.RawSnapshot{
		Transactions: copyMatrix(s.raw.Transactions),
		Accounts:     copyMatrix(s.raw.Accounts),
		Categories:   copyMatrix(s.raw.Categories),
	}, nil
}

func copyMatrix(in [][]any) [][]any {
	if in == nil {
		return nil
	}
	out := make([][]any, len(in))
	for i, row := range in {
		out[i] = append([]any(nil), row...)
	}
	return out
}

// seedSnapshot is a small realistic fixture covering both transaction
// types, a project and a structural bookkeeping category.
func seedSnapshot() core.RawSnapshot {
	rows := [][]any{
		{"2024-01-01", "5000", "Надходження", "Mono", "Початковий залишок"},
		{"2024-01-05", "32 500,00", "Надходження", "Mono", "Зарплата", "січень", "ТОВ Ромашка"},
		{"10.01.2024", "840,50", "Витрата", "Готівка", "Їжа", "ринок"},
		{"2024-01-15", "12000", "Надходження", "Mono", "Фріланс", "", "ФОП Іванов", "Альфа"},
		{"2024-01-20", "3000", "Витрата", "Mono", "Підрядники", "дизайн", "", "Альфа"},
		{"2024-02-03", "31 000,00", "Надходження", "Mono", "Зарплата", "лютий", "ТОВ Ромашка"},
		{"12.02.2024", "1 250,75", "Витрата", "Готівка", "Їжа"},
	}
	accounts := [][]any{
		{"Mono"},
		{"Готівка"},
		{"Резерв"},
	}
	categories := [][]any{
		{"Зарплата", "Надходження"},
		{"Фріланс", "Надходження"},
		{"Початковий залишок", "Надходження"},
		{"Їжа", "Витрата"},
		{"Підрядники", "Витрата"},
	}
	return core.RawSnapshot{Transactions: rows, Accounts: accounts, Categories: categories}
}

// String describes the seed for startup logs.
func (s *Store) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("memory store (%d transaction rows)", len(s.raw.Transactions))
}
