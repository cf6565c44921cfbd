package core

import "testing"

func TestSortByDateNullsAlwaysLast(t *testing.T) {
	txs := []Transaction{
		tx("довго", 1, TypeExpense, "Mono", "Їжа"),
		tx("2024-02-01", 2, TypeIncome, "Mono", "Зарплата"),
		tx("2024-01-01", 3, TypeIncome, "Mono", "Зарплата"),
		tx("ще", 4, TypeExpense, "Mono", "Їжа"),
	}

	asc := Sort(txs, ColumnDate, Ascending, false)
	if !asc[0].Date.Valid() || asc[0].Amount != 3 || asc[1].Amount != 2 {
		t.Fatalf("ascending order wrong: %v", amounts(asc))
	}
	if asc[2].Date.Valid() || asc[3].Date.Valid() {
		t.Fatalf("unparsable dates must be last ascending: %v", amounts(asc))
	}

	// Counter-intuitive but deliberate: descending also puts the
	// unparsable dates at the end, not the start.
	desc := Sort(txs, ColumnDate, Descending, false)
	if desc[0].Amount != 2 || desc[1].Amount != 3 {
		t.Fatalf("descending order wrong: %v", amounts(desc))
	}
	if desc[2].Date.Valid() || desc[3].Date.Valid() {
		t.Fatalf("unparsable dates must be last descending too: %v", amounts(desc))
	}
	// Both-null pairs keep their original relative order.
	if desc[2].Amount != 1 || desc[3].Amount != 4 {
		t.Fatalf("null pair not stable: %v", amounts(desc))
	}
}

func TestSortByAmountSignConvention(t *testing.T) {
	txs := []Transaction{
		tx("2024-01-01", 50, TypeExpense, "Mono", "Їжа"),
		tx("2024-01-02", 10, TypeIncome, "Mono", "Зарплата"),
	}

	// Magnitude comparison: 10 before 50.
	plain := Sort(txs, ColumnAmount, Ascending, false)
	if plain[0].Amount != 10 {
		t.Fatalf("magnitude sort: %v", amounts(plain))
	}

	// Project view convention: the expense compares as -50 and sorts
	// first.
	signed := Sort(txs, ColumnAmount, Ascending, true)
	if signed[0].Amount != 50 || signed[0].Type != TypeExpense {
		t.Fatalf("signed sort: %v", amounts(signed))
	}
}

func TestSortUkrainianCollation(t *testing.T) {
	txs := []Transaction{
		tx("2024-01-01", 1, TypeExpense, "Mono", "Кафе"),
		tx("2024-01-02", 2, TypeExpense, "Mono", "Їжа"),
		tx("2024-01-03", 3, TypeExpense, "Mono", "Авто"),
	}
	got := Sort(txs, ColumnCategory, Ascending, false)
	want := []string{"Авто", "Їжа", "Кафе"}
	for i, w := range want {
		if got[i].Category != w {
			t.Fatalf("collation order: got %v", categories(got))
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	txs := []Transaction{
		tx("2024-02-01", 1, TypeIncome, "Mono", "Зарплата"),
		tx("2024-01-01", 2, TypeIncome, "Mono", "Зарплата"),
	}
	_ = Sort(txs, ColumnDate, Ascending, false)
	if txs[0].Amount != 1 {
		t.Fatalf("input slice mutated")
	}
}

func TestSortIdempotent(t *testing.T) {
	txs := sampleTxs()
	once := Sort(txs, ColumnDate, Descending, false)
	twice := Sort(once, ColumnDate, Descending, false)
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("re-sorting drifted at %d", i)
		}
	}
}

func TestParseSortColumn(t *testing.T) {
	if _, ok := ParseSortColumn("amount"); !ok {
		t.Fatalf("amount must parse")
	}
	if _, ok := ParseSortColumn("balance"); ok {
		t.Fatalf("unknown column must fail")
	}
}

func amounts(txs []Transaction) []float64 {
	out := make([]float64, len(txs))
	for i, t := range txs {
		out[i] = t.Amount
	}
	return out
}

func categories(txs []Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.Category
	}
	return out
}
