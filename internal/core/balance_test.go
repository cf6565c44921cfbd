package core

import "testing"

func TestComputeBalances(t *testing.T) {
	accounts := []string{"A", "B"}
	txs := []Transaction{
		tx("2024-01-01", 50, TypeIncome, "A", "Зарплата"),
		tx("2024-01-02", 20, TypeExpense, "B", "Їжа"),
		tx("2024-01-03", 999, TypeIncome, "C", "Зарплата"), // unknown account
	}
	b := ComputeBalances(accounts, txs)
	if b.PerAccount["A"] != 50 || b.PerAccount["B"] != -20 {
		t.Fatalf("per-account: %v", b.PerAccount)
	}
	if _, ok := b.PerAccount["C"]; ok {
		t.Fatalf("unknown account must not be created")
	}
	if b.Total != 30 {
		t.Fatalf("total: got %v, want 30", b.Total)
	}
}

func TestComputeBalancesZeroTransactionAccount(t *testing.T) {
	b := ComputeBalances([]string{"Порожній"}, nil)
	v, ok := b.PerAccount["Порожній"]
	if !ok {
		t.Fatalf("never-transacted account must still be reported")
	}
	if v != 0 || b.Total != 0 {
		t.Fatalf("expected zeros, got %v / %v", v, b.Total)
	}
}

func TestComputeBalancesCountsUnparsableDates(t *testing.T) {
	// Balances run over the full history; a bad date is no reason to
	// skip the movement.
	txs := []Transaction{tx("колись", 70, TypeIncome, "A", "Зарплата")}
	b := ComputeBalances([]string{"A"}, txs)
	if b.PerAccount["A"] != 70 {
		t.Fatalf("undated transaction dropped from balance: %v", b.PerAccount)
	}
}
