package core

// Balances is the running per-account position over the full,
// unfiltered transaction history.
type Balances struct {
	PerAccount map[string]float64 `json:"perAccount"`
	Total      float64            `json:"total"`
}

// ComputeBalances folds every transaction into its account: income
// adds, expense subtracts. Every known account starts at 0, so an
// account with no transactions still reports 0 rather than being
// absent. Transactions referencing an unknown account are ignored; no
// account is created implicitly.
func ComputeBalances(accounts []string, txs []Transaction) Balances {
	per := make(map[string]float64, len(accounts))
	for _, a := range accounts {
		per[a] = 0
	}
	for _, t := range txs {
		if _, known := per[t.Account]; !known {
			continue
		}
		switch t.Type {
		case TypeIncome:
			per[t.Account] += t.Amount
		case TypeExpense:
			per[t.Account] -= t.Amount
		}
	}
	var total float64
	for _, v := range per {
		total += v
	}
	return Balances{PerAccount: per, Total: total}
}
