package core

// TxType classifies a transaction as money received or money spent.
type TxType string

const (
	TypeIncome  TxType = "income"
	TypeExpense TxType = "expense"
)

// Spellings used in the source spreadsheet.
const (
	rawTypeIncome  = "Надходження"
	rawTypeExpense = "Витрата"
)

type (
	// Transaction is an immutable row produced by Normalize. The sign
	// of a movement lives in Type; Amount is always a non-negative
	// magnitude. RawDate keeps the original cell text; Date is the
	// parsed value and is zero when the cell did not parse.
	Transaction struct {
		RawDate      string `json:"rawDate"`
		Date         Date   `json:"date"`
		Amount       float64 `json:"amount"`
		Type         TxType `json:"type"`
		Account      string `json:"account"`
		Category     string `json:"category"`
		Description  string `json:"description"`
		Counterparty string `json:"counterparty"`
		Project      string `json:"project"`
	}

	// CategoryInfo pairs a category name with the transaction type it
	// applies to. Only income-typed categories feed the earn views.
	CategoryInfo struct {
		Name string `json:"name"`
		Type TxType `json:"type"`
	}

	// ProjectBonuses is the per-project compensation configuration. A
	// nil percentage means the bonus is not configured and counts as 0.
	ProjectBonuses struct {
		Name             string
		BonusFromSum     *float64
		BonusFromBalance *float64
	}

	// Snapshot is one full normalized read of the spreadsheet. It is
	// built once per fetch and never mutated; derived views recompute
	// from it on demand.
	Snapshot struct {
		Transactions []Transaction  `json:"transactions"`
		Accounts     []string       `json:"accounts"`
		Categories   []CategoryInfo `json:"categories"`
	}
)

// parseType maps a raw cell value onto one of the two transaction
// types. Both the sheet spellings and the canonical names are
// accepted; anything else is unrecognized.
func parseType(raw string) (TxType, bool) {
	switch raw {
	case rawTypeIncome, string(TypeIncome):
		return TypeIncome, true
	case rawTypeExpense, string(TypeExpense):
		return TypeExpense, true
	}
	return "", false
}

// IncomeCategories returns the names of income-typed categories in
// snapshot order.
func (s Snapshot) IncomeCategories() []string {
	var out []string
	for _, c := range s.Categories {
		if c.Type == TypeIncome {
			out = append(out, c.Name)
		}
	}
	return out
}
