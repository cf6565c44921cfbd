package core

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortColumn names a sortable transaction field.
type SortColumn string

const (
	ColumnDate         SortColumn = "date"
	ColumnAmount       SortColumn = "amount"
	ColumnDescription  SortColumn = "description"
	ColumnCategory     SortColumn = "category"
	ColumnAccount      SortColumn = "account"
	ColumnCounterparty SortColumn = "counterparty"
)

// SortDirection is the requested ordering.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortColumn validates a raw column name.
func ParseSortColumn(raw string) (SortColumn, bool) {
	switch SortColumn(raw) {
	case ColumnDate, ColumnAmount, ColumnDescription, ColumnCategory, ColumnAccount, ColumnCounterparty:
		return SortColumn(raw), true
	}
	return "", false
}

// Sort returns a new slice ordered by the given column. Text columns
// compare with Ukrainian collation. When signedAmounts is set, expense
// amounts compare as negative numbers (the project view's convention;
// other views compare raw magnitudes).
//
// Date ordering policy: transactions with an unparsable date always
// sort last, in both directions. Two unparsable dates compare equal
// and keep their relative order (the sort is stable).
func Sort(txs []Transaction, column SortColumn, dir SortDirection, signedAmounts bool) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)

	coll := collate.New(language.Ukrainian)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if column == ColumnDate {
			av, bv := a.Date.Valid(), b.Date.Valid()
			if av != bv {
				return av
			}
			if !av {
				return false
			}
		}
		c := compare(coll, a, b, column, signedAmounts)
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compare(coll *collate.Collator, a, b Transaction, column SortColumn, signedAmounts bool) int {
	switch column {
	case ColumnDate:
		return a.Date.Compare(b.Date.Time)
	case ColumnAmount:
		av, bv := signedAmount(a, signedAmounts), signedAmount(b, signedAmounts)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case ColumnDescription:
		return coll.CompareString(a.Description, b.Description)
	case ColumnCategory:
		return coll.CompareString(a.Category, b.Category)
	case ColumnAccount:
		return coll.CompareString(a.Account, b.Account)
	case ColumnCounterparty:
		return coll.CompareString(a.Counterparty, b.Counterparty)
	}
	return 0
}

func signedAmount(t Transaction, signed bool) float64 {
	if signed && t.Type == TypeExpense {
		return -t.Amount
	}
	return t.Amount
}
