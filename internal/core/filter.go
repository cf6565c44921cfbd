package core

// Filter selects a subset of transactions. Every dimension is
// optional: a zero date leaves that bound open, an empty account or
// category set means "no restriction" (never "match nothing"), an
// empty type matches both types and an empty project matches every
// project.
type Filter struct {
	Start      Date
	End        Date
	Accounts   []string
	Categories []string
	Type       TxType
	Project    string
}

// Match applies the filter as a logical AND across its active
// dimensions. The start bound covers its day from midnight and the end
// bound through the last instant of its day, so a same-day range
// includes the whole day. A transaction with an unparsable date fails
// whenever either bound is set.
func (f Filter) Match(t Transaction) bool {
	if f.Start.Valid() || f.End.Valid() {
		if !t.Date.Valid() {
			return false
		}
		if f.Start.Valid() && t.Date.Before(f.Start.Time) {
			return false
		}
		if f.End.Valid() && t.Date.After(endOfDay(f.End)) {
			return false
		}
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if len(f.Accounts) > 0 && !containsString(f.Accounts, t.Account) {
		return false
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, t.Category) {
		return false
	}
	if f.Project != "" && t.Project != f.Project {
		return false
	}
	return true
}

// Apply returns the matching subset in input order. The input slice is
// never mutated.
func Apply(txs []Transaction, f Filter) []Transaction {
	var out []Transaction
	for _, t := range txs {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// ExcludeCategories drops transactions whose category is in the given
// set. The earn views use it to keep structural bookkeeping categories
// (initial balances, incoming transfers) out of income aggregates no
// matter what the user selected.
func ExcludeCategories(txs []Transaction, names []string) []Transaction {
	if len(names) == 0 {
		return txs
	}
	var out []Transaction
	for _, t := range txs {
		if !containsString(names, t.Category) {
			out = append(out, t)
		}
	}
	return out
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
