package core

import (
	"strconv"
	"time"
)

// MonthBucket is one calendar-month slot of a monthly aggregation,
// holding one sum per selected category.
type MonthBucket struct {
	Year  int                `json:"year"`
	Month time.Month         `json:"month"`
	Label string             `json:"label"`
	Sums  map[string]float64 `json:"sums"`
}

// Ukrainian month names for bucket labels.
var monthNames = [...]string{
	"Січень", "Лютий", "Березень", "Квітень", "Травень", "Червень",
	"Липень", "Серпень", "Вересень", "Жовтень", "Листопад", "Грудень",
}

// MonthLabel formats a month/year pair the way the dashboard shows it.
func MonthLabel(year int, month time.Month) string {
	return monthNames[month-1] + " " + strconv.Itoa(year)
}

// MonthlyBuckets groups transactions into calendar-month buckets
// spanning [start, end] inclusive, in chronological order. Months with
// no matching transactions still appear, zero-filled for every
// selected category. Transactions whose category is not selected, or
// whose date never parsed, contribute nothing. Returns nil when either
// bound is missing or the range is inverted.
func MonthlyBuckets(txs []Transaction, categories []string, start, end Date) []MonthBucket {
	if !start.Valid() || !end.Valid() || end.Before(start.Time) {
		return nil
	}

	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	var buckets []MonthBucket
	index := map[string]int{}
	for cur := first; !cur.After(last); cur = cur.AddDate(0, 1, 0) {
		sums := make(map[string]float64, len(categories))
		for _, c := range categories {
			sums[c] = 0
		}
		index[monthKey(cur.Year(), cur.Month())] = len(buckets)
		buckets = append(buckets, MonthBucket{
			Year:  cur.Year(),
			Month: cur.Month(),
			Label: MonthLabel(cur.Year(), cur.Month()),
			Sums:  sums,
		})
	}

	endBound := endOfDay(end)
	for _, t := range txs {
		if !t.Date.Valid() || t.Date.Before(start.Time) || t.Date.After(endBound) {
			continue
		}
		if !containsString(categories, t.Category) {
			continue
		}
		i, ok := index[monthKey(t.Date.Year(), t.Date.Month())]
		if !ok {
			continue
		}
		buckets[i].Sums[t.Category] += t.Amount
	}
	return buckets
}

// Report holds per-category totals over a filtered subset, for the
// aggregate report view.
type Report struct {
	Income       map[string]float64 `json:"income"`
	Expense      map[string]float64 `json:"expense"`
	TotalIncome  float64            `json:"totalIncome"`
	TotalExpense float64            `json:"totalExpense"`
}

// BuildReport sums the subset by category within each transaction
// type.
func BuildReport(txs []Transaction) Report {
	r := Report{
		Income:  map[string]float64{},
		Expense: map[string]float64{},
	}
	for _, t := range txs {
		switch t.Type {
		case TypeIncome:
			r.Income[t.Category] += t.Amount
			r.TotalIncome += t.Amount
		case TypeExpense:
			r.Expense[t.Category] += t.Amount
			r.TotalExpense += t.Amount
		}
	}
	return r
}

func monthKey(year int, month time.Month) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(int(month))
}
