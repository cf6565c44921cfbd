package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// RawSnapshot mirrors the payload of the data endpoint: three cell
// matrices read straight from the spreadsheet ranges. Cells arrive as
// whatever the transport decoded them to (string or number), so every
// field goes through cellString before use.
type RawSnapshot struct {
	Transactions [][]any `json:"transactions"`
	Accounts     [][]any `json:"accounts"`
	Categories   [][]any `json:"categories"`
}

// Column order of a raw transaction row. Trailing columns may be
// missing; cellAt treats them as empty.
const (
	colDate = iota
	colAmount
	colType
	colAccount
	colCategory
	colDescription
	colCounterparty
	colProject
)

// Normalize converts a raw read into a typed snapshot. Malformed
// transaction and category rows are dropped silently; manual sheet
// entry makes them expected noise, not errors worth surfacing.
// Accounts are flattened in range order and not deduplicated.
func Normalize(raw RawSnapshot) Snapshot {
	var snap Snapshot
	for _, row := range raw.Transactions {
		if tx, ok := parseTransactionRow(row); ok {
			snap.Transactions = append(snap.Transactions, tx)
		}
	}
	for _, row := range raw.Accounts {
		for _, cell := range row {
			if name := strings.TrimSpace(cellString(cell)); name != "" {
				snap.Accounts = append(snap.Accounts, name)
			}
		}
	}
	for _, row := range raw.Categories {
		name := strings.TrimSpace(cellString(cellAt(row, 0)))
		typ, ok := parseType(strings.TrimSpace(cellString(cellAt(row, 1))))
		if name == "" || !ok {
			continue
		}
		snap.Categories = append(snap.Categories, CategoryInfo{Name: name, Type: typ})
	}
	return snap
}

// parseTransactionRow is the tagged per-row parse step: it either
// yields a complete Transaction or reports the row as rejected. A row
// survives only when date, type, account and category are non-blank
// after trimming and the type is recognized. A date that is present
// but unparsable keeps the row; the zero Date excludes it from
// date-bounded views later.
func parseTransactionRow(row []any) (Transaction, bool) {
	rawDate := strings.TrimSpace(cellString(cellAt(row, colDate)))
	typ, typeOK := parseType(strings.TrimSpace(cellString(cellAt(row, colType))))
	account := strings.TrimSpace(cellString(cellAt(row, colAccount)))
	category := strings.TrimSpace(cellString(cellAt(row, colCategory)))
	if rawDate == "" || !typeOK || account == "" || category == "" {
		return Transaction{}, false
	}
	date, _ := ParseDate(rawDate)
	return Transaction{
		RawDate:      rawDate,
		Date:         date,
		Amount:       ParseAmount(cellString(cellAt(row, colAmount))),
		Type:         typ,
		Account:      account,
		Category:     category,
		Description:  strings.TrimSpace(cellString(cellAt(row, colDescription))),
		Counterparty: strings.TrimSpace(cellString(cellAt(row, colCounterparty))),
		Project:      strings.TrimSpace(cellString(cellAt(row, colProject))),
	}, true
}

// ParseAmount converts a raw amount cell into a non-negative
// magnitude. Whitespace (including non-breaking thousands separators)
// is stripped and a decimal comma becomes a dot before parsing.
// Unparsable or non-finite input yields 0 rather than rejecting the
// row; the sign, if any, is discarded because direction is carried by
// the transaction type.
func ParseAmount(raw string) float64 {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return math.Abs(v)
}

func cellAt(row []any, idx int) any {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

// cellString renders a cell the way the sheet displays it. Numbers
// come through JSON as float64; formatting with -1 precision avoids
// trailing zeros.
func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
