package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kasa/internal/core"
)

// sourceUnavailableMsg is what every failed fetch looks like from
// outside. Bad data-source credentials and an unreachable source are
// deliberately indistinguishable here; the distinction only exists in
// the logs.
const sourceUnavailableMsg = "data source unavailable"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseFilter builds a filter from query parameters. Collection
// parameters accept both repeats (?accounts=a&accounts=b) and
// comma-separated values. A date parameter that does not parse is an
// error rather than a silently open bound.
func parseFilter(query url.Values) (core.Filter, error) {
	var f core.Filter

	if raw := strings.TrimSpace(query.Get("from")); raw != "" {
		d, ok := core.ParseDate(raw)
		if !ok {
			return core.Filter{}, fmt.Errorf("invalid 'from' date: %q", raw)
		}
		f.Start = d
	}
	if raw := strings.TrimSpace(query.Get("to")); raw != "" {
		d, ok := core.ParseDate(raw)
		if !ok {
			return core.Filter{}, fmt.Errorf("invalid 'to' date: %q", raw)
		}
		f.End = d
	}

	f.Accounts = listParam(query, "accounts")
	f.Categories = listParam(query, "categories")

	switch typ := strings.TrimSpace(query.Get("type")); strings.ToLower(typ) {
	case "", "all":
		// no restriction
	case string(core.TypeIncome):
		f.Type = core.TypeIncome
	case string(core.TypeExpense):
		f.Type = core.TypeExpense
	default:
		return core.Filter{}, fmt.Errorf("invalid 'type': %q", typ)
	}

	f.Project = strings.TrimSpace(query.Get("project"))
	return f, nil
}

// parseSort reads sort column and direction, defaulting to newest
// first.
func parseSort(query url.Values) (core.SortColumn, core.SortDirection, error) {
	column := core.ColumnDate
	if raw := strings.TrimSpace(query.Get("sort")); raw != "" {
		c, ok := core.ParseSortColumn(raw)
		if !ok {
			return "", "", fmt.Errorf("invalid 'sort' column: %q", raw)
		}
		column = c
	}
	dir := core.Descending
	switch raw := strings.ToLower(strings.TrimSpace(query.Get("dir"))); raw {
	case "", "desc":
	case "asc":
		dir = core.Ascending
	default:
		return "", "", fmt.Errorf("invalid 'dir': %q", raw)
	}
	return column, dir, nil
}

// parseEarnRange reads the earn view's date range, defaulting to the
// current year to date.
func parseEarnRange(query url.Values, now time.Time) (start, end core.Date, err error) {
	start = core.NewDate(now.Year(), time.January, 1)
	end = core.NewDate(now.Year(), now.Month(), now.Day())

	if raw := strings.TrimSpace(query.Get("from")); raw != "" {
		d, ok := core.ParseDate(raw)
		if !ok {
			return core.Date{}, core.Date{}, fmt.Errorf("invalid 'from' date: %q", raw)
		}
		start = d
	}
	if raw := strings.TrimSpace(query.Get("to")); raw != "" {
		d, ok := core.ParseDate(raw)
		if !ok {
			return core.Date{}, core.Date{}, fmt.Errorf("invalid 'to' date: %q", raw)
		}
		end = d
	}
	if end.Before(start.Time) {
		return core.Date{}, core.Date{}, fmt.Errorf("'to' precedes 'from'")
	}
	return start, end, nil
}

func listParam(query url.Values, key string) []string {
	var out []string
	for _, raw := range query[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// subtract returns values not present in the exclusion set, order
// preserved.
func subtract(values, excluded []string) []string {
	var out []string
	for _, v := range values {
		skip := false
		for _, e := range excluded {
			if v == e {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, v)
		}
	}
	return out
}
