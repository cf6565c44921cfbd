package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kasa/internal/charts"
	"kasa/internal/core"
	"kasa/internal/filterstate"
	"kasa/internal/log"
)

// handleData serves the raw snapshot: the three spreadsheet ranges
// exactly as fetched, before normalization.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	raw, err := s.snaps.Raw(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "snapshot fetch failed",
			log.FieldOperation, log.OpFetch, log.FieldError, err)
		writeError(w, http.StatusBadGateway, sourceUnavailableMsg)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// handleTransactions serves the filtered, sorted transaction list.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	column, dir, err := parseSort(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs := core.Sort(core.Apply(snap.Transactions, f), column, dir, false)
	writeJSON(w, http.StatusOK, map[string]any{
		"count":        len(txs),
		"transactions": txs,
	})
}

// handleEarn serves monthly income buckets per selected category.
// Structural bookkeeping categories never count as earned income, no
// matter what the request selected.
func (s *Server) handleEarn(w http.ResponseWriter, r *http.Request) {
	buckets, categories, ok := s.earnBuckets(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"buckets":    buckets,
	})
}

// handleEarnChart renders the earn view as a PNG line chart.
func (s *Server) handleEarnChart(w http.ResponseWriter, r *http.Request) {
	buckets, categories, ok := s.earnBuckets(w, r)
	if !ok {
		return
	}
	png, err := charts.EarnTrend(buckets, categories)
	if err != nil {
		if errors.Is(err, charts.ErrNotEnoughData) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.ErrorContext(r.Context(), "chart render failed",
			log.FieldOperation, log.OpRender, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "chart render failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// earnBuckets runs the shared earn pipeline: filter income in range,
// drop excluded categories, bucket by month.
func (s *Server) earnBuckets(w http.ResponseWriter, r *http.Request) ([]core.MonthBucket, []string, bool) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return nil, nil, false
	}
	start, end, err := parseEarnRange(r.URL.Query(), time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	categories := listParam(r.URL.Query(), "categories")
	if len(categories) == 0 {
		categories = snap.IncomeCategories()
	}
	categories = subtract(categories, s.cfg.ExcludedEarnCategories)

	txs := core.Apply(snap.Transactions, core.Filter{
		Start: start,
		End:   end,
		Type:  core.TypeIncome,
	})
	txs = core.ExcludeCategories(txs, s.cfg.ExcludedEarnCategories)

	return core.MonthlyBuckets(txs, categories, start, end), categories, true
}

// handleProject serves the profit-sharing summary for one project,
// plus its transactions. The project view compares expenses as
// negative amounts when sorting by amount.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing project name")
		return
	}
	column, dir, err := parseSort(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary := core.ComputeProjectSummary(snap.Transactions, name, s.cfg.ProjectBonuses[name])
	txs := core.Apply(snap.Transactions, core.Filter{Project: name})
	txs = core.Sort(txs, column, dir, true)

	writeJSON(w, http.StatusOK, map[string]any{
		"summary":      summary,
		"transactions": txs,
	})
}

// handleBalances serves per-account running balances over the full
// history.
func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, core.ComputeBalances(snap.Accounts, snap.Transactions))
}

// handleReport serves per-category totals over a filtered subset.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, core.BuildReport(core.Apply(snap.Transactions, f)))
}

func (s *Server) handleFilterLoad(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	writeJSON(w, http.StatusOK, s.filters.Load(key))
}

func (s *Server) handleFilterSave(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var sel filterstate.Selection
	// Unknown JSON keys are ignored; only the known fields survive.
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter selection")
		return
	}
	s.filters.Save(key, sel)
	s.logger.InfoContext(r.Context(), "filter selection saved", log.FieldFilterKey, key)
	writeJSON(w, http.StatusOK, s.filters.Load(key))
}

func (s *Server) handleFilterClear(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	s.filters.Clear(key)
	writeJSON(w, http.StatusOK, s.filters.Defaults())
}

// snapshot fetches the normalized snapshot, converting a failed fetch
// into the single page-level error every view shows.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (core.Snapshot, bool) {
	snap, err := s.snaps.Snapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "snapshot fetch failed",
			log.FieldOperation, log.OpFetch, log.FieldError, err)
		writeError(w, http.StatusBadGateway, sourceUnavailableMsg)
		return core.Snapshot{}, false
	}
	return snap, true
}
