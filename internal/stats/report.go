package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/tonedrill/internal/ledger"
	"github.com/verte-zerg/tonedrill/internal/model"
)

const (
	defaultHighlight = 5
	trendWindow      = 10
)

// SessionLister reads the recent session history.
type SessionLister interface {
	ListSessions(ctx context.Context, limit int) ([]model.Session, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions      []model.Session
	Rows          []ledger.Row
	Weakest       []ledger.Row
	MostPracticed []ledger.Row
	Floor         float64
}

// QueryFromConfig converts stats options to a ledger query.
func QueryFromConfig(cfg model.StatsConfig) (ledger.Query, error) {
	q := ledger.Query{Search: cfg.Search, SortBy: ledger.SortWeight, Desc: cfg.Desc}
	if cfg.Class != "" && cfg.Class != "all" {
		class, err := model.ParseComponentClass(cfg.Class)
		if err != nil {
			return ledger.Query{}, err
		}
		q.Classes = []model.ComponentClass{class}
	}
	if cfg.SortBy != "" {
		key, err := ledger.ParseSortKey(cfg.SortBy)
		if err != nil {
			return ledger.Query{}, err
		}
		q.SortBy = key
	}
	return q, nil
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, l *ledger.Ledger, sessions SessionLister, cfg model.StatsConfig) (Report, error) {
	q, err := QueryFromConfig(cfg)
	if err != nil {
		return Report{}, err
	}
	rows, err := l.Query(ctx, q)
	if err != nil {
		return Report{}, err
	}
	history, err := sessions.ListSessions(ctx, cfg.Sessions)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list sessions: %w", err)
	}
	return Report{
		Sessions:      history,
		Rows:          rows,
		Weakest:       Weakest(rows, defaultHighlight),
		MostPracticed: MostPracticed(rows, defaultHighlight),
		Floor:         l.Floor(),
	}, nil
}

// RenderReport prints the summary followed by the stat tables.
func RenderReport(w io.Writer, r Report, useColor bool) error {
	if err := RenderSummary(w, r.Sessions, trendWindow); err != nil {
		return err
	}
	if r.Floor > 0 {
		if _, err := fmt.Fprintf(w, "Weight floor: %g\n\n", r.Floor); err != nil {
			return err
		}
	}
	if len(r.Weakest) > 0 {
		if err := RenderStatTable(w, "Weakest", r.Weakest, useColor); err != nil {
			return err
		}
	}
	if len(r.MostPracticed) > 0 {
		if err := RenderStatTable(w, "Most practiced", r.MostPracticed, useColor); err != nil {
			return err
		}
	}
	return RenderStatTable(w, "Components", r.Rows, useColor)
}
