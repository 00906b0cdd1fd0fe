package dashboard

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pidim-smart/report-dashboard/pkg/models/store"
	"github.com/pidim-smart/report-dashboard/pkg/store/client"
)

var monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// State describes the fixed-load lifecycle of the dashboard.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Snapshot is a consistent copy of the dashboard state for rendering.
// Loan already resolves the fixed-vs-override choice: when a month override
// is active its rows fully replace the fixed loan rows.
type Snapshot struct {
	State   State
	Err     error
	Loan    []store.Row
	Poultry []store.Row
	Grants  []store.Row
	// Month filter, loan report only.
	MonthApplied bool
	Month        string
	MonthLabel   string
}

type override struct {
	rows  []store.Row
	month string
	label string
}

// Service owns the in-memory dashboard datasets. All updates are
// whole-dataset replacements under the mutex; readers get copies of the
// slice headers only, since rows are never mutated after a fetch.
type Service struct {
	api client.ReportsAPI

	mu       sync.Mutex
	state    State
	loadErr  error
	fixed    store.FixedReports
	override *override
	// applySeq orders month-filter requests so a stale response can never
	// overwrite a newer one.
	applySeq uint64
}

// New builds a Service in the loading state.
func New(api client.ReportsAPI) *Service {
	return &Service{api: api, state: StateLoading}
}

// LoadFixed fetches the three fixed datasets and replaces the stored ones
// atomically. On failure the dashboard enters the failed state, which the
// UI surfaces with a retry action instead of hanging on the loader.
func (s *Service) LoadFixed(ctx context.Context) error {
	reports, err := s.api.FetchFixed(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.loadErr = err
		return err
	}
	s.fixed = reports
	s.state = StateReady
	s.loadErr = nil
	return nil
}

// ApplyMonth fetches the loan report scoped to the given month and installs
// it as the override dataset. An empty month asks the upstream for its
// default (unfiltered) result. On fetch failure the override is cleared so
// the panel reverts to the fixed dataset; the error is logged for
// diagnostics and returned. A response superseded by a newer ApplyMonth or
// ClearMonth is discarded.
func (s *Service) ApplyMonth(ctx context.Context, month string) error {
	if month != "" && !monthRegex.MatchString(month) {
		return fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}

	s.mu.Lock()
	s.applySeq++
	seq := s.applySeq
	s.mu.Unlock()

	loan, err := s.api.FetchLoanMonth(ctx, month)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.applySeq {
		// A newer request won the race; drop this response.
		return nil
	}
	if err != nil {
		s.override = nil
		zerolog.Ctx(ctx).Error().Err(err).Str("month", month).
			Msg("month filter fetch failed, reverting to fixed loan dataset")
		return err
	}
	s.override = &override{rows: loan.Rows, month: month, label: loan.MonthLabel}
	return nil
}

// ClearMonth removes the override, reverting the loan panel to the fixed
// dataset. Any in-flight ApplyMonth response is discarded afterwards.
func (s *Service) ClearMonth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applySeq++
	s.override = nil
}

// Snapshot returns the current datasets and state for rendering.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:   s.state,
		Err:     s.loadErr,
		Loan:    s.fixed.Loan,
		Poultry: s.fixed.Poultry,
		Grants:  s.fixed.Grants,
	}
	if s.override != nil {
		snap.Loan = s.override.rows
		snap.MonthApplied = true
		snap.Month = s.override.month
		snap.MonthLabel = s.override.label
	}
	return snap
}
