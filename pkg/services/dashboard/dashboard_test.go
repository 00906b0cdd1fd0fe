package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pidim-smart/report-dashboard/pkg/models/store"
	"github.com/pidim-smart/report-dashboard/pkg/store/client"
)

type stubAPI struct {
	fetchFixed     func(ctx context.Context) (store.FixedReports, error)
	fetchLoanMonth func(ctx context.Context, month string) (store.MonthlyLoan, error)
}

func (s *stubAPI) FetchFixed(ctx context.Context) (store.FixedReports, error) {
	return s.fetchFixed(ctx)
}

func (s *stubAPI) FetchLoanMonth(ctx context.Context, month string) (store.MonthlyLoan, error) {
	return s.fetchLoanMonth(ctx, month)
}

func (s *stubAPI) ExportExcel(ctx context.Context) (*client.ExcelDownload, error) {
	return nil, errors.New("not implemented")
}

func fixedReports() store.FixedReports {
	return store.FixedReports{
		Loan:    []store.Row{{"Branch Name": "Mirpur", "Amount of Loan": 100.0}},
		Poultry: []store.Row{{"Branch Name": "Savar", "# of Birds": 40.0}},
		Grants:  []store.Row{{"Branch Name": "Tongi", "Amounts of Grants": 9.0}},
	}
}

func TestServiceStartsLoading(t *testing.T) {
	svc := New(&stubAPI{})

	snap := svc.Snapshot()
	assert.Equal(t, StateLoading, snap.State)
	assert.NoError(t, snap.Err)
	assert.Empty(t, snap.Loan)
}

func TestLoadFixedSuccess(t *testing.T) {
	api := &stubAPI{
		fetchFixed: func(ctx context.Context) (store.FixedReports, error) {
			return fixedReports(), nil
		},
	}
	svc := New(api)

	require.NoError(t, svc.LoadFixed(context.Background()))

	snap := svc.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Len(t, snap.Loan, 1)
	assert.Len(t, snap.Poultry, 1)
	assert.Len(t, snap.Grants, 1)
	assert.False(t, snap.MonthApplied)
}

func TestLoadFixedFailureThenRetry(t *testing.T) {
	loadErr := errors.New("upstream down")
	fail := true
	api := &stubAPI{
		fetchFixed: func(ctx context.Context) (store.FixedReports, error) {
			if fail {
				return store.FixedReports{}, loadErr
			}
			return fixedReports(), nil
		},
	}
	svc := New(api)

	require.Error(t, svc.LoadFixed(context.Background()))
	snap := svc.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.ErrorIs(t, snap.Err, loadErr)

	fail = false
	require.NoError(t, svc.LoadFixed(context.Background()))
	snap = svc.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.NoError(t, snap.Err)
}

func TestApplyMonthOverridesLoanOnly(t *testing.T) {
	api := &stubAPI{
		fetchFixed: func(ctx context.Context) (store.FixedReports, error) {
			return fixedReports(), nil
		},
		fetchLoanMonth: func(ctx context.Context, month string) (store.MonthlyLoan, error) {
			return store.MonthlyLoan{
				Rows:       []store.Row{{"Branch Name": "Mirpur", "Amount of Loan": 55.0}},
				MonthLabel: "May 2024",
			}, nil
		},
	}
	svc := New(api)
	require.NoError(t, svc.LoadFixed(context.Background()))

	require.NoError(t, svc.ApplyMonth(context.Background(), "2024-05"))

	snap := svc.Snapshot()
	assert.True(t, snap.MonthApplied)
	assert.Equal(t, "2024-05", snap.Month)
	assert.Equal(t, "May 2024", snap.MonthLabel)
	assert.Equal(t, 55.0, snap.Loan[0]["Amount of Loan"])
	// Other panels are untouched by the filter.
	assert.Equal(t, 40.0, snap.Poultry[0]["# of Birds"])
}

func TestApplyMonthRejectsMalformedMonth(t *testing.T) {
	called := false
	api := &stubAPI{
		fetchLoanMonth: func(ctx context.Context, month string) (store.MonthlyLoan, error) {
			called = true
			return store.MonthlyLoan{}, nil
		},
	}
	svc := New(api)

	for _, month := range []string{"2024", "05-2024", "2024-5", "May 2024"} {
		assert.Error(t, svc.ApplyMonth(context.Background(), month), month)
	}
	assert.False(t, called)
}

func TestApplyMonthEmptyMonthAllowed(t *testing.T) {
	var got string
	api := &stubAPI{
		fetchLoanMonth: func(ctx context.Context, month string) (store.MonthlyLoan, error) {
			got = month
			return store.MonthlyLoan{Rows: []store.Row{}, MonthLabel: "All Months"}, nil
		},
	}
	svc := New(api)

	require.NoError(t, svc.ApplyMonth(context.Background(), ""))
	assert.Equal(t, "", got)
	assert.Equal(t, "All Months", svc.Snapshot().MonthLabel)
}

func TestApplyMonthFailureRevertsToFixed(t *testing.T) {
	fetchErr := errors.New("boom")
	failing := false
	api := &stubAPI{
		fetchFixed: func(ctx context.Context) (store.FixedReports, error) {
			return fixedReports(), nil
		},
		fetchLoanMonth: func(ctx context.Context, month string) (store.MonthlyLoan, error) {
			if failing {
				return store.MonthlyLoan{}, fetchErr
			}
			return store.MonthlyLoan{
				Rows:       []store.Row{{"Amount of Loan": 55.0}},
				MonthLabel: "May 2024",
			}, nil
		},
	}
	svc := New(api)
	require.NoError(t, svc.LoadFixed(context.Background()))
	require.NoError(t, svc.ApplyMonth(context.Background(), "2024-05"))

	failing = true
	assert.ErrorIs(t, svc.ApplyMonth(context.Background(), "2024-06"), fetchErr)

	snap := svc.Snapshot()
	assert.False(t, snap.MonthApplied)
	assert.Equal(t, 100.0, snap.Loan[0]["Amount of Loan"])
	// The dashboard itself stays ready; only the filter failed.
	assert.Equal(t, StateReady, snap.State)
}

func TestClearMonthRevertsAndIsIdempotent(t *testing.T) {
	api := &stubAPI{
		fetchFixed: func(ctx context.Context) (store.FixedReports, error) {
			return fixedReports(), nil
		},
		fetchLoanMonth: func(ctx context.Context, month string) (store.MonthlyLoan, error) {
			return store.MonthlyLoan{
				Rows:       []store.Row{{"Amount of Loan": 55.0}},
				MonthLabel: "May 2024",
			}, nil
		},
	}
	svc := New(api)
	require.NoError(t, svc.LoadFixed(context.Background()))
	require.NoError(t, svc.ApplyMonth(context.Background(), "2024-05"))

	svc.ClearMonth()
	svc.ClearMonth()

	snap := svc.Snapshot()
	assert.False(t, snap.MonthApplied)
	assert.Equal(t, 100.0, snap.Loan[0]["Amount of Loan"])
}

func TestStaleApplyResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &stubAPI{
		fetchFixed: func(ctx context.Context) (store.FixedReports, error) {
			return fixedReports(), nil
		},
		fetchLoanMonth: func(ctx context.Context, month string) (store.MonthlyLoan, error) {
			if month == "2024-01" {
				close(started)
				<-release
			}
			return store.MonthlyLoan{
				Rows:       []store.Row{{"month": month}},
				MonthLabel: month,
			}, nil
		},
	}
	svc := New(api)
	require.NoError(t, svc.LoadFixed(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- svc.ApplyMonth(context.Background(), "2024-01")
	}()
	<-started

	// A newer filter lands while the first is still in flight.
	require.NoError(t, svc.ApplyMonth(context.Background(), "2024-02"))
	close(release)
	require.NoError(t, <-done)

	snap := svc.Snapshot()
	assert.Equal(t, "2024-02", snap.MonthLabel)
	assert.Equal(t, "2024-02", snap.Loan[0]["month"])
}

func TestClearDiscardsInFlightApply(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &stubAPI{
		fetchFixed: func(ctx context.Context) (store.FixedReports, error) {
			return fixedReports(), nil
		},
		fetchLoanMonth: func(ctx context.Context, month string) (store.MonthlyLoan, error) {
			close(started)
			<-release
			return store.MonthlyLoan{
				Rows:       []store.Row{{"Amount of Loan": 55.0}},
				MonthLabel: "May 2024",
			}, nil
		},
	}
	svc := New(api)
	require.NoError(t, svc.LoadFixed(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- svc.ApplyMonth(context.Background(), "2024-05")
	}()
	<-started

	svc.ClearMonth()
	close(release)
	require.NoError(t, <-done)

	snap := svc.Snapshot()
	assert.False(t, snap.MonthApplied)
	assert.Equal(t, 100.0, snap.Loan[0]["Amount of Loan"])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "failed", StateFailed.String())
}
