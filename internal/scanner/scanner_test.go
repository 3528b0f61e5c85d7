package scanner_test

import (
	"context"
	"errors"
	"pen/internal/risk"
	"pen/internal/scanner"
	"pen/pkg/domain"
	"pen/pkg/serrors"
	"testing"
	"time"

	mockhistory "pen/internal/history/mock"
	mockrisk "pen/internal/risk/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestScanner(t *testing.T, delay time.Duration) (*mockrisk.MockEvaluator, *mockhistory.MockStore, scanner.Scanner) {
	t.Helper()

	ctrl := gomock.NewController(t)
	ev := mockrisk.NewMockEvaluator(ctrl)
	ev.EXPECT().Name().Return(risk.KindHeuristic).AnyTimes()
	st := mockhistory.NewMockStore(ctrl)

	return ev, st, scanner.New(scanner.Options{Delay: delay}, ev, st, nil)
}

func TestScanner_Scan_RejectsBlankInput(t *testing.T) {
	_, _, s := newTestScanner(t, 0)

	for _, in := range []string{"", "   ", "\t\n"} {
		v, err := s.Scan(context.Background(), "device-1", in)
		require.Nil(t, v)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	}
}

func TestScanner_Scan_AppendsToHistory(t *testing.T) {
	ev, st, s := newTestScanner(t, time.Millisecond)

	heuristic := risk.Heuristic{}
	ev.EXPECT().Evaluate(gomock.Any(), "https://malware-test.com").DoAndReturn(heuristic.Evaluate)
	st.EXPECT().Append(gomock.Any(), "device-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, v domain.ScanVerdict) error {
			require.Equal(t, domain.VerdictDanger, v.Status)
			require.False(t, v.ScannedAt.IsZero())

			return nil
		})

	v, err := s.Scan(context.Background(), "device-1", "  https://malware-test.com ")
	require.NoError(t, err)
	require.Equal(t, domain.VerdictDanger, v.Status)
	require.True(t, v.SSL)
	require.Equal(t, "https://malware-test.com", v.URL)
	require.Equal(t, time.UTC, v.ScannedAt.Location())
}

func TestScanner_Scan_WithoutDeviceSkipsHistory(t *testing.T) {
	ev, _, s := newTestScanner(t, 0)

	ev.EXPECT().Evaluate(gomock.Any(), "http://example.com").DoAndReturn(risk.Heuristic{}.Evaluate)

	v, err := s.Scan(context.Background(), "", "http://example.com")
	require.NoError(t, err)
	require.Equal(t, domain.VerdictWarning, v.Status)
}

func TestScanner_Scan_HistoryFailureIsNotFatal(t *testing.T) {
	ev, st, s := newTestScanner(t, 0)

	ev.EXPECT().Evaluate(gomock.Any(), gomock.Any()).DoAndReturn(risk.Heuristic{}.Evaluate)
	st.EXPECT().Append(gomock.Any(), "device-1", gomock.Any()).Return(errors.New("redis down"))

	v, err := s.Scan(context.Background(), "device-1", "https://example.com")
	require.NoError(t, err)
	require.Equal(t, domain.VerdictSafe, v.Status)
}

func TestScanner_Scan_EvaluatorError(t *testing.T) {
	ev, _, s := newTestScanner(t, 0)

	ev.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
		Return(domain.ScanVerdict{}, serrors.With(serrors.ErrUnavailable, "urlscan down"))

	v, err := s.Scan(context.Background(), "device-1", "https://example.com")
	require.Nil(t, v)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestScanner_Scan_CancelledDuringDelay(t *testing.T) {
	// no Evaluate or Append expectation: nothing may run after cancellation
	_, _, s := newTestScanner(t, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Scan(ctx, "device-1", "https://example.com")
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, serrors.ErrTimeout)
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("scan did not return after cancellation")
	}
}

func TestScanner_Scan_OneInFlightPerDevice(t *testing.T) {
	ev, st, s := newTestScanner(t, 0)

	started := make(chan struct{})
	unblock := make(chan struct{})
	ev.EXPECT().Evaluate(gomock.Any(), "https://first.example").DoAndReturn(
		func(ctx context.Context, url string) (domain.ScanVerdict, error) {
			close(started)
			<-unblock

			return risk.Heuristic{}.Evaluate(ctx, url)
		})
	ev.EXPECT().Evaluate(gomock.Any(), "https://other.example").DoAndReturn(risk.Heuristic{}.Evaluate)
	ev.EXPECT().Evaluate(gomock.Any(), "https://again.example").DoAndReturn(risk.Heuristic{}.Evaluate)
	st.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)

	done := make(chan error, 1)
	go func() {
		_, err := s.Scan(context.Background(), "device-1", "https://first.example")
		done <- err
	}()
	<-started

	_, err := s.Scan(context.Background(), "device-1", "https://second.example")
	require.ErrorIs(t, err, serrors.ErrConflict)

	// other devices are not blocked
	_, err = s.Scan(context.Background(), "device-2", "https://other.example")
	require.NoError(t, err)

	close(unblock)
	require.NoError(t, <-done)

	// the guard is released once the first scan returns
	_, err = s.Scan(context.Background(), "device-1", "https://again.example")
	require.NoError(t, err)
}

func TestScanner_History(t *testing.T) {
	_, st, s := newTestScanner(t, 0)

	entries, err := s.History(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, entries)

	want := []domain.ScanVerdict{risk.Heuristic{}.Classify("https://example.com")}
	st.EXPECT().List(gomock.Any(), "device-1").Return(want, nil)

	entries, err = s.History(context.Background(), "device-1")
	require.NoError(t, err)
	require.Equal(t, want, entries)

	st.EXPECT().List(gomock.Any(), "device-1").Return(nil, errors.New("redis down"))

	_, err = s.History(context.Background(), "device-1")
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}
