package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/project/lms/internal/usecase/outbox/mocks"
	"github.com/project/lms/internal/usecase/repository"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var errInternal = errors.New("internal error")

var (
	approved = repository.OutboxEvent{Key: "borrow_1_APPROVED", Kind: repository.OutboxKindBorrow, Payload: []byte(`{}`)}
	returned = repository.OutboxEvent{Key: "borrow_1_RETURNED", Kind: repository.OutboxKindBorrow, Payload: []byte(`{}`)}
	bookAdd  = repository.OutboxEvent{Key: "book_2", Kind: repository.OutboxKindBook, Payload: []byte(`{}`)}
	unknown  = repository.OutboxEvent{Key: "undefined_3", Kind: repository.OutboxKindUndefined}
)

// testRouter delivers borrow events, fails book events and has no route
// for anything else.
func testRouter(kind repository.OutboxKind) (Deliver, error) {
	switch kind {
	case repository.OutboxKindBorrow:
		return func(context.Context, []byte) error { return nil }, nil
	case repository.OutboxKindBook:
		return func(context.Context, []byte) error { return errInternal }, nil
	default:
		return nil, errInternal
	}
}

var testOptions = Options{
	Workers:      2,
	BatchSize:    10,
	PollInterval: time.Millisecond,
	StaleAfter:   time.Second,
}

func TestRelay_drain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		claimed       []repository.OutboxEvent
		claimErr      error
		wantDelivered []string
		wantFailed    []string
		ackErr        error
		releaseErr    error
		settled       bool
		errRequire    error
	}{
		{
			name:          "settles every claimed event",
			claimed:       []repository.OutboxEvent{approved, bookAdd, unknown, returned},
			wantDelivered: []string{approved.Key, returned.Key},
			wantFailed:    []string{bookAdd.Key, unknown.Key},
			settled:       true,
		},
		{
			name:          "only failures",
			claimed:       []repository.OutboxEvent{bookAdd},
			wantDelivered: nil,
			wantFailed:    []string{bookAdd.Key},
			settled:       true,
		},
		{
			name: "nothing due",
		},
		{
			name:       "claim fails",
			claimErr:   errInternal,
			errRequire: errInternal,
		},
		{
			name:          "acknowledge fails",
			claimed:       []repository.OutboxEvent{approved},
			wantDelivered: []string{approved.Key},
			ackErr:        errInternal,
			settled:       true,
			errRequire:    errInternal,
		},
		{
			name:          "release fails",
			claimed:       []repository.OutboxEvent{approved, bookAdd},
			wantDelivered: []string{approved.Key},
			wantFailed:    []string{bookAdd.Key},
			releaseErr:    errInternal,
			settled:       true,
			errRequire:    errInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			events := mocks.NewMockRepository(ctrl)
			ctx := context.Background()

			events.EXPECT().Claim(ctx, testOptions.BatchSize, testOptions.StaleAfter).Return(tt.claimed, tt.claimErr)
			if tt.settled {
				events.EXPECT().Acknowledge(ctx, tt.wantDelivered).Return(tt.ackErr)
				if tt.ackErr == nil {
					events.EXPECT().Release(ctx, tt.wantFailed).Return(tt.releaseErr)
				}
			}

			relay := New(zap.NewNop(), events, testRouter, nil)
			err := relay.drain(ctx, testOptions)
			require.ErrorIs(t, err, tt.errRequire)
		})
	}
}

func TestRelay_drain_countsResults(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	events := mocks.NewMockRepository(ctrl)
	ctx := context.Background()

	events.EXPECT().Claim(ctx, gomock.Any(), gomock.Any()).Return([]repository.OutboxEvent{approved, unknown}, nil)
	events.EXPECT().Acknowledge(ctx, gomock.Any()).Return(nil)
	events.EXPECT().Release(ctx, gomock.Any()).Return(nil)

	delivered := DeliveredEvents.WithLabelValues(repository.OutboxKindBorrow.String(), resultDelivered)
	unsupported := DeliveredEvents.WithLabelValues(repository.OutboxKindUndefined.String(), resultUnsupported)
	deliveredBefore, unsupportedBefore := counterValue(t, delivered), counterValue(t, unsupported)

	require.NoError(t, New(nil, events, testRouter, nil).drain(ctx, testOptions))
	require.GreaterOrEqual(t, counterValue(t, delivered)-deliveredBefore, float64(1))
	require.GreaterOrEqual(t, counterValue(t, unsupported)-unsupportedBefore, float64(1))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestRelay_StartPollsUntilCancelled(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	events := mocks.NewMockRepository(ctrl)
	tr := mocks.NewMockTransactor(ctrl)

	polled := make(chan struct{})
	var once sync.Once
	events.EXPECT().Claim(gomock.Any(), testOptions.BatchSize, testOptions.StaleAfter).
		DoAndReturn(func(context.Context, int, time.Duration) ([]repository.OutboxEvent, error) {
			once.Do(func() { close(polled) })
			return nil, nil
		}).MinTimes(1)
	tr.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, function func(ctx context.Context) error) error {
			return function(ctx)
		}).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	relay := New(zap.NewNop(), events, testRouter, tr)
	relay.Start(ctx, testOptions)

	select {
	case <-polled:
	case <-time.After(5 * time.Second):
		t.Fatal("relay never polled the outbox")
	}

	cancel()
	relay.Wait()
}

func TestRelay_StartWithCancelledContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	events := mocks.NewMockRepository(ctrl)
	tr := mocks.NewMockTransactor(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	relay := New(nil, events, testRouter, tr)
	relay.Start(ctx, testOptions)
	relay.Wait()
}
