package outbox

//go:generate mockgen -source=outbox.go -destination=mocks/outbox_mock.go -package=mocks

import (
	"context"
	"sync"
	"time"

	"github.com/project/lms/internal/usecase/repository"
	"github.com/project/lms/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type (
	// Router picks the delivery function for an event kind.
	Router = func(kind repository.OutboxKind) (Deliver, error)
	// Deliver sends one event payload to its destination.
	Deliver = func(ctx context.Context, payload []byte) error

	Repository interface {
		Claim(ctx context.Context, limit int, staleAfter time.Duration) ([]repository.OutboxEvent, error)
		Acknowledge(ctx context.Context, keys []string) error
		Release(ctx context.Context, keys []string) error
	}

	Transactor interface {
		WithTx(ctx context.Context, function func(ctx context.Context) error) error
	}
)

// Options tune the polling workers.
type Options struct {
	Workers      int
	BatchSize    int
	PollInterval time.Duration
	StaleAfter   time.Duration
}

const (
	resultDelivered   = "delivered"
	resultFailed      = "failed"
	resultUnsupported = "unsupported"
)

var DeliveredEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "library_outbox_events_total",
	Help: "Outbox events handled by the relay, by kind and result",
}, []string{"kind", "result"})

func init() {
	prometheus.MustRegister(DeliveredEvents)
}

// Relay moves committed outbox events to their webhooks.
type Relay struct {
	logger     *zap.Logger
	events     Repository
	route      Router
	transactor Transactor
	wg         sync.WaitGroup
}

func New(logger *zap.Logger, events Repository, route Router, transactor Transactor) *Relay {
	return &Relay{
		logger:     logger,
		events:     events,
		route:      route,
		transactor: transactor,
	}
}

// Start launches opts.Workers goroutines polling until ctx is done.
func (r *Relay) Start(ctx context.Context, opts Options) {
	r.wg.Add(opts.Workers)
	for range opts.Workers {
		go r.poll(ctx, opts)
	}
	logger.MakeInfo(r.logger, "outbox relay started",
		zap.Int("workers", opts.Workers), zap.Duration("poll_interval", opts.PollInterval))
}

// Wait blocks until every worker has returned.
func (r *Relay) Wait() {
	r.wg.Wait()
}

func (r *Relay) poll(ctx context.Context, opts Options) {
	defer r.wg.Done()

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// A cancelled context may race the tick.
		if ctx.Err() != nil {
			return
		}

		err := r.transactor.WithTx(ctx, func(ctx context.Context) error {
			return r.drain(ctx, opts)
		})
		logger.CheckError(err, r.logger, "outbox batch failed", zap.Error(err))
	}
}

// drain claims one batch, delivers every event and settles the batch in the
// same transaction.
func (r *Relay) drain(ctx context.Context, opts Options) error {
	events, err := r.events.Claim(ctx, opts.BatchSize, opts.StaleAfter)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}
	logger.MakeInfo(r.logger, "outbox events claimed", zap.Int("count", len(events)))

	var delivered, failed []string
	for _, event := range events {
		result := r.deliver(ctx, event)
		DeliveredEvents.WithLabelValues(event.Kind.String(), result).Inc()

		if result == resultDelivered {
			delivered = append(delivered, event.Key)
		} else {
			failed = append(failed, event.Key)
		}
	}

	if err = r.events.Acknowledge(ctx, delivered); err != nil {
		return err
	}
	return r.events.Release(ctx, failed)
}

func (r *Relay) deliver(ctx context.Context, event repository.OutboxEvent) string {
	fields := []zap.Field{zap.String("event_key", event.Key), zap.String("kind", event.Kind.String())}

	send, err := r.route(event.Kind)
	if logger.CheckError(err, r.logger, "no route for outbox event", append(fields, zap.Error(err))...) {
		return resultUnsupported
	}

	err = send(ctx, event.Payload)
	if logger.CheckError(err, r.logger, "outbox delivery failed", append(fields, zap.Error(err))...) {
		return resultFailed
	}
	return resultDelivered
}
