package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/project/lms/config"
	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/usecase/outbox"
	"github.com/project/lms/internal/usecase/repository"
	"github.com/project/lms/pkg/logger"
	"go.uber.org/zap"
)

const webhookTimeout = 15 * time.Second

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	errWebhookStatus = errors.New("webhook answered with non-2xx status")
)

type waiter interface {
	Wait()
}

func newWebhookClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: time.Minute}).DialContext
	transport.MaxIdleConnsPerHost = 16

	return &http.Client{Transport: transport, Timeout: webhookTimeout}
}

// runOutbox starts the relay that pushes outbox events to the configured webhooks.
func runOutbox(
	ctx context.Context,
	cfg *config.Config,
	l *zap.Logger,
	events outbox.Repository,
	transactor outbox.Transactor,
) waiter {
	logOutbox := logger.Enabled(l, cfg.Log.Outbox)
	hooks := newWebhooks(logOutbox, newWebhookClient(), map[repository.OutboxKind]string{
		repository.OutboxKindAuthor: cfg.Outbox.AuthorWebhook,
		repository.OutboxKindBook:   cfg.Outbox.BookWebhook,
		repository.OutboxKindBorrow: cfg.Outbox.BorrowWebhook,
	})

	relay := outbox.New(logOutbox, events, hooks.route, transactor)
	relay.Start(ctx, outbox.Options{
		Workers:      cfg.Outbox.Workers,
		BatchSize:    cfg.Outbox.BatchSize,
		PollInterval: cfg.Outbox.PollInterval,
		StaleAfter:   cfg.Outbox.StaleAfter,
	})
	return relay
}

// payloadFunc turns a stored event payload into the webhook body.
type payloadFunc func(stored []byte) ([]byte, error)

// Author and book hooks receive the bare id. Borrow hooks get the whole
// request since receivers act on its status.
var payloads = map[repository.OutboxKind]payloadFunc{
	repository.OutboxKindAuthor: func(stored []byte) ([]byte, error) {
		var author entity.Author
		err := json.Unmarshal(stored, &author)
		return []byte(author.ID), err
	},
	repository.OutboxKindBook: func(stored []byte) ([]byte, error) {
		var book entity.Book
		err := json.Unmarshal(stored, &book)
		return []byte(book.ID), err
	},
	repository.OutboxKindBorrow: func(stored []byte) ([]byte, error) {
		var request entity.BorrowRequest
		if err := json.Unmarshal(stored, &request); err != nil {
			return nil, err
		}
		return json.Marshal(request)
	},
}

type webhooks struct {
	logger *zap.Logger
	client *http.Client
	urls   map[repository.OutboxKind]string
}

func newWebhooks(l *zap.Logger, client *http.Client, urls map[repository.OutboxKind]string) *webhooks {
	return &webhooks{logger: l, client: client, urls: urls}
}

// route returns the delivery for kind. A kind without a URL is acknowledged
// without being sent.
func (w *webhooks) route(kind repository.OutboxKind) (outbox.Deliver, error) {
	payload, ok := payloads[kind]
	if !ok {
		return nil, fmt.Errorf("no webhook for outbox kind %q", kind)
	}
	url := w.urls[kind]

	return func(ctx context.Context, stored []byte) error {
		body, err := payload(stored)
		if err != nil {
			return fmt.Errorf("decode %s event: %w", kind, err)
		}
		if url == "" {
			logger.MakeInfo(w.logger, "webhook not configured, event dropped", zap.Stringer("kind", kind))
			return nil
		}
		return w.post(ctx, url, body)
	}, nil
}

func (w *webhooks) post(ctx context.Context, url string, body []byte) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := w.client.Do(request)
	if err != nil {
		return fmt.Errorf("call webhook: %w", err)
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)

	if response.StatusCode/100 != 2 {
		return fmt.Errorf("%w: %d", errWebhookStatus, response.StatusCode)
	}
	return nil
}
