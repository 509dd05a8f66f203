package repository

import (
	"context"
	"time"
)

var _ OutboxRepository = (*eventOutbox)(nil)

// eventOutbox keeps events in the outbox table. An event moves
// PENDING -> CLAIMED -> DELIVERED, or back to PENDING when a delivery fails,
// and ends ABANDONED after maxAttempts failed deliveries.
type eventOutbox struct {
	db          DataBase
	maxAttempts int
}

func NewOutbox(db DataBase, maxAttempts int) *eventOutbox {
	return &eventOutbox{
		db:          db,
		maxAttempts: maxAttempts,
	}
}

// Enqueue writes event in the transaction carried by ctx, so it commits
// together with the change it describes. A key seen before is ignored.
func (o *eventOutbox) Enqueue(ctx context.Context, event OutboxEvent) error {
	const query = `
INSERT INTO outbox (event_key, kind, payload)
VALUES ($1, $2, $3)
ON CONFLICT (event_key) DO NOTHING`

	_, err := conn(ctx, o.db).Exec(ctx, query, event.Key, event.Kind, event.Payload)
	return err
}

// Claim takes up to limit pending events, oldest first. Events claimed by a
// worker that has not settled them within staleAfter are taken again.
func (o *eventOutbox) Claim(ctx context.Context, limit int, staleAfter time.Duration) ([]OutboxEvent, error) {
	const query = `
WITH due AS (
    SELECT event_key
    FROM outbox
    WHERE state = 'PENDING'
       OR (state = 'CLAIMED' AND updated_at < now() - make_interval(secs => $1))
    ORDER BY created_at
    LIMIT $2
    FOR UPDATE SKIP LOCKED
)
UPDATE outbox
SET state = 'CLAIMED'
FROM due
WHERE outbox.event_key = due.event_key
RETURNING outbox.event_key, outbox.kind, outbox.payload`

	rows, err := conn(ctx, o.db).Query(ctx, query, staleAfter.Seconds(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var event OutboxEvent
		if err := rows.Scan(&event.Key, &event.Kind, &event.Payload); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// Acknowledge marks claimed events as delivered.
func (o *eventOutbox) Acknowledge(ctx context.Context, keys []string) error {
	const query = `
UPDATE outbox
SET state = 'DELIVERED', attempts = attempts + 1
WHERE state = 'CLAIMED' AND event_key = ANY($1)`

	return o.settle(ctx, query, keys)
}

// Release returns claimed events to the queue after a failed delivery.
func (o *eventOutbox) Release(ctx context.Context, keys []string) error {
	const query = `
UPDATE outbox
SET attempts = attempts + 1,
    state = CASE
        WHEN attempts + 1 >= $2 THEN 'ABANDONED'::outbox_state
        ELSE 'PENDING'::outbox_state
    END
WHERE state = 'CLAIMED' AND event_key = ANY($1)`

	return o.settle(ctx, query, keys, o.maxAttempts)
}

func (o *eventOutbox) settle(ctx context.Context, query string, keys []string, args ...any) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := conn(ctx, o.db).Exec(ctx, query, append([]any{keys}, args...)...)
	return err
}
