package repository

import (
	"context"
	"fmt"

	"github.com/project/lms/internal/entity"
)

func (p *postgresRepository) CreateBorrowRequest(ctx context.Context, request entity.BorrowRequest) (entity.BorrowRequest, error) {
	const query = `
INSERT INTO borrow_request (book_id, user_id)
VALUES ($1, $2)
RETURNING id, status, requested_at
`
	result := entity.BorrowRequest{
		BookID: request.BookID,
		UserID: request.UserID,
	}

	var status string
	err := conn(ctx, p.db).QueryRow(ctx, query, request.BookID, request.UserID).
		Scan(&result.ID, &status, &result.RequestedAt)

	if err != nil {
		return entity.BorrowRequest{}, convertPgError(err, entity.ErrBorrowRequestNotFound)
	}

	result.Status = entity.BorrowStatus(status)
	return result, nil
}

// GetBorrowRequestForUpdate locks the request row until the surrounding
// transaction ends, so concurrent transitions of one request serialize.
func (p *postgresRepository) GetBorrowRequestForUpdate(ctx context.Context, id string) (entity.BorrowRequest, error) {
	const query = `
SELECT id, book_id, user_id, status, requested_at, approved_at, returned_at
FROM borrow_request
WHERE id = $1 FOR UPDATE
`
	var (
		request entity.BorrowRequest
		status  string
	)
	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&request.ID, &request.BookID, &request.UserID, &status,
		&request.RequestedAt, &request.ApprovedAt, &request.ReturnedAt,
	)

	if err != nil {
		return entity.BorrowRequest{}, convertPgError(err, entity.ErrBorrowRequestNotFound)
	}

	request.Status = entity.BorrowStatus(status)
	return request, nil
}

func (p *postgresRepository) UpdateBorrowRequest(ctx context.Context, request entity.BorrowRequest) error {
	const query = `
UPDATE borrow_request
SET status = $2, approved_at = $3, returned_at = $4
WHERE id = $1
`
	tag, err := conn(ctx, p.db).Exec(ctx, query,
		request.ID, string(request.Status), request.ApprovedAt, request.ReturnedAt)

	if err != nil {
		return convertPgError(err, entity.ErrBorrowRequestNotFound)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrBorrowRequestNotFound
	}
	return nil
}

func (p *postgresRepository) ListUserBorrowRequests(ctx context.Context, userID string) ([]entity.BorrowRequest, error) {
	const query = `
SELECT id, book_id, user_id, status, requested_at, approved_at, returned_at
FROM borrow_request
WHERE user_id = $1
ORDER BY requested_at DESC, id
`
	rows, err := conn(ctx, p.db).Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]entity.BorrowRequest, 0)
	for rows.Next() {
		var (
			r      entity.BorrowRequest
			status string
		)
		err = rows.Scan(&r.ID, &r.BookID, &r.UserID, &status, &r.RequestedAt, &r.ApprovedAt, &r.ReturnedAt)
		if err != nil {
			return nil, fmt.Errorf("scan borrow request: %w", err)
		}
		r.Status = entity.BorrowStatus(status)
		requests = append(requests, r)
	}

	return requests, rows.Err()
}
