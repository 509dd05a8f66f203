package repository

import (
	"context"
	"fmt"

	"github.com/project/lms/internal/entity"
)

func (p *postgresRepository) CreateReview(ctx context.Context, review entity.Review) (entity.Review, error) {
	const query = `
INSERT INTO book_review (user_id, book_id, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at
`
	result := review

	err := conn(ctx, p.db).QueryRow(ctx, query, review.UserID, review.BookID, review.Rating, review.Comment).
		Scan(&result.ID, &result.CreatedAt)

	if err != nil {
		return entity.Review{}, convertPgError(err, entity.ErrReviewNotFound)
	}

	return result, nil
}

func (p *postgresRepository) GetReview(ctx context.Context, id string) (entity.Review, error) {
	const query = `
SELECT id, user_id, book_id, rating, comment, created_at
FROM book_review
WHERE id = $1
`
	var r entity.Review
	err := conn(ctx, p.db).QueryRow(ctx, query, id).
		Scan(&r.ID, &r.UserID, &r.BookID, &r.Rating, &r.Comment, &r.CreatedAt)

	if err != nil {
		return entity.Review{}, convertPgError(err, entity.ErrReviewNotFound)
	}

	return r, nil
}

func (p *postgresRepository) UpdateReview(ctx context.Context, review entity.Review) error {
	const query = `
UPDATE book_review SET rating = $2, comment = $3
WHERE id = $1
`
	tag, err := conn(ctx, p.db).Exec(ctx, query, review.ID, review.Rating, review.Comment)
	if err != nil {
		return convertPgError(err, entity.ErrReviewNotFound)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrReviewNotFound
	}
	return nil
}

func (p *postgresRepository) DeleteReview(ctx context.Context, id string) error {
	tag, err := conn(ctx, p.db).Exec(ctx, `DELETE FROM book_review WHERE id = $1`, id)
	if err != nil {
		return convertPgError(err, entity.ErrReviewNotFound)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrReviewNotFound
	}
	return nil
}

func (p *postgresRepository) ListBookReviews(ctx context.Context, bookID string, page entity.PageRequest) ([]entity.Review, int, error) {
	db := conn(ctx, p.db)

	var total int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM book_review WHERE book_id = $1`, bookID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
SELECT id, user_id, book_id, rating, comment, created_at
FROM book_review
WHERE book_id = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3
`
	rows, err := db.Query(ctx, query, bookID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews := make([]entity.Review, 0, page.PageSize)
	for rows.Next() {
		var r entity.Review
		if err = rows.Scan(&r.ID, &r.UserID, &r.BookID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}

	return reviews, total, rows.Err()
}
