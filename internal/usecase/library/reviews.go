package library

import (
	"context"

	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (l *libraryImpl) CreateReview(ctx context.Context, p entity.Principal, review entity.Review) (entity.Review, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpCreateReview); err != nil {
		return entity.Review{}, err
	}

	review.UserID = p.UserID
	if err := validateReview(review); err != nil {
		return entity.Review{}, err
	}

	created, err := l.reviewRepository.CreateReview(ctx, review)
	if log.ErrorReview(l.logger, err, "Failed create review", traceID, "", p.UserID, log.CreateReview) {
		span.RecordError(err)
		return entity.Review{}, err
	}

	span.SetAttributes(attribute.String("review_id", created.ID))
	log.InfoReview(l.logger, "Created the review", traceID, created.ID, p.UserID, log.CreateReview)
	return created, nil
}

func (l *libraryImpl) GetReview(ctx context.Context, p entity.Principal, id string) (entity.Review, error) {
	if err := p.Authorize(entity.OpReadCatalog); err != nil {
		return entity.Review{}, err
	}

	return l.reviewRepository.GetReview(ctx, id)
}

func (l *libraryImpl) UpdateReview(ctx context.Context, p entity.Principal, id string, patch entity.ReviewPatch) (entity.Review, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.String("review_id", id))

	if err := p.Authorize(entity.OpModifyReview); err != nil {
		return entity.Review{}, err
	}

	var updated entity.Review
	err := l.transactor.WithTx(ctx, func(ctx context.Context) error {
		current, txErr := l.reviewRepository.GetReview(ctx, id)
		if txErr != nil {
			return txErr
		}
		if !p.Owns(current) {
			return entity.ErrPermissionDenied
		}

		updated = patch.Apply(current)
		if txErr = validateReview(updated); txErr != nil {
			return txErr
		}

		return l.reviewRepository.UpdateReview(ctx, updated)
	})

	if log.ErrorReview(l.logger, err, "Failed update review", traceID, id, p.UserID, log.UpdateReview) {
		span.RecordError(err)
		return entity.Review{}, err
	}

	log.InfoReview(l.logger, "Updated the review", traceID, id, p.UserID, log.UpdateReview)
	return updated, nil
}

func (l *libraryImpl) DeleteReview(ctx context.Context, p entity.Principal, id string) error {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.String("review_id", id))

	if err := p.Authorize(entity.OpModifyReview); err != nil {
		return err
	}

	err := l.transactor.WithTx(ctx, func(ctx context.Context) error {
		current, txErr := l.reviewRepository.GetReview(ctx, id)
		if txErr != nil {
			return txErr
		}
		if !p.Owns(current) {
			return entity.ErrPermissionDenied
		}

		return l.reviewRepository.DeleteReview(ctx, id)
	})

	if log.ErrorReview(l.logger, err, "Failed delete review", traceID, id, p.UserID, log.DeleteReview) {
		span.RecordError(err)
		return err
	}

	log.InfoReview(l.logger, "Deleted the review", traceID, id, p.UserID, log.DeleteReview)
	return nil
}

func (l *libraryImpl) ListReviews(
	ctx context.Context,
	p entity.Principal,
	bookID string,
	page entity.PageRequest,
) (entity.Page[entity.Review], error) {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpReadCatalog); err != nil {
		return entity.Page[entity.Review]{}, err
	}

	page = page.Normalize()
	reviews, total, err := l.reviewRepository.ListBookReviews(ctx, bookID, page)
	if log.ErrorReview(l.logger, err, "Failed list reviews", traceID, "", p.UserID, log.ListReviews) {
		return entity.Page[entity.Review]{}, err
	}

	return newPage(reviews, total, page), nil
}
