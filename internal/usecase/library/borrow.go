package library

import (
	"context"

	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/log"
	"github.com/project/lms/internal/usecase/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (l *libraryImpl) CreateBorrowRequest(ctx context.Context, p entity.Principal, bookID string) (entity.BorrowRequest, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.String("book_id", bookID))
	log.InfoCreateBorrowRequest(l.logger, "Start of create borrow request", traceID, bookID, p.UserID)

	if err := p.Authorize(entity.OpCreateBorrowRequest); err != nil {
		log.ErrorCreateBorrowRequest(l.logger, err, "Create borrow request denied", traceID, bookID, p.UserID)
		return entity.BorrowRequest{}, err
	}

	var request entity.BorrowRequest
	err := l.transactor.WithTx(ctx, func(ctx context.Context) error {
		var txErr error
		request, txErr = l.borrowRepository.CreateBorrowRequest(ctx, entity.BorrowRequest{
			BookID:      bookID,
			UserID:      p.UserID,
			Status:      entity.BorrowPending,
			RequestedAt: l.now().UTC(),
		})

		if txErr != nil {
			return txErr
		}

		return l.sendEvent(ctx, repository.OutboxKindBorrow, request.ID+"_"+string(request.Status), request)
	})

	if log.ErrorCreateBorrowRequest(l.logger, err, "Failed create borrow request", traceID, bookID, p.UserID) {
		span.RecordError(err)
		return entity.BorrowRequest{}, err
	}

	span.SetAttributes(attribute.String("borrow_request_id", request.ID))
	log.InfoCreateBorrowRequest(l.logger, "Created the borrow request", traceID, bookID, p.UserID, request.ID)
	return request, nil
}

// TransitionBorrowRequest moves a request through its lifecycle. The request row
// stays locked until the transaction ends, so a concurrent transition of the same
// request observes the new status. The copy counter changes in a single statement
// that refuses to go below zero or above the total.
func (l *libraryImpl) TransitionBorrowRequest(
	ctx context.Context,
	p entity.Principal,
	id string,
	action entity.BorrowAction,
) (entity.BorrowRequest, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(
		attribute.String("borrow_request_id", id),
		attribute.String("borrow_action", string(action)))
	log.InfoTransition(l.logger, "Start of borrow request transition", traceID, id, string(action), p.UserID)

	if err := p.Authorize(entity.OpTransitionBorrowRequest); err != nil {
		log.ErrorTransition(l.logger, err, "Borrow request transition denied", traceID, id, string(action), p.UserID)
		return entity.BorrowRequest{}, err
	}

	var next entity.BorrowRequest
	err := l.transactor.WithTx(ctx, func(ctx context.Context) error {
		current, txErr := l.borrowRepository.GetBorrowRequestForUpdate(ctx, id)
		if txErr != nil {
			return txErr
		}

		var diff int
		next, diff, txErr = current.Transit(action, l.now().UTC())
		if txErr != nil {
			return txErr
		}

		if diff != 0 {
			if _, txErr = l.booksRepository.AdjustAvailableCopies(ctx, next.BookID, diff); txErr != nil {
				return txErr
			}
		}

		if txErr = l.borrowRepository.UpdateBorrowRequest(ctx, next); txErr != nil {
			return txErr
		}

		return l.sendEvent(ctx, repository.OutboxKindBorrow, next.ID+"_"+string(next.Status), next)
	})

	if log.ErrorTransition(l.logger, err, "Failed borrow request transition", traceID, id, string(action), p.UserID) {
		span.RecordError(err)
		return entity.BorrowRequest{}, err
	}

	log.InfoTransition(l.logger, "Borrow request transitioned", traceID, id, string(action), p.UserID, string(next.Status))
	return next, nil
}

func (l *libraryImpl) ListBorrowRequests(ctx context.Context, p entity.Principal) ([]entity.BorrowRequest, error) {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpListOwnBorrowRequests); err != nil {
		return nil, err
	}

	requests, err := l.borrowRepository.ListUserBorrowRequests(ctx, p.UserID)
	if log.ErrorListBorrowRequests(l.logger, err, "Failed list borrow requests", traceID, p.UserID) {
		return nil, err
	}

	log.InfoListBorrowRequests(l.logger, "Listed borrow requests", traceID, p.UserID)
	if requests == nil {
		requests = []entity.BorrowRequest{}
	}
	return requests, nil
}
