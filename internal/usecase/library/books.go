package library

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/log"
	"github.com/project/lms/internal/usecase/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (l *libraryImpl) AddBook(ctx context.Context, p entity.Principal, book entity.Book) (entity.Book, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	log.InfoAddBook(l.logger, "Start of add book", traceID, book.Title, book.ISBN)

	if err := p.Authorize(entity.OpCreateBook); err != nil {
		log.ErrorAddBook(l.logger, err, "Add book denied", traceID, book.Title, book.ISBN)
		return entity.Book{}, err
	}
	if err := validateBook(book); err != nil {
		return entity.Book{}, err
	}
	if err := book.CheckCopies(); err != nil {
		return entity.Book{}, err
	}

	var added entity.Book
	err := l.transactor.WithTx(ctx, func(ctx context.Context) error {
		var txErr error
		added, txErr = l.booksRepository.AddBook(ctx, book)

		if txErr != nil {
			return txErr
		}

		return l.sendEvent(ctx, repository.OutboxKindBook, added.ID+"_created", added)
	})

	if log.ErrorAddBook(l.logger, err, "Failed add book", traceID, book.Title, book.ISBN) {
		span.RecordError(err)
		return entity.Book{}, err
	}

	span.SetAttributes(attribute.String("book_id", added.ID))
	log.InfoAddBook(l.logger, "Added the book", traceID, added.Title, added.ISBN, added.ID)
	return added, nil
}

func (l *libraryImpl) GetBook(ctx context.Context, p entity.Principal, id string) (entity.Book, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.String("book_id", id))

	if err := p.Authorize(entity.OpReadCatalog); err != nil {
		return entity.Book{}, err
	}

	book, err := l.booksRepository.GetBook(ctx, id)
	if log.ErrorBook(l.logger, err, "Failed get book", traceID, id, log.GetBook) {
		span.RecordError(err)
		return entity.Book{}, err
	}

	return book, nil
}

// UpdateBook applies patch to the stored book. A full replace is a patch with every field set.
func (l *libraryImpl) UpdateBook(ctx context.Context, p entity.Principal, id string, patch entity.BookPatch) (entity.Book, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.String("book_id", id))
	log.InfoBook(l.logger, "Start of update book", traceID, id, log.UpdateBook)

	if err := p.Authorize(entity.OpUpdateBook); err != nil {
		log.ErrorBook(l.logger, err, "Update book denied", traceID, id, log.UpdateBook)
		return entity.Book{}, err
	}

	var updated entity.Book
	err := l.transactor.WithTx(ctx, func(ctx context.Context) error {
		current, txErr := l.booksRepository.GetBook(ctx, id)
		if txErr != nil {
			return txErr
		}

		next := patch.Apply(current)
		if txErr = validateBook(next); txErr != nil {
			return txErr
		}
		if txErr = next.CheckCopies(); txErr != nil {
			return fmt.Errorf("book %s: available %d, total %d: %w",
				id, next.AvailableCopies, next.TotalCopies, txErr)
		}

		updated, txErr = l.booksRepository.UpdateBook(ctx, next)
		if txErr != nil {
			return txErr
		}

		return l.sendEvent(ctx, repository.OutboxKindBook, updated.ID+"_"+uuid.NewString(), updated)
	})

	if log.ErrorBook(l.logger, err, "Failed update book", traceID, id, log.UpdateBook) {
		span.RecordError(err)
		return entity.Book{}, err
	}

	log.InfoBook(l.logger, "Updated the book", traceID, id, log.UpdateBook)
	return updated, nil
}

func (l *libraryImpl) DeleteBook(ctx context.Context, p entity.Principal, id string) error {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	span.SetAttributes(attribute.String("book_id", id))

	if err := p.Authorize(entity.OpDeleteBook); err != nil {
		log.ErrorBook(l.logger, err, "Delete book denied", traceID, id, log.DeleteBook)
		return err
	}

	err := l.transactor.WithTx(ctx, func(ctx context.Context) error {
		book, txErr := l.booksRepository.GetBook(ctx, id)
		if txErr != nil {
			return txErr
		}

		if txErr = l.booksRepository.DeleteBook(ctx, id); txErr != nil {
			return txErr
		}

		return l.sendEvent(ctx, repository.OutboxKindBook, id+"_deleted", book)
	})

	if log.ErrorBook(l.logger, err, "Failed delete book", traceID, id, log.DeleteBook) {
		span.RecordError(err)
		return err
	}

	log.InfoBook(l.logger, "Deleted the book", traceID, id, log.DeleteBook)
	return nil
}

func (l *libraryImpl) ListBooks(ctx context.Context, p entity.Principal, filter entity.BookFilter) (entity.Page[entity.Book], error) {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpReadCatalog); err != nil {
		return entity.Page[entity.Book]{}, err
	}
	if !filter.Ordering.Valid() {
		return entity.Page[entity.Book]{}, fmt.Errorf("%w: unknown ordering %q", entity.ErrValidation, filter.Ordering)
	}

	filter.PageRequest = filter.PageRequest.Normalize()
	books, total, err := l.booksRepository.ListBooks(ctx, filter)
	if log.ErrorCatalog(l.logger, err, "Failed list books", traceID, log.ListBooks) {
		return entity.Page[entity.Book]{}, err
	}

	return newPage(books, total, filter.PageRequest), nil
}
