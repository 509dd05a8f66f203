package library

import (
	"context"

	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/log"
	"github.com/project/lms/internal/usecase/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func (l *libraryImpl) CreateAuthor(ctx context.Context, p entity.Principal, name string, bio *string) (entity.Author, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()
	log.InfoCatalog(l.logger, "Start of create author", traceID, log.CreateAuthor, zap.String("author_name", name))

	if err := p.Authorize(entity.OpCreateAuthor); err != nil {
		log.ErrorCatalog(l.logger, err, "Create author denied", traceID, log.CreateAuthor, zap.String("user_id", p.UserID))
		return entity.Author{}, err
	}
	if err := validateName(name); err != nil {
		return entity.Author{}, err
	}

	var author entity.Author
	err := l.transactor.WithTx(ctx, func(ctx context.Context) error {
		var txErr error
		author, txErr = l.authorRepository.CreateAuthor(ctx, entity.Author{
			Name: name,
			Bio:  bio,
		})

		if txErr != nil {
			return txErr
		}

		return l.sendEvent(ctx, repository.OutboxKindAuthor, author.ID, author)
	})

	if log.ErrorCatalog(l.logger, err, "Failed create author", traceID, log.CreateAuthor, zap.String("author_name", name)) {
		span.RecordError(err)
		return entity.Author{}, err
	}

	span.SetAttributes(attribute.String("author_id", author.ID))
	log.InfoCatalog(l.logger, "Created the author", traceID, log.CreateAuthor, zap.String("author_id", author.ID))
	return author, nil
}

func (l *libraryImpl) ListAuthors(ctx context.Context, p entity.Principal, page entity.PageRequest) (entity.Page[entity.Author], error) {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpReadCatalog); err != nil {
		return entity.Page[entity.Author]{}, err
	}

	page = page.Normalize()
	authors, total, err := l.authorRepository.ListAuthors(ctx, page)
	if log.ErrorCatalog(l.logger, err, "Failed list authors", traceID, log.ListAuthors) {
		return entity.Page[entity.Author]{}, err
	}

	return newPage(authors, total, page), nil
}

func (l *libraryImpl) CreateGenre(ctx context.Context, p entity.Principal, name string) (entity.Genre, error) {
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpCreateGenre); err != nil {
		log.ErrorCatalog(l.logger, err, "Create genre denied", traceID, log.CreateGenre, zap.String("user_id", p.UserID))
		return entity.Genre{}, err
	}
	if err := validateName(name); err != nil {
		return entity.Genre{}, err
	}

	genre, err := l.genreRepository.CreateGenre(ctx, entity.Genre{Name: name})
	if log.ErrorCatalog(l.logger, err, "Failed create genre", traceID, log.CreateGenre, zap.String("genre_name", name)) {
		span.RecordError(err)
		return entity.Genre{}, err
	}

	span.SetAttributes(attribute.String("genre_id", genre.ID))
	log.InfoCatalog(l.logger, "Created the genre", traceID, log.CreateGenre, zap.String("genre_id", genre.ID))
	return genre, nil
}

func (l *libraryImpl) ListGenres(ctx context.Context, p entity.Principal, page entity.PageRequest) (entity.Page[entity.Genre], error) {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpReadCatalog); err != nil {
		return entity.Page[entity.Genre]{}, err
	}

	page = page.Normalize()
	genres, total, err := l.genreRepository.ListGenres(ctx, page)
	if log.ErrorCatalog(l.logger, err, "Failed list genres", traceID, log.ListGenres) {
		return entity.Page[entity.Genre]{}, err
	}

	return newPage(genres, total, page), nil
}
