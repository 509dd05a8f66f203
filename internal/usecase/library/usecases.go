package library

//go:generate mockgen -source=usecases.go -destination=mocks/usecases_mock.go -package=mocks

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/usecase/repository"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type (
	AuthorRepository interface {
		CreateAuthor(ctx context.Context, author entity.Author) (entity.Author, error)
		ListAuthors(ctx context.Context, page entity.PageRequest) ([]entity.Author, int, error)
	}

	GenreRepository interface {
		CreateGenre(ctx context.Context, genre entity.Genre) (entity.Genre, error)
		ListGenres(ctx context.Context, page entity.PageRequest) ([]entity.Genre, int, error)
	}

	BooksRepository interface {
		AddBook(ctx context.Context, book entity.Book) (entity.Book, error)
		GetBook(ctx context.Context, id string) (entity.Book, error)
		UpdateBook(ctx context.Context, book entity.Book) (entity.Book, error)
		DeleteBook(ctx context.Context, id string) error
		ListBooks(ctx context.Context, filter entity.BookFilter) ([]entity.Book, int, error)
		AdjustAvailableCopies(ctx context.Context, id string, diff int) (int, error)
	}

	BorrowRepository interface {
		CreateBorrowRequest(ctx context.Context, request entity.BorrowRequest) (entity.BorrowRequest, error)
		GetBorrowRequestForUpdate(ctx context.Context, id string) (entity.BorrowRequest, error)
		UpdateBorrowRequest(ctx context.Context, request entity.BorrowRequest) error
		ListUserBorrowRequests(ctx context.Context, userID string) ([]entity.BorrowRequest, error)
	}

	ReviewRepository interface {
		CreateReview(ctx context.Context, review entity.Review) (entity.Review, error)
		GetReview(ctx context.Context, id string) (entity.Review, error)
		UpdateReview(ctx context.Context, review entity.Review) error
		DeleteReview(ctx context.Context, id string) error
		ListBookReviews(ctx context.Context, bookID string, page entity.PageRequest) ([]entity.Review, int, error)
	}

	UserRepository interface {
		CreateUser(ctx context.Context, user entity.User) (entity.User, error)
		GetUser(ctx context.Context, id string) (entity.User, error)
		GetUserByUsername(ctx context.Context, username string) (entity.User, error)
	}

	TokenRepository interface {
		SaveToken(ctx context.Context, token entity.Token) error
		GetToken(ctx context.Context, hash []byte) (entity.Token, error)
		RevokeToken(ctx context.Context, hash []byte, at time.Time) error
	}

	OutboxRepository interface {
		Enqueue(ctx context.Context, event repository.OutboxEvent) error
	}

	Transactor interface {
		WithTx(ctx context.Context, function func(ctx context.Context) error) error
	}
)

var (
	_ AuthorUseCase = (*libraryImpl)(nil)
	_ GenreUseCase  = (*libraryImpl)(nil)
	_ BooksUseCase  = (*libraryImpl)(nil)
	_ BorrowUseCase = (*libraryImpl)(nil)
	_ ReviewUseCase = (*libraryImpl)(nil)
)

// Repositories groups the stores the library use cases work on.
type Repositories struct {
	Authors AuthorRepository
	Genres  GenreRepository
	Books   BooksRepository
	Borrow  BorrowRepository
	Reviews ReviewRepository
	Outbox  OutboxRepository
}

type libraryImpl struct {
	logger           *zap.Logger
	authorRepository AuthorRepository
	genreRepository  GenreRepository
	booksRepository  BooksRepository
	borrowRepository BorrowRepository
	reviewRepository ReviewRepository
	outboxRepository OutboxRepository
	transactor       Transactor
	now              func() time.Time
}

func New(
	logger *zap.Logger,
	repos Repositories,
	transactor Transactor,
) *libraryImpl {
	return &libraryImpl{
		logger:           logger,
		authorRepository: repos.Authors,
		genreRepository:  repos.Genres,
		booksRepository:  repos.Books,
		borrowRepository: repos.Borrow,
		reviewRepository: repos.Reviews,
		outboxRepository: repos.Outbox,
		transactor:       transactor,
		now:              time.Now,
	}
}

// sendEvent serializes payload into the outbox within the transaction carried by ctx.
func (l *libraryImpl) sendEvent(ctx context.Context, kind repository.OutboxKind, key string, payload any) error {
	serialized, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return l.outboxRepository.Enqueue(ctx, repository.OutboxEvent{
		Key:     kind.String() + "_" + key,
		Kind:    kind,
		Payload: serialized,
	})
}

func newPage[T any](items []T, total int, page entity.PageRequest) entity.Page[T] {
	if items == nil {
		items = []T{}
	}
	return entity.Page[T]{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
}
