package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/project/lms/internal/entity"
)

type (
	AuthorRepository interface {
		CreateAuthor(ctx context.Context, author entity.Author) (entity.Author, error)
		GetAuthor(ctx context.Context, id string) (entity.Author, error)
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
		Enqueue(ctx context.Context, event OutboxEvent) error
		Claim(ctx context.Context, limit int, staleAfter time.Duration) ([]OutboxEvent, error)
		Acknowledge(ctx context.Context, keys []string) error
		Release(ctx context.Context, keys []string) error
	}

	// OutboxEvent is a domain change waiting to be delivered to a webhook.
	// Key deduplicates repeated writes of the same change.
	OutboxEvent struct {
		Key     string
		Kind    OutboxKind
		Payload []byte
	}

	Transactor interface {
		WithTx(ctx context.Context, function func(ctx context.Context) error) error
	}

	// DataBase is the query surface shared by pgxpool.Pool, pgx.Tx and pgxmock.
	DataBase interface {
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	}
)

type OutboxKind int

const (
	OutboxKindUndefined OutboxKind = iota
	OutboxKindAuthor
	OutboxKindBook
	OutboxKindBorrow
)

func (o OutboxKind) String() string {
	switch o {
	case OutboxKindAuthor:
		return "author"
	case OutboxKindBook:
		return "book"
	case OutboxKindBorrow:
		return "borrow"
	default:
		return "undefined"
	}
}
