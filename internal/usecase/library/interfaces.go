package library

import (
	"context"

	"github.com/project/lms/internal/entity"
)

type (
	AuthorUseCase interface {
		CreateAuthor(ctx context.Context, p entity.Principal, name string, bio *string) (entity.Author, error)
		ListAuthors(ctx context.Context, p entity.Principal, page entity.PageRequest) (entity.Page[entity.Author], error)
	}

	GenreUseCase interface {
		CreateGenre(ctx context.Context, p entity.Principal, name string) (entity.Genre, error)
		ListGenres(ctx context.Context, p entity.Principal, page entity.PageRequest) (entity.Page[entity.Genre], error)
	}

	BooksUseCase interface {
		AddBook(ctx context.Context, p entity.Principal, book entity.Book) (entity.Book, error)
		GetBook(ctx context.Context, p entity.Principal, id string) (entity.Book, error)
		UpdateBook(ctx context.Context, p entity.Principal, id string, patch entity.BookPatch) (entity.Book, error)
		DeleteBook(ctx context.Context, p entity.Principal, id string) error
		ListBooks(ctx context.Context, p entity.Principal, filter entity.BookFilter) (entity.Page[entity.Book], error)
	}

	BorrowUseCase interface {
		CreateBorrowRequest(ctx context.Context, p entity.Principal, bookID string) (entity.BorrowRequest, error)
		TransitionBorrowRequest(ctx context.Context, p entity.Principal, id string, action entity.BorrowAction) (entity.BorrowRequest, error)
		ListBorrowRequests(ctx context.Context, p entity.Principal) ([]entity.BorrowRequest, error)
	}

	ReviewUseCase interface {
		CreateReview(ctx context.Context, p entity.Principal, review entity.Review) (entity.Review, error)
		GetReview(ctx context.Context, p entity.Principal, id string) (entity.Review, error)
		UpdateReview(ctx context.Context, p entity.Principal, id string, patch entity.ReviewPatch) (entity.Review, error)
		DeleteReview(ctx context.Context, p entity.Principal, id string) error
		ListReviews(ctx context.Context, p entity.Principal, bookID string, page entity.PageRequest) (entity.Page[entity.Review], error)
	}

	// Library is every catalog, borrow and review use case.
	Library interface {
		AuthorUseCase
		GenreUseCase
		BooksUseCase
		BorrowUseCase
		ReviewUseCase
	}

	IdentityUseCase interface {
		Register(ctx context.Context, username, email, password string) (entity.User, error)
		CreateUser(ctx context.Context, username, email, password string, role entity.Role) (entity.User, error)
		IssueToken(ctx context.Context, username, password string) (entity.TokenPair, error)
		RefreshToken(ctx context.Context, refresh string) (entity.TokenPair, error)
		Authenticate(ctx context.Context, access string) (entity.Principal, error)
	}
)
