package controller

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

import (
	"context"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/project/lms/internal/entity"
	"go.uber.org/zap"
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

	IdentityUseCase interface {
		Register(ctx context.Context, username, email, password string) (entity.User, error)
		IssueToken(ctx context.Context, username, password string) (entity.TokenPair, error)
		RefreshToken(ctx context.Context, refresh string) (entity.TokenPair, error)
		Authenticate(ctx context.Context, access string) (entity.Principal, error)
	}
)

// UseCases is everything the HTTP layer serves.
type UseCases struct {
	Authors  AuthorUseCase
	Genres   GenreUseCase
	Books    BooksUseCase
	Borrow   BorrowUseCase
	Reviews  ReviewUseCase
	Identity IdentityUseCase
}

type implementation struct {
	logger          *zap.Logger
	authorUseCase   AuthorUseCase
	genreUseCase    GenreUseCase
	booksUseCase    BooksUseCase
	borrowUseCase   BorrowUseCase
	reviewUseCase   ReviewUseCase
	identityUseCase IdentityUseCase
}

func New(logger *zap.Logger, useCases UseCases) *implementation {
	return &implementation{
		logger:          logger,
		authorUseCase:   useCases.Authors,
		genreUseCase:    useCases.Genres,
		booksUseCase:    useCases.Books,
		borrowUseCase:   useCases.Borrow,
		reviewUseCase:   useCases.Reviews,
		identityUseCase: useCases.Identity,
	}
}

type route struct {
	method  string
	pattern string
	handler runtime.HandlerFunc
}

func (i *implementation) routes() []route {
	return []route{
		{http.MethodPost, "/api/register", i.RegisterUser},
		{http.MethodPost, "/api/token", i.IssueToken},
		{http.MethodPost, "/api/token/refresh", i.RefreshToken},

		{http.MethodGet, "/api/authors", i.authenticated(i.ListAuthors)},
		{http.MethodPost, "/api/authors", i.authenticated(i.CreateAuthor)},
		{http.MethodGet, "/api/genres", i.authenticated(i.ListGenres)},
		{http.MethodPost, "/api/genres", i.authenticated(i.CreateGenre)},

		{http.MethodGet, "/api/books", i.authenticated(i.ListBooks)},
		{http.MethodPost, "/api/books", i.authenticated(i.AddBook)},
		{http.MethodGet, "/api/books/{id}", i.authenticated(i.GetBook)},
		{http.MethodPut, "/api/books/{id}", i.authenticated(i.ReplaceBook)},
		{http.MethodPatch, "/api/books/{id}", i.authenticated(i.PatchBook)},
		{http.MethodDelete, "/api/books/{id}", i.authenticated(i.DeleteBook)},

		{http.MethodGet, "/api/books/{book_id}/reviews", i.authenticated(i.ListReviews)},
		{http.MethodPost, "/api/books/{book_id}/reviews", i.authenticated(i.CreateReview)},
		{http.MethodGet, "/api/reviews/{id}", i.authenticated(i.GetReview)},
		{http.MethodPut, "/api/reviews/{id}", i.authenticated(i.ReplaceReview)},
		{http.MethodPatch, "/api/reviews/{id}", i.authenticated(i.PatchReview)},
		{http.MethodDelete, "/api/reviews/{id}", i.authenticated(i.DeleteReview)},

		{http.MethodPost, "/api/borrow", i.authenticated(i.CreateBorrowRequest)},
		{http.MethodGet, "/api/borrow/me", i.authenticated(i.ListBorrowRequests)},
		{http.MethodPost, "/api/borrow/{id}/{action}", i.authenticated(i.TransitionBorrowRequest)},
	}
}

// RegisterRoutes adds every API route to mux.
func (i *implementation) RegisterRoutes(mux *runtime.ServeMux) error {
	for _, r := range i.routes() {
		if err := mux.HandlePath(r.method, r.pattern, r.handler); err != nil {
			return err
		}
	}
	return nil
}
