package library

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/usecase/repository"
)

// memStore is an in-memory implementation of every repository the use cases need.
// Transactions hold the row locks they take until they end and undo their writes
// on error. Counter updates are applied atomically under the store mutex.
type memStore struct {
	mu       sync.Mutex
	authors  map[string]entity.Author
	genres   map[string]entity.Genre
	books    map[string]entity.Book
	requests map[string]entity.BorrowRequest
	reviews  map[string]entity.Review
	users    map[string]entity.User
	tokens   map[string]entity.Token
	outbox   map[string]repository.OutboxEvent
	rowLocks map[string]*sync.Mutex

	outboxErr error
}

type memTx struct {
	locks []*sync.Mutex
	undo  []func()
}

type memTxKey struct{}

func newMemStore() *memStore {
	return &memStore{
		authors:  make(map[string]entity.Author),
		genres:   make(map[string]entity.Genre),
		books:    make(map[string]entity.Book),
		requests: make(map[string]entity.BorrowRequest),
		reviews:  make(map[string]entity.Review),
		users:    make(map[string]entity.User),
		tokens:   make(map[string]entity.Token),
		outbox:   make(map[string]repository.OutboxEvent),
		rowLocks: make(map[string]*sync.Mutex),
	}
}

func (s *memStore) repositories() Repositories {
	return Repositories{
		Authors: s,
		Genres:  s,
		Books:   s,
		Borrow:  s,
		Reviews: s,
		Outbox:  s,
	}
}

func (s *memStore) WithTx(ctx context.Context, function func(ctx context.Context) error) error {
	if _, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		return function(ctx)
	}

	tx := &memTx{}
	err := function(context.WithValue(ctx, memTxKey{}, tx))

	s.mu.Lock()
	if err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
	}
	s.mu.Unlock()

	for _, l := range tx.locks {
		l.Unlock()
	}
	return err
}

// onRollback must be called with s.mu held.
func (s *memStore) onRollback(ctx context.Context, undo func()) {
	if tx, ok := ctx.Value(memTxKey{}).(*memTx); ok {
		tx.undo = append(tx.undo, undo)
	}
}

func (s *memStore) lockRow(ctx context.Context, id string) {
	tx, ok := ctx.Value(memTxKey{}).(*memTx)
	if !ok {
		return
	}

	s.mu.Lock()
	l, ok := s.rowLocks[id]
	if !ok {
		l = new(sync.Mutex)
		s.rowLocks[id] = l
	}
	s.mu.Unlock()

	l.Lock()
	tx.locks = append(tx.locks, l)
}

func (s *memStore) CreateAuthor(ctx context.Context, author entity.Author) (entity.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	author.ID = uuid.NewString()
	author.CreatedAt = time.Now()
	author.UpdatedAt = author.CreatedAt
	s.authors[author.ID] = author
	s.onRollback(ctx, func() { delete(s.authors, author.ID) })
	return author, nil
}

func (s *memStore) ListAuthors(_ context.Context, page entity.PageRequest) ([]entity.Author, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authors := make([]entity.Author, 0, len(s.authors))
	for _, a := range s.authors {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].Name < authors[j].Name })
	return paginate(authors, page), len(authors), nil
}

func (s *memStore) CreateGenre(ctx context.Context, genre entity.Genre) (entity.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.genres {
		if g.Name == genre.Name {
			return entity.Genre{}, entity.ErrConflict
		}
	}
	genre.ID = uuid.NewString()
	genre.CreatedAt = time.Now()
	s.genres[genre.ID] = genre
	s.onRollback(ctx, func() { delete(s.genres, genre.ID) })
	return genre, nil
}

func (s *memStore) ListGenres(_ context.Context, page entity.PageRequest) ([]entity.Genre, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	genres := make([]entity.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return paginate(genres, page), len(genres), nil
}

func (s *memStore) AddBook(ctx context.Context, book entity.Book) (entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authors[book.AuthorID]; !ok {
		return entity.Book{}, entity.ErrValidation
	}
	for _, b := range s.books {
		if b.ISBN == book.ISBN {
			return entity.Book{}, entity.ErrConflict
		}
	}
	book.ID = uuid.NewString()
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	s.books[book.ID] = book
	s.onRollback(ctx, func() { delete(s.books, book.ID) })
	return book, nil
}

func (s *memStore) GetBook(ctx context.Context, id string) (entity.Book, error) {
	s.lockRow(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return entity.Book{}, entity.ErrBookNotFound
	}
	return b, nil
}

func (s *memStore) UpdateBook(ctx context.Context, book entity.Book) (entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.books[book.ID]
	if !ok {
		return entity.Book{}, entity.ErrBookNotFound
	}
	if book.CheckCopies() != nil {
		return entity.Book{}, entity.ErrInvariantViolation
	}
	book.UpdatedAt = time.Now()
	s.books[book.ID] = book
	s.onRollback(ctx, func() { s.books[book.ID] = old })
	return book, nil
}

func (s *memStore) DeleteBook(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.books[id]
	if !ok {
		return entity.ErrBookNotFound
	}
	delete(s.books, id)
	s.onRollback(ctx, func() { s.books[id] = old })
	return nil
}

func (s *memStore) ListBooks(_ context.Context, filter entity.BookFilter) ([]entity.Book, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make([]entity.Book, 0, len(s.books))
	for _, b := range s.books {
		if filter.AuthorID != "" && b.AuthorID != filter.AuthorID {
			continue
		}
		search := strings.ToLower(filter.Search)
		if search != "" && !strings.Contains(strings.ToLower(b.Title), search) &&
			!strings.Contains(strings.ToLower(b.ISBN), search) {
			continue
		}
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return paginate(books, filter.PageRequest), len(books), nil
}

// AdjustAvailableCopies mirrors the single-statement update of the SQL store.
func (s *memStore) AdjustAvailableCopies(ctx context.Context, id string, diff int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return 0, entity.ErrBookNotFound
	}
	if b.AvailableCopies+diff < 0 {
		return 0, entity.ErrNoCopiesAvailable
	}

	old := b.AvailableCopies
	b.AvailableCopies = min(b.AvailableCopies+diff, b.TotalCopies)
	s.books[id] = b
	s.onRollback(ctx, func() {
		b := s.books[id]
		b.AvailableCopies = old
		s.books[id] = b
	})
	return b.AvailableCopies, nil
}

func (s *memStore) CreateBorrowRequest(ctx context.Context, request entity.BorrowRequest) (entity.BorrowRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[request.BookID]; !ok {
		return entity.BorrowRequest{}, entity.ErrValidation
	}
	if _, ok := s.users[request.UserID]; !ok {
		return entity.BorrowRequest{}, entity.ErrValidation
	}
	request.ID = uuid.NewString()
	s.requests[request.ID] = request
	s.onRollback(ctx, func() { delete(s.requests, request.ID) })
	return request, nil
}

func (s *memStore) GetBorrowRequestForUpdate(ctx context.Context, id string) (entity.BorrowRequest, error) {
	s.lockRow(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return entity.BorrowRequest{}, entity.ErrBorrowRequestNotFound
	}
	return r, nil
}

func (s *memStore) UpdateBorrowRequest(ctx context.Context, request entity.BorrowRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.requests[request.ID]
	if !ok {
		return entity.ErrBorrowRequestNotFound
	}
	s.requests[request.ID] = request
	s.onRollback(ctx, func() { s.requests[request.ID] = old })
	return nil
}

func (s *memStore) ListUserBorrowRequests(_ context.Context, userID string) ([]entity.BorrowRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var requests []entity.BorrowRequest
	for _, r := range s.requests {
		if r.UserID == userID {
			requests = append(requests, r)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].RequestedAt.After(requests[j].RequestedAt) })
	return requests, nil
}

func (s *memStore) CreateReview(ctx context.Context, review entity.Review) (entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[review.BookID]; !ok {
		return entity.Review{}, entity.ErrValidation
	}
	review.ID = uuid.NewString()
	review.CreatedAt = time.Now()
	s.reviews[review.ID] = review
	s.onRollback(ctx, func() { delete(s.reviews, review.ID) })
	return review, nil
}

func (s *memStore) GetReview(_ context.Context, id string) (entity.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return entity.Review{}, entity.ErrReviewNotFound
	}
	return r, nil
}

func (s *memStore) UpdateReview(ctx context.Context, review entity.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.reviews[review.ID]
	if !ok {
		return entity.ErrReviewNotFound
	}
	review.CreatedAt = old.CreatedAt
	s.reviews[review.ID] = review
	s.onRollback(ctx, func() { s.reviews[review.ID] = old })
	return nil
}

func (s *memStore) DeleteReview(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.reviews[id]
	if !ok {
		return entity.ErrReviewNotFound
	}
	delete(s.reviews, id)
	s.onRollback(ctx, func() { s.reviews[id] = old })
	return nil
}

func (s *memStore) ListBookReviews(_ context.Context, bookID string, page entity.PageRequest) ([]entity.Review, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reviews []entity.Review
	for _, r := range s.reviews {
		if r.BookID == bookID {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return paginate(reviews, page), len(reviews), nil
}

func (s *memStore) CreateUser(ctx context.Context, user entity.User) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return entity.User{}, entity.ErrConflict
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	s.onRollback(ctx, func() { delete(s.users, user.ID) })
	return user, nil
}

func (s *memStore) GetUser(_ context.Context, id string) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return entity.User{}, entity.ErrUserNotFound
	}
	return u, nil
}

func (s *memStore) GetUserByUsername(_ context.Context, username string) (entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return entity.User{}, entity.ErrUserNotFound
}

func (s *memStore) SaveToken(ctx context.Context, token entity.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := string(token.Hash)
	s.tokens[key] = token
	s.onRollback(ctx, func() { delete(s.tokens, key) })
	return nil
}

func (s *memStore) GetToken(_ context.Context, hash []byte) (entity.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[string(hash)]
	if !ok {
		return entity.Token{}, entity.ErrTokenNotFound
	}
	return t, nil
}

func (s *memStore) RevokeToken(ctx context.Context, hash []byte, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := string(hash)
	t, ok := s.tokens[key]
	if !ok || t.RevokedAt != nil {
		return entity.ErrTokenNotFound
	}
	old := t
	t.RevokedAt = &at
	s.tokens[key] = t
	s.onRollback(ctx, func() { s.tokens[key] = old })
	return nil
}

func (s *memStore) Enqueue(ctx context.Context, event repository.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outboxErr != nil {
		return s.outboxErr
	}
	if _, ok := s.outbox[event.Key]; ok {
		return nil
	}
	s.outbox[event.Key] = event
	s.onRollback(ctx, func() { delete(s.outbox, event.Key) })
	return nil
}

func (s *memStore) book(id string) entity.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id]
}

func (s *memStore) request(id string) entity.BorrowRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[id]
}

func (s *memStore) outboxSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.outbox)
}

func (s *memStore) putRequest(r entity.BorrowRequest) entity.BorrowRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.requests[r.ID] = r
	return r
}

func paginate[T any](items []T, page entity.PageRequest) []T {
	from := min(page.Offset(), len(items))
	to := min(from+page.PageSize, len(items))
	return items[from:to]
}
