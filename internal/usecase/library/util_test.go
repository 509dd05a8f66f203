package library

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/usecase/library/mocks"
	"github.com/project/lms/internal/usecase/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var errInternal = errors.New("internal error")

type fixture struct {
	store     *memStore
	library   *libraryImpl
	librarian entity.Principal
	member    entity.Principal
	authorID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	ctx := context.Background()

	librarian, err := store.CreateUser(ctx, entity.User{Username: "librarian", Role: entity.RoleLibrarian})
	require.NoError(t, err)
	member, err := store.CreateUser(ctx, entity.User{Username: "member", Role: entity.RoleMember})
	require.NoError(t, err)
	author, err := store.CreateAuthor(ctx, entity.Author{Name: "Ursula K. Le Guin"})
	require.NoError(t, err)

	return &fixture{
		store:     store,
		library:   New(zap.NewNop(), store.repositories(), store),
		librarian: entity.Principal{UserID: librarian.ID, Role: librarian.Role},
		member:    entity.Principal{UserID: member.ID, Role: member.Role},
		authorID:  author.ID,
	}
}

func (f *fixture) addBook(t *testing.T, isbn string, total, available int) entity.Book {
	t.Helper()

	book, err := f.store.AddBook(context.Background(), entity.Book{
		Title:           "The Dispossessed " + isbn,
		AuthorID:        f.authorID,
		ISBN:            isbn,
		TotalCopies:     total,
		AvailableCopies: available,
	})
	require.NoError(t, err)
	return book
}

func (f *fixture) addRequest(t *testing.T, bookID string, status entity.BorrowStatus) entity.BorrowRequest {
	t.Helper()

	return f.store.putRequest(entity.BorrowRequest{
		BookID:      bookID,
		UserID:      f.member.UserID,
		Status:      status,
		RequestedAt: time.Now().Add(-time.Hour).UTC(),
	})
}

type mockedLibrary struct {
	books      *mocks.MockBooksRepository
	authors    *mocks.MockAuthorRepository
	genres     *mocks.MockGenreRepository
	borrow     *mocks.MockBorrowRepository
	reviews    *mocks.MockReviewRepository
	outbox     *mocks.MockOutboxRepository
	transactor *mocks.MockTransactor
	library    *libraryImpl
}

func initMockedLibrary(t *testing.T) *mockedLibrary {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &mockedLibrary{
		books:      mocks.NewMockBooksRepository(ctrl),
		authors:    mocks.NewMockAuthorRepository(ctrl),
		genres:     mocks.NewMockGenreRepository(ctrl),
		borrow:     mocks.NewMockBorrowRepository(ctrl),
		reviews:    mocks.NewMockReviewRepository(ctrl),
		outbox:     mocks.NewMockOutboxRepository(ctrl),
		transactor: mocks.NewMockTransactor(ctrl),
	}

	logger, err := zap.NewProduction()
	if err != nil {
		t.Fatal("assertion error: " + err.Error())
	}

	m.library = New(logger, Repositories{
		Authors: m.authors,
		Genres:  m.genres,
		Books:   m.books,
		Borrow:  m.borrow,
		Reviews: m.reviews,
		Outbox:  m.outbox,
	}, m.transactor)
	return m
}

// passTx makes the mocked transactor run the function it is given.
func (m *mockedLibrary) passTx() {
	m.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, function func(ctx context.Context) error) error {
			return function(ctx)
		}).AnyTimes()
}

// eventMatcher matches an outbox event by kind and, when set, by key.
type eventMatcher struct {
	kind repository.OutboxKind
	key  string
}

func outboxEvent(kind repository.OutboxKind, key string) gomock.Matcher {
	return eventMatcher{kind: kind, key: key}
}

func (e eventMatcher) Matches(x any) bool {
	event, ok := x.(repository.OutboxEvent)
	if !ok || event.Kind != e.kind || len(event.Payload) == 0 {
		return false
	}
	return e.key == "" || event.Key == e.key
}

func (e eventMatcher) String() string {
	return fmt.Sprintf("%s outbox event %q", e.kind, e.key)
}
