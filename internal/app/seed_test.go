package app

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	cmocks "github.com/project/lms/internal/controller/mocks"
	"github.com/project/lms/internal/entity"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mockLibrary struct {
	*cmocks.MockAuthorUseCase
	*cmocks.MockGenreUseCase
	*cmocks.MockBooksUseCase
	*cmocks.MockBorrowUseCase
	*cmocks.MockReviewUseCase
}

type fakeIdentity struct {
	mu    sync.Mutex
	roles map[string]entity.Role
}

func (f *fakeIdentity) CreateUser(_ context.Context, username, _, password string, role entity.Role) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.roles[username]; ok {
		return entity.User{}, entity.ErrConflict
	}
	if password != seedPassword {
		return entity.User{}, entity.ErrValidation
	}
	f.roles[username] = role
	return entity.User{ID: "u-" + username, Username: username, Role: role}, nil
}

func (f *fakeIdentity) IssueToken(_ context.Context, username, _ string) (entity.TokenPair, error) {
	return entity.TokenPair{Access: username, Refresh: username}, nil
}

func (f *fakeIdentity) Authenticate(_ context.Context, access string) (entity.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[access]
	if !ok {
		return entity.Principal{}, entity.ErrUnauthenticated
	}
	return entity.Principal{UserID: "u-" + access, Role: role}, nil
}

type roleMatcher entity.Role

func (m roleMatcher) Matches(x any) bool {
	p, ok := x.(entity.Principal)
	return ok && p.Role == entity.Role(m)
}

func (m roleMatcher) String() string {
	return "principal with role " + string(m)
}

func TestSeeder_Run(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	lib := mockLibrary{
		MockAuthorUseCase: cmocks.NewMockAuthorUseCase(ctrl),
		MockGenreUseCase:  cmocks.NewMockGenreUseCase(ctrl),
		MockBooksUseCase:  cmocks.NewMockBooksUseCase(ctrl),
		MockBorrowUseCase: cmocks.NewMockBorrowUseCase(ctrl),
		MockReviewUseCase: cmocks.NewMockReviewUseCase(ctrl),
	}
	identity := &fakeIdentity{roles: map[string]entity.Role{}}

	librarianOnly := roleMatcher(entity.RoleLibrarian)
	memberOnly := roleMatcher(entity.RoleMember)

	lib.MockAuthorUseCase.EXPECT().ListAuthors(gomock.Any(), librarianOnly, gomock.Any()).
		Return(entity.Page[entity.Author]{Items: []entity.Author{{ID: "existing", Name: "R.K. Narayan"}}}, nil)
	lib.MockAuthorUseCase.EXPECT().CreateAuthor(gomock.Any(), librarianOnly, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entity.Principal, name string, bio *string) (entity.Author, error) {
			require.NotNil(t, bio)
			return entity.Author{ID: uuid.NewString(), Name: name, Bio: bio}, nil
		}).Times(len(seedAuthors) - 1)

	lib.MockGenreUseCase.EXPECT().ListGenres(gomock.Any(), librarianOnly, gomock.Any()).
		Return(entity.Page[entity.Genre]{}, nil)
	lib.MockGenreUseCase.EXPECT().CreateGenre(gomock.Any(), librarianOnly, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entity.Principal, name string) (entity.Genre, error) {
			return entity.Genre{ID: uuid.NewString(), Name: name}, nil
		}).Times(len(seedGenres))

	lib.MockBooksUseCase.EXPECT().ListBooks(gomock.Any(), librarianOnly, gomock.Any()).
		Return(entity.Page[entity.Book]{}, nil).Times(len(seedBooks))
	lib.MockBooksUseCase.EXPECT().AddBook(gomock.Any(), librarianOnly, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entity.Principal, book entity.Book) (entity.Book, error) {
			require.NotEmpty(t, book.GenreIDs)
			require.LessOrEqual(t, len(book.GenreIDs), 3)
			require.NotEmpty(t, book.AuthorID)
			require.NoError(t, book.CheckCopies())
			book.ID = uuid.NewString()
			return book, nil
		}).Times(len(seedBooks))

	var mu sync.Mutex
	requests := map[string]entity.BorrowRequest{}
	lib.MockBorrowUseCase.EXPECT().CreateBorrowRequest(gomock.Any(), memberOnly, gomock.Any()).
		DoAndReturn(func(_ context.Context, p entity.Principal, bookID string) (entity.BorrowRequest, error) {
			mu.Lock()
			defer mu.Unlock()
			r := entity.BorrowRequest{ID: uuid.NewString(), BookID: bookID, UserID: p.UserID, Status: entity.BorrowPending}
			requests[r.ID] = r
			return r, nil
		}).MinTimes(seedMembers).MaxTimes(3 * seedMembers)
	lib.MockBorrowUseCase.EXPECT().TransitionBorrowRequest(gomock.Any(), librarianOnly, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entity.Principal, id string, action entity.BorrowAction) (entity.BorrowRequest, error) {
			mu.Lock()
			defer mu.Unlock()
			next, _, err := requests[id].Transit(action, requests[id].RequestedAt)
			if err != nil {
				return entity.BorrowRequest{}, err
			}
			requests[id] = next
			return next, nil
		}).AnyTimes()

	reviews := 0
	lib.MockReviewUseCase.EXPECT().CreateReview(gomock.Any(), memberOnly, gomock.Any()).
		DoAndReturn(func(_ context.Context, p entity.Principal, r entity.Review) (entity.Review, error) {
			require.GreaterOrEqual(t, r.Rating, entity.MinRating)
			require.LessOrEqual(t, r.Rating, entity.MaxRating)
			require.NotEmpty(t, r.Comment)
			reviews++
			r.UserID = p.UserID
			return r, nil
		}).MinTimes(seedMembers).MaxTimes(2 * seedMembers)

	var out bytes.Buffer
	require.NoError(t, NewSeeder(lib, identity, 42, &out).Run(context.Background()))

	require.Len(t, identity.roles, len(seedFirstNames))
	require.Contains(t, out.String(), "Successfully populated dummy data!")
	require.NotContains(t, out.String(), "Created author: R.K. Narayan")
	require.GreaterOrEqual(t, reviews, seedMembers)
}

func TestSeeder_ExistingUsers(t *testing.T) {
	t.Parallel()

	identity := &fakeIdentity{roles: map[string]entity.Role{}}
	seeder := NewSeeder(nil, identity, 1, &bytes.Buffer{})

	members, librarian, err := seeder.seedUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, seedMembers)
	require.Equal(t, entity.RoleLibrarian, librarian.Role)

	again, librarianAgain, err := seeder.seedUsers(context.Background())
	require.NoError(t, err)
	require.Equal(t, members, again)
	require.Equal(t, librarian, librarianAgain)
}

func TestActionsTo(t *testing.T) {
	t.Parallel()

	for _, status := range seedStatuses {
		current := entity.BorrowRequest{Status: entity.BorrowPending}
		for _, action := range actionsTo(status) {
			next, _, err := current.Transit(action, current.RequestedAt)
			require.NoError(t, err)
			current = next
		}
		require.Equal(t, status, current.Status)
	}
}
