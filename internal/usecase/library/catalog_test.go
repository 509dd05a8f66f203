package library

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/usecase/repository"
	"github.com/stretchr/testify/require"
)

func TestCreateAuthor(t *testing.T) {
	t.Parallel()

	librarian := entity.Principal{UserID: uuid.NewString(), Role: entity.RoleLibrarian}
	bio := "American author of speculative fiction."

	tests := []struct {
		name       string
		principal  entity.Principal
		authorName string
		repoErr    error
		outboxErr  error
		requireErr error
	}{
		{name: "valid create author", principal: librarian, authorName: "Ursula K. Le Guin"},
		{name: "member", principal: entity.Principal{UserID: "m", Role: entity.RoleMember},
			authorName: "Ursula K. Le Guin", requireErr: entity.ErrPermissionDenied},
		{name: "empty name", principal: librarian, requireErr: entity.ErrValidation},
		{name: "too long name", principal: librarian,
			authorName: strings.Repeat("Too long name", 40), requireErr: entity.ErrValidation},
		{name: "repository error", principal: librarian, authorName: "Ursula K. Le Guin",
			repoErr: errInternal, requireErr: errInternal},
		{name: "outbox error", principal: librarian, authorName: "Ursula K. Le Guin",
			outboxErr: errInternal, requireErr: errInternal},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			m := initMockedLibrary(t)
			m.passTx()
			ctx := context.Background()
			id := uuid.NewString()

			if test.requireErr == nil || test.repoErr != nil || test.outboxErr != nil {
				m.authors.EXPECT().CreateAuthor(ctx, entity.Author{Name: test.authorName, Bio: &bio}).
					DoAndReturn(func(_ context.Context, a entity.Author) (entity.Author, error) {
						a.ID = id
						return a, test.repoErr
					})
			}
			if test.repoErr == nil && (test.requireErr == nil || test.outboxErr != nil) {
				m.outbox.EXPECT().Enqueue(ctx, outboxEvent(repository.OutboxKindAuthor, "author_"+id)).Return(test.outboxErr)
			}

			author, err := m.library.CreateAuthor(ctx, test.principal, test.authorName, &bio)
			if test.requireErr != nil {
				require.ErrorIs(t, err, test.requireErr)
				require.Empty(t, author)
				return
			}

			require.NoError(t, err)
			require.Equal(t, id, author.ID)
			require.Equal(t, bio, *author.Bio)
		})
	}
}

func TestListAuthors(t *testing.T) {
	t.Parallel()

	m := initMockedLibrary(t)
	ctx := context.Background()
	member := entity.Principal{UserID: uuid.NewString(), Role: entity.RoleMember}
	authors := []entity.Author{{ID: uuid.NewString(), Name: "Octavia E. Butler"}}

	m.authors.EXPECT().ListAuthors(ctx, entity.PageRequest{Page: 3, PageSize: entity.DefaultPageSize}).Return(authors, 21, nil)

	page, err := m.library.ListAuthors(ctx, member, entity.PageRequest{Page: 3})
	require.NoError(t, err)
	require.Equal(t, authors, page.Items)
	require.False(t, page.HasNext())
	require.True(t, page.HasPrevious())
}

func TestCreateGenre(t *testing.T) {
	t.Parallel()

	librarian := entity.Principal{UserID: uuid.NewString(), Role: entity.RoleLibrarian}

	tests := []struct {
		name       string
		principal  entity.Principal
		genreName  string
		repoErr    error
		requireErr error
	}{
		{name: "valid create genre", principal: librarian, genreName: "Science Fiction"},
		{name: "duplicate name", principal: librarian, genreName: "Science Fiction",
			repoErr: entity.ErrConflict, requireErr: entity.ErrConflict},
		{name: "member", principal: entity.Principal{UserID: "m", Role: entity.RoleMember},
			genreName: "Fantasy", requireErr: entity.ErrPermissionDenied},
		{name: "blank", principal: librarian, requireErr: entity.ErrValidation},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			m := initMockedLibrary(t)
			ctx := context.Background()

			if test.requireErr == nil || test.repoErr != nil {
				m.genres.EXPECT().CreateGenre(ctx, entity.Genre{Name: test.genreName}).
					Return(entity.Genre{ID: uuid.NewString(), Name: test.genreName}, test.repoErr)
			}

			genre, err := m.library.CreateGenre(ctx, test.principal, test.genreName)
			if test.requireErr != nil {
				require.ErrorIs(t, err, test.requireErr)
				require.Empty(t, genre)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.genreName, genre.Name)
		})
	}
}

func TestListGenres(t *testing.T) {
	t.Parallel()

	m := initMockedLibrary(t)
	ctx := context.Background()
	member := entity.Principal{UserID: uuid.NewString(), Role: entity.RoleMember}

	m.genres.EXPECT().ListGenres(ctx, entity.PageRequest{Page: 1, PageSize: 5}).Return(nil, 0, errInternal)

	_, err := m.library.ListGenres(ctx, member, entity.PageRequest{PageSize: 5})
	require.ErrorIs(t, err, errInternal)
}
