package controller

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/project/lms/internal/entity"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateAuthor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		body       string
		useCaseErr error
		callsUse   bool
		wantCode   int
	}{
		{name: "Valid author", token: librarianToken, body: `{"name": "Rob Pike", "bio": "Plan 9"}`,
			callsUse: true, wantCode: http.StatusCreated},
		{name: "Member is denied", token: memberToken, body: `{"name": "Rob Pike"}`,
			wantCode: http.StatusForbidden},
		{name: "Empty name", token: librarianToken, body: `{"name": ""}`,
			wantCode: http.StatusBadRequest},
		{name: "Internal error", token: librarianToken, body: `{"name": "Rob Pike", "bio": "Plan 9"}`,
			callsUse: true, useCaseErr: errInternal, wantCode: http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			s := initTestServer(t)
			if test.callsUse {
				s.authors.EXPECT().CreateAuthor(gomock.Any(), s.librarian, "Rob Pike", ptr("Plan 9")).
					Return(entity.Author{ID: uuid.NewString(), Name: "Rob Pike", Bio: ptr("Plan 9")}, test.useCaseErr)
			}

			rec := s.do(t, http.MethodPost, "/api/authors/", test.token, test.body)
			require.Equal(t, test.wantCode, rec.Code, rec.Body.String())
			if rec.Code == http.StatusCreated {
				require.Equal(t, "Plan 9", *decodeBody[entity.Author](t, rec).Bio)
			}
		})
	}
}

func TestListAuthors(t *testing.T) {
	t.Parallel()

	s := initTestServer(t)
	s.authors.EXPECT().ListAuthors(gomock.Any(), s.member, entity.PageRequest{Page: 1, PageSize: 2}).
		Return(entity.Page[entity.Author]{
			Items:    []entity.Author{{ID: "a1"}, {ID: "a2"}},
			Total:    5,
			Page:     1,
			PageSize: 2,
		}, nil)

	rec := s.do(t, http.MethodGet, "/api/authors?page_size=2", memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeBody[pageResponse[entity.Author]](t, rec)
	require.Equal(t, 5, page.Count)
	require.Nil(t, page.Previous)
	require.NotNil(t, page.Next)
	require.Equal(t, "http://example.com/api/authors?page=2&page_size=2", *page.Next)
}

func TestGenres(t *testing.T) {
	t.Parallel()

	s := initTestServer(t)
	s.genres.EXPECT().CreateGenre(gomock.Any(), s.librarian, "Fantasy").
		Return(entity.Genre{ID: uuid.NewString(), Name: "Fantasy"}, nil)
	s.genres.EXPECT().CreateGenre(gomock.Any(), s.librarian, "Fantasy").
		Return(entity.Genre{}, entity.ErrConflict)
	s.genres.EXPECT().ListGenres(gomock.Any(), s.member, gomock.Any()).
		Return(entity.Page[entity.Genre]{Items: []entity.Genre{{Name: "Fantasy"}}, Total: 1, Page: 1, PageSize: 10}, nil)

	rec := s.do(t, http.MethodPost, "/api/genres", librarianToken, `{"name": "Fantasy"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/genres", librarianToken, `{"name": "Fantasy"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/genres", memberToken, `{"name": "Horror"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/genres", memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[pageResponse[entity.Genre]](t, rec).Results, 1)
}
