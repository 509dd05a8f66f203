package controller

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/project/lms/internal/controller/mocks"
	"github.com/project/lms/internal/entity"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const (
	librarianToken = "librarian-token"
	memberToken    = "member-token"
)

var errInternal = errors.New("internal error")

type testServer struct {
	authors  *mocks.MockAuthorUseCase
	genres   *mocks.MockGenreUseCase
	books    *mocks.MockBooksUseCase
	borrow   *mocks.MockBorrowUseCase
	reviews  *mocks.MockReviewUseCase
	identity *mocks.MockIdentityUseCase

	librarian entity.Principal
	member    entity.Principal
	handler   http.Handler
}

// initTestServer builds the full routed handler on top of mocked use cases.
// Both test tokens authenticate successfully; anything else is rejected.
func initTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	s := &testServer{
		authors:   mocks.NewMockAuthorUseCase(ctrl),
		genres:    mocks.NewMockGenreUseCase(ctrl),
		books:     mocks.NewMockBooksUseCase(ctrl),
		borrow:    mocks.NewMockBorrowUseCase(ctrl),
		reviews:   mocks.NewMockReviewUseCase(ctrl),
		identity:  mocks.NewMockIdentityUseCase(ctrl),
		librarian: entity.Principal{UserID: uuid.NewString(), Role: entity.RoleLibrarian},
		member:    entity.Principal{UserID: uuid.NewString(), Role: entity.RoleMember},
	}

	s.identity.EXPECT().Authenticate(gomock.Any(), librarianToken).Return(s.librarian, nil).AnyTimes()
	s.identity.EXPECT().Authenticate(gomock.Any(), memberToken).Return(s.member, nil).AnyTimes()
	s.identity.EXPECT().Authenticate(gomock.Any(), gomock.Any()).
		Return(entity.Principal{}, entity.ErrUnauthenticated).AnyTimes()

	service := New(zap.NewNop(), UseCases{
		Authors:  s.authors,
		Genres:   s.genres,
		Books:    s.books,
		Borrow:   s.borrow,
		Reviews:  s.reviews,
		Identity: s.identity,
	})
	mux := NewServeMux()
	require.NoError(t, service.RegisterRoutes(mux))
	s.handler = TrimTrailingSlash(mux)
	return s
}

// do sends a request with an optional bearer token. body may be a string
// holding raw JSON or any value to be encoded.
func (s *testServer) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[errorResponse](t, rec).Detail
}

func ptr[T any](v T) *T {
	return &v
}
