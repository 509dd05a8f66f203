package library

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/project/lms/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestReviewOwnership(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	book := f.addBook(t, "9780441478125", 1, 1)

	review, err := f.library.CreateReview(ctx, f.member, entity.Review{
		BookID:  book.ID,
		Rating:  4,
		Comment: "Quietly devastating.",
	})
	require.NoError(t, err)
	require.Equal(t, f.member.UserID, review.UserID)

	rating := 5
	comment := "Even better on a second read."
	patch := entity.ReviewPatch{Rating: &rating, Comment: &comment}

	_, err = f.library.UpdateReview(ctx, f.librarian, review.ID, patch)
	require.ErrorIs(t, err, entity.ErrPermissionDenied)

	stored, err := f.library.GetReview(ctx, f.librarian, review.ID)
	require.NoError(t, err)
	require.Equal(t, 4, stored.Rating)

	updated, err := f.library.UpdateReview(ctx, f.member, review.ID, patch)
	require.NoError(t, err)
	require.Equal(t, rating, updated.Rating)
	require.Equal(t, comment, updated.Comment)

	stored, err = f.library.GetReview(ctx, f.member, review.ID)
	require.NoError(t, err)
	require.Equal(t, rating, stored.Rating)
	require.Equal(t, comment, stored.Comment)
	require.Equal(t, review.CreatedAt, stored.CreatedAt)

	require.ErrorIs(t, f.library.DeleteReview(ctx, f.librarian, review.ID), entity.ErrPermissionDenied)
	require.NoError(t, f.library.DeleteReview(ctx, f.member, review.ID))

	_, err = f.library.GetReview(ctx, f.member, review.ID)
	require.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCreateReview(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	book := f.addBook(t, "9780441478125", 1, 1)

	tests := []struct {
		name       string
		principal  entity.Principal
		review     entity.Review
		requireErr error
	}{
		{name: "valid review",
			principal: f.member,
			review:    entity.Review{BookID: book.ID, Rating: 5, Comment: "A classic."}},
		{name: "duplicate review of the same book",
			principal: f.member,
			review:    entity.Review{BookID: book.ID, Rating: 3, Comment: "Changed my mind."}},
		{name: "librarian may review",
			principal: f.librarian,
			review:    entity.Review{BookID: book.ID, Rating: 1, Comment: "Not for me."}},
		{name: "rating above range",
			principal:  f.member,
			review:     entity.Review{BookID: book.ID, Rating: 6, Comment: "Off the charts."},
			requireErr: entity.ErrValidation},
		{name: "rating below range",
			principal:  f.member,
			review:     entity.Review{BookID: book.ID, Rating: 0, Comment: "Nope."},
			requireErr: entity.ErrValidation},
		{name: "empty comment",
			principal:  f.member,
			review:     entity.Review{BookID: book.ID, Rating: 3},
			requireErr: entity.ErrValidation},
		{name: "unknown book",
			principal:  f.member,
			review:     entity.Review{BookID: uuid.NewString(), Rating: 3, Comment: "Where is it?"},
			requireErr: entity.ErrValidation},
		{name: "anonymous",
			review:     entity.Review{BookID: book.ID, Rating: 3, Comment: "Who am I?"},
			requireErr: entity.ErrUnauthenticated},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			review, err := f.library.CreateReview(ctx, test.principal, test.review)
			if test.requireErr != nil {
				require.ErrorIs(t, err, test.requireErr)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, review.ID)
		})
	}

	page, err := f.library.ListReviews(ctx, f.member, book.ID, entity.PageRequest{PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	require.True(t, page.HasNext())
}

func TestUpdateReview_invalidPatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	book := f.addBook(t, "9780441478125", 1, 1)

	review, err := f.library.CreateReview(ctx, f.member, entity.Review{BookID: book.ID, Rating: 2, Comment: "Meh."})
	require.NoError(t, err)

	empty := ""
	_, err = f.library.UpdateReview(ctx, f.member, review.ID, entity.ReviewPatch{Comment: &empty})
	require.ErrorIs(t, err, entity.ErrValidation)

	_, err = f.library.UpdateReview(ctx, f.member, uuid.NewString(), entity.ReviewPatch{})
	require.ErrorIs(t, err, entity.ErrNotFound)
}
