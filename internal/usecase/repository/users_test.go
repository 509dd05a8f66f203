package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/project/lms/internal/entity"
	"github.com/stretchr/testify/require"
)

func Test_postgresRepository_CreateUser(t *testing.T) {
	t.Parallel()

	user := entity.User{Username: "ged", Email: "ged@roke.edu", Role: entity.RoleMember, PasswordHash: []byte("hash")}
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		queryErr   error
		errRequire error
	}{
		{name: "created"},
		{
			name:       "username taken",
			queryErr:   &pgconn.PgError{Code: ErrUniqueViolation, ConstraintName: "app_user_username_key"},
			errRequire: entity.ErrConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)

			query := mock.ExpectQuery(`INSERT INTO app_user`).
				WithArgs(user.Username, user.Email, string(user.Role), user.PasswordHash)
			if tt.queryErr != nil {
				query.WillReturnError(tt.queryErr)
			} else {
				query.WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(testUserID, created))
			}

			got, err := newMockRepository(mock).CreateUser(context.Background(), user)
			require.ErrorIs(t, err, tt.errRequire)
			if tt.errRequire == nil {
				require.Equal(t, testUserID, got.ID)
				require.Equal(t, created, got.CreatedAt)
				require.Equal(t, entity.RoleMember, got.Role)
			}
		})
	}
}

func Test_postgresRepository_GetUserByUsername(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	columns := []string{"id", "username", "email", "role", "password_hash", "created_at"}
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE username = \$1`).WithArgs("tenar").
		WillReturnRows(pgxmock.NewRows(columns).AddRow(testUserID, "tenar", "tenar@atuan.org", "LIBRARIAN", []byte("hash"), created))
	mock.ExpectQuery(`WHERE username = \$1`).WithArgs("nobody").WillReturnError(pgx.ErrNoRows)

	repo := newMockRepository(mock)

	got, err := repo.GetUserByUsername(context.Background(), "tenar")
	require.NoError(t, err)
	require.Equal(t, entity.RoleLibrarian, got.Role)
	require.Equal(t, []byte("hash"), got.PasswordHash)

	_, err = repo.GetUserByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, entity.ErrUserNotFound)
}

func Test_postgresRepository_Tokens(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	hash := []byte{0x01, 0x02}
	expires := time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)
	revoked := expires.Add(-time.Minute)

	mock.ExpectQuery(`FROM auth_token`).WithArgs(hash).
		WillReturnRows(pgxmock.NewRows([]string{"token_hash", "user_id", "kind", "expires_at", "revoked_at"}).
			AddRow(hash, testUserID, "REFRESH", expires, (*time.Time)(nil)))
	mock.ExpectExec(`UPDATE auth_token SET revoked_at`).WithArgs(hash, revoked).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE auth_token SET revoked_at`).WithArgs(hash, revoked).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := newMockRepository(mock)
	ctx := context.Background()

	token, err := repo.GetToken(ctx, hash)
	require.NoError(t, err)
	require.Equal(t, entity.TokenRefresh, token.Kind)
	require.Nil(t, token.RevokedAt)

	require.NoError(t, repo.RevokeToken(ctx, hash, revoked))
	require.ErrorIs(t, repo.RevokeToken(ctx, hash, revoked), entity.ErrTokenNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
