package repository

import (
	"context"
	"time"

	"github.com/project/lms/internal/entity"
)

func (p *postgresRepository) CreateUser(ctx context.Context, user entity.User) (entity.User, error) {
	const query = `
INSERT INTO app_user (username, email, role, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at
`
	result := user

	err := conn(ctx, p.db).QueryRow(ctx, query, user.Username, user.Email, string(user.Role), user.PasswordHash).
		Scan(&result.ID, &result.CreatedAt)

	if err != nil {
		return entity.User{}, convertPgError(err, entity.ErrUserNotFound)
	}

	return result, nil
}

func (p *postgresRepository) GetUser(ctx context.Context, id string) (entity.User, error) {
	const query = `
SELECT id, username, email, role, password_hash, created_at
FROM app_user
WHERE id = $1
`
	return p.scanUser(ctx, query, id)
}

func (p *postgresRepository) GetUserByUsername(ctx context.Context, username string) (entity.User, error) {
	const query = `
SELECT id, username, email, role, password_hash, created_at
FROM app_user
WHERE username = $1
`
	return p.scanUser(ctx, query, username)
}

func (p *postgresRepository) scanUser(ctx context.Context, query string, arg string) (entity.User, error) {
	var (
		u    entity.User
		role string
	)
	err := conn(ctx, p.db).QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &role, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		return entity.User{}, convertPgError(err, entity.ErrUserNotFound)
	}

	u.Role = entity.Role(role)
	return u, nil
}

func (p *postgresRepository) SaveToken(ctx context.Context, token entity.Token) error {
	const query = `
INSERT INTO auth_token (token_hash, user_id, kind, expires_at)
VALUES ($1, $2, $3, $4)
`
	_, err := conn(ctx, p.db).Exec(ctx, query, token.Hash, token.UserID, string(token.Kind), token.ExpiresAt)
	return convertPgError(err, entity.ErrTokenNotFound)
}

func (p *postgresRepository) GetToken(ctx context.Context, hash []byte) (entity.Token, error) {
	const query = `
SELECT token_hash, user_id, kind, expires_at, revoked_at
FROM auth_token
WHERE token_hash = $1
`
	var (
		t    entity.Token
		kind string
	)
	err := conn(ctx, p.db).QueryRow(ctx, query, hash).
		Scan(&t.Hash, &t.UserID, &kind, &t.ExpiresAt, &t.RevokedAt)

	if err != nil {
		return entity.Token{}, convertPgError(err, entity.ErrTokenNotFound)
	}

	t.Kind = entity.TokenKind(kind)
	return t, nil
}

// RevokeToken marks an active token revoked. Revoking twice reports ErrTokenNotFound.
func (p *postgresRepository) RevokeToken(ctx context.Context, hash []byte, at time.Time) error {
	const query = `
UPDATE auth_token SET revoked_at = $2
WHERE token_hash = $1 AND revoked_at IS NULL
`
	tag, err := conn(ctx, p.db).Exec(ctx, query, hash, at)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrTokenNotFound
	}
	return nil
}
