package entity

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleMember    Role = "MEMBER"
	RoleLibrarian Role = "LIBRARIAN"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleMember, RoleLibrarian:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q: %w", s, ErrValidation)
}

type (
	User struct {
		ID           string    `json:"id"`
		Username     string    `json:"username"`
		Email        string    `json:"email"`
		Role         Role      `json:"role"`
		PasswordHash []byte    `json:"-"`
		CreatedAt    time.Time `json:"created_at"`
	}

	// Principal is the authenticated caller of an operation.
	Principal struct {
		UserID string
		Role   Role
	}

	TokenKind string

	Token struct {
		Hash      []byte
		UserID    string
		Kind      TokenKind
		ExpiresAt time.Time
		RevokedAt *time.Time
	}

	TokenPair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
)

const (
	TokenAccess  TokenKind = "ACCESS"
	TokenRefresh TokenKind = "REFRESH"
)

func (t Token) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
