package entity

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidTransition  = errors.New("invalid action or status")
	ErrInvariantViolation = errors.New("invariant violation")
)

var (
	ErrAuthorNotFound        = fmt.Errorf("author %w", ErrNotFound)
	ErrGenreNotFound         = fmt.Errorf("genre %w", ErrNotFound)
	ErrBookNotFound          = fmt.Errorf("book %w", ErrNotFound)
	ErrBorrowRequestNotFound = fmt.Errorf("borrow request %w", ErrNotFound)
	ErrReviewNotFound        = fmt.Errorf("review %w", ErrNotFound)
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrTokenNotFound         = fmt.Errorf("token %w", ErrNotFound)

	ErrNoCopiesAvailable = fmt.Errorf("no available copies: %w", ErrInvariantViolation)
)
