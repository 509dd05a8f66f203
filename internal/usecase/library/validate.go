package library

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/project/lms/internal/entity"
)

const (
	maxTitleLength    = 255
	maxNameLength     = 100
	maxISBNLength     = 13
	maxUsernameLength = 150
	minPasswordLength = 8
)

// invalid wraps ozzo validation errors so callers can match entity.ErrValidation.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", entity.ErrValidation, err.Error())
}

func validateBook(b entity.Book) error {
	return invalid(validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required, validation.RuneLength(1, maxTitleLength)),
		validation.Field(&b.AuthorID, validation.Required, is.UUID),
		validation.Field(&b.GenreIDs, validation.Required, validation.Each(is.UUID)),
		validation.Field(&b.ISBN, validation.Required, validation.RuneLength(1, maxISBNLength)),
		validation.Field(&b.TotalCopies, validation.Min(0)),
		validation.Field(&b.AvailableCopies, validation.Min(0)),
	))
}

func validateReview(r entity.Review) error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, is.UUID),
		validation.Field(&r.Rating, validation.Required, validation.Min(entity.MinRating), validation.Max(entity.MaxRating)),
		validation.Field(&r.Comment, validation.Required),
	))
}

func validateName(name string) error {
	return invalid(validation.Validate(name,
		validation.Required.Error("name cannot be blank"),
		validation.RuneLength(1, maxNameLength)))
}

func validateCredentials(username, email, password string) error {
	return invalid(validation.Errors{
		"username": validation.Validate(username, validation.Required, validation.RuneLength(1, maxUsernameLength)),
		"email":    validation.Validate(email, validation.Required, is.EmailFormat),
		"password": validation.Validate(password, validation.Required, validation.RuneLength(minPasswordLength, 0)),
	}.Filter())
}
