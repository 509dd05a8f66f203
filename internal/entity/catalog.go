package entity

import "time"

type (
	Author struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Bio       *string   `json:"bio"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	Genre struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
	}

	Book struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		AuthorID        string    `json:"author"`
		GenreIDs        []string  `json:"genres"`
		ISBN            string    `json:"isbn"`
		TotalCopies     int       `json:"total_copies"`
		AvailableCopies int       `json:"available_copies"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	// BookPatch carries the fields of a partial book update. Nil means unchanged.
	BookPatch struct {
		Title           *string
		AuthorID        *string
		GenreIDs        *[]string
		ISBN            *string
		TotalCopies     *int
		AvailableCopies *int
	}
)

// CheckCopies reports ErrInvariantViolation unless 0 <= available <= total.
func (b Book) CheckCopies() error {
	if b.AvailableCopies < 0 || b.TotalCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return ErrInvariantViolation
	}
	return nil
}

// Apply returns a copy of the book with the patch fields applied.
func (p BookPatch) Apply(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.AuthorID != nil {
		b.AuthorID = *p.AuthorID
	}
	if p.GenreIDs != nil {
		b.GenreIDs = append([]string(nil), (*p.GenreIDs)...)
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.TotalCopies != nil {
		b.TotalCopies = *p.TotalCopies
	}
	if p.AvailableCopies != nil {
		b.AvailableCopies = *p.AvailableCopies
	}
	return b
}
