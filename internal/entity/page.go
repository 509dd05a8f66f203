package entity

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type (
	PageRequest struct {
		Page     int
		PageSize int
	}

	Page[T any] struct {
		Items    []T
		Total    int
		Page     int
		PageSize int
	}

	BookOrdering string

	BookFilter struct {
		AuthorID string
		GenreID  string
		Search   string
		Ordering BookOrdering
		PageRequest
	}
)

const (
	OrderByTitle               BookOrdering = "title"
	OrderByTitleDesc           BookOrdering = "-title"
	OrderByAvailableCopies     BookOrdering = "available_copies"
	OrderByAvailableCopiesDesc BookOrdering = "-available_copies"
)

func (o BookOrdering) Valid() bool {
	switch o {
	case "", OrderByTitle, OrderByTitleDesc, OrderByAvailableCopies, OrderByAvailableCopiesDesc:
		return true
	}
	return false
}

// Normalize clamps the request to page >= 1 and 1 <= page size <= MaxPageSize.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p Page[T]) HasNext() bool {
	return p.Page*p.PageSize < p.Total
}

func (p Page[T]) HasPrevious() bool {
	return p.Page > 1
}
