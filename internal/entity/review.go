package entity

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type (
	Review struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		BookID    string    `json:"book"`
		Rating    int       `json:"rating"`
		Comment   string    `json:"comment"`
		CreatedAt time.Time `json:"created_at"`
	}

	ReviewPatch struct {
		Rating  *int
		Comment *string
	}
)

func (p ReviewPatch) Apply(r Review) Review {
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Comment != nil {
		r.Comment = *p.Comment
	}
	return r
}
