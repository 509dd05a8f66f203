package entity

import (
	"fmt"
	"time"
)

type BorrowStatus string

const (
	BorrowPending  BorrowStatus = "PENDING"
	BorrowApproved BorrowStatus = "APPROVED"
	BorrowRejected BorrowStatus = "REJECTED"
	BorrowReturned BorrowStatus = "RETURNED"
)

type BorrowAction string

const (
	ActionApprove BorrowAction = "approve"
	ActionReject  BorrowAction = "reject"
	ActionReturn  BorrowAction = "return"
)

func ParseBorrowAction(s string) (BorrowAction, error) {
	switch a := BorrowAction(s); a {
	case ActionApprove, ActionReject, ActionReturn:
		return a, nil
	}
	return "", fmt.Errorf("unknown borrow action %q: %w", s, ErrValidation)
}

type BorrowRequest struct {
	ID          string       `json:"id"`
	BookID      string       `json:"book_id"`
	UserID      string       `json:"user_id"`
	Status      BorrowStatus `json:"status"`
	RequestedAt time.Time    `json:"requested_at"`
	ApprovedAt  *time.Time   `json:"approved_at"`
	ReturnedAt  *time.Time   `json:"returned_at"`
}

type borrowTransition struct {
	from   BorrowStatus
	action BorrowAction
}

// transition target and the change of Book.AvailableCopies it implies.
type borrowEffect struct {
	to         BorrowStatus
	copiesDiff int
}

var borrowTransitions = map[borrowTransition]borrowEffect{
	{BorrowPending, ActionApprove}: {BorrowApproved, -1},
	{BorrowPending, ActionReject}:  {BorrowRejected, 0},
	{BorrowApproved, ActionReturn}: {BorrowReturned, +1},
}

// Next returns the status reached by applying action to s and the change of the
// book's available copies. Pairs outside the lifecycle fail with ErrInvalidTransition.
func (s BorrowStatus) Next(action BorrowAction) (BorrowStatus, int, error) {
	eff, ok := borrowTransitions[borrowTransition{s, action}]
	if !ok {
		return s, 0, fmt.Errorf("cannot %s request in status %s: %w", action, s, ErrInvalidTransition)
	}
	return eff.to, eff.copiesDiff, nil
}

// Transit applies action to the request at time now. The receiver is not modified.
func (r BorrowRequest) Transit(action BorrowAction, now time.Time) (BorrowRequest, int, error) {
	next, diff, err := r.Status.Next(action)
	if err != nil {
		return r, 0, err
	}

	r.Status = next
	switch next {
	case BorrowApproved:
		r.ApprovedAt = &now
	case BorrowReturned:
		r.ReturnedAt = &now
	}
	return r, diff, nil
}
