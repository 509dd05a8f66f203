package entity

type Operation string

const (
	OpReadCatalog             Operation = "ReadCatalog"
	OpCreateAuthor            Operation = "CreateAuthor"
	OpCreateGenre             Operation = "CreateGenre"
	OpCreateBook              Operation = "CreateBook"
	OpUpdateBook              Operation = "UpdateBook"
	OpDeleteBook              Operation = "DeleteBook"
	OpCreateBorrowRequest     Operation = "CreateBorrowRequest"
	OpListOwnBorrowRequests   Operation = "ListOwnBorrowRequests"
	OpTransitionBorrowRequest Operation = "TransitionBorrowRequest"
	OpCreateReview            Operation = "CreateReview"
	OpModifyReview            Operation = "ModifyReview"
)

var anyRole = map[Role]bool{RoleMember: true, RoleLibrarian: true}

var policy = map[Operation]map[Role]bool{
	OpReadCatalog:             anyRole,
	OpCreateAuthor:            {RoleLibrarian: true},
	OpCreateGenre:             {RoleLibrarian: true},
	OpCreateBook:              {RoleLibrarian: true},
	OpUpdateBook:              {RoleLibrarian: true},
	OpDeleteBook:              {RoleLibrarian: true},
	OpCreateBorrowRequest:     {RoleMember: true},
	OpListOwnBorrowRequests:   anyRole,
	OpTransitionBorrowRequest: {RoleLibrarian: true},
	OpCreateReview:            anyRole,
	OpModifyReview:            anyRole,
}

// Allow reports whether role may perform op. Unknown roles and operations are denied.
func Allow(role Role, op Operation) bool {
	return policy[op][role]
}

// Authorize is Allow for a principal, returning ErrPermissionDenied on deny.
func (p Principal) Authorize(op Operation) error {
	if p.UserID == "" {
		return ErrUnauthenticated
	}
	if !Allow(p.Role, op) {
		return ErrPermissionDenied
	}
	return nil
}

// Owns reports whether the principal is the owner of the review.
func (p Principal) Owns(r Review) bool {
	return p.UserID != "" && p.UserID == r.UserID
}
