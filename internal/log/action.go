package log

type Action = string

const (
	CreateAuthor            Action = "CreateAuthor"
	ListAuthors                    = "ListAuthors"
	CreateGenre                    = "CreateGenre"
	ListGenres                     = "ListGenres"
	AddBook                        = "AddBook"
	GetBook                        = "GetBook"
	UpdateBook                     = "UpdateBook"
	DeleteBook                     = "DeleteBook"
	ListBooks                      = "ListBooks"
	CreateBorrowRequest            = "CreateBorrowRequest"
	TransitionBorrowRequest        = "TransitionBorrowRequest"
	ListBorrowRequests             = "ListBorrowRequests"
	CreateReview                   = "CreateReview"
	UpdateReview                   = "UpdateReview"
	DeleteReview                   = "DeleteReview"
	ListReviews                    = "ListReviews"
	Register                       = "Register"
	CreateUser                     = "CreateUser"
	IssueToken                     = "IssueToken"
	RefreshToken                   = "RefreshToken"
	Authenticate                   = "Authenticate"
)
