package controller

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var BooksDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "library_books_duration_ms",
	Help:    "Duration of book handlers in ms",
	Buckets: prometheus.DefBuckets,
}, []string{"handler"})

func init() {
	prometheus.MustRegister(BooksDuration)
}

// bookRequest is the body of POST, PUT and PATCH on books. Absent fields stay nil.
type bookRequest struct {
	Title           *string  `json:"title"`
	AuthorID        *string  `json:"author"`
	GenreIDs        []string `json:"genres"`
	ISBN            *string  `json:"isbn"`
	TotalCopies     *int     `json:"total_copies"`
	AvailableCopies *int     `json:"available_copies"`
}

func (r bookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorID, is.UUID),
		validation.Field(&r.GenreIDs, validation.Each(is.UUID)),
		validation.Field(&r.TotalCopies, validation.Min(0)),
		validation.Field(&r.AvailableCopies, validation.Min(0)))
}

// ValidateFull requires every field, as a create or a full replace does.
func (r bookRequest) ValidateFull() error {
	if err := r.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.AuthorID, validation.Required),
		validation.Field(&r.GenreIDs, validation.Required),
		validation.Field(&r.ISBN, validation.Required),
		validation.Field(&r.TotalCopies, validation.NotNil),
		validation.Field(&r.AvailableCopies, validation.NotNil))
}

func (r bookRequest) patch() entity.BookPatch {
	patch := entity.BookPatch{
		Title:           r.Title,
		AuthorID:        r.AuthorID,
		ISBN:            r.ISBN,
		TotalCopies:     r.TotalCopies,
		AvailableCopies: r.AvailableCopies,
	}
	if r.GenreIDs != nil {
		genres := r.GenreIDs
		patch.GenreIDs = &genres
	}
	return patch
}

func (r bookRequest) book() entity.Book {
	return r.patch().Apply(entity.Book{})
}

type bookFilterRequest struct {
	AuthorID string
	GenreID  string
}

func (r bookFilterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorID, is.UUID),
		validation.Field(&r.GenreID, is.UUID))
}

func validateID(id string) error {
	return validation.Validate(id, validation.Required, is.UUID)
}

func (i *implementation) AddBook(w http.ResponseWriter, r *http.Request, _ map[string]string, p entity.Principal) {
	defer observe(BooksDuration, "AddBook")()

	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpCreateBook); err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	var req bookRequest
	if err := decode(r, &req); err != nil {
		i.writeError(w, err)
		return
	}
	book := req.book()
	if err := req.ValidateFull(); log.ErrorAddBook(i.logger, err, "Got invalid request", traceID, book.Title, book.ISBN) {
		span.SetAttributes(attribute.String("book_title", book.Title))
		span.SetAttributes(attribute.String("book_isbn", book.ISBN))
		span.RecordError(err)
		i.writeError(w, invalidArgument(err))
		return
	}

	book, err := i.booksUseCase.AddBook(ctx, p, book)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

func (i *implementation) GetBook(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	defer observe(BooksDuration, "GetBook")()

	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	id := pathParams["id"]
	if err := validateID(id); log.ErrorBook(i.logger, err, "Got invalid request", traceID, id, log.GetBook) {
		span.SetAttributes(attribute.String("book_id", id))
		span.RecordError(err)
		i.writeError(w, invalidArgument(err))
		return
	}

	book, err := i.booksUseCase.GetBook(ctx, p, id)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (i *implementation) ReplaceBook(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	defer observe(BooksDuration, "ReplaceBook")()
	i.updateBook(w, r, pathParams["id"], p, true)
}

func (i *implementation) PatchBook(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	defer observe(BooksDuration, "PatchBook")()
	i.updateBook(w, r, pathParams["id"], p, false)
}

func (i *implementation) updateBook(w http.ResponseWriter, r *http.Request, id string, p entity.Principal, full bool) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpUpdateBook); err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}
	if err := validateID(id); log.ErrorBook(i.logger, err, "Got invalid request", traceID, id, log.UpdateBook) {
		i.writeError(w, invalidArgument(err))
		return
	}

	var req bookRequest
	if err := decode(r, &req); err != nil {
		i.writeError(w, err)
		return
	}

	validate := req.Validate
	if full {
		validate = req.ValidateFull
	}
	if err := validate(); log.ErrorBook(i.logger, err, "Got invalid request", traceID, id, log.UpdateBook) {
		span.SetAttributes(attribute.String("book_id", id))
		span.RecordError(err)
		i.writeError(w, invalidArgument(err))
		return
	}

	book, err := i.booksUseCase.UpdateBook(ctx, p, id, req.patch())
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (i *implementation) DeleteBook(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	defer observe(BooksDuration, "DeleteBook")()

	ctx := r.Context()
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpDeleteBook); err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	id := pathParams["id"]
	if err := validateID(id); log.ErrorBook(i.logger, err, "Got invalid request", traceID, id, log.DeleteBook) {
		i.writeError(w, invalidArgument(err))
		return
	}

	if err := i.booksUseCase.DeleteBook(ctx, p, id); err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (i *implementation) ListBooks(w http.ResponseWriter, r *http.Request, _ map[string]string, p entity.Principal) {
	defer observe(BooksDuration, "ListBooks")()

	query := r.URL.Query()
	pageReq, err := pageRequest(query)
	if err != nil {
		i.writeError(w, err)
		return
	}

	filterReq := bookFilterRequest{
		AuthorID: query.Get("author"),
		GenreID:  query.Get("genres"),
	}
	if err = filterReq.Validate(); err != nil {
		i.writeError(w, invalidArgument(err))
		return
	}

	page, err := i.booksUseCase.ListBooks(r.Context(), p, entity.BookFilter{
		AuthorID:    filterReq.AuthorID,
		GenreID:     filterReq.GenreID,
		Search:      query.Get("search"),
		Ordering:    entity.BookOrdering(query.Get("ordering")),
		PageRequest: pageReq,
	})
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}
	if err = checkPage(page); err != nil {
		i.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newPageResponse(r, page))
}
