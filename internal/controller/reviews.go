package controller

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ReviewsDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "library_reviews_duration_ms",
	Help:    "Duration of review handlers in ms",
	Buckets: prometheus.DefBuckets,
}, []string{"handler"})

func init() {
	prometheus.MustRegister(ReviewsDuration)
}

type reviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (r reviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Min(entity.MinRating), validation.Max(entity.MaxRating)))
}

func (r reviewRequest) ValidateFull() error {
	if err := r.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Required),
		validation.Field(&r.Comment, validation.Required))
}

func (r reviewRequest) patch() entity.ReviewPatch {
	return entity.ReviewPatch{Rating: r.Rating, Comment: r.Comment}
}

func (i *implementation) CreateReview(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	defer observe(ReviewsDuration, "CreateReview")()

	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	bookID := pathParams["book_id"]
	if err := validateID(bookID); log.ErrorBook(i.logger, err, "Got invalid request", traceID, bookID, log.CreateReview) {
		span.SetAttributes(attribute.String("book_id", bookID))
		span.RecordError(err)
		i.writeError(w, invalidArgument(err))
		return
	}

	var req reviewRequest
	if err := decode(r, &req); err != nil {
		i.writeError(w, err)
		return
	}
	if err := req.ValidateFull(); log.ErrorReview(i.logger, err, "Got invalid request", traceID, "", p.UserID, log.CreateReview) {
		i.writeError(w, invalidArgument(err))
		return
	}

	review, err := i.reviewUseCase.CreateReview(ctx, p, req.patch().Apply(entity.Review{BookID: bookID}))
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (i *implementation) ListReviews(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	defer observe(ReviewsDuration, "ListReviews")()

	bookID := pathParams["book_id"]
	if err := validateID(bookID); err != nil {
		i.writeError(w, invalidArgument(err))
		return
	}

	pageReq, err := pageRequest(r.URL.Query())
	if err != nil {
		i.writeError(w, err)
		return
	}

	page, err := i.reviewUseCase.ListReviews(r.Context(), p, bookID, pageReq)
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

func (i *implementation) GetReview(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	defer observe(ReviewsDuration, "GetReview")()

	id := pathParams["id"]
	if err := validateID(id); err != nil {
		i.writeError(w, invalidArgument(err))
		return
	}

	review, err := i.reviewUseCase.GetReview(r.Context(), p, id)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusOK, review)
}

func (i *implementation) ReplaceReview(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	defer observe(ReviewsDuration, "ReplaceReview")()
	i.updateReview(w, r, pathParams["id"], p, true)
}

func (i *implementation) PatchReview(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	defer observe(ReviewsDuration, "PatchReview")()
	i.updateReview(w, r, pathParams["id"], p, false)
}

func (i *implementation) updateReview(w http.ResponseWriter, r *http.Request, id string, p entity.Principal, full bool) {
	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	if err := validateID(id); log.ErrorReview(i.logger, err, "Got invalid request", traceID, id, p.UserID, log.UpdateReview) {
		i.writeError(w, invalidArgument(err))
		return
	}

	var req reviewRequest
	if err := decode(r, &req); err != nil {
		i.writeError(w, err)
		return
	}

	validate := req.Validate
	if full {
		validate = req.ValidateFull
	}
	if err := validate(); log.ErrorReview(i.logger, err, "Got invalid request", traceID, id, p.UserID, log.UpdateReview) {
		span.SetAttributes(attribute.String("review_id", id))
		span.RecordError(err)
		i.writeError(w, invalidArgument(err))
		return
	}

	review, err := i.reviewUseCase.UpdateReview(ctx, p, id, req.patch())
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusOK, review)
}

func (i *implementation) DeleteReview(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	defer observe(ReviewsDuration, "DeleteReview")()

	id := pathParams["id"]
	if err := validateID(id); err != nil {
		i.writeError(w, invalidArgument(err))
		return
	}

	if err := i.reviewUseCase.DeleteReview(r.Context(), p, id); err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
