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

var BorrowDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "library_borrow_duration_ms",
	Help:    "Duration of borrow request handlers in ms",
	Buckets: prometheus.DefBuckets,
}, []string{"handler"})

func init() {
	prometheus.MustRegister(BorrowDuration)
}

type borrowRequest struct {
	BookID string `json:"book_id"`
}

func (r borrowRequest) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.BookID, validation.Required, is.UUID))
}

func (i *implementation) CreateBorrowRequest(w http.ResponseWriter, r *http.Request, _ map[string]string, p entity.Principal) {
	defer observe(BorrowDuration, "CreateBorrowRequest")()

	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpCreateBorrowRequest); err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	var req borrowRequest
	if err := decode(r, &req); err != nil {
		i.writeError(w, err)
		return
	}
	if err := req.Validate(); log.ErrorCreateBorrowRequest(i.logger, err, "Got invalid request", traceID, req.BookID, p.UserID) {
		span.SetAttributes(attribute.String("book_id", req.BookID))
		span.RecordError(err)
		i.writeError(w, invalidArgument(err))
		return
	}

	request, err := i.borrowUseCase.CreateBorrowRequest(ctx, p, req.BookID)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

func (i *implementation) ListBorrowRequests(w http.ResponseWriter, r *http.Request, _ map[string]string, p entity.Principal) {
	defer observe(BorrowDuration, "ListBorrowRequests")()

	requests, err := i.borrowUseCase.ListBorrowRequests(r.Context(), p)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// TransitionBorrowRequest serves POST /api/borrow/{id}/{approve|reject|return}.
// The request body is ignored and any other action is an unknown route.
func (i *implementation) TransitionBorrowRequest(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal) {
	action, err := entity.ParseBorrowAction(pathParams["action"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Not found."})
		return
	}
	defer observe(BorrowDuration, "TransitionBorrowRequest_"+string(action))()

	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpTransitionBorrowRequest); err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	id := pathParams["id"]
	if err := validateID(id); log.ErrorTransition(i.logger, err, "Got invalid request", traceID, id, string(action), p.UserID) {
		span.SetAttributes(attribute.String("borrow_request_id", id))
		span.RecordError(err)
		i.writeError(w, invalidArgument(err))
		return
	}

	request, err := i.borrowUseCase.TransitionBorrowRequest(ctx, p, id, action)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusOK, request)
}
