package controller

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var AuthorsDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "library_authors_duration_ms",
	Help:    "Duration of author handlers in ms",
	Buckets: prometheus.DefBuckets,
}, []string{"handler"})

func init() {
	prometheus.MustRegister(AuthorsDuration)
}

type authorRequest struct {
	Name string  `json:"name"`
	Bio  *string `json:"bio"`
}

func (r authorRequest) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.Name, validation.Required))
}

func (i *implementation) CreateAuthor(w http.ResponseWriter, r *http.Request, _ map[string]string, p entity.Principal) {
	defer observe(AuthorsDuration, "CreateAuthor")()

	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpCreateAuthor); err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	var req authorRequest
	if err := decode(r, &req); err != nil {
		i.writeError(w, err)
		return
	}
	if err := req.Validate(); log.ErrorCatalog(i.logger, err, "Got invalid request", traceID, log.CreateAuthor,
		zap.String("author_name", req.Name)) {
		span.SetAttributes(attribute.String("author_name", req.Name))
		span.RecordError(err)
		i.writeError(w, invalidArgument(err))
		return
	}

	author, err := i.authorUseCase.CreateAuthor(ctx, p, req.Name, req.Bio)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusCreated, author)
}

func (i *implementation) ListAuthors(w http.ResponseWriter, r *http.Request, _ map[string]string, p entity.Principal) {
	defer observe(AuthorsDuration, "ListAuthors")()

	pageReq, err := pageRequest(r.URL.Query())
	if err != nil {
		i.writeError(w, err)
		return
	}

	page, err := i.authorUseCase.ListAuthors(r.Context(), p, pageReq)
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
