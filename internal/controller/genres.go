package controller

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/project/lms/internal/entity"
	"github.com/project/lms/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var GenresDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "library_genres_duration_ms",
	Help:    "Duration of genre handlers in ms",
	Buckets: prometheus.DefBuckets,
}, []string{"handler"})

func init() {
	prometheus.MustRegister(GenresDuration)
}

type genreRequest struct {
	Name string `json:"name"`
}

func (r genreRequest) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.Name, validation.Required))
}

func (i *implementation) CreateGenre(w http.ResponseWriter, r *http.Request, _ map[string]string, p entity.Principal) {
	defer observe(GenresDuration, "CreateGenre")()

	ctx := r.Context()
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID().String()

	if err := p.Authorize(entity.OpCreateGenre); err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	var req genreRequest
	if err := decode(r, &req); err != nil {
		i.writeError(w, err)
		return
	}
	if err := req.Validate(); log.ErrorCatalog(i.logger, err, "Got invalid request", traceID, log.CreateGenre,
		zap.String("genre_name", req.Name)) {
		i.writeError(w, invalidArgument(err))
		return
	}

	genre, err := i.genreUseCase.CreateGenre(ctx, p, req.Name)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusCreated, genre)
}

func (i *implementation) ListGenres(w http.ResponseWriter, r *http.Request, _ map[string]string, p entity.Principal) {
	defer observe(GenresDuration, "ListGenres")()

	pageReq, err := pageRequest(r.URL.Query())
	if err != nil {
		i.writeError(w, err)
		return
	}

	page, err := i.genreUseCase.ListGenres(r.Context(), p, pageReq)
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
