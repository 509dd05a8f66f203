package controller

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/project/lms/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var AuthDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "library_auth_duration_ms",
	Help:    "Duration of registration and token handlers in ms",
	Buckets: prometheus.DefBuckets,
}, []string{"handler"})

func init() {
	prometheus.MustRegister(AuthDuration)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required))
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r tokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required))
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (r refreshRequest) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.Refresh, validation.Required))
}

func (i *implementation) RegisterUser(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	defer observe(AuthDuration, "RegisterUser")()

	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	var req registerRequest
	if err := decode(r, &req); err != nil {
		i.writeError(w, err)
		return
	}
	if err := req.Validate(); log.ErrorIdentity(i.logger, err, "Got invalid request", traceID, req.Username, log.Register) {
		span.SetAttributes(attribute.String("username", req.Username))
		span.RecordError(err)
		i.writeError(w, invalidArgument(err))
		return
	}

	user, err := i.identityUseCase.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (i *implementation) IssueToken(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	defer observe(AuthDuration, "IssueToken")()

	ctx := r.Context()
	span := trace.SpanFromContext(ctx)
	traceID := span.SpanContext().TraceID().String()

	var req tokenRequest
	if err := decode(r, &req); err != nil {
		i.writeError(w, err)
		return
	}
	if err := req.Validate(); log.ErrorIdentity(i.logger, err, "Got invalid request", traceID, req.Username, log.IssueToken) {
		span.RecordError(err)
		i.writeError(w, invalidArgument(err))
		return
	}

	pair, err := i.identityUseCase.IssueToken(ctx, req.Username, req.Password)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

func (i *implementation) RefreshToken(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	defer observe(AuthDuration, "RefreshToken")()

	var req refreshRequest
	if err := decode(r, &req); err != nil {
		i.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		i.writeError(w, invalidArgument(err))
		return
	}

	pair, err := i.identityUseCase.RefreshToken(r.Context(), req.Refresh)
	if err != nil {
		i.writeError(w, i.convertErr(err))
		return
	}

	writeJSON(w, http.StatusOK, pair)
}
