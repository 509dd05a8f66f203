package controller

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	jsoniter "github.com/json-iterator/go"
	"github.com/project/lms/internal/entity"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const maxBodyBytes = 1 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type authedHandlerFunc func(w http.ResponseWriter, r *http.Request, pathParams map[string]string, p entity.Principal)

// authenticated resolves the bearer token into a principal before calling next.
func (i *implementation) authenticated(next authedHandlerFunc) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		token, ok := bearerToken(r)
		if !ok {
			i.writeError(w, status.Error(codes.Unauthenticated, "Authentication credentials were not provided."))
			return
		}

		p, err := i.identityUseCase.Authenticate(r.Context(), token)
		if err != nil {
			i.writeError(w, i.convertErr(err))
			return
		}

		trace.SpanFromContext(r.Context()).SetAttributes(
			attribute.String("user_id", p.UserID),
			attribute.String("role", string(p.Role)))
		next(w, r, pathParams, p)
	}
}

// observe returns a func recording the elapsed time of handler in ms.
func observe(h *prometheus.HistogramVec, handler string) func() {
	start := time.Now()
	return func() {
		h.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func decode(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return status.Error(codes.InvalidArgument, "can not read request body")
	}
	if len(body) == 0 {
		return status.Error(codes.InvalidArgument, "request body is empty")
	}
	if err = json.Unmarshal(body, v); err != nil {
		return status.Error(codes.InvalidArgument, fmt.Sprintf("JSON parse error: %s", err))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func invalidArgument(err error) error {
	return status.Error(codes.InvalidArgument, err.Error())
}

type pageResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// newPageResponse builds the paginated envelope with absolute links to the
// neighbouring pages. The link to the first page carries no page parameter.
func newPageResponse[T any](r *http.Request, page entity.Page[T]) pageResponse[T] {
	resp := pageResponse[T]{
		Count:   page.Total,
		Results: page.Items,
	}
	if resp.Results == nil {
		resp.Results = []T{}
	}
	if page.HasNext() {
		link := pageLink(r, page.Page+1)
		resp.Next = &link
	}
	if page.HasPrevious() {
		link := pageLink(r, page.Page-1)
		resp.Previous = &link
	}
	return resp
}

func pageLink(r *http.Request, page int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	query := r.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// pageRequest reads page and page_size from the query string.
func pageRequest(query url.Values) (entity.PageRequest, error) {
	var req entity.PageRequest
	var err error

	if v := query.Get("page"); v != "" {
		if req.Page, err = strconv.Atoi(v); err != nil || req.Page < 1 {
			return entity.PageRequest{}, status.Error(codes.NotFound, "Invalid page.")
		}
	}
	// An unusable page_size falls back to the default size.
	if size, err := strconv.Atoi(query.Get("page_size")); err == nil {
		req.PageSize = size
	}
	return req.Normalize(), nil
}

// checkPage rejects pages past the last one, except the first page of an empty list.
func checkPage[T any](page entity.Page[T]) error {
	if page.Page > 1 && len(page.Items) == 0 {
		return status.Error(codes.NotFound, "Invalid page.")
	}
	return nil
}

// TracingMiddleware starts a server span for every routed request.
func TracingMiddleware(next runtime.HandlerFunc) runtime.HandlerFunc {
	tracer := otel.Tracer("library/http")
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		name := r.Method + " " + r.URL.Path
		if pattern, ok := runtime.HTTPPattern(r.Context()); ok {
			name = r.Method + " " + pattern.String()
		}

		ctx, span := tracer.Start(r.Context(), name, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		next(w, r.WithContext(ctx), pathParams)
	}
}

// TrimTrailingSlash lets clients call routes with or without a trailing slash.
func TrimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
			r2 := r.Clone(r.Context())
			r2.URL.Path = strings.TrimRight(r.URL.Path, "/")
			r2.URL.RawPath = ""
			r = r2
		}
		next.ServeHTTP(w, r)
	})
}

// NewServeMux returns a gateway mux with tracing and API-style routing errors.
func NewServeMux(opts ...runtime.ServeMuxOption) *runtime.ServeMux {
	opts = append([]runtime.ServeMuxOption{
		runtime.WithMiddlewares(TracingMiddleware),
		runtime.WithRoutingErrorHandler(RoutingErrorHandler),
	}, opts...)
	return runtime.NewServeMux(opts...)
}
