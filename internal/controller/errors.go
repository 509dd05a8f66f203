package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/project/lms/internal/entity"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// convertErr maps domain errors onto gRPC status codes. Unknown errors become
// Internal and their text is not exposed.
func (i *implementation) convertErr(err error) error {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, entity.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, "Invalid action or status")
	case errors.Is(err, entity.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, entity.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, "You do not have permission to perform this action.")
	case errors.Is(err, entity.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, entity.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, entity.ErrInvariantViolation):
		return status.Error(codes.Aborted, err.Error())
	default:
		if i.logger != nil {
			i.logger.Error("internal error", zap.Error(err))
		}
		return status.Error(codes.Internal, "Internal server error")
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// writeError renders err as {"detail": ...} with the HTTP status of its gRPC code.
func (i *implementation) writeError(w http.ResponseWriter, err error) int {
	st, ok := status.FromError(err)
	if !ok {
		st, _ = status.FromError(i.convertErr(err))
	}

	code := runtime.HTTPStatusFromCode(st.Code())
	if st.Code() == codes.Unauthenticated {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	}
	writeJSON(w, code, errorResponse{Detail: st.Message()})
	return code
}

// RoutingErrorHandler answers unknown routes and methods in the API error format.
func RoutingErrorHandler(
	_ context.Context,
	_ *runtime.ServeMux,
	_ runtime.Marshaler,
	w http.ResponseWriter,
	_ *http.Request,
	httpStatus int,
) {
	detail := "Not found."
	if httpStatus == http.StatusMethodNotAllowed {
		detail = "Method not allowed."
	}
	writeJSON(w, httpStatus, errorResponse{Detail: detail})
}
