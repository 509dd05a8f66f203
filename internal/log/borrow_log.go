package log

import (
	"github.com/project/lms/pkg/logger"
	"go.uber.org/zap"
)

func InfoCreateBorrowRequest(l *zap.Logger, msg string, traceID, bookID, userID string, id ...string) {
	fields := []zap.Field{
		zap.String("trace_id", traceID),
		zap.String("book_id", bookID),
		zap.String("user_id", userID),
		zap.String("action", CreateBorrowRequest),
	}
	if len(id) > 0 {
		fields = append(fields, zap.String("borrow_request_id", id[0]))
	}
	logger.MakeInfo(l, msg, fields...)
}

func ErrorCreateBorrowRequest(l *zap.Logger, err error, msg string, traceID, bookID, userID string) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("book_id", bookID),
		zap.String("user_id", userID),
		zap.Error(err),
		zap.String("action", CreateBorrowRequest))
}

func InfoTransition(l *zap.Logger, msg string, traceID, requestID, borrowAction, actorID string, status ...string) {
	fields := []zap.Field{
		zap.String("trace_id", traceID),
		zap.String("borrow_request_id", requestID),
		zap.String("borrow_action", borrowAction),
		zap.String("actor_id", actorID),
		zap.String("action", TransitionBorrowRequest),
	}
	if len(status) > 0 {
		fields = append(fields, zap.String("status", status[0]))
	}
	logger.MakeInfo(l, msg, fields...)
}

func ErrorTransition(l *zap.Logger, err error, msg string, traceID, requestID, borrowAction, actorID string) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("borrow_request_id", requestID),
		zap.String("borrow_action", borrowAction),
		zap.String("actor_id", actorID),
		zap.Error(err),
		zap.String("action", TransitionBorrowRequest))
}

func InfoListBorrowRequests(l *zap.Logger, msg string, traceID, userID string) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.String("user_id", userID),
		zap.String("action", ListBorrowRequests))
}

func ErrorListBorrowRequests(l *zap.Logger, err error, msg string, traceID, userID string) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("user_id", userID),
		zap.Error(err),
		zap.String("action", ListBorrowRequests))
}
