package log

import (
	"github.com/project/lms/pkg/logger"
	"go.uber.org/zap"
)

func InfoReview(l *zap.Logger, msg string, traceID, reviewID, userID string, action Action) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
		zap.String("action", action))
}

func ErrorReview(l *zap.Logger, err error, msg string, traceID, reviewID, userID string, action Action) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
		zap.Error(err),
		zap.String("action", action))
}

func InfoIdentity(l *zap.Logger, msg string, traceID, username string, action Action) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.String("username", username),
		zap.String("action", action))
}

func ErrorIdentity(l *zap.Logger, err error, msg string, traceID, username string, action Action) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("username", username),
		zap.Error(err),
		zap.String("action", action))
}

// WarnIdentity records a rejected credential. Nothing failed on the server side.
func WarnIdentity(l *zap.Logger, err error, msg string, traceID string, action Action) {
	logger.MakeWarn(l, msg,
		zap.String("trace_id", traceID),
		zap.Error(err),
		zap.String("action", action))
}
