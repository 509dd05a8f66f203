package log

import (
	"github.com/project/lms/pkg/logger"
	"go.uber.org/zap"
)

func InfoCatalog(l *zap.Logger, msg string, traceID string, action Action, fields ...zap.Field) {
	logger.MakeInfo(l, msg, append(fields,
		zap.String("trace_id", traceID),
		zap.String("action", action))...)
}

func ErrorCatalog(l *zap.Logger, err error, msg string, traceID string, action Action, fields ...zap.Field) bool {
	return logger.CheckError(err, l, msg, append(fields,
		zap.String("trace_id", traceID),
		zap.Error(err),
		zap.String("action", action))...)
}

func InfoAddBook(l *zap.Logger, msg string, traceID, title, isbn string, id ...string) {
	if len(id) == 0 {
		InfoCatalog(l, msg, traceID, AddBook,
			zap.String("book_title", title),
			zap.String("book_isbn", isbn))
		return
	}
	InfoCatalog(l, msg, traceID, AddBook,
		zap.String("book_id", id[0]),
		zap.String("book_title", title),
		zap.String("book_isbn", isbn))
}

func ErrorAddBook(l *zap.Logger, err error, msg string, traceID, title, isbn string) bool {
	return ErrorCatalog(l, err, msg, traceID, AddBook,
		zap.String("book_title", title),
		zap.String("book_isbn", isbn))
}

func InfoBook(l *zap.Logger, msg string, traceID, bookID string, action Action) {
	InfoCatalog(l, msg, traceID, action, zap.String("book_id", bookID))
}

func ErrorBook(l *zap.Logger, err error, msg string, traceID, bookID string, action Action) bool {
	return ErrorCatalog(l, err, msg, traceID, action, zap.String("book_id", bookID))
}
