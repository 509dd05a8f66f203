package logger

import "go.uber.org/zap"

// CheckError logs msg at error level when err is not nil and reports whether it was.
// A nil logger disables output but not the check.
func CheckError(err error, logger *zap.Logger, msg string, fields ...zap.Field) bool {
	if err != nil {
		if logger != nil {
			logger.Error(msg, fields...)
		}
		return true
	}
	return false
}

func MakeInfo(logger *zap.Logger, msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Info(msg, fields...)
	}
}

func MakeWarn(logger *zap.Logger, msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Warn(msg, fields...)
	}
}

// Enabled returns logger when on is set and nil otherwise.
func Enabled(logger *zap.Logger, on bool) *zap.Logger {
	if on {
		return logger
	}
	return nil
}
