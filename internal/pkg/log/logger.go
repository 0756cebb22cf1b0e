package log

import (
	"go.uber.org/zap"
)

// zapLogger is the default implementation of the Logger interface.
// It is a wrapped zap.SugaredLogger.
type zapLogger struct {
	*zap.SugaredLogger
}

func loggerFromZap(l *zap.Logger) *zapLogger {
	return &zapLogger{SugaredLogger: l.Sugar()}
}
