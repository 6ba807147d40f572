package analyzer

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger configures the package logger
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
