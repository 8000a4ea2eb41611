package logger

import "go.uber.org/zap"

// New builds the process logger: JSON in production, console in development.
func New(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Must is New for process bootstrap.
func Must(development bool) *zap.Logger {
	return zap.Must(New(development))
}
