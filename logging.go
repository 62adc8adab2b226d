package chesshub

import (
	"go.uber.org/zap"
)

const (
	// Service is the name of this service.
	Service = "chesshub"
)

// NewLogger builds the structured logger every binary in this module uses.
func NewLogger() (*zap.SugaredLogger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	return logger.Sugar().With("service", Service), nil
}

// MustLogger is NewLogger for package-level initialization.
func MustLogger() *zap.SugaredLogger {
	log, err := NewLogger()
	if err != nil {
		panic(err)
	}
	return log
}
