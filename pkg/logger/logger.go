package logger

import (
	"go.uber.org/zap"
)

// NOOPLogger discards everything. Used as the default so components work
// without wiring a logger.
var NOOPLogger = zap.NewNop().Sugar()

// New builds a JSON production logger, or a human-readable development
// logger when local is true.
func New(local bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if local {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = !local

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
