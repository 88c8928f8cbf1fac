package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger. With debug enabled it uses the zap
// development config (debug level, human-readable); otherwise production
// config capped at warn so check output stays clean.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// NewNop returns a logger that discards everything, for tests and
// non-verbose library use.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
