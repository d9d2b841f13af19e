package logging

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"lambda-handlers/internal/config"
)

type settings struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// New builds a JSON logger when running in Lambda and a console logger otherwise.
func New() (*zap.Logger, error) {
	var s settings
	if err := env.Parse(&s); err != nil {
		return nil, errors.Wrap(err, "failed to parse logging settings")
	}
	level, err := zap.ParseAtomicLevel(s.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid LOG_LEVEL %q", s.Level)
	}

	cfg := zap.NewDevelopmentConfig()
	if config.InLambda() {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = level

	return cfg.Build()
}
