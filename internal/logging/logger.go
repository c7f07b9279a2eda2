// Package logging builds the zap logger chip8vm threads explicitly from
// cmd/run.go down into the scheduler and host. Nothing here is a package
// global the core can reach into — see SPEC_FULL.md's ambient-stack note
// and DESIGN.md's grounding on original_source's cpu_controller.rs tracing
// calls.
package logging

import (
	"github.com/mbarrington/chip8vm/internal/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.SugaredLogger from the Logger section of Config. It
// satisfies chip8.Logger (Debugw/Errorw) without any adapter.
func New(cfg config.Logger) (*zap.SugaredLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, errors.Wrapf(err, "invalid logger level %q", cfg.Level)
	}

	var zcfg zap.Config
	switch cfg.Format {
	case "json":
		zcfg = zap.NewProductionConfig()
	default:
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	return logger.Sugar(), nil
}
