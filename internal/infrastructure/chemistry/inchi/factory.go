package inchi

import (
	"context"
	"os/exec"

	"github.com/turtacn/computefp/internal/domain/molecule"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
)

// Factory implements molecule.GeneratorFactory.  Every call resolves the
// configured binary again, so installing the program while a watch session
// is running takes effect with the next file.
type Factory struct {
	cfg      Config
	runner   Runner
	lookPath func(string) (string, error)
	logger   logging.Logger
}

// FactoryOption customises a Factory.
type FactoryOption func(*Factory)

// withRunner replaces the os/exec runner.
func withRunner(r Runner) FactoryOption {
	return func(f *Factory) { f.runner = r }
}

// withLookPath replaces exec.LookPath.
func withLookPath(fn func(string) (string, error)) FactoryOption {
	return func(f *Factory) { f.lookPath = fn }
}

// NewFactory builds a Factory for cfg.
func NewFactory(cfg Config, logger logging.Logger, opts ...FactoryOption) *Factory {
	if logger == nil {
		logger = logging.Default()
	}
	f := &Factory{cfg: cfg, runner: ExecRunner{}, lookPath: exec.LookPath, logger: logger}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewGenerator implements molecule.GeneratorFactory.
func (f *Factory) NewGenerator(_ context.Context) (molecule.IdentifierGenerator, error) {
	path, err := f.lookPath(f.cfg.Binary)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeToolkitUnavailable, "InChI program not found").
			WithDetail(f.cfg.Binary)
	}
	f.logger.Debug("resolved InChI program", logging.String("path", path))
	return NewGenerator(path, f.cfg, f.runner, f.logger), nil
}

//Personal.AI order the ending
