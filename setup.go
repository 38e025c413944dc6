package cefbridge

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/cef-bridge/capi"
	"github.com/wippyai/cef-bridge/errors"
)

type config struct {
	logger       *zap.Logger
	panicHandler func(*errors.Error)
	leakCleanup  bool
	development  bool
}

// Option configures Setup.
type Option func(*config)

// WithLogger routes the bridge's logs to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithDevelopmentLogging uses zap's development logger, which includes debug
// messages for every wrapped object created and freed. It is ignored when
// WithLogger is also given.
func WithDevelopmentLogging() Option {
	return func(c *config) { c.development = true }
}

// WithLeakCleanup controls whether unreleased handles are released by the
// garbage collector. It is on by default.
func WithLeakCleanup(enabled bool) Option {
	return func(c *config) { c.leakCleanup = enabled }
}

// WithPanicHandler receives panics recovered from callbacks invoked by the
// runtime, on the thread that invoked them.
func WithPanicHandler(fn func(*errors.Error)) Option {
	return func(c *config) { c.panicHandler = fn }
}

var configured atomic.Bool

// Setup applies process-wide configuration. It must be called at most once,
// before the runtime is initialized.
func Setup(opts ...Option) error {
	if !configured.CompareAndSwap(false, true) {
		return errors.InvalidInput(errors.PhaseSetup, "Setup already called")
	}

	cfg := config{leakCleanup: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil && cfg.development {
		l, err := zap.NewDevelopment()
		if err != nil {
			configured.Store(false)
			return errors.Wrap(errors.PhaseSetup, errors.KindInvalidInput, err, "development logger")
		}
		logger = l
	}

	capi.SetLogger(logger)
	capi.SetLeakCleanup(cfg.leakCleanup)
	capi.SetPanicHandler(cfg.panicHandler)
	return nil
}
