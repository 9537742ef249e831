package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/version"
)

const defaultGracefulTimeout = 15 * time.Second

// App runs a finite task with uniform lifecycle management.
// The type parameter C is the config type.
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger

	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error
	onStart         []Hook
	onStop          []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	app := &App[C]{
		Name:            base.Name,
		Version:         version.Get().Short(),
		Cfg:             cfg,
		gracefulTimeout: defaultGracefulTimeout,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	return app, nil
}

// OnConfigure registers a callback that runs after the start hooks. Use it
// to build clients from the validated config.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// RunTask runs the start hooks and configure callbacks, executes task and
// then runs the stop hooks. SIGINT and SIGTERM cancel the context passed to
// task. Stop hooks run even when startup fails part way, and the task error
// takes precedence over a stop error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := a.startup(taskCtx)
	if taskErr == nil {
		taskErr = task(taskCtx)
	}

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App[C]) startup(ctx context.Context) error {
	a.Logger.Debug("starting", logger.Fields("name", a.Name, "version", a.Version))

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configuration failed: %w", err)
		}
	}
	return nil
}

// Shutdown runs the stop hooks. Use it when managing your own lifecycle.
func (a *App[C]) Shutdown() error {
	return a.stop()
}

// stop runs the stop hooks within the graceful timeout. Every hook runs;
// the errors are joined.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	for _, h := range slices.Backward(a.onStop) {
		if err := h(ctx); err != nil {
			a.Logger.Error("stop hook failed", logger.Fields(logger.FieldError, err.Error()))
			errs = append(errs, err)
		}
	}
	a.onStop = nil
	return errors.Join(errs...)
}
