// Package bootstrap runs a command through a uniform lifecycle: validate
// the config, initialize logging, run start hooks and configure callbacks,
// execute the task, then run stop hooks within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.OnStop(shutdownTelemetry)
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    return printAccount(ctx, client)
//	})
//
// SIGINT and SIGTERM cancel the task context.
package bootstrap
