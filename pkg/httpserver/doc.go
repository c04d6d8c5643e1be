// Package httpserver runs the playground HTTP handler with bounded timeouts
// and a graceful shutdown tied to a context.
//
// Server listens on its own net.Listener so callers (and tests) can read the
// bound address with Addr once Ready is closed. Run blocks until the context
// is cancelled or Shutdown is called, then drains in-flight requests within
// the configured shutdown timeout.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Health returns a handler reporting named readiness checks as JSON.
//
// Errors from Run are wrapped with ErrStart and errors from Shutdown with
// ErrShutdown.
package httpserver
