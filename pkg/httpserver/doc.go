// Package httpserver wraps net/http.Server with graceful, signal-aware
// shutdown and option-based configuration.
//
//	srv := httpserver.New(
//	    httpserver.WithAddr(":8080"),
//	    httpserver.WithLogger(log),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    // server failed to start or crashed
//	}
//
// Run blocks until the context is cancelled, SIGINT/SIGTERM arrives, or the
// server fails; Shutdown is idempotent.
package httpserver
