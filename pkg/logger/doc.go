// Package logger is a small factory over log/slog with functional options
// for format, level, output and static attributes, plus environment presets.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "vendingd"),
//	    logger.WithAttr(slog.String("machine", cfg.MachineID)),
//	)
//	logger.SetAsDefault(log)
//
// Defaults are production-safe: JSON format at info level on stdout.
package logger
