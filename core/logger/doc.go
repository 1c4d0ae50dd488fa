// Package logger builds the process-wide zap logger.
//
// LOG_LEVEL=debug selects zap's development preset; anything else uses the
// production preset at the parsed level. LOG_FORMAT=console gives colored,
// human-readable lines, otherwise output is JSON. Sampling is disabled.
//
// Request handlers call WithRayID to tag lines with the ray_id set by the rayid
// middleware. The bridge derives child loggers per storage connection (conn_id)
// and per reconciliation cycle (cycle_id).
//
//	log, _ := logger.New(&cfg.Log)
//	l := logger.WithRayID(log, c)
//	l.Warn("Limit update rejected", zap.Error(err))
package logger
