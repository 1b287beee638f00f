// Package logger builds *slog.Logger instances from functional options and
// provides attribute helpers that keep key names consistent across the
// demo: form, field, example, request_id and so on.
//
// New selects a text or JSON handler and wraps it in LogHandlerDecorator,
// which appends attributes extracted from the context of every record.
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "formkit"),
//	    logger.WithContextExtractors(requestid.Extractor),
//	)
//	log.InfoContext(ctx, "submission stored", logger.Form("login"))
//
// Error and Errors return empty attributes for nil errors, so they can be
// passed unconditionally.
package logger
