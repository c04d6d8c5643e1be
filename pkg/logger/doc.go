// Package logger builds *slog.Logger instances for reactkit components and
// provides attribute helpers so that log keys stay consistent across packages.
//
// New applies functional options on top of a JSON/INFO default:
//
//	log := logger.New(
//		logger.WithEnvironment("development", "playground"),
//		logger.WithContextValue("call_id", callIDKey),
//	)
//	logger.SetAsDefault(log)
//
//	log.Debug("field validated", logger.Component("validation"), logger.Field("email"))
//
// When extractors are registered, the handler returned by New runs them on
// every record, so values stored in a context.Context (request ids, call ids)
// are attached without threading them through every call. A key the record
// already carries is not added twice.
//
// Error and Errors return an empty Attr for nil errors, which slog drops, so
// they can be passed unconditionally.
package logger
