// Package signals connects reactive values to datastar front ends.
//
// Datastar keeps client state in "signals" that the server patches over a
// Server-Sent Events stream. Stream pushes the current value of a
// reactive.Value and then every change, so a page bound to those signals
// re-renders as a form is validated or a request moves through its phases.
//
//	sse := datastar.NewSSE(w, r)
//	err := signals.Stream(r.Context(), sse, tracker.State(), signals.RequestSignals[User])
//
// FormSignals and RequestSignals map validation and request snapshots to the
// camelCase shape the templates bind to.
package signals
