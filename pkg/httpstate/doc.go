// Package httpstate runs a single JSON-over-HTTP request and tracks its
// lifecycle in an observable State.
//
// A Tracker holds one State at a time. Execute resets it, marks it loading,
// records the response status once headers arrive, and finally commits either
// a success (with the decoded body) or an error (with a message). The final
// commit clears IsLoading in the same step, so observers never see loading
// and a terminal flag together.
//
//	type User struct {
//		ID   int    `json:"id"`
//		Name string `json:"name"`
//	}
//
//	users := httpstate.New[User](httpstate.WithLogger(log))
//	stop := users.State().Watch(func(s httpstate.State[User]) {
//		render(s.Phase(), s)
//	})
//	defer stop()
//
//	users.Execute(ctx, httpstate.Request{URL: "https://api.example.com/users/1"})
//	if u, ok := users.Data(); ok {
//		fmt.Println(u.Name)
//	}
//
// # Failures
//
// Execute never returns an error. Invalid methods, body encoding errors,
// transport errors, non-2xx statuses and undecodable bodies all end in the
// error phase with a message in State.Error. For non-2xx responses the message
// is "HTTP error! Status: <code>" and the body is discarded.
//
// # Overlapping calls
//
// Calls on the same Tracker are not serialized. By default the last commit
// wins, so a slow earlier call can overwrite the result of a later one.
// WithGenerationGuard makes every call drop its commits once a newer call has
// started.
//
// # Content negotiation
//
// Bodies are JSON in both directions. The Content-Type sent with a body and
// the Accept header default to application/json and can be changed with
// WithContentType and WithAccept; headers set on the Request take precedence.
package httpstate
