// Package reactive provides a small observable value cell used to expose UI
// state (form validation, request lifecycle) to views that need to react to
// changes.
//
// A Ref holds a value of type T. Every Set or Update commits a new value and
// notifies two kinds of observers:
//
//   - Watchers, registered with Watch, are invoked after each commit, in
//     registration order, with no lock held. A watcher sees every committed
//     value and sees them in commit order. A watcher may write to the Ref it
//     watches: the nested commit is queued and reaches observers once the
//     current value has been delivered to all of them. Set returns after its
//     value is delivered, unless another goroutine or an outer Set on the
//     same goroutine is already delivering, in which case delivery is left
//     to that caller.
//   - Subscriptions, created with Subscribe, receive values over a buffered
//     channel. Delivery is non-blocking: a subscriber whose buffer is full is
//     dropped and its channel closed, so a slow consumer never stalls a commit.
//
// Value is the read-only view of a Ref. Components keep the Ref private and
// hand out ReadOnly(ref) so callers can observe but not mutate.
//
// # Usage
//
//	count := reactive.NewRef(0)
//	stop := count.Watch(func(v int) { fmt.Println("count:", v) })
//	defer stop()
//
//	count.Set(1)
//	count.Update(func(v int) int { return v + 1 })
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	sub := count.Subscribe(ctx)
//	for v := range sub.Receive() {
//		render(v)
//	}
//
// # Equality
//
// By default every commit notifies observers, even if the value did not change.
// WithEqual installs a comparison that suppresses notifications for commits
// equal to the current value.
package reactive
