package validation

// Result is the outcome of running a Validator against a value.
// The zero Result is a silent failure, equivalent to Fail().
type Result struct {
	ok      bool
	message string
	hasMsg  bool
}

// Pass reports success.
func Pass() Result { return Result{ok: true} }

// Fail reports failure without a message. It is not recorded as an error.
func Fail() Result { return Result{} }

// Bool reports success when ok is true and a silent failure otherwise.
func Bool(ok bool) Result { return Result{ok: ok} }

// Message reports failure with msg. Any message, including an empty one, is
// recorded as an error.
func Message(msg string) Result { return Result{message: msg, hasMsg: true} }

// OK reports whether the result is a pass.
func (r Result) OK() bool { return r.ok && !r.hasMsg }

// Message returns the failure message and whether one was set.
func (r Result) Message() (string, bool) { return r.message, r.hasMsg }

// Validator checks a single field value.
type Validator func(value any) Result

// WithMessage returns a validator that reports msg whenever v does not pass,
// including silent failures.
func (v Validator) WithMessage(msg string) Validator {
	return func(value any) Result {
		if v(value).OK() {
			return Pass()
		}
		return Message(msg)
	}
}

// Check adapts a loosely-typed check function. A bool result maps to Bool and
// a string result to Message; any other result passes.
func Check(fn func(value any) any) Validator {
	return func(value any) Result {
		switch r := fn(value).(type) {
		case bool:
			return Bool(r)
		case string:
			return Message(r)
		default:
			return Pass()
		}
	}
}

// Func adapts a typed predicate. Values that are not of type T fail with msg,
// as do values for which pred returns false.
func Func[T any](pred func(T) bool, msg string) Validator {
	return func(value any) Result {
		v, ok := value.(T)
		if !ok || !pred(v) {
			return Message(msg)
		}
		return Pass()
	}
}
