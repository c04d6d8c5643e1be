// Package validation keeps the validity state of a form whose fields are
// checked by caller-supplied validator functions.
//
// An Engine is built from an ordered list of fields, each with its own ordered
// list of Validators. It holds a FormState in a reactive.Ref so views can
// observe it:
//
//	engine := validation.MustNew([]validation.FieldRules{
//		validation.Field("email", validation.Required(), validation.Email()),
//		validation.Field("age", validation.Min(18).WithMessage("must be 18+")),
//	})
//
//	stop := engine.State().Watch(func(s validation.FormState) {
//		render(s)
//	})
//	defer stop()
//
//	engine.ValidateField("age", 15)
//	engine.ValidateForm(map[string]any{"email": "a@b.co", "age": 20})
//
// # Validators
//
// A Validator returns a Result: Pass, Fail or Message. Only messages are
// recorded as errors and only errors make a field invalid, so a bare Fail is
// silent. Combine Bool with WithMessage to turn a boolean check into a
// reportable failure. Check adapts loosely-typed functions returning bool or
// string.
//
// The built-in constructors (Required, MinLength, Min, Email, ...) return a
// Message with an English default text on failure; WithMessage replaces it.
//
// # State
//
// A freshly built engine reports every field valid with no errors, while the
// form as a whole reports IsValid false until the first validation run.
// Every ValidateField call replaces one field state and recomputes the form
// validity over all fields in a single commit. Calling ValidateField with an
// undeclared field validates nothing and adds nothing, but still recomputes
// and commits the form state.
//
// Validators that panic are not recovered; the panic reaches the caller and
// the state is left untouched.
package validation
