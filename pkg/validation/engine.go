package validation

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/dmitrymomot/reactkit/pkg/logger"
	"github.com/dmitrymomot/reactkit/pkg/reactive"
)

// FieldRules declares a field and its validators, run in the given order.
type FieldRules struct {
	Name       string
	Validators []Validator
}

// Field declares a field named name.
func Field(name string, validators ...Validator) FieldRules {
	return FieldRules{Name: name, Validators: validators}
}

// Engine tracks the validity of a fixed set of fields.
// Its methods are safe for concurrent use.
type Engine struct {
	fields []string
	rules  map[string][]Validator
	state  *reactive.Ref[FormState]
	logger *slog.Logger
}

// New builds an engine for fields, declared in order. Field names must be
// non-empty and unique.
func New(fields []FieldRules, opts ...Option) (*Engine, error) {
	e := &Engine{
		fields: make([]string, 0, len(fields)),
		rules:  make(map[string][]Validator, len(fields)),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	initial := FormState{Fields: make(map[string]FieldState, len(fields))}
	for _, f := range fields {
		if f.Name == "" {
			return nil, ErrEmptyFieldName
		}
		if _, exists := e.rules[f.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		e.fields = append(e.fields, f.Name)
		e.rules[f.Name] = slices.Clone(f.Validators)
		initial.Fields[f.Name] = FieldState{IsValid: true, Errors: []string{}}
	}

	e.state = reactive.NewRef(initial)
	return e, nil
}

// MustNew is like New but panics on error.
func MustNew(fields []FieldRules, opts ...Option) *Engine {
	e, err := New(fields, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// FromMap builds an engine from a name-to-validators map. Since maps carry no
// order, fields are declared in lexicographic order of their names.
func FromMap(rules map[string][]Validator, opts ...Option) (*Engine, error) {
	fields := make([]FieldRules, 0, len(rules))
	for _, name := range slices.Sorted(maps.Keys(rules)) {
		fields = append(fields, Field(name, rules[name]...))
	}
	return New(fields, opts...)
}

// Fields returns the declared field names in declaration order.
func (e *Engine) Fields() []string {
	return slices.Clone(e.fields)
}

// State returns a read-only observable view of the form state. Values read
// from it are shared with other observers and must not be modified; use
// Snapshot for a private copy.
func (e *Engine) State() reactive.Value[FormState] {
	return reactive.ReadOnly(e.state)
}

// Snapshot returns a deep copy of the current form state.
func (e *Engine) Snapshot() FormState {
	return e.state.Get().Clone()
}

// ValidateField runs the validators of field against value and commits the
// resulting field state together with the recomputed form validity.
// An undeclared field has no validators and is not added to the state.
func (e *Engine) ValidateField(field string, value any) {
	errs := []string{}
	for _, v := range e.rules[field] {
		if v == nil {
			continue
		}
		if msg, ok := v(value).Message(); ok {
			errs = append(errs, msg)
		}
	}

	_, tracked := e.rules[field]
	e.state.Update(func(prev FormState) FormState {
		next := prev.Clone()
		if tracked {
			next.Fields[field] = FieldState{IsValid: len(errs) == 0, Errors: errs}
		}
		next.IsValid = next.allValid()
		return next
	})

	if !tracked {
		e.logger.Debug("validated undeclared field",
			logger.Component("validation"),
			logger.StateID(e.state.ID()),
			logger.Field(field),
		)
		return
	}
	e.logger.Debug("field validated",
		logger.Component("validation"),
		logger.StateID(e.state.ID()),
		logger.Field(field),
		slog.Bool("valid", len(errs) == 0),
		slog.Int("errors", len(errs)),
	)
}

// Err returns the recorded failures as ValidationErrors in field declaration
// order, or nil when no field has errors.
func (e *Engine) Err() error {
	return e.state.Get().errIn(e.fields)
}

// ValidateForm validates every declared field, in declaration order, against
// its entry in data. Missing entries are validated as nil.
func (e *Engine) ValidateForm(data map[string]any) {
	for _, field := range e.fields {
		e.ValidateField(field, data[field])
	}
}
