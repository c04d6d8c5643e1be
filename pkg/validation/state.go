package validation

import (
	"maps"
	"slices"
)

// FieldState is the validity of one field after its latest validation.
type FieldState struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// FormState is the validity of the whole form.
// IsValid is true iff every field in Fields is valid, and only after at least
// one validation run.
type FormState struct {
	IsValid bool                  `json:"isValid"`
	Fields  map[string]FieldState `json:"fields"`
}

// Field returns the state of name and whether it is tracked.
func (s FormState) Field(name string) (FieldState, bool) {
	fs, ok := s.Fields[name]
	return fs, ok
}

// Err returns the recorded failures as ValidationErrors, ordered by field
// name, or nil when no field has errors. Engine.Err keeps declaration order.
func (s FormState) Err() error {
	return s.errIn(slices.Sorted(maps.Keys(s.Fields)))
}

func (s FormState) errIn(order []string) error {
	var verrs ValidationErrors
	for _, name := range order {
		for _, msg := range s.Fields[name].Errors {
			verrs = append(verrs, ValidationError{Field: name, Message: msg})
		}
	}
	if verrs.IsEmpty() {
		return nil
	}
	return verrs
}

// Clone returns a deep copy of s.
func (s FormState) Clone() FormState {
	out := FormState{
		IsValid: s.IsValid,
		Fields:  make(map[string]FieldState, len(s.Fields)),
	}
	for name, fs := range s.Fields {
		out.Fields[name] = FieldState{
			IsValid: fs.IsValid,
			Errors:  slices.Clone(fs.Errors),
		}
	}
	return out
}

func (s FormState) allValid() bool {
	for _, fs := range s.Fields {
		if !fs.IsValid {
			return false
		}
	}
	return true
}
