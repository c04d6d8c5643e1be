package validation_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reactkit/pkg/validation"
)

func adult() validation.Validator {
	return validation.Check(func(v any) any {
		n, _ := v.(int)
		if n >= 18 {
			return true
		}
		return "must be 18+"
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("initial state is valid per field but not for the form", func(t *testing.T) {
		e, err := validation.New([]validation.FieldRules{
			validation.Field("email", validation.Required()),
			validation.Field("age", adult()),
			validation.Field("nickname"),
		})
		require.NoError(t, err)

		s := e.Snapshot()
		assert.False(t, s.IsValid)
		require.Len(t, s.Fields, 3)
		for _, name := range []string{"email", "age", "nickname"} {
			fs, ok := s.Field(name)
			require.True(t, ok, name)
			assert.True(t, fs.IsValid)
			assert.Empty(t, fs.Errors)
			assert.NotNil(t, fs.Errors)
		}
		assert.Equal(t, []string{"email", "age", "nickname"}, e.Fields())
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := validation.New([]validation.FieldRules{validation.Field("")})
		assert.ErrorIs(t, err, validation.ErrEmptyFieldName)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := validation.New([]validation.FieldRules{
			validation.Field("a"),
			validation.Field("a"),
		})
		assert.ErrorIs(t, err, validation.ErrDuplicateField)
	})

	t.Run("must new panics on error", func(t *testing.T) {
		assert.Panics(t, func() {
			validation.MustNew([]validation.FieldRules{validation.Field("")})
		})
	})

	t.Run("fields returns a copy", func(t *testing.T) {
		e := validation.MustNew([]validation.FieldRules{validation.Field("a")})
		f := e.Fields()
		f[0] = "mutated"
		assert.Equal(t, []string{"a"}, e.Fields())
	})
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	e, err := validation.FromMap(map[string][]validation.Validator{
		"zip":   {validation.Required()},
		"city":  {validation.Required()},
		"state": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "state", "zip"}, e.Fields())

	_, err = validation.FromMap(map[string][]validation.Validator{"": nil})
	assert.ErrorIs(t, err, validation.ErrEmptyFieldName)
}

func TestEngine_ValidateField(t *testing.T) {
	t.Parallel()

	t.Run("age example", func(t *testing.T) {
		e := validation.MustNew([]validation.FieldRules{validation.Field("age", adult())})

		e.ValidateField("age", 15)
		s := e.Snapshot()
		assert.Equal(t, validation.FieldState{IsValid: false, Errors: []string{"must be 18+"}}, s.Fields["age"])
		assert.False(t, s.IsValid)

		e.ValidateField("age", 20)
		s = e.Snapshot()
		assert.Equal(t, validation.FieldState{IsValid: true, Errors: []string{}}, s.Fields["age"])
		assert.True(t, s.IsValid)
	})

	t.Run("collects every message in validator order", func(t *testing.T) {
		e := validation.MustNew([]validation.FieldRules{
			validation.Field("name",
				func(any) validation.Result { return validation.Message("first") },
				func(any) validation.Result { return validation.Pass() },
				func(any) validation.Result { return validation.Fail() },
				func(any) validation.Result { return validation.Message("") },
				func(any) validation.Result { return validation.Message("last") },
			),
		})

		e.ValidateField("name", "x")
		fs, _ := e.Snapshot().Field("name")
		assert.Equal(t, []string{"first", "", "last"}, fs.Errors)
		assert.False(t, fs.IsValid)
	})

	t.Run("silent failures do not invalidate", func(t *testing.T) {
		e := validation.MustNew([]validation.FieldRules{
			validation.Field("flag", func(any) validation.Result { return validation.Fail() }),
		})

		e.ValidateField("flag", nil)
		s := e.Snapshot()
		assert.True(t, s.Fields["flag"].IsValid)
		assert.True(t, s.IsValid)
	})

	t.Run("form validity includes fields not just validated", func(t *testing.T) {
		e := validation.MustNew([]validation.FieldRules{
			validation.Field("a", validation.Required()),
			validation.Field("b", validation.Required()),
		})

		e.ValidateField("a", "")
		e.ValidateField("b", "ok")
		s := e.Snapshot()
		assert.False(t, s.IsValid)
		assert.True(t, s.Fields["b"].IsValid)

		e.ValidateField("a", "ok")
		assert.True(t, e.Snapshot().IsValid)
	})

	t.Run("unknown field is not added but recomputes validity", func(t *testing.T) {
		e := validation.MustNew([]validation.FieldRules{validation.Field("a", validation.Required())})

		var commits int
		e.State().Watch(func(validation.FormState) { commits++ })

		e.ValidateField("ghost", "anything")
		s := e.Snapshot()
		assert.Len(t, s.Fields, 1)
		_, ok := s.Field("ghost")
		assert.False(t, ok)
		assert.True(t, s.IsValid)
		assert.Equal(t, 1, commits)
	})

	t.Run("unknown field on an empty engine yields a valid form", func(t *testing.T) {
		e := validation.MustNew(nil)
		assert.False(t, e.Snapshot().IsValid)

		e.ValidateField("x", 1)
		assert.True(t, e.Snapshot().IsValid)
		assert.Empty(t, e.Snapshot().Fields)
	})

	t.Run("validator panic propagates and leaves state untouched", func(t *testing.T) {
		e := validation.MustNew([]validation.FieldRules{
			validation.Field("boom", func(any) validation.Result { panic("validator exploded") }),
		})
		before := e.Snapshot()

		assert.PanicsWithValue(t, "validator exploded", func() {
			e.ValidateField("boom", 1)
		})
		assert.Equal(t, before, e.Snapshot())
	})

	t.Run("nil validators are skipped", func(t *testing.T) {
		e := validation.MustNew([]validation.FieldRules{validation.Field("a", nil, validation.Required())})
		e.ValidateField("a", "")
		assert.Equal(t, []string{"field is required"}, e.Snapshot().Fields["a"].Errors)
	})

	t.Run("logs at debug level", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		e := validation.MustNew([]validation.FieldRules{validation.Field("a")}, validation.WithLogger(l))

		e.ValidateField("a", 1)
		assert.Contains(t, buf.String(), "field validated")
		assert.Contains(t, buf.String(), "field=a")
		assert.Contains(t, buf.String(), "state_id=")
	})

	t.Run("watcher may validate another field", func(t *testing.T) {
		e := validation.MustNew([]validation.FieldRules{
			validation.Field("password", validation.MinLength(4)),
			validation.Field("confirm", validation.Required()),
		})

		var commits []validation.FormState
		triggered := false
		e.State().Watch(func(s validation.FormState) {
			commits = append(commits, s.Clone())
			if !triggered {
				triggered = true
				e.ValidateField("confirm", "")
			}
		})

		done := make(chan struct{})
		go func() {
			defer close(done)
			e.ValidateField("password", "secret")
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("ValidateField from a watcher did not return")
		}

		require.Len(t, commits, 2)
		assert.True(t, commits[0].IsValid)
		assert.False(t, commits[1].IsValid)

		s := e.Snapshot()
		assert.True(t, s.Fields["password"].IsValid)
		assert.Equal(t, []string{"field is required"}, s.Fields["confirm"].Errors)
		assert.False(t, s.IsValid)
	})
}

func TestEngine_ValidateForm(t *testing.T) {
	t.Parallel()

	newEngine := func() *validation.Engine {
		return validation.MustNew([]validation.FieldRules{
			validation.Field("email", validation.Required(), validation.Email()),
			validation.Field("age", adult()),
			validation.Field("bio", validation.MaxLength(10)),
		})
	}

	t.Run("validates every declared field in order", func(t *testing.T) {
		e := newEngine()

		var order []string
		var last validation.FormState
		e.State().Watch(func(s validation.FormState) {
			last = s
			order = append(order, "commit")
		})

		e.ValidateForm(map[string]any{"email": "jane@example.com", "age": 30, "bio": "hi"})
		assert.Len(t, order, 3)
		assert.True(t, last.IsValid)
	})

	t.Run("missing fields validate as nil", func(t *testing.T) {
		e := newEngine()

		e.ValidateForm(map[string]any{"age": 30})
		s := e.Snapshot()
		assert.False(t, s.IsValid)
		assert.Equal(t, []string{"field is required", "must be a valid email address"}, s.Fields["email"].Errors)
		assert.Equal(t, []string{"must be at most 10 characters long"}, s.Fields["bio"].Errors)
	})

	t.Run("no early exit", func(t *testing.T) {
		e := newEngine()

		e.ValidateForm(map[string]any{"email": "bad", "age": 3, "bio": "way too long for this"})
		s := e.Snapshot()
		for _, name := range e.Fields() {
			assert.False(t, s.Fields[name].IsValid, name)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		e := newEngine()
		data := map[string]any{"email": "bad", "age": 40}

		e.ValidateForm(data)
		first := e.Snapshot()
		e.ValidateForm(data)
		second := e.Snapshot()

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("state changed between identical runs (-first +second):\n%s", diff)
		}
	})

	t.Run("extra keys are ignored", func(t *testing.T) {
		e := newEngine()
		e.ValidateForm(map[string]any{"email": "a@b.co", "age": 18, "unknown": true})
		assert.Len(t, e.Snapshot().Fields, 3)
	})
}

func TestEngine_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	e := validation.MustNew([]validation.FieldRules{validation.Field("a", validation.Required())})
	e.ValidateField("a", "")

	s := e.Snapshot()
	s.Fields["a"].Errors[0] = "mutated"
	delete(s.Fields, "a")

	assert.Equal(t, []string{"field is required"}, e.Snapshot().Fields["a"].Errors)
}

func TestEngine_Concurrent(t *testing.T) {
	t.Parallel()

	e := validation.MustNew([]validation.FieldRules{
		validation.Field("a", validation.Required()),
		validation.Field("b", validation.Required()),
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				e.ValidateField("a", "x")
			} else {
				e.ValidateField("b", "y")
			}
		}()
	}
	wg.Wait()

	s := e.Snapshot()
	assert.True(t, s.IsValid)
}

func TestFormState_Err(t *testing.T) {
	t.Parallel()

	e := validation.MustNew([]validation.FieldRules{
		validation.Field("name", validation.Required()),
		validation.Field("age", adult()),
	})
	assert.NoError(t, e.Snapshot().Err())

	e.ValidateForm(map[string]any{"age": 12})
	err := e.Snapshot().Err()
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	verrs := validation.ExtractValidationErrors(err)
	assert.Equal(t, []string{"age", "name"}, verrs.Fields())
	assert.Equal(t, []string{"must be 18+"}, verrs.Get("age"))
	assert.Equal(t, "validation failed: age: must be 18+; name: field is required", err.Error())
}

func TestEngine_Err(t *testing.T) {
	t.Parallel()

	e := validation.MustNew([]validation.FieldRules{
		validation.Field("name", validation.Required()),
		validation.Field("age", adult()),
	})
	assert.NoError(t, e.Err())

	e.ValidateForm(map[string]any{"age": 12})
	verrs := validation.ExtractValidationErrors(e.Err())
	assert.Equal(t, []string{"name", "age"}, verrs.Fields())
	assert.Equal(t, "validation failed: name: field is required; age: must be 18+", e.Err().Error())
}
