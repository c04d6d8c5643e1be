package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/reactkit/pkg/validation"
)

func TestResult(t *testing.T) {
	t.Parallel()

	assert.True(t, validation.Pass().OK())
	assert.False(t, validation.Fail().OK())
	assert.True(t, validation.Bool(true).OK())
	assert.False(t, validation.Bool(false).OK())

	msg, ok := validation.Message("bad").Message()
	assert.True(t, ok)
	assert.Equal(t, "bad", msg)
	assert.False(t, validation.Message("bad").OK())

	_, ok = validation.Fail().Message()
	assert.False(t, ok)

	var zero validation.Result
	assert.False(t, zero.OK())
}

func TestCheck(t *testing.T) {
	t.Parallel()

	v := validation.Check(func(value any) any { return value })

	assert.True(t, v(true).OK())

	r := v(false)
	assert.False(t, r.OK())
	_, hasMsg := r.Message()
	assert.False(t, hasMsg)

	msg, hasMsg := v("oops").Message()
	assert.True(t, hasMsg)
	assert.Equal(t, "oops", msg)

	assert.True(t, v(42).OK())
	assert.True(t, v(nil).OK())
}

func TestValidator_WithMessage(t *testing.T) {
	t.Parallel()

	v := validation.Check(func(value any) any { return value == "yes" }).WithMessage("say yes")

	assert.True(t, v("yes").OK())
	msg, ok := v("no").Message()
	assert.True(t, ok)
	assert.Equal(t, "say yes", msg)

	replaced := validation.Required().WithMessage("please fill in")
	msg, _ = replaced("").Message()
	assert.Equal(t, "please fill in", msg)
}

func TestFunc(t *testing.T) {
	t.Parallel()

	even := validation.Func(func(n int) bool { return n%2 == 0 }, "must be even")

	assert.True(t, even(4).OK())
	msg, ok := even(3).Message()
	assert.True(t, ok)
	assert.Equal(t, "must be even", msg)

	_, ok = even("4").Message()
	assert.True(t, ok)
}
