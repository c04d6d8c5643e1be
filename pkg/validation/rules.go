package validation

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Numeric is the set of types accepted as bounds by Min, Max and Between.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Required fails on nil, blank strings, and empty slices, maps and arrays.
func Required() Validator {
	return func(value any) Result {
		if isEmpty(value) {
			return Message("field is required")
		}
		return Pass()
	}
}

// MinLength requires a string of at least n characters.
func MinLength(n int) Validator {
	msg := fmt.Sprintf("must be at least %d characters long", n)
	return func(value any) Result {
		s, ok := value.(string)
		if !ok || utf8.RuneCountInString(s) < n {
			return Message(msg)
		}
		return Pass()
	}
}

// MaxLength requires a string of at most n characters.
func MaxLength(n int) Validator {
	msg := fmt.Sprintf("must be at most %d characters long", n)
	return func(value any) Result {
		s, ok := value.(string)
		if !ok || utf8.RuneCountInString(s) > n {
			return Message(msg)
		}
		return Pass()
	}
}

// LengthBetween requires a string whose length is within [lo, hi].
func LengthBetween(lo, hi int) Validator {
	msg := fmt.Sprintf("must be between %d and %d characters long", lo, hi)
	return func(value any) Result {
		s, ok := value.(string)
		if !ok {
			return Message(msg)
		}
		n := utf8.RuneCountInString(s)
		if n < lo || n > hi {
			return Message(msg)
		}
		return Pass()
	}
}

// Min requires a number greater than or equal to lo.
func Min[N Numeric](lo N) Validator {
	msg := fmt.Sprintf("must be at least %v", lo)
	return func(value any) Result {
		f, ok := toFloat(value)
		if !ok || f < float64(lo) {
			return Message(msg)
		}
		return Pass()
	}
}

// Max requires a number less than or equal to hi.
func Max[N Numeric](hi N) Validator {
	msg := fmt.Sprintf("must be at most %v", hi)
	return func(value any) Result {
		f, ok := toFloat(value)
		if !ok || f > float64(hi) {
			return Message(msg)
		}
		return Pass()
	}
}

// Between requires a number within [lo, hi].
func Between[N Numeric](lo, hi N) Validator {
	msg := fmt.Sprintf("must be between %v and %v", lo, hi)
	return func(value any) Result {
		f, ok := toFloat(value)
		if !ok || f < float64(lo) || f > float64(hi) {
			return Message(msg)
		}
		return Pass()
	}
}

// Email requires a bare email address with a dotted domain.
func Email() Validator {
	return func(value any) Result {
		s, ok := value.(string)
		if !ok || !isEmail(s) {
			return Message("must be a valid email address")
		}
		return Pass()
	}
}

// URL requires an absolute URL with a scheme and host.
func URL() Validator {
	return func(value any) Result {
		s, ok := value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return Message("must be a valid URL")
		}
		u, err := url.ParseRequestURI(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Message("must be a valid URL")
		}
		return Pass()
	}
}

// Matches requires a string matching re.
func Matches(re *regexp.Regexp) Validator {
	msg := "has an invalid format"
	return func(value any) Result {
		s, ok := value.(string)
		if !ok || !re.MatchString(s) {
			return Message(msg)
		}
		return Pass()
	}
}

// OneOf requires the value to equal one of options.
func OneOf[T comparable](options ...T) Validator {
	msg := fmt.Sprintf("must be one of: %s", joinValues(options))
	return func(value any) Result {
		v, ok := value.(T)
		if !ok || !slices.Contains(options, v) {
			return Message(msg)
		}
		return Pass()
	}
}

// Equal requires the value to equal want.
func Equal[T comparable](want T) Validator {
	msg := fmt.Sprintf("must be equal to %v", want)
	return func(value any) Result {
		v, ok := value.(T)
		if !ok || v != want {
			return Message(msg)
		}
		return Pass()
	}
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isEmail(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// toFloat widens any numeric value, including json.Number as decoded from
// request bodies, to float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case nil:
		return 0, false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func joinValues[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
