package prefs

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/goliatone/go-prefs/internal/coerce"
)

// Validator judges a candidate value before a setting accepts it. A non-nil
// error rejects the write.
type Validator interface {
	Validate(ctx ValueContext) error
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(ctx ValueContext) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(ctx ValueContext) error {
	if f == nil {
		return nil
	}
	return f(ctx)
}

// NotEmpty rejects nil values, blank strings and empty collections.
func NotEmpty() Validator {
	return ValidatorFunc(func(ctx ValueContext) error {
		if isEmptyValue(ctx.Value) {
			return errors.New("must not be empty")
		}
		return nil
	})
}

// AtLeast rejects numeric values below min.
func AtLeast(min float64) Validator {
	return ValidatorFunc(func(ctx ValueContext) error {
		n, err := coerce.To[float64](ctx.Value)
		if err != nil {
			return fmt.Errorf("not a number: %w", err)
		}
		if n < min {
			return fmt.Errorf("must be at least %v", min)
		}
		return nil
	})
}

// AtMost rejects numeric values above max.
func AtMost(max float64) Validator {
	return ValidatorFunc(func(ctx ValueContext) error {
		n, err := coerce.To[float64](ctx.Value)
		if err != nil {
			return fmt.Errorf("not a number: %w", err)
		}
		if n > max {
			return fmt.Errorf("must be at most %v", max)
		}
		return nil
	})
}

// Between rejects numeric values outside the inclusive [min, max] range.
func Between(min, max float64) Validator {
	return ValidatorFunc(func(ctx ValueContext) error {
		n, err := coerce.To[float64](ctx.Value)
		if err != nil {
			return fmt.Errorf("not a number: %w", err)
		}
		if n < min || n > max {
			return fmt.Errorf("must be between %v and %v", min, max)
		}
		return nil
	})
}

// OneOf rejects values not present in allowed. Values compare by deep
// equality first, then by printed form so coerced numerics still match.
func OneOf(allowed ...any) Validator {
	return ValidatorFunc(func(ctx ValueContext) error {
		for _, candidate := range allowed {
			if equalValues(candidate, ctx.Value) {
				return nil
			}
			if fmt.Sprint(candidate) == fmt.Sprint(ctx.Value) {
				return nil
			}
		}
		return fmt.Errorf("must be one of %v", allowed)
	})
}

// Matches rejects strings that do not match pattern. A pattern that does not
// compile fails every candidate.
func Matches(pattern string) Validator {
	re, compileErr := regexp.Compile(pattern)
	return ValidatorFunc(func(ctx ValueContext) error {
		if compileErr != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, compileErr)
		}
		s, err := coerce.To[string](ctx.Value)
		if err != nil {
			return fmt.Errorf("not a string: %w", err)
		}
		if !re.MatchString(s) {
			return fmt.Errorf("must match %q", pattern)
		}
		return nil
	})
}

// Predicate wraps fn as a Validator that fails with message when fn returns
// false.
func Predicate(message string, fn func(value any) bool) Validator {
	return ValidatorFunc(func(ctx ValueContext) error {
		if fn == nil || fn(ctx.Value) {
			return nil
		}
		if message == "" {
			message = "rejected by predicate"
		}
		return errors.New(message)
	})
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func asValidationError(breadcrumb string, value any, err error) error {
	if err == nil {
		return nil
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		if valErr.Breadcrumb == "" {
			valErr.Breadcrumb = breadcrumb
		}
		if valErr.Value == nil {
			valErr.Value = value
		}
		return valErr
	}
	return &ValidationError{Breadcrumb: breadcrumb, Value: value, Err: err}
}
