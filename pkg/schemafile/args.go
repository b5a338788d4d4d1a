package schemafile

import (
	"fmt"
	"math"
)

// Args are the positional arguments of one rule entry.
type Args []any

func (a Args) want(n int) error {
	if len(a) != n {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidArgs, n, len(a))
	}
	return nil
}

// String returns argument i as a string.
func (a Args) String(i int) (string, error) {
	if i >= len(a) {
		return "", fmt.Errorf("%w: missing argument %d", ErrInvalidArgs, i)
	}
	s, ok := a[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %d must be a string, got %T", ErrInvalidArgs, i, a[i])
	}
	return s, nil
}

// Float returns argument i as a float64. YAML integers are accepted.
func (a Args) Float(i int) (float64, error) {
	if i >= len(a) {
		return 0, fmt.Errorf("%w: missing argument %d", ErrInvalidArgs, i)
	}
	switch n := a[i].(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("%w: argument %d must be a number, got %T", ErrInvalidArgs, i, a[i])
}

// Int returns argument i as an int. Numbers with a fraction are rejected.
func (a Args) Int(i int) (int, error) {
	f, err := a.Float(i)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: argument %d must be an integer", ErrInvalidArgs, i)
	}
	return int(f), nil
}
