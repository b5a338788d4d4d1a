package validator

import (
	"reflect"

	"github.com/dmitrymomot/rulekit"
)

// OneOf passes values equal to one of options. Numbers are compared by value
// regardless of their Go type, so OneOf(1, 2) accepts float64(2).
func OneOf(options ...any) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		return inOptions(v, options)
	})
}

// NoneOf passes values equal to none of options.
func NoneOf(options ...any) rulekit.Rule {
	return rulekit.Immediate(func(v any, _ ...any) bool {
		return !inOptions(v, options)
	})
}

func inOptions(v any, options []any) bool {
	vf, vNum := floatOf(v)
	for _, opt := range options {
		if of, ok := floatOf(opt); ok && vNum {
			if of == vf {
				return true
			}
			continue
		}
		if reflect.DeepEqual(v, opt) {
			return true
		}
	}
	return false
}
