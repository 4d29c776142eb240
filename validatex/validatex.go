// Package validatex validates structs through `validatex` field tags.
//
//	type settings struct {
//		StackLength int `validatex:"min=0,max=100"`
//	}
//
//	if err := validatex.Validate(settings{StackLength: -1}); err != nil {
//		// err is validatex.Errors
//	}
//
// Rules are comma separated; parameters follow "=". Nil pointers are optional and
// only fail "required".
package validatex

import (
	"fmt"
	"strings"
)

// FieldError describes a single failed rule
type FieldError struct {
	Field string
	Rule  string
	Param string
	Value any
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed %s=%s (got %v)", e.Field, e.Rule, e.Param, e.Value)
	}
	return fmt.Sprintf("%s failed %s (got %v)", e.Field, e.Rule, e.Value)
}

// Errors is the list of failed rules for a struct
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the names of the fields that failed
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for _, fe := range e {
		names = append(names, fe.Field)
	}
	return names
}

// Validate checks every tagged field of obj. It returns nil or an Errors value.
func Validate(obj any) error {
	fields, err := structFields(obj)
	if err != nil {
		return err
	}

	var errs Errors
	for _, f := range fields {
		value := dereference(f.Value)

		for _, rule := range f.Rules {
			if value == nil && rule.Name != "required" {
				continue
			}

			fn, ok := getValidationFunc(rule.Name)
			if !ok {
				return fmt.Errorf("validatex: unknown rule %q on field %s", rule.Name, f.Name)
			}
			if !fn(value, rule.Param) {
				errs = append(errs, FieldError{
					Field: f.Name,
					Rule:  rule.Name,
					Param: rule.Param,
					Value: value,
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
