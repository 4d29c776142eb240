package validatex

import (
	"errors"
	"reflect"
	"strings"
)

var (
	ErrNotStruct = errors.New("value must be a struct")
)

// fieldInfo stores information about a tagged struct field
type fieldInfo struct {
	Name  string
	Value any
	Rules []ruleInfo
}

// ruleInfo stores information about a validation rule
type ruleInfo struct {
	Name  string
	Param string
}

// structFields returns the tagged fields of a struct in declaration order.
// Nested structs are flattened with a dotted prefix.
func structFields(obj any) ([]fieldInfo, error) {
	val := reflect.ValueOf(obj)

	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, ErrNotStruct
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	typ := val.Type()
	var fields []fieldInfo

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldValue := val.Field(i)
		actual := fieldValue
		if actual.Kind() == reflect.Ptr && !actual.IsNil() {
			actual = actual.Elem()
		}

		if tag := field.Tag.Get("validatex"); tag != "" && tag != "-" {
			fields = append(fields, fieldInfo{
				Name:  field.Name,
				Value: fieldValue.Interface(),
				Rules: parseTag(tag),
			})
		}

		if actual.Kind() == reflect.Struct {
			nested, err := structFields(actual.Interface())
			if err != nil {
				return nil, err
			}
			for _, f := range nested {
				f.Name = field.Name + "." + f.Name
				fields = append(fields, f)
			}
		}
	}

	return fields, nil
}

// parseTag parses a validatex tag string into validation rules
func parseTag(tag string) []ruleInfo {
	parts := strings.Split(tag, ",")
	rules := make([]ruleInfo, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, param, _ := strings.Cut(part, "=")
		rules = append(rules, ruleInfo{Name: name, Param: param})
	}

	return rules
}

// isZero checks if a value is the zero value for its type
func isZero(value any) bool {
	if value == nil {
		return true
	}

	val := reflect.ValueOf(value)
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		return val.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return val.Len() == 0
	default:
		return val.IsZero()
	}
}

// dereference returns the pointed-to value, or nil for a nil pointer
func dereference(value any) any {
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr {
		return value
	}
	if val.IsNil() {
		return nil
	}
	return val.Elem().Interface()
}
