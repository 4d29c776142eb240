package validatex

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ValidationFunc defines a function that validates a value
type ValidationFunc func(value any, param string) bool

var builtinValidationFuncs = map[string]ValidationFunc{
	"required": validateRequired,
	"min":      validateMin,
	"max":      validateMax,
	"oneof":    validateOneOf,
}

var (
	customMu              sync.RWMutex
	customValidationFuncs = map[string]ValidationFunc{}
)

// RegisterValidationFunc registers a custom validation function
func RegisterValidationFunc(name string, fn ValidationFunc) {
	customMu.Lock()
	defer customMu.Unlock()
	customValidationFuncs[name] = fn
}

// getValidationFunc returns a validation function by name, custom ones first
func getValidationFunc(name string) (ValidationFunc, bool) {
	customMu.RLock()
	fn, ok := customValidationFuncs[name]
	customMu.RUnlock()
	if ok {
		return fn, true
	}

	fn, ok = builtinValidationFuncs[name]
	return fn, ok
}

func validateRequired(value any, _ string) bool {
	return !isZero(value)
}

// number converts numeric kinds to float64. Strings, slices and maps yield their length.
func number(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f, !math.IsNaN(f)
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return float64(rv.Len()), true
	default:
		return 0, false
	}
}

func validateMin(value any, param string) bool {
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}
	n, ok := number(value)
	return ok && n >= limit
}

func validateMax(value any, param string) bool {
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}
	n, ok := number(value)
	return ok && n <= limit
}

// validateOneOf checks the value against a space separated list
func validateOneOf(value any, param string) bool {
	str := fmt.Sprintf("%v", value)
	for _, allowed := range strings.Fields(param) {
		if allowed == str {
			return true
		}
	}
	return false
}
