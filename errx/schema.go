package errx

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/Abraxas-365/customerr/logx"
	"github.com/Abraxas-365/customerr/validatex"
)

// Properties are the structured values carried by a class (defaults) or an instance
type Properties map[string]any

// Configuration holds per-instance options. The only recognized key is "stackLength".
type Configuration map[string]any

const (
	// StackLengthKey is the Configuration key for the number of stack frames kept
	StackLengthKey = "stackLength"

	// DefaultStackLength applies when neither the environment nor the registry set one
	DefaultStackLength = 10
)

// reserved keys live on the Error itself and are never stored in Properties
var reserved = map[string]bool{
	"name":    true,
	"message": true,
	"stack":   true,
}

func (p Properties) clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// mergeProperties layers each map over the previous one; later keys win
func mergeProperties(layers ...Properties) Properties {
	out := Properties{}
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

var hookType = reflect.TypeOf(Hook(nil))

// asMap accepts any map keyed by a string kind, e.g. map[string]string
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Properties:
		return m, m != nil
	case Configuration:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// asHook accepts any func with the Hook signature, named or not
func asHook(v any) (Hook, bool) {
	switch h := v.(type) {
	case Hook:
		return h, h != nil
	case func(*Error, string, Properties, Parent):
		return h, h != nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() || !rv.Type().ConvertibleTo(hookType) {
		return nil, false
	}
	return rv.Convert(hookType).Interface().(Hook), true
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// classArgs normalizes the optional (defaults, hook) arguments of Define and Extend.
// A hook in first position means no defaults. Anything of the wrong shape is dropped.
func classArgs(logger *logx.Logger, name string, args []any) (Properties, Hook) {
	if h, ok := asHook(arg(args, 0)); ok {
		if len(args) > 1 {
			logger.Debug("class %s: ignoring %d argument(s) after the hook", name, len(args)-1)
		}
		return Properties{}, h
	}

	defaults := Properties{}
	if m, ok := asMap(arg(args, 0)); ok {
		defaults = Properties(m).clone()
	} else if a := arg(args, 0); a != nil {
		logger.Debug("class %s: default properties of type %T ignored", name, a)
	}

	h, ok := asHook(arg(args, 1))
	if !ok && arg(args, 1) != nil {
		logger.Debug("class %s: hook of type %T ignored", name, arg(args, 1))
	}
	return defaults, h
}

// callArgs normalizes the (message, properties, configuration) arguments of Make.
// A map in first position is the properties argument and shifts configuration left.
func callArgs(args []any) (string, Properties, Configuration) {
	if m, ok := asMap(arg(args, 0)); ok {
		props := Properties(m).clone()
		message, _ := props["message"].(string)
		return message, props, configAt(args, 1)
	}

	message, _ := arg(args, 0).(string)
	props := Properties{}
	if m, ok := asMap(arg(args, 1)); ok {
		props = Properties(m).clone()
	}
	return message, props, configAt(args, 2)
}

func configAt(args []any, i int) Configuration {
	if m, ok := asMap(arg(args, i)); ok {
		return Configuration(m)
	}
	return nil
}

// instanceSettings is the normalized form of a Configuration
type instanceSettings struct {
	StackLength int `validatex:"min=0"`
}

// normalizeConfiguration applies defaults and validates the stackLength option
func normalizeConfiguration(config Configuration, defaultStackLength int) (instanceSettings, error) {
	settings := instanceSettings{StackLength: defaultStackLength}

	raw, ok := config[StackLengthKey]
	if !ok {
		return settings, nil
	}

	n, ok := toInt(raw)
	if !ok {
		return settings, fmt.Errorf("%s must be a non-negative integer, got %T(%v)", StackLengthKey, raw, raw)
	}
	settings.StackLength = n

	if err := validatex.Validate(settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// toInt accepts integer kinds and integral floats. Values above maxStackDepth
// clamp to it and negative values come back as -1, so only the sign matters to
// validation.
func toInt(v any) (int, bool) {
	if num, ok := v.(json.Number); ok {
		if i, err := num.Int64(); err == nil {
			return clampDepth(i), true
		}
		f, err := num.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return clampDepth(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > maxStackDepth {
			return maxStackDepth, true
		}
		return int(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		switch {
		case math.IsNaN(f):
			return 0, false
		case f > maxStackDepth:
			return maxStackDepth, true
		case f < 0:
			return -1, true
		case f != math.Trunc(f):
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

func clampDepth(i int64) int {
	switch {
	case i > maxStackDepth:
		return maxStackDepth
	case i < 0:
		return -1
	}
	return int(i)
}
