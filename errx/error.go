package errx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Error is an instance of a Class.
//
// Message and Properties are writable; hooks use them to reshape the instance.
// The stack is captured once at construction and starts with the message as it was
// formatted at that time.
type Error struct {
	Message    string
	Properties Properties

	class *Class
	stack []string
	cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Class returns the class the instance was created from
func (e *Error) Class() *Class {
	return e.class
}

// Name returns the class's own name, e.g. "foo" for "MyError.foo".
// It is empty for an Error not built by a Class.
func (e *Error) Name() string {
	if e.class == nil {
		return ""
	}
	return e.class.name
}

// FullName returns the dotted class name
func (e *Error) FullName() string {
	if e.class == nil {
		return ""
	}
	return e.class.fullName
}

// Code returns the "code" property as a string, or "" when unset
func (e *Error) Code() string {
	code, ok := e.Properties["code"]
	if !ok || code == nil {
		return ""
	}
	return fmt.Sprint(code)
}

// Get returns a single property
func (e *Error) Get(key string) (any, bool) {
	v, ok := e.Properties[key]
	return v, ok
}

// Stack returns the stack as one newline separated string
func (e *Error) Stack() string {
	return strings.Join(e.stack, "\n")
}

// StackLines returns a copy of the stack lines
func (e *Error) StackLines() []string {
	return append([]string(nil), e.stack...)
}

// InstanceOf reports whether c is the instance's class or one of its ancestors
func (e *Error) InstanceOf(c *Class) bool {
	if c == nil {
		return false
	}
	for k := e.class; k != nil; k = k.parent {
		if k == c {
			return true
		}
	}
	return false
}

// Is lets errors.Is match an instance against any class in its ancestry
func (e *Error) Is(target error) bool {
	c, ok := target.(*Class)
	return ok && e.InstanceOf(c)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause wraps another error as the cause of this error
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// WithDetail sets a single property and returns the same error
func (e *Error) WithDetail(key string, value any) *Error {
	if reserved[key] {
		return e
	}
	if e.Properties == nil {
		e.Properties = Properties{}
	}
	e.Properties[key] = value
	return e
}

// WithDetails sets several properties and returns the same error
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// MarshalJSON renders the name, message, stack (as a list of lines), cause and every
// property. Values that cannot be encoded are rendered with %v. A wrapped cause
// replaces a "cause" property.
func (e *Error) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Properties)+4)
	for k, v := range e.Properties {
		if reserved[k] {
			continue
		}
		if _, err := json.Marshal(v); err != nil {
			v = fmt.Sprintf("%v", v)
		}
		out[k] = v
	}
	if e.cause != nil {
		out["cause"] = e.cause.Error()
	}
	out["name"] = e.Name()
	out["message"] = e.Message
	stack := e.stack
	if stack == nil {
		stack = []string{}
	}
	out["stack"] = stack

	return json.Marshal(out)
}

// ToJSON returns the JSON representation as a string
func (e *Error) ToJSON() string {
	data, err := e.MarshalJSON()
	if err != nil {
		return fmt.Sprintf(`{"name":%q,"message":%q}`, e.Name(), e.Message)
	}
	return string(data)
}

// Format implements fmt.Formatter. %+v prints the stack and the cause chain.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, e.Stack())
			if e.cause != nil {
				_, _ = fmt.Fprintf(s, "\ncaused by: %+v", e.cause)
			}
			return
		}
		_, _ = io.WriteString(s, e.Message)
	case 's':
		_, _ = io.WriteString(s, e.Message)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Message)
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(errx.Error=%s)", verb, e.Message)
	}
}

// IsA reports whether any error in err's chain is an instance of c
func IsA(err error, c *Class) bool {
	return c != nil && errors.Is(err, c)
}

// IsCode checks if an error is an Error with a specific code
func IsCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code() == code
	}
	return false
}

// Print renders an error with its properties in a stable order
func Print(err error) string {
	if err == nil {
		return "nil"
	}

	var e *Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("Error: %s", err.Error())
	}

	if len(e.Properties) == 0 {
		return fmt.Sprintf("Error: %s", e.Error())
	}

	keys := make([]string, 0, len(e.Properties))
	for k := range e.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %v", k, e.Properties[k])
	}
	return fmt.Sprintf("Error: %s, Properties: {%s}", e.Error(), strings.Join(parts, ", "))
}
