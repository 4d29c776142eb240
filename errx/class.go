package errx

import (
	"errors"
	"fmt"
	"sort"
)

// Class is a registered error class. Create one with Define or Extend.
type Class struct {
	name     string
	fullName string
	parent   *Class
	defaults Properties
	run      runFunc
	registry *Registry

	// guarded by registry.mu
	children map[string]*Class
}

// Name returns the class's own name
func (c *Class) Name() string {
	return c.name
}

// FullName returns the dotted name the class is registered under
func (c *Class) FullName() string {
	return c.fullName
}

// Parent returns the parent class, or nil for a top-level class
func (c *Class) Parent() *Class {
	return c.parent
}

// Registry returns the registry the class belongs to
func (c *Class) Registry() *Registry {
	return c.registry
}

// Defaults returns a copy of the default properties
func (c *Class) Defaults() Properties {
	return c.defaults.clone()
}

// Error makes a class usable as an errors.Is target
func (c *Class) Error() string {
	return c.fullName
}

func (c *Class) String() string {
	return c.fullName
}

// Contains reports whether err, or anything it wraps, is an instance of c
func (c *Class) Contains(err error) bool {
	return errors.Is(err, c)
}

// Child returns a direct child by its own name
func (c *Class) Child(name string) (*Class, bool) {
	c.registry.mu.RLock()
	defer c.registry.mu.RUnlock()

	child, ok := c.children[name]
	return child, ok
}

// Children returns the direct children ordered by name
func (c *Class) Children() []*Class {
	c.registry.mu.RLock()
	defer c.registry.mu.RUnlock()

	out := make([]*Class, 0, len(c.children))
	for _, child := range c.children {
		out = append(out, child)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Extend declares a child class named "<parent>.<name>".
//
// The optional arguments are the child's default properties (merged over a copy of
// the parent's) and its hook, in that order; a hook may also come first. Without a
// hook the parent's hook runs unchanged.
func (c *Class) Extend(name string, args ...any) (*Class, error) {
	return c.extend(1, name, args)
}

// MustExtend is like Extend but panics on error. Use it for package level declarations.
func (c *Class) MustExtend(name string, args ...any) *Class {
	child, err := c.extend(1, name, args)
	if err != nil {
		panic(err)
	}
	return child
}

// extend backs Extend and MustExtend. skip 0 is the caller of extend.
func (c *Class) extend(skip int, name string, args []any) (*Class, error) {
	props, hook := classArgs(c.registry.logger, c.fullName+"."+name, args)
	defaults := mergeProperties(c.defaults, props)
	return c.registry.register(skip+1, c, name, defaults, childRun(hook, c.run))
}

// New creates an instance with the registry's default configuration. Every props map
// is layered over the class defaults in order.
func (c *Class) New(message string, props ...Properties) *Error {
	// construct cannot fail without a Configuration
	e, _ := c.construct(1, message, mergeProperties(props...), nil)
	return e
}

// Make creates an instance from loosely typed arguments:
//
//	Make()
//	Make(message)
//	Make(message, props)
//	Make(message, props, config)
//	Make(props)          // message comes from props["message"]
//	Make(props, config)
//
// Arguments of the wrong type are replaced by their defaults. The only failure is an
// invalid Configuration, reported as a ConfigError.
func (c *Class) Make(args ...any) (*Error, error) {
	message, props, config := callArgs(args)
	return c.construct(1, message, props, config)
}

// construct initializes a new instance and runs the hook chain. skip counts the
// frames between construct and the caller whose frame should head the stack.
func (c *Class) construct(skip int, message string, props Properties, config Configuration) (*Error, error) {
	settings, err := normalizeConfiguration(config, c.registry.StackLength())
	if err != nil {
		return nil, configFailure(skip+1, err)
	}

	final := mergeProperties(c.defaults, props)
	if message == "" {
		message, _ = final["message"].(string)
	}

	e := &Error{
		class:      c,
		Properties: make(Properties, len(final)),
	}
	e.Message = formatMessage(c.fullName, final, message)
	e.stack = append([]string{e.Message}, captureStack(skip+1, settings.StackLength)...)

	for k, v := range final {
		if !reserved[k] {
			e.Properties[k] = v
		}
	}

	c.run(e, message, props)
	return e, nil
}

// formatMessage renders "<name> <code>: <message>" or "<name>: <message>"
func formatMessage(fullName string, props Properties, message string) string {
	if code, ok := props["code"]; ok && code != nil {
		return fmt.Sprintf("%s %v: %s", fullName, code, message)
	}
	return fullName + ": " + message
}
