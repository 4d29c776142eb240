package errx

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/Abraxas-365/customerr/configx"
	"github.com/Abraxas-365/customerr/logx"
)

const (
	// EnvPrefix is the environment prefix read for registry defaults, e.g.
	// CUSTOMERR_STACK_LENGTH=4.
	EnvPrefix = "CUSTOMERR_"

	// ConfigFileEnv names an optional YAML file with the same keys, e.g.
	// "stack: {length: 4}". Values in the file override the environment.
	ConfigFileEnv = "CUSTOMERR_CONFIG_FILE"
)

// Registry maps dotted class names to classes. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	classes     map[string]*Class
	listeners   []func(*Class)
	stackLength int
	logger      *logx.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithStackLength sets the default number of stack frames per instance.
// Negative values are ignored.
func WithStackLength(n int) Option {
	return func(r *Registry) {
		if n >= 0 {
			r.stackLength = n
		}
	}
}

// WithConfig reads the default stack length from "stack.length"
func WithConfig(cfg configx.Config) Option {
	return func(r *Registry) {
		if cfg == nil {
			return
		}
		if n := cfg.Get("stack.length").AsIntDefault(-1); n >= 0 {
			r.stackLength = n
		}
	}
}

// WithLogger sets the logger used for registration messages
func WithLogger(l *logx.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// Default is the process-wide registry behind Define, MustDefine and Lookup.
// It holds the built-in classes.
var Default = NewRegistry()

// Built-in classes used to report misuse of the package
var (
	CustomError *Class
	NameError   *Class
	ExistError  *Class
	ConfigError *Class
)

func init() {
	CustomError = Default.MustDefine("CustomError")
	NameError = CustomError.MustExtend("name", Properties{"code": "ENAME"})
	ExistError = CustomError.MustExtend("exist", Properties{"code": "EEXIST"})
	ConfigError = CustomError.MustExtend("config", Properties{"code": "EINVALID"})
}

// NewRegistry creates an empty registry. The default stack length comes from
// the CUSTOMERR_CONFIG_FILE file, then CUSTOMERR_STACK_LENGTH, then
// DefaultStackLength; options apply last.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		classes:     make(map[string]*Class),
		stackLength: DefaultStackLength,
		logger:      logx.GetLogger(),
	}

	cfg, err := configx.NewBuilder().
		WithDefaults(map[string]any{"stack": map[string]any{"length": DefaultStackLength}}).
		FromFile(os.Getenv(ConfigFileEnv)).
		FromEnv(EnvPrefix).
		Build()
	if err != nil {
		r.logger.Warn("errx: loading configuration: %v", err)
	} else {
		WithConfig(cfg)(r)
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StackLength returns the default number of frames captured per instance
func (r *Registry) StackLength() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stackLength
}

// Define declares a top-level class.
//
// The optional arguments are the default properties and the hook, in that order; a
// hook may also come first. Properties may be any map keyed by a string kind; the
// hook may be a Hook or any func with its signature. Other arguments are dropped
// and logged at DEBUG. Fails with a NameError for an invalid name and an
// ExistError when the name is taken.
func (r *Registry) Define(name string, args ...any) (*Class, error) {
	return r.define(1, name, args)
}

// MustDefine is like Define but panics on error. Use it for package level declarations.
func (r *Registry) MustDefine(name string, args ...any) *Class {
	c, err := r.define(1, name, args)
	if err != nil {
		panic(err)
	}
	return c
}

// define backs every top-level entry point. skip 0 is the caller of define.
func (r *Registry) define(skip int, name string, args []any) (*Class, error) {
	props, hook := classArgs(r.logger, name, args)
	return r.register(skip+1, nil, name, props, rootRun(hook))
}

// Lookup returns a class by its dotted name
func (r *Registry) Lookup(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[name]
	return c, ok
}

// Names returns every registered name, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnDefine registers fn to be called after each successful Define or Extend
func (r *Registry) OnDefine(fn func(*Class)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// register validates and stores a new class. Children are unique per parent; the
// dotted name is also unique across the registry. skip 0 is the caller of register
// and decides where the stack of a failure starts.
func (r *Registry) register(skip int, parent *Class, name string, defaults Properties, run runFunc) (*Class, error) {
	if err := validateName(name); err != nil {
		r.logger.Warn("errx: rejected class name %q", name)
		return nil, failure(NameError, skip+1, Properties{"received": name},
			"Cannot produce custom error class without a valid name. Expected a non empty string without dots or spaces. Received: %q", name)
	}

	fullName := name
	if parent != nil {
		fullName = parent.fullName + "." + name
	}

	r.mu.Lock()
	_, taken := r.classes[fullName]
	if parent != nil {
		if _, ok := parent.children[name]; ok {
			taken = true
		}
	}
	if taken {
		r.mu.Unlock()
		r.logger.Warn("errx: class %s already exists", fullName)
		return nil, failure(ExistError, skip+1, Properties{"class": fullName},
			"A custom error with this class name already exists: %s", fullName)
	}

	c := &Class{
		name:     name,
		fullName: fullName,
		parent:   parent,
		defaults: defaults,
		run:      run,
		registry: r,
		children: make(map[string]*Class),
	}
	r.classes[fullName] = c
	if parent != nil {
		parent.children[name] = c
	}
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()

	r.logger.Debug("errx: defined error class %s", fullName)
	for _, fn := range listeners {
		fn(c)
	}
	return c, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	if strings.Contains(name, ".") || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

// failure builds one of the built-in errors. skip 0 is the caller of failure.
func failure(c *Class, skip int, props Properties, format string, args ...any) error {
	message := fmt.Sprintf(format, args...)
	if c == nil {
		// built-ins are not registered yet
		return fmt.Errorf("errx: %s", message)
	}
	e, err := c.construct(skip+1, message, props, nil)
	if err != nil {
		return err
	}
	return e
}

// configFailure reports an invalid Configuration. skip 0 is the caller of configFailure.
func configFailure(skip int, cause error) error {
	err := failure(ConfigError, skip+1, Properties{"option": StackLengthKey},
		"Invalid configuration: %v", cause)
	if e, ok := err.(*Error); ok {
		return e.WithCause(cause)
	}
	return err
}

// Define declares a top-level class in the Default registry
func Define(name string, args ...any) (*Class, error) {
	return Default.define(1, name, args)
}

// MustDefine declares a top-level class in the Default registry and panics on error
func MustDefine(name string, args ...any) *Class {
	c, err := Default.define(1, name, args)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns a class from the Default registry
func Lookup(name string) (*Class, bool) {
	return Default.Lookup(name)
}
