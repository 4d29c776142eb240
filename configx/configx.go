// Package configx provides layered configuration built from prioritized sources.
//
// Sources are loaded in ascending priority order, so a value from a higher
// priority source (the environment) replaces the same key from a lower one
// (defaults). Nested keys are addressed with dots: "stack.length".
package configx

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Config represents the main configuration interface
type Config interface {
	// Get retrieves a configuration value by key
	Get(key string) Value

	// Set sets a configuration value
	Set(key string, val any)

	// Has checks if a configuration key exists
	Has(key string) bool

	// AllSettings returns all settings as a map
	AllSettings() map[string]any

	// AddSource adds a configuration source and reloads
	AddSource(source Source) error

	// LoadAll reloads all configuration sources
	LoadAll() error
}

// Source represents a configuration source
type Source interface {
	// Load loads configuration values from the source
	Load() (map[string]any, error)

	// Name returns the name of the source
	Name() string

	// Priority returns the priority of the source (higher values override lower)
	Priority() int
}

// Value wraps a configuration value and provides type conversion methods
type Value interface {
	// IsSet returns true if the value exists
	IsSet() bool

	// Raw returns the underlying value
	Raw() any

	// AsString returns the value as a string
	AsString() string

	// AsStringDefault returns the value as a string or a default value
	AsStringDefault(def string) string

	// AsInt returns the value as an int
	AsInt() int

	// AsIntDefault returns the value as an int or a default value
	AsIntDefault(def int) int

	// AsBoolDefault returns the value as a bool or a default value
	AsBoolDefault(def bool) bool
}

const (
	PriorityDefault = 10 // Lowest priority
	PriorityEnv     = 20
	PriorityFile    = 30
	PriorityMap     = 40 // Highest priority
)

// configuration is the concrete implementation of Config
type configuration struct {
	sync.RWMutex
	values  map[string]any
	sources []Source
}

// New creates a Config from the given sources
func New(sources ...Source) (Config, error) {
	cfg := &configuration{
		values: make(map[string]any),
	}
	cfg.sources = append(cfg.sources, sources...)

	if err := cfg.LoadAll(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get retrieves a configuration value by key
func (c *configuration) Get(key string) Value {
	c.RLock()
	defer c.RUnlock()

	return newValue(key, c.findValue(key))
}

// findValue walks dot-separated keys through nested maps
func (c *configuration) findValue(key string) any {
	parts := strings.Split(key, ".")
	current := c.values

	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil
		}
		if i == len(parts)-1 {
			return v
		}

		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		current = m
	}

	return nil
}

// Set sets a configuration value
func (c *configuration) Set(key string, val any) {
	c.Lock()
	defer c.Unlock()

	setNested(c.values, strings.Split(key, "."), val)
}

func setNested(dst map[string]any, parts []string, val any) {
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = val
}

// Has checks if a configuration key exists
func (c *configuration) Has(key string) bool {
	c.RLock()
	defer c.RUnlock()

	return c.findValue(key) != nil
}

// AllSettings returns a copy of all settings
func (c *configuration) AllSettings() map[string]any {
	c.RLock()
	defer c.RUnlock()

	return deepCopyMap(c.values)
}

// AddSource adds a configuration source and reloads every source
func (c *configuration) AddSource(source Source) error {
	c.Lock()
	c.sources = append(c.sources, source)
	c.Unlock()

	return c.LoadAll()
}

// LoadAll reloads all configuration sources in priority order
func (c *configuration) LoadAll() error {
	c.Lock()
	defer c.Unlock()

	sort.SliceStable(c.sources, func(i, j int) bool {
		return c.sources[i].Priority() < c.sources[j].Priority()
	})

	newValues := make(map[string]any)
	for _, source := range c.sources {
		data, err := source.Load()
		if err != nil {
			return fmt.Errorf("error loading from source %s: %w", source.Name(), err)
		}
		mergeMapRecursive(newValues, data)
	}

	c.values = newValues
	return nil
}

// deepCopyMap creates a deep copy of a map
func deepCopyMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))

	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			result[k] = deepCopyMap(nested)
			continue
		}
		result[k] = v
	}

	return result
}

// mergeMapRecursive merges src into dst; maps merge, everything else replaces
func mergeMapRecursive(dst, src map[string]any) {
	for k, v := range src {
		srcMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}

		if dstMap, ok := dst[k].(map[string]any); ok {
			mergeMapRecursive(dstMap, srcMap)
			continue
		}
		dst[k] = deepCopyMap(srcMap)
	}
}

//-----------------------------------------------------------------------------
// Value implementation
//-----------------------------------------------------------------------------

type value struct {
	key string
	val any
}

func newValue(key string, val any) Value {
	return &value{key: key, val: val}
}

func (v *value) IsSet() bool {
	return v.val != nil
}

func (v *value) Raw() any {
	return v.val
}

func (v *value) AsString() string {
	return v.AsStringDefault("")
}

func (v *value) AsStringDefault(def string) string {
	switch val := v.val.(type) {
	case nil:
		return def
	case string:
		return val
	case int, int64, uint, uint64, float32, float64, bool:
		return fmt.Sprintf("%v", val)
	default:
		return def
	}
}

func (v *value) AsInt() int {
	return v.AsIntDefault(0)
}

func (v *value) AsIntDefault(def int) int {
	switch val := v.val.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case uint:
		return int(val)
	case uint64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}

	return def
}

func (v *value) AsBoolDefault(def bool) bool {
	switch val := v.val.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "y", "1":
			return true
		case "false", "no", "n", "0":
			return false
		}
	}

	return def
}

// -----------------------------------------------------------------------------
// Builder
// -----------------------------------------------------------------------------

// Builder provides a fluent API for building configuration
type Builder interface {
	// FromEnv adds an environment variable source
	FromEnv(prefix string) Builder

	// FromFile adds a YAML or JSON file source; a missing file is skipped
	FromFile(path string) Builder

	// FromMap adds a map source
	FromMap(values map[string]any, name string) Builder

	// WithDefaults adds default values
	WithDefaults(defaults map[string]any) Builder

	// Build builds the configuration
	Build() (Config, error)
}

type builder struct {
	sources []Source
}

// NewBuilder creates a new configuration builder
func NewBuilder() Builder {
	return &builder{}
}

func (b *builder) FromEnv(prefix string) Builder {
	b.sources = append(b.sources, NewEnvSource(prefix, PriorityEnv))
	return b
}

func (b *builder) FromFile(path string) Builder {
	b.sources = append(b.sources, NewFileSource(path, PriorityFile))
	return b
}

func (b *builder) FromMap(values map[string]any, name string) Builder {
	b.sources = append(b.sources, NewMapSource(values, name, PriorityMap))
	return b
}

func (b *builder) WithDefaults(defaults map[string]any) Builder {
	b.sources = append(b.sources, NewMapSource(defaults, "defaults", PriorityDefault))
	return b
}

func (b *builder) Build() (Config, error) {
	return New(b.sources...)
}
