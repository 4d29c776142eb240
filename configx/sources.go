package configx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvSource loads configuration from environment variables.
// PREFIX_SERVER_PORT=80 becomes server.port = 80.
type EnvSource struct {
	prefix   string
	priority int
	environ  func() []string
}

// NewEnvSource creates a new environment variable source
func NewEnvSource(prefix string, priority int) *EnvSource {
	return &EnvSource{
		prefix:   prefix,
		priority: priority,
		environ:  os.Environ,
	}
}

// Load loads configuration values from environment variables
func (s *EnvSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	for _, env := range s.environ() {
		key, raw, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		if s.prefix != "" {
			if !strings.HasPrefix(key, s.prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.prefix)
		}
		if key == "" {
			continue
		}

		setNested(result, strings.Split(strings.ToLower(key), "_"), convertValue(raw))
	}

	return result, nil
}

// convertValue converts a string to int, float or bool when it parses as one
func convertValue(raw string) any {
	if i, err := strconv.Atoi(raw); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	switch strings.ToLower(raw) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	}

	return raw
}

// Name returns the name of the source
func (s *EnvSource) Name() string {
	return fmt.Sprintf("env(%s)", s.prefix)
}

// Priority returns the priority of the source
func (s *EnvSource) Priority() int {
	return s.priority
}

// MapSource loads configuration from a map
type MapSource struct {
	values   map[string]any
	name     string
	priority int
}

// NewMapSource creates a new map source holding a copy of values
func NewMapSource(values map[string]any, name string, priority int) *MapSource {
	return &MapSource{
		values:   deepCopyMap(values),
		name:     name,
		priority: priority,
	}
}

// Load loads configuration values from the map
func (s *MapSource) Load() (map[string]any, error) {
	return deepCopyMap(s.values), nil
}

// Name returns the name of the source
func (s *MapSource) Name() string {
	return s.name
}

// Priority returns the priority of the source
func (s *MapSource) Priority() int {
	return s.priority
}

// WithEnviron replaces the environment lookup, mainly for tests
func (s *EnvSource) WithEnviron(environ func() []string) *EnvSource {
	s.environ = environ
	return s
}

// FileSource loads configuration from a YAML (or JSON) file. A missing file
// loads as empty.
type FileSource struct {
	path     string
	priority int
}

// NewFileSource creates a new file source
func NewFileSource(path string, priority int) *FileSource {
	return &FileSource{path: path, priority: priority}
}

// Load reads and decodes the file
func (s *FileSource) Load() (map[string]any, error) {
	result := make(map[string]any)
	if s.path == "" {
		return result, nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("configx: reading %s: %w", s.path, err)
	}

	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("configx: decoding %s: %w", s.path, err)
	}
	if result == nil {
		result = make(map[string]any)
	}
	return result, nil
}

// Name returns the name of the source
func (s *FileSource) Name() string {
	return fmt.Sprintf("file(%s)", s.path)
}

// Priority returns the priority of the source
func (s *FileSource) Priority() int {
	return s.priority
}
