package configx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(vars ...string) func() []string {
	return func() []string { return vars }
}

type failingSource struct{}

func (failingSource) Load() (map[string]any, error) {
	return nil, errors.New("boom")
}

func (failingSource) Name() string {
	return "failing"
}

func (failingSource) Priority() int {
	return 1
}

func TestEnvSource_NestsAndConverts(t *testing.T) {
	src := NewEnvSource("CUSTOMERR_", PriorityEnv).WithEnviron(fakeEnv(
		"CUSTOMERR_STACK_LENGTH=4",
		"CUSTOMERR_DEBUG=true",
		"CUSTOMERR_RATIO=0.5",
		"CUSTOMERR_NAME=svc",
		"OTHER_VALUE=ignored",
		"MALFORMED",
	))

	data, err := src.Load()
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"stack": map[string]any{"length": 4},
		"debug": true,
		"ratio": 0.5,
		"name":  "svc",
	}, data)
	assert.Equal(t, "env(CUSTOMERR_)", src.Name())
}

func TestConfig_PriorityOrder(t *testing.T) {
	env := NewEnvSource("APP_", PriorityEnv).WithEnviron(fakeEnv("APP_STACK_LENGTH=3"))
	defaults := NewMapSource(map[string]any{
		"stack": map[string]any{"length": 10, "enabled": true},
	}, "defaults", PriorityDefault)

	// added out of order on purpose
	cfg, err := New(env, defaults)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Get("stack.length").AsInt())
	assert.True(t, cfg.Get("stack.enabled").AsBoolDefault(false))
	assert.True(t, cfg.Has("stack"))
	assert.False(t, cfg.Has("stack.missing"))
}

func TestBuilder_DefaultsAndMap(t *testing.T) {
	cfg, err := NewBuilder().
		WithDefaults(map[string]any{"stack": map[string]any{"length": 10}}).
		FromMap(map[string]any{"stack": map[string]any{"length": 2}}, "override").
		Build()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Get("stack.length").AsIntDefault(10))
}

func TestConfig_SetAndAllSettingsCopy(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	cfg.Set("a.b.c", "x")
	assert.Equal(t, "x", cfg.Get("a.b.c").AsString())

	all := cfg.AllSettings()
	all["a"].(map[string]any)["b"] = "mutated"
	assert.Equal(t, "x", cfg.Get("a.b.c").AsString())
}

func TestConfig_LoadErrorIsWrapped(t *testing.T) {
	_, err := New(failingSource{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")
}

func TestValue_Conversions(t *testing.T) {
	assert.Equal(t, 7, newValue("k", "7").AsIntDefault(1))
	assert.Equal(t, 1, newValue("k", "seven").AsIntDefault(1))
	assert.Equal(t, 2, newValue("k", 2.0).AsIntDefault(1))
	assert.Equal(t, 1, newValue("k", 2.5).AsIntDefault(1))
	assert.Equal(t, "def", newValue("k", nil).AsStringDefault("def"))
	assert.Equal(t, "3", newValue("k", 3).AsString())
	assert.False(t, newValue("k", "no").AsBoolDefault(true))
	assert.False(t, newValue("k", nil).IsSet())
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "customerr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stack:\n  length: 3\nname: svc\n"), 0o600))

	cfg, err := NewBuilder().
		WithDefaults(map[string]any{"stack": map[string]any{"length": 10}, "debug": false}).
		FromFile(path).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Get("stack.length").AsInt())
	assert.Equal(t, "svc", cfg.Get("name").AsString())
	assert.False(t, cfg.Get("debug").AsBoolDefault(true))
}

func TestFileSource_MissingAndInvalid(t *testing.T) {
	data, err := NewFileSource(filepath.Join(t.TempDir(), "absent.yaml"), PriorityFile).Load()
	require.NoError(t, err)
	assert.Empty(t, data)

	data, err = NewFileSource("", PriorityFile).Load()
	require.NoError(t, err)
	assert.Empty(t, data)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("stack: [unclosed"), 0o600))
	_, err = NewFileSource(bad, PriorityFile).Load()
	assert.Error(t, err)
}
