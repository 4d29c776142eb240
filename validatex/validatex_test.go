package validatex

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limits struct {
	StackLength int     `validatex:"min=0,max=100"`
	Name        string  `validatex:"required"`
	Mode        string  `validatex:"oneof=fast slow"`
	Optional    *int    `validatex:"min=1"`
	Ratio       float64 `validatex:"max=1"`
	Inner       inner
	ignored     int `validatex:"required"`
}

type inner struct {
	Depth int `validatex:"min=2"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(limits{StackLength: 10, Name: "x", Mode: "fast", Inner: inner{Depth: 2}})
	assert.NoError(t, err)
}

func TestValidate_CollectsEveryFailure(t *testing.T) {
	zero := 0
	err := Validate(&limits{StackLength: -1, Mode: "medium", Optional: &zero, Ratio: 1.5})
	require.Error(t, err)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{"StackLength", "Name", "Mode", "Optional", "Ratio", "Inner.Depth"}, errs.Fields())
	assert.Contains(t, err.Error(), "StackLength failed min=0 (got -1)")
	assert.Contains(t, err.Error(), "Name failed required")
}

func TestValidate_NilPointerIsOptional(t *testing.T) {
	err := Validate(limits{StackLength: 1, Name: "x", Mode: "slow", Inner: inner{Depth: 3}})
	assert.NoError(t, err)
}

func TestValidate_NotStruct(t *testing.T) {
	assert.ErrorIs(t, Validate(42), ErrNotStruct)
	assert.ErrorIs(t, Validate((*limits)(nil)), ErrNotStruct)
}

func TestValidate_UnknownRule(t *testing.T) {
	type bad struct {
		X int `validatex:"prime"`
	}
	err := Validate(bad{X: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown rule "prime"`)
}

func TestRegisterValidationFunc(t *testing.T) {
	RegisterValidationFunc("even", func(value any, _ string) bool {
		n, ok := value.(int)
		return ok && n%2 == 0
	})

	type withEven struct {
		N int `validatex:"even"`
	}
	assert.NoError(t, Validate(withEven{N: 4}))
	assert.Error(t, Validate(withEven{N: 3}))
}
