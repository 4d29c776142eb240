/*
Package errx declares named error classes at runtime and builds error values from them.

A class has a dotted name, a set of default properties and an optional construction
hook. Classes are registered in a Registry; names are unique for the life of the
registry and there is no way to remove one.

# Defining Classes

	var (
		MapError = errx.MustDefine("MapError")

		ErrInUse = MapError.MustExtend("inuse", errx.Properties{
			"message": "The specified key is already in use.",
			"code":    "INUSE",
		})
	)

	err := ErrInUse.New("")
	err.Error() // "MapError.inuse INUSE: The specified key is already in use."

Children inherit their parent's defaults (a copy, taken when Extend runs) and may
override them. Instance properties override both.

# Construction Hooks

A hook runs after the instance is initialized and may rewrite its message or
properties. A child hook receives its parent's hook as a bound value:

	httpErr := errx.MustDefine("HTTPError", func(e *errx.Error, msg string, p errx.Properties, _ errx.Parent) {
		e.Properties["retryable"] = false
	})

	timeout := httpErr.MustExtend("timeout", func(e *errx.Error, msg string, p errx.Properties, parent errx.Parent) {
		parent.Call()
		e.Properties["retryable"] = true
	})

Extending without a hook runs the parent's hook unchanged.

# Checking Errors

Every instance matches its own class and every ancestor through errors.Is:

	if errors.Is(err, MapError) {
		// any MapError.* instance
	}

	errx.IsCode(err, "INUSE")

# Configuration

Make accepts a Configuration with a "stackLength" option (non-negative integer,
default 10, overridable through CUSTOMERR_STACK_LENGTH or CUSTOMERR_CONFIG_FILE). Invalid values fail with a
ConfigError. Misuse of the package itself is reported with its own classes:
NameError (ENAME), ExistError (EEXIST) and ConfigError (EINVALID), all children of
CustomError.
*/
package errx
