package storex

import (
	"errors"

	"github.com/Abraxas-365/customerr/errx"
)

var (
	// MapError is the parent of every keyed store failure
	MapError = errx.MustDefine("MapError")

	// ErrKeyInUse reports an Add for a key that is already stored
	ErrKeyInUse = MapError.MustExtend("inuse", errx.Properties{
		"message": "The specified key is already in use.",
		"code":    "INUSE",
	})

	// ErrKeyNotFound reports a Get or Remove for a missing key
	ErrKeyNotFound = MapError.MustExtend("dne", errx.Properties{
		"message": "The specified key does not exist.",
		"code":    "DNE",
	})
)

// IsKeyInUse reports whether err is an ErrKeyInUse instance
func IsKeyInUse(err error) bool {
	return errors.Is(err, ErrKeyInUse)
}

// IsKeyNotFound reports whether err is an ErrKeyNotFound instance
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
