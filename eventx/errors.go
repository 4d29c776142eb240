package eventx

import "github.com/Abraxas-365/customerr/errx"

var (
	// EventError is the parent of every eventx failure
	EventError = errx.MustDefine("EventError")

	// ErrEventNotFound reports an event type with no subscribers
	ErrEventNotFound = EventError.MustExtend("notfound", errx.Properties{
		"code":    "NOTFOUND",
		"message": "No handlers are subscribed to this event type.",
	})

	// ErrInvalidEventType reports a typed handler receiving the wrong payload
	ErrInvalidEventType = EventError.MustExtend("type", errx.Properties{
		"code":    "TYPE",
		"message": "The event payload does not have the expected type.",
	})

	// ErrSerializationFailed reports an event that could not be encoded or decoded
	ErrSerializationFailed = EventError.MustExtend("serialize", errx.Properties{
		"code": "SERIALIZE",
	})
)
