package eventx

import (
	"context"

	"github.com/Abraxas-365/customerr/errx"
	"github.com/Abraxas-365/customerr/logx"
)

// ClassDefinedEvent is published for every class added to an attached registry
const ClassDefinedEvent = "errx.class.defined"

// ClassDefined describes a newly registered error class
type ClassDefined struct {
	Name     string         `json:"name"`
	FullName string         `json:"full_name"`
	Parent   string         `json:"parent,omitempty"`
	Defaults map[string]any `json:"defaults"`
}

// Attach publishes a ClassDefinedEvent on bus for every class reg defines from now on.
// Publishing failures are logged, never returned to the definer.
func Attach(reg *errx.Registry, bus EventBus, source string) {
	if reg == nil || bus == nil {
		return
	}

	reg.OnDefine(func(c *errx.Class) {
		data := ClassDefined{
			Name:     c.Name(),
			FullName: c.FullName(),
			Defaults: c.Defaults(),
		}
		if p := c.Parent(); p != nil {
			data.Parent = p.FullName()
		}

		opts := DefaultEventOptions()
		opts.Source = source
		event := NewEvent(ClassDefinedEvent, data, opts)

		if err := bus.Publish(context.Background(), event); err != nil {
			logx.Warn("eventx: publishing %s for %s: %v", ClassDefinedEvent, c.FullName(), err)
		}
	})
}
