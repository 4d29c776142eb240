// Package eventx publishes typed events on an in-process bus.
//
// Its main use here is observing an errx registry:
//
//	bus := eventx.NewMemoryBus()
//	eventx.Attach(errx.Default, bus, "billing")
//
//	eventx.SubscribeTyped(ctx, bus, eventx.ClassDefinedEvent,
//		func(e eventx.TypedEvent[eventx.ClassDefined]) error {
//			log.Printf("new error class %s", e.Data().FullName)
//			return nil
//		})
//
// Failures are errx classes under EventError.
package eventx
