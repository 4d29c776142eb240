package eventx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/customerr/errx"
	"github.com/Abraxas-365/customerr/logx"
)

type orderPlaced struct {
	OrderID string `json:"order_id"`
	Total   int    `json:"total"`
}

func quietRegistry() *errx.Registry {
	l := logx.New()
	l.SetLevel(logx.OffLevel)
	return errx.NewRegistry(errx.WithLogger(l))
}

func TestNewEvent(t *testing.T) {
	e := NewEvent("order.placed", orderPlaced{OrderID: "o-1", Total: 5})

	assert.NotEmpty(t, e.ID())
	assert.Equal(t, "order.placed", e.Type())
	assert.Equal(t, "errx", e.Source())
	assert.Equal(t, "1.0", e.Version())
	assert.Equal(t, "o-1", e.Data().OrderID)
	assert.NotNil(t, e.Metadata())
	assert.NotEqual(t, e.ID(), NewEvent("order.placed", orderPlaced{}).ID())
}

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus()

	var got []string
	require.NoError(t, bus.Subscribe(ctx, "a", func(e Event) error {
		got = append(got, "first:"+e.Type())
		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx, "a", func(e Event) error {
		got = append(got, "second:"+e.Type())
		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx, "b", func(Event) error { return nil }))

	require.NoError(t, bus.Publish(ctx, NewEvent("a", 1)))
	require.NoError(t, bus.Publish(ctx, NewEvent("nobody", 1)))

	assert.Equal(t, []string{"first:a", "second:a"}, got)
	assert.Equal(t, 2, bus.HandlerCount("a"))
	assert.Equal(t, []string{"a", "b"}, bus.ListEventTypes())
}

func TestMemoryBus_HandlerErrorsAreJoined(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus()
	boom := errors.New("boom")

	var ran int
	require.NoError(t, bus.Subscribe(ctx, "x", func(Event) error { ran++; return boom }))
	require.NoError(t, bus.Subscribe(ctx, "x", func(Event) error { ran++; return nil }))

	err := bus.Publish(ctx, NewEvent("x", struct{}{}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, ran)
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus()
	require.NoError(t, bus.Subscribe(ctx, "x", func(Event) error { return nil }))

	require.NoError(t, bus.Unsubscribe(ctx, "x"))
	assert.Zero(t, bus.HandlerCount("x"))

	err := bus.Unsubscribe(ctx, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, err, EventError)
	assert.True(t, errx.IsCode(err, "NOTFOUND"))
}

func TestMemoryBus_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bus := NewMemoryBus()
	assert.ErrorIs(t, bus.Subscribe(ctx, "x", func(Event) error { return nil }), context.Canceled)
}

func TestSubscribeTyped(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus()

	var total int
	require.NoError(t, SubscribeTyped(ctx, bus, "order.placed", func(e TypedEvent[orderPlaced]) error {
		total += e.Data().Total
		return nil
	}))

	require.NoError(t, bus.Publish(ctx, NewEvent("order.placed", orderPlaced{Total: 7})))
	assert.Equal(t, 7, total)

	err := bus.Publish(ctx, NewEvent("order.placed", "not an order"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEventType)

	var e *errx.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "string", e.Properties["actual_type"])
	assert.Equal(t, "EventError.type TYPE: The event payload does not have the expected type.", e.Message)
}

func TestJSONRoundTrip(t *testing.T) {
	in := NewEvent("order.placed", orderPlaced{OrderID: "o-9", Total: 3}, EventOptions{
		Source:   "shop",
		Version:  "2",
		Metadata: map[string]any{"tenant": "acme"},
	})

	data, err := ToJSON(in)
	require.NoError(t, err)

	out, err := FromJSON[orderPlaced](data)
	require.NoError(t, err)
	assert.Equal(t, in.ID(), out.ID())
	assert.Equal(t, in.Data(), out.Data())
	assert.Equal(t, "shop", out.Source())
	assert.Equal(t, "acme", out.Metadata()["tenant"])
	assert.True(t, in.Timestamp().Equal(out.Timestamp()))

	_, err = FromJSON[orderPlaced]([]byte("{"))
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = ToJSON(NewEvent("bad", func() {}))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestAttach_PublishesClassDefinitions(t *testing.T) {
	ctx := context.Background()
	reg := quietRegistry()
	bus := NewMemoryBus()
	Attach(reg, bus, "test")

	var seen []ClassDefined
	require.NoError(t, SubscribeTyped(ctx, bus, ClassDefinedEvent, func(e TypedEvent[ClassDefined]) error {
		assert.Equal(t, "test", e.Source())
		seen = append(seen, e.Data())
		return nil
	}))

	base := reg.MustDefine("Billing", errx.Properties{"code": "BILL"})
	base.MustExtend("declined")
	_, err := reg.Define("Billing")
	require.Error(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, ClassDefined{Name: "Billing", FullName: "Billing", Defaults: map[string]any{"code": "BILL"}}, seen[0])
	assert.Equal(t, "declined", seen[1].Name)
	assert.Equal(t, "Billing.declined", seen[1].FullName)
	assert.Equal(t, "Billing", seen[1].Parent)
}
