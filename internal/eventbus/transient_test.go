package eventbus_test

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/stretchr/testify/assert"
)

func TestTransientOrdersByPriorityThenRegistration(t *testing.T) {
	ev := eventbus.NewTransient[[]string]()
	var order []string
	ev.Add(eventbus.Origin{Kind: eventbus.OriginAdvance, Name: "A"}, 1, func(v *[]string) { *v = append(*v, "A") })
	ev.Add(eventbus.Origin{Kind: eventbus.OriginAdvance, Name: "B"}, 5, func(v *[]string) { *v = append(*v, "B") })
	ev.Add(eventbus.Origin{Kind: eventbus.OriginAdvance, Name: "C"}, 5, func(v *[]string) { *v = append(*v, "C") })
	ev.Trigger(&order)
	assert.Equal(t, []string{"B", "C", "A"}, order)
}

func TestTransientRemoveOrigin(t *testing.T) {
	ev := eventbus.NewTransient[int]()
	origin := eventbus.Origin{Kind: eventbus.OriginWonder, Name: "Pyramids"}
	ev.Add(origin, 0, func(v *int) { *v++ })
	ev.Add(origin, 0, func(v *int) { *v++ })
	ev.Add(eventbus.Origin{Kind: eventbus.OriginAdvance, Name: "X"}, 0, func(v *int) { *v += 10 })

	assert.Equal(t, 2, ev.CountOrigin(origin))
	removed := ev.RemoveOrigin(origin)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, ev.CountOrigin(origin))

	v := 0
	ev.Trigger(&v)
	assert.Equal(t, 10, v)
}
