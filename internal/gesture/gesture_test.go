package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeClamp(t *testing.T) {
	tests := []struct {
		name  string
		start int
		from  float64
		to    float64
		want  int
	}{
		{"grow", 420, 100, 180, 500},
		{"shrink", 420, 100, 40, 360},
		{"clamped low", 420, 500, 0, MinWidth},
		{"clamped high", 420, 0, 2000, MaxWidth},
		{"no motion", 420, 10, 10, 420},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewBus()
			var got int
			r := NewResize(bus, func(w int) { got = w })

			r.Begin(tt.from, tt.start)
			bus.Publish(Event{Kind: Move, X: tt.to})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResizeWritesEveryMove(t *testing.T) {
	bus := NewBus()
	var widths []int
	r := NewResize(bus, func(w int) { widths = append(widths, w) })

	r.Begin(0, 420)
	for _, x := range []float64{10, 20, 30} {
		bus.Publish(Event{Kind: Move, X: x})
	}
	assert.Equal(t, []int{430, 440, 450}, widths)
}

func TestResizeEndUnsubscribes(t *testing.T) {
	bus := NewBus()
	calls := 0
	r := NewResize(bus, func(int) { calls++ })

	r.Begin(0, 420)
	require.Equal(t, 1, bus.Len())
	require.True(t, r.Active())

	bus.Publish(Event{Kind: Up})
	assert.False(t, r.Active())
	assert.Equal(t, 0, bus.Len())

	bus.Publish(Event{Kind: Move, X: 50})
	assert.Equal(t, 0, calls)
}

func TestResizeCloseMidDrag(t *testing.T) {
	bus := NewBus()
	r := NewResize(bus, func(int) {})

	r.Begin(0, 420)
	r.Close()
	assert.Equal(t, 0, bus.Len())
	assert.False(t, r.Active())

	r.Close()
	r.End()
	assert.Equal(t, 0, bus.Len())
}

func TestResizeBeginTwice(t *testing.T) {
	bus := NewBus()
	var got int
	r := NewResize(bus, func(w int) { got = w })

	r.Begin(0, 420)
	r.Begin(100, 300)
	assert.Equal(t, 1, bus.Len())

	bus.Publish(Event{Kind: Move, X: 150})
	assert.Equal(t, 350, got)
}

func TestBusDispatchOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		bus.Subscribe(func(Event) { order = append(order, i) })
	}
	bus.Publish(Event{Kind: Move})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestBusUnsubscribeDuringDispatch(t *testing.T) {
	bus := NewBus()
	var second *Subscription
	secondCalls := 0

	first := bus.Subscribe(func(Event) { second.Cancel() })
	second = bus.Subscribe(func(Event) { secondCalls++ })

	bus.Publish(Event{Kind: Move})
	assert.Equal(t, 0, secondCalls)
	assert.Equal(t, 1, bus.Len())

	first.Cancel()
	first.Cancel()
	assert.Equal(t, 0, bus.Len())
}

func TestBusSubscribeDuringDispatch(t *testing.T) {
	bus := NewBus()
	lateCalls := 0
	bus.Subscribe(func(Event) {
		bus.Subscribe(func(Event) { lateCalls++ })
	})

	bus.Publish(Event{Kind: Move})
	assert.Equal(t, 0, lateCalls)
	assert.Equal(t, 2, bus.Len())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "move", Move.String())
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "unknown", Kind(7).String())
}
