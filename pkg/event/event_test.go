// pkg/event/event_test.go
package event

import (
	"testing"
)

func TestBus_PublishReachesSubscriber(t *testing.T) {
	bus := NewEventBus()
	received := 0

	bus.Subscribe(BodyHit, func(e Event) {
		received++
		impact, ok := e.(*ImpactEvent)
		if !ok {
			t.Fatalf("unexpected event type %T", e)
		}
		if impact.BodyIndex != 2 {
			t.Errorf("body index = %d, expected 2", impact.BodyIndex)
		}
	})

	bus.Publish(NewImpactEvent(BodyHit, nil, 2, 0, 10, -5))

	if received != 1 {
		t.Errorf("handler called %d times, expected 1", received)
	}
}

func TestBus_PublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewEventBus()
	// Must not panic or block.
	bus.Publish(&BaseEvent{EventType: GameEnded})
}

func TestBus_MultipleHandlersAllCalled(t *testing.T) {
	bus := NewEventBus()
	calls := make([]int, 0, 2)

	bus.Subscribe(PlayerEliminated, func(Event) { calls = append(calls, 1) })
	bus.Subscribe(PlayerEliminated, func(Event) { calls = append(calls, 2) })

	bus.Publish(NewPlayerEvent(PlayerEliminated, nil, 1))

	if len(calls) != 2 {
		t.Errorf("handlers called %d times, expected 2", len(calls))
	}
}

func TestBus_HandlersFilteredByType(t *testing.T) {
	bus := NewEventBus()
	fired, expired := 0, 0

	bus.Subscribe(ProjectileFired, func(Event) { fired++ })
	bus.Subscribe(ProjectileExpired, func(Event) { expired++ })

	bus.Publish(NewProjectileEvent(ProjectileFired, nil, 0, 1.2, 5))
	bus.Publish(NewProjectileEvent(ProjectileFired, nil, 1, 0.4, 7))

	if fired != 2 {
		t.Errorf("fired handler called %d times, expected 2", fired)
	}
	if expired != 0 {
		t.Errorf("expired handler called %d times, expected 0", expired)
	}
}
