package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

func created(id string) domain.Event {
	return domain.TaskCreated{At: time.Unix(0, 0), Task: domain.Task{ID: id}}
}

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := New()
	var got []string

	bus.Subscribe(domain.EventTaskCreated, SubscriberFunc(func(e domain.Event) { got = append(got, "first:"+e.TaskID()) }))
	bus.Subscribe(domain.EventTaskCreated, SubscriberFunc(func(e domain.Event) { got = append(got, "second:"+e.TaskID()) }))

	bus.Publish(created("a"))

	assert.Equal(t, []string{"first:a", "second:a"}, got)
}

func TestBus_FiltersByType(t *testing.T) {
	bus := New()
	var created, updated int

	bus.Subscribe(domain.EventTaskCreated, SubscriberFunc(func(domain.Event) { created++ }))
	bus.Subscribe(domain.EventStatusUpdated, SubscriberFunc(func(domain.Event) { updated++ }))

	bus.Publish(domain.StatusUpdated{ID: "a", Status: domain.StatusDone})

	assert.Equal(t, 0, created)
	assert.Equal(t, 1, updated)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	var calls int
	sub := bus.Subscribe(domain.EventTaskCreated, SubscriberFunc(func(domain.Event) { calls++ }))

	assert.True(t, bus.Unsubscribe(sub))
	assert.False(t, bus.Unsubscribe(sub))

	bus.Publish(created("a"))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, bus.Len(domain.EventTaskCreated))
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := New()
	var types []domain.EventType
	subs := bus.SubscribeAll(SubscriberFunc(func(e domain.Event) { types = append(types, e.Type()) }))

	bus.Publish(created("a"))
	bus.Publish(domain.StatusUpdated{ID: "a", Status: domain.StatusDoing})

	assert.Len(t, subs, 2)
	assert.Equal(t, []domain.EventType{domain.EventTaskCreated, domain.EventStatusUpdated}, types)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := New()
	assert.NotPanics(t, func() { bus.Publish(created("a")) })
}
