// Package hub is the fan-out registry for live chat: it maps a trip id
// to the set of connections currently subscribed to that trip.
package hub

import (
	"sync"

	"github.com/vbelov/tripline/internal/model"
)

// Subscriber receives broadcast events. Send reports false once the
// subscriber is gone, which drops it from the group.
type Subscriber interface {
	GetName() string
	SendEvent(evt *model.ChatEvent) bool
}

type Hub struct {
	groups sync.Map
}

type group struct {
	subs sync.Map
}

func New() *Hub {
	return &Hub{groups: sync.Map{}}
}

func (h *Hub) Subscribe(tripID uint, s Subscriber) {
	g, _ := h.groups.LoadOrStore(tripID, &group{})

	g.(*group).subs.Store(s.GetName(), s)
}

// Unsubscribe is idempotent: removing an absent subscriber is a no-op.
func (h *Hub) Unsubscribe(tripID uint, name string) {
	if g, ok := h.groups.Load(tripID); ok {
		g.(*group).subs.Delete(name)
	}
}

// Publish pushes the event to every live subscriber of the trip. With
// no subscribers attached it is a silent drop; the message stays
// durable in the store either way.
func (h *Hub) Publish(tripID uint, evt *model.ChatEvent) {
	g, ok := h.groups.Load(tripID)

	if !ok {
		return
	}

	g.(*group).subs.Range(func(key, value any) bool {
		if s, ok := value.(Subscriber); ok {
			if !s.SendEvent(evt) {
				g.(*group).subs.Delete(key)
			}
		}

		return true
	})
}

func (h *Hub) Subscribers(tripID uint) int {
	g, ok := h.groups.Load(tripID)

	if !ok {
		return 0
	}

	n := 0

	g.(*group).subs.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}
