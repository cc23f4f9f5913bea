// Package realtime is the in-process change feed behind the admin
// consoles: repos publish table changes, admin streams subscribe and
// refetch on anything they receive.
package realtime

import (
	"sync"
	"time"
)

const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
	EventAll    = "*"
)

type Change struct {
	Table string    `json:"table"`
	Event string    `json:"event"`
	ID    string    `json:"id"`
	At    time.Time `json:"at"`
}

type Subscription struct {
	C      chan Change
	table  string
	event  string
	broker *Broker
}

// Unsubscribe must be called when the consuming view is torn down;
// leaked subscriptions keep receiving fan-out forever.
func (s *Subscription) Unsubscribe() {
	s.broker.remove(s)
}

type Broker struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers for changes on one table. event is one of the
// Event constants; EventAll matches every change on the table.
func (b *Broker) Subscribe(table, event string) *Subscription {
	s := &Subscription{
		C:      make(chan Change, 16),
		table:  table,
		event:  event,
		broker: b,
	}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

func (b *Broker) remove(s *Subscription) {
	b.mu.Lock()
	if _, ok := b.subs[s]; ok {
		delete(b.subs, s)
		close(s.C)
	}
	b.mu.Unlock()
}

// Publish fans out without blocking: a consumer with a full buffer
// misses the change, which is harmless because consumers refetch the
// whole table on every delivery anyway.
func (b *Broker) Publish(table, event, id string) {
	c := Change{Table: table, Event: event, ID: id, At: time.Now().UTC()}
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
		if s.table != table {
			continue
		}
		if s.event != EventAll && s.event != event {
			continue
		}
		select {
		case s.C <- c:
		default:
		}
	}
}
