// Package catalog wraps the destination service in an observable store.
//
// The admin UI keeps one catalog view open per browser tab; every tab must
// see the same state. Instead of each tab re-polling, the store is the single
// write path for destinations and fans out a change event to all subscribers
// after every successful mutation. The database remains the only source of
// truth — events carry the persisted record, never client-held state.
package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jdelgad/travel-planner/internal/domain"
)

// EventType identifies what happened to a destination.
type EventType string

// The change kinds emitted by the store.
const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event is one catalog change. For deletions only the ID field of
// Destination is populated.
type Event struct {
	Type        EventType          `json:"type"`
	Destination domain.Destination `json:"destination"`
}

// DestinationServicer defines the catalog operations the store decorates.
// It is satisfied by *service.DestinationService.
type DestinationServicer interface {
	Create(ctx context.Context, dest domain.Destination) (domain.Destination, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	List(ctx context.Context, activeOnly bool, p domain.PaginationParams) ([]domain.Destination, int64, error)
	Update(ctx context.Context, dest domain.Destination) (domain.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Store decorates a DestinationServicer with subscribe/notify fan-out.
// Reads pass straight through; writes publish an Event after they succeed.
// Nothing is published on error, so subscribers never observe a failed write.
type Store struct {
	svc DestinationServicer

	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

// subscriber is one listening channel. The channel is buffered; a subscriber
// that falls behind misses events rather than blocking the write path.
type subscriber struct {
	ch chan Event
}

// subscriberBuffer is the per-subscriber event queue length.
const subscriberBuffer = 16

// NewStore constructs a Store over the given destination service.
func NewStore(svc DestinationServicer) *Store {
	return &Store{svc: svc, subs: make(map[*subscriber]struct{})}
}

// Subscribe registers a new listener and returns its event channel together
// with a cancel function. Cancel must be called when the listener goes away;
// it closes the channel and releases the slot.
func (s *Store) Subscribe() (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, sub)
			s.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// SubscriberCount reports the current number of listeners.
func (s *Store) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Create persists a destination and notifies subscribers on success.
func (s *Store) Create(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	created, err := s.svc.Create(ctx, dest)
	if err != nil {
		return domain.Destination{}, err
	}
	s.publish(Event{Type: EventCreated, Destination: created})
	return created, nil
}

// GetByID reads a destination straight from the underlying service.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return s.svc.GetByID(ctx, id)
}

// List reads one page of destinations straight from the underlying service.
func (s *Store) List(ctx context.Context, activeOnly bool, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return s.svc.List(ctx, activeOnly, p)
}

// Update persists changes to a destination and notifies subscribers on success.
func (s *Store) Update(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	updated, err := s.svc.Update(ctx, dest)
	if err != nil {
		return domain.Destination{}, err
	}
	s.publish(Event{Type: EventUpdated, Destination: updated})
	return updated, nil
}

// Delete removes a destination and notifies subscribers on success.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(Event{Type: EventDeleted, Destination: domain.Destination{ID: id}})
	return nil
}

// publish delivers an event to every subscriber without blocking: a full
// subscriber channel drops the event for that subscriber only.
func (s *Store) publish(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for sub := range s.subs {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}
