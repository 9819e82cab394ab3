package model

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// EventStore holds the classified events from the last successful
// calendar sync. The in-memory list is authoritative for the process
// lifetime; every Replace rewrites the backing JSON file wholesale.
//
// The list is kept sorted ascending by date. Dates are YYYY-MM-DD
// strings, so plain string comparison gives calendar order.
type EventStore struct {
	mu     sync.RWMutex
	path   string
	events []Event
}

// NewEventStore loads the cached events from path. A missing or
// unreadable file degrades to an empty list rather than failing startup.
func NewEventStore(path string) *EventStore {
	store := &EventStore{
		path:   path,
		events: make([]Event, 0),
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		slog.Info("no cached events file, starting empty", "path", path)
	case err != nil:
		slog.Error("can't read cached events, starting empty", "path", path, "error", err)
	default:
		if err := json.Unmarshal(data, &store.events); err != nil {
			slog.Error("can't decode cached events, starting empty", "path", path, "error", err)
			store.events = make([]Event, 0)
		} else {
			slog.Info("loaded cached events", "path", path, "count", len(store.events))
		}
	}

	return store
}

// Replace swaps the entire event list, sorts it ascending by date and
// rewrites the backing file. On a write error the in-memory list is
// still replaced but the error is returned so the caller can surface it.
func (store *EventStore) Replace(events []Event) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	store.events = sorted

	return store.persist()
}

// persist writes the list to a temp file and renames it over the real
// one, so a crash mid-write never leaves a truncated cache behind.
// Caller must hold the lock.
func (store *EventStore) persist() error {
	data, err := json.MarshalIndent(store.events, "", "  ")
	if err != nil {
		return fmt.Errorf("can't encode events: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(store.path), ".events-*.json")
	if err != nil {
		return fmt.Errorf("can't create temp events file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("can't write temp events file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("can't close temp events file: %w", err)
	}
	if err := os.Rename(tmp.Name(), store.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("can't replace events file: %w", err)
	}
	return nil
}

// All returns a copy of the current list.
func (store *EventStore) All() []Event {
	store.mu.RLock()
	defer store.mu.RUnlock()
	events := make([]Event, len(store.events))
	copy(events, store.events)
	return events
}

// Count returns the number of cached events.
func (store *EventStore) Count() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.events)
}

// UpcomingByType returns up to limit events of the given type whose date
// is today or later, in ascending date order. The source list is already
// sorted, so the first limit matches are the answer.
func (store *EventStore) UpcomingByType(eventType EventType, limit int, today time.Time) []Event {
	if limit <= 0 {
		return []Event{}
	}
	todayStr := today.Format("2006-01-02")

	store.mu.RLock()
	defer store.mu.RUnlock()

	upcoming := make([]Event, 0, limit)
	for _, event := range store.events {
		if len(upcoming) >= limit {
			break
		}
		if event.EventType != eventType || event.Date < todayStr {
			continue
		}
		upcoming = append(upcoming, event)
	}
	return upcoming
}

// EventsOn returns every event whose date matches day, storage order
// preserved.
func (store *EventStore) EventsOn(day time.Time) []Event {
	dayStr := day.Format("2006-01-02")

	store.mu.RLock()
	defer store.mu.RUnlock()

	events := make([]Event, 0)
	for _, event := range store.events {
		if event.Date == dayStr {
			events = append(events, event)
		}
	}
	return events
}

// Tomorrow returns the events for the day after today, for the daily
// digest.
func (store *EventStore) Tomorrow(today time.Time) []Event {
	return store.EventsOn(today.AddDate(0, 0, 1))
}
