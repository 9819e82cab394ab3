package model_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"foxbot/src-server/model"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatal(err)
	}
	return day
}

func TestEventStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")

	events := []model.Event{
		{EventType: model.EventTypeHall, Date: "2025-12-01", EventTitle: "Hall: Winter Assembly"},
	}
	if err := model.NewEventStore(path).Replace(events); err != nil {
		t.Fatal(err)
	}

	// a fresh load must see exactly what was persisted
	reloaded := model.NewEventStore(path).All()
	if len(reloaded) != 1 {
		t.Fatalf("got %d events, want 1", len(reloaded))
	}
	if reloaded[0] != events[0] {
		t.Errorf("got %+v, want %+v", reloaded[0], events[0])
	}
}

func TestEventStoreReplaceSorts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	store := model.NewEventStore(path)

	if err := store.Replace([]model.Event{
		{EventType: model.EventTypeHall, Date: "2026-01-09", EventTitle: "Hall: Assembly"},
		{EventType: model.EventTypeDressDay, Date: "2025-12-01", EventTitle: "Dress Day"},
		{EventType: model.EventTypeLateStart, Date: "2025-12-15", EventTitle: "Late Start"},
	}); err != nil {
		t.Fatal(err)
	}

	all := store.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Date > all[i].Date {
			t.Errorf("events not sorted: %q before %q", all[i-1].Date, all[i].Date)
		}
	}

	// the sort must survive a reload too
	reloaded := model.NewEventStore(path).All()
	for i := 1; i < len(reloaded); i++ {
		if reloaded[i-1].Date > reloaded[i].Date {
			t.Errorf("reloaded events not sorted: %q before %q", reloaded[i-1].Date, reloaded[i].Date)
		}
	}
}

func TestEventStoreUpcomingByType(t *testing.T) {
	store := model.NewEventStore(filepath.Join(t.TempDir(), "events.json"))
	if err := store.Replace([]model.Event{
		{EventType: model.EventTypeHall, Date: "2025-11-01", EventTitle: "Hall: Old"},
		{EventType: model.EventTypeHall, Date: "2025-12-01", EventTitle: "Hall: A"},
		{EventType: model.EventTypeDressDay, Date: "2025-12-02", EventTitle: "Dress Day"},
		{EventType: model.EventTypeHall, Date: "2025-12-03", EventTitle: "Hall: B"},
		{EventType: model.EventTypeHall, Date: "2025-12-04", EventTitle: "Hall: C"},
	}); err != nil {
		t.Fatal(err)
	}

	today := mustDate(t, "2025-12-01")

	upcoming := store.UpcomingByType(model.EventTypeHall, 5, today)
	if len(upcoming) != 3 {
		t.Fatalf("got %d events, want 3", len(upcoming))
	}
	for _, event := range upcoming {
		if event.Date < "2025-12-01" {
			t.Errorf("returned past event %+v", event)
		}
		if event.EventType != model.EventTypeHall {
			t.Errorf("returned wrong type %+v", event)
		}
	}

	// limit truncates
	if got := store.UpcomingByType(model.EventTypeHall, 2, today); len(got) != 2 {
		t.Errorf("limit 2: got %d events", len(got))
	}
	// a limit of zero returns nothing
	if got := store.UpcomingByType(model.EventTypeHall, 0, today); len(got) != 0 {
		t.Errorf("limit 0: got %d events", len(got))
	}
	// today itself counts as upcoming
	if got := store.UpcomingByType(model.EventTypeHall, 5, today); got[0].Date != "2025-12-01" {
		t.Errorf("today's event missing, first is %q", got[0].Date)
	}
}

func TestEventStoreEventsOn(t *testing.T) {
	store := model.NewEventStore(filepath.Join(t.TempDir(), "events.json"))
	if err := store.Replace([]model.Event{
		{EventType: model.EventTypeHall, Date: "2025-12-01", EventTitle: "Hall: A"},
		{EventType: model.EventTypeDressDay, Date: "2025-12-02", EventTitle: "Dress Day"},
		{EventType: model.EventTypeLateStart, Date: "2025-12-02", EventTitle: "Late Start"},
	}); err != nil {
		t.Fatal(err)
	}

	onSecond := store.EventsOn(mustDate(t, "2025-12-02"))
	if len(onSecond) != 2 {
		t.Fatalf("got %d events, want 2", len(onSecond))
	}

	tomorrow := store.Tomorrow(mustDate(t, "2025-12-01"))
	if len(tomorrow) != 2 {
		t.Fatalf("Tomorrow: got %d events, want 2", len(tomorrow))
	}

	if got := store.EventsOn(mustDate(t, "2025-12-25")); len(got) != 0 {
		t.Errorf("empty day: got %d events", len(got))
	}
}

func TestEventStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := model.NewEventStore(path)
	if store.Count() != 0 {
		t.Errorf("got %d events, want 0", store.Count())
	}
}
