package model_test

import (
	"testing"

	"foxbot/src-server/model"
)

func TestClassifyTitle(t *testing.T) {
	cases := []struct {
		title string
		want  model.EventType
		ok    bool
	}{
		{"Hall: Winter Assembly", model.EventTypeHall, true},
		{"HALL: loud title", model.EventTypeHall, true},
		{"Dress Day - Spirit Week", model.EventTypeDressDay, true},
		{"dReSs DaY", model.EventTypeDressDay, true},
		{"Late Start (PD)", model.EventTypeLateStart, true},
		{"Extended Homeroom", model.EventTypeExtendedHomeroom, true},
		{"Math Club", "", false},
		{"", "", false},
		// "hall" without the colon must not match
		{"Study hall all day", "", false},
	}
	for _, c := range cases {
		got, ok := model.ClassifyTitle(c.title)
		if ok != c.ok {
			t.Errorf("ClassifyTitle(%q) ok = %v, want %v", c.title, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("ClassifyTitle(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

// first keyword in table order wins when a title matches several
func TestClassifyTitleTieBreak(t *testing.T) {
	got, ok := model.ClassifyTitle("Dress Day + Late Start")
	if !ok {
		t.Fatal("expected a match")
	}
	if got != model.EventTypeDressDay {
		t.Errorf("got %q, want %q", got, model.EventTypeDressDay)
	}
}

func TestEventTypeTables(t *testing.T) {
	for _, eventType := range model.AllEventTypes() {
		if eventType.DisplayName() == string(eventType) {
			t.Errorf("no display name for %q", eventType)
		}
		if eventType.Emoji() == "📌" {
			t.Errorf("no emoji for %q", eventType)
		}
	}
	if model.EventTypeHall.ShouldPing() {
		t.Error("halls should not ping @everyone")
	}
	for _, urgent := range []model.EventType{
		model.EventTypeDressDay,
		model.EventTypeLateStart,
		model.EventTypeExtendedHomeroom,
	} {
		if !urgent.ShouldPing() {
			t.Errorf("%q should ping @everyone", urgent)
		}
	}
}
