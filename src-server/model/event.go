package model

import "strings"

// EventType is the classification bucket a calendar entry falls into.
// Only titles matching one of the keyword patterns below are kept at all.
type EventType string

const (
	EventTypeDressDay         EventType = "dress_day"
	EventTypeHall             EventType = "hall"
	EventTypeLateStart        EventType = "late_start"
	EventTypeExtendedHomeroom EventType = "extended_homeroom"
)

// Matching happens in this order; the first keyword found in the
// case-folded title wins.
var eventTypeKeywords = []struct {
	Type    EventType
	Keyword string
}{
	{EventTypeDressDay, "dress day"},
	{EventTypeHall, "hall:"},
	{EventTypeLateStart, "late start"},
	{EventTypeExtendedHomeroom, "extended homeroom"},
}

var eventTypeDisplay = map[EventType]string{
	EventTypeDressDay:         "Dress Day",
	EventTypeHall:             "Hall",
	EventTypeLateStart:        "Late Start",
	EventTypeExtendedHomeroom: "Extended Homeroom",
}

var eventTypeEmoji = map[EventType]string{
	EventTypeDressDay:         "🤵‍♂️",
	EventTypeHall:             "🏛️",
	EventTypeLateStart:        "⏰",
	EventTypeExtendedHomeroom: "🏠",
}

// Event types that warrant an @everyone ping in the daily digest.
var pingEventTypes = map[EventType]struct{}{
	EventTypeDressDay:         {},
	EventTypeLateStart:        {},
	EventTypeExtendedHomeroom: {},
}

// A classified calendar entry. Date is a plain YYYY-MM-DD string; the
// on-disk cache is a JSON array of these.
type Event struct {
	EventType  EventType `json:"event_type"`
	Date       string    `json:"date"`
	EventTitle string    `json:"event_title"`
}

// ClassifyTitle runs a summary through the keyword table and returns the
// matching type. The match is a case-insensitive substring test; table
// order breaks ties. ok is false when nothing matches and the entry
// should be dropped.
func ClassifyTitle(title string) (eventType EventType, ok bool) {
	lowered := strings.ToLower(title)
	for _, entry := range eventTypeKeywords {
		if strings.Contains(lowered, entry.Keyword) {
			return entry.Type, true
		}
	}
	return "", false
}

// AllEventTypes returns the known types in classification order.
func AllEventTypes() []EventType {
	types := make([]EventType, 0, len(eventTypeKeywords))
	for _, entry := range eventTypeKeywords {
		types = append(types, entry.Type)
	}
	return types
}

func (t EventType) DisplayName() string {
	if name, ok := eventTypeDisplay[t]; ok {
		return name
	}
	return string(t)
}

func (t EventType) Emoji() string {
	if emoji, ok := eventTypeEmoji[t]; ok {
		return emoji
	}
	return "📌"
}

// ShouldPing reports whether the daily digest pings @everyone for this
// type (when the ping setting is enabled).
func (t EventType) ShouldPing() bool {
	_, ok := pingEventTypes[t]
	return ok
}
