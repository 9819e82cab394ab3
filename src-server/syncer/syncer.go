// Package syncer owns the feed-to-cache pipeline: fetch the configured
// iCalendar URL, classify each entry against the keyword table, replace
// the cached event list wholesale and persist it.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"foxbot/src-server/ical"
	"foxbot/src-server/model"

	"github.com/google/uuid"
)

var (
	ErrNoSource       = errors.New("no calendar URL configured")
	ErrFetch          = errors.New("can't fetch calendar")
	ErrParse          = errors.New("can't parse calendar")
	ErrPersist        = errors.New("can't persist events")
	ErrSyncInProgress = errors.New("a calendar sync is already running")
)

// Result reports both sides of the classification filter.
type Result struct {
	// Accepted is the number of events stored.
	Accepted int
	// Discarded counts entries dropped for lacking a start date or not
	// matching any keyword. Not an error condition.
	Discarded int
}

type Syncer struct {
	settings    *model.SettingsStore
	events      *model.EventStore
	fallbackUrl string

	// fetch latency in microseconds, drained by the metric package
	fetchLatencyChan chan<- float64

	// guards against overlapping syncs; the cache is replaced
	// wholesale, so two concurrent runs would race on the file
	mu sync.Mutex
}

func New(settings *model.SettingsStore, events *model.EventStore, fallbackUrl string, fetchLatencyChan chan<- float64) *Syncer {
	return &Syncer{
		settings:         settings,
		events:           events,
		fallbackUrl:      fallbackUrl,
		fetchLatencyChan: fetchLatencyChan,
	}
}

// Sync runs one full pipeline pass. An empty explicitUrl falls back to
// the stored settings URL, then the ICAL_URL env fallback. On any
// failure the previously cached list stays authoritative and the zero
// Result is returned alongside the error; callers at the trigger
// boundary log it and move on. A second Sync while one is running is
// rejected with ErrSyncInProgress.
func (s *Syncer) Sync(ctx context.Context, explicitUrl string) (Result, error) {
	if !s.mu.TryLock() {
		return Result{}, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	runID := uuid.NewString()[0:8]
	slog.Debug("calendar sync started", "run_id", runID)

	feedUrl := explicitUrl
	if feedUrl == "" {
		feedUrl = s.settings.IcalUrl()
	}
	if feedUrl == "" {
		feedUrl = s.fallbackUrl
	}
	if feedUrl == "" {
		return Result{}, fmt.Errorf("sync %s: %w, use /set-calendar-url to set one", runID, ErrNoSource)
	}

	startTimer := time.Now()
	body, err := ical.Fetch(ctx, feedUrl)
	if err != nil {
		return Result{}, fmt.Errorf("sync %s: %w: %s", runID, ErrFetch, err)
	}
	if s.fetchLatencyChan != nil {
		select {
		case s.fetchLatencyChan <- float64(time.Since(startTimer).Microseconds()):
		default:
		}
	}

	entries, skipped, err := ical.Parse(body)
	if err != nil {
		return Result{}, fmt.Errorf("sync %s: %w: %s", runID, ErrParse, err)
	}

	accepted := make([]model.Event, 0, len(entries))
	discarded := skipped
	for _, entry := range entries {
		eventType, ok := model.ClassifyTitle(entry.Summary)
		if !ok {
			discarded++
			continue
		}
		accepted = append(accepted, model.Event{
			EventType:  eventType,
			Date:       entry.Date,
			EventTitle: entry.Summary,
		})
	}

	if err := s.events.Replace(accepted); err != nil {
		return Result{}, fmt.Errorf("sync %s: %w: %s", runID, ErrPersist, err)
	}

	slog.Info("calendar sync complete",
		"run_id", runID,
		"url_source", urlSource(explicitUrl, s.settings.IcalUrl()),
		"accepted", len(accepted),
		"discarded", discarded)
	return Result{Accepted: len(accepted), Discarded: discarded}, nil
}

func urlSource(explicitUrl, settingsUrl string) string {
	switch {
	case explicitUrl != "":
		return "explicit"
	case settingsUrl != "":
		return "settings"
	default:
		return "env"
	}
}
