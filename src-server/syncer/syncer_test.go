package syncer_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"foxbot/src-server/model"
	"foxbot/src-server/syncer"
)

const feedBody = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//school//calendar//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:ev-1\r\n" +
	"DTSTART;VALUE=DATE:20251201\r\n" +
	"SUMMARY:Hall: Winter Assembly\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:ev-2\r\n" +
	"DTSTART;VALUE=DATE:20251202\r\n" +
	"SUMMARY:Math Club\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func newStores(t *testing.T) (*model.SettingsStore, *model.EventStore, string) {
	t.Helper()
	dir := t.TempDir()
	settings := model.NewSettingsStore(filepath.Join(dir, "settings.json"))
	events := model.NewEventStore(filepath.Join(dir, "events.json"))
	return settings, events, filepath.Join(dir, "events.json")
}

func TestSyncClassifiesAndStores(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedBody))
	}))
	defer server.Close()

	settings, events, _ := newStores(t)
	s := syncer.New(settings, events, "", nil)

	result, err := s.Sync(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if result.Accepted != 1 {
		t.Errorf("Accepted = %d, want 1", result.Accepted)
	}
	if result.Discarded != 1 {
		t.Errorf("Discarded = %d, want 1", result.Discarded)
	}

	all := events.All()
	if len(all) != 1 {
		t.Fatalf("cached %d events, want 1", len(all))
	}
	want := model.Event{
		EventType:  model.EventTypeHall,
		Date:       "2025-12-01",
		EventTitle: "Hall: Winter Assembly",
	}
	if all[0] != want {
		t.Errorf("got %+v, want %+v", all[0], want)
	}
}

func TestSyncUrlResolution(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedBody))
	}))
	defer server.Close()

	// stored settings URL is used when no explicit URL is given
	settings, events, _ := newStores(t)
	if err := settings.SetIcalUrl(server.URL); err != nil {
		t.Fatal(err)
	}
	s := syncer.New(settings, events, "", nil)
	if result, err := s.Sync(context.Background(), ""); err != nil || result.Accepted != 1 {
		t.Errorf("settings URL: result = %+v, err = %v", result, err)
	}

	// fallback URL is used when neither explicit nor settings resolve
	settings2, events2, _ := newStores(t)
	s2 := syncer.New(settings2, events2, server.URL, nil)
	if result, err := s2.Sync(context.Background(), ""); err != nil || result.Accepted != 1 {
		t.Errorf("fallback URL: result = %+v, err = %v", result, err)
	}
}

// every failure mode must leave the previously cached list and file
// untouched
func TestSyncFailuresLeaveCacheUnchanged(t *testing.T) {
	badStatus := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer badStatus.Close()
	badBody := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not a calendar"))
	}))
	defer badBody.Close()

	cases := []struct {
		name    string
		url     string
		wantErr error
	}{
		{"no source", "", syncer.ErrNoSource},
		{"bad status", badStatus.URL, syncer.ErrFetch},
		{"bad body", badBody.URL, syncer.ErrParse},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			settings, events, eventsPath := newStores(t)
			cached := []model.Event{
				{EventType: model.EventTypeHall, Date: "2025-12-01", EventTitle: "Hall: Cached"},
			}
			if err := events.Replace(cached); err != nil {
				t.Fatal(err)
			}
			fileBefore, err := os.ReadFile(eventsPath)
			if err != nil {
				t.Fatal(err)
			}

			s := syncer.New(settings, events, "", nil)
			result, err := s.Sync(context.Background(), c.url)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("err = %v, want %v", err, c.wantErr)
			}
			if result.Accepted != 0 || result.Discarded != 0 {
				t.Errorf("result = %+v, want zero", result)
			}

			all := events.All()
			if len(all) != 1 || all[0] != cached[0] {
				t.Errorf("in-memory cache changed: %+v", all)
			}
			fileAfter, err := os.ReadFile(eventsPath)
			if err != nil {
				t.Fatal(err)
			}
			if string(fileBefore) != string(fileAfter) {
				t.Error("events file changed on a failed sync")
			}
		})
	}
}

func TestSyncRejectsOverlappingRun(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte(feedBody))
	}))
	defer server.Close()

	settings, events, _ := newStores(t)
	s := syncer.New(settings, events, "", nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Sync(context.Background(), server.URL)
		firstDone <- err
	}()

	<-entered
	if _, err := s.Sync(context.Background(), server.URL); !errors.Is(err, syncer.ErrSyncInProgress) {
		t.Errorf("overlapping sync err = %v, want ErrSyncInProgress", err)
	}
	close(release)

	if err := <-firstDone; err != nil {
		t.Errorf("first sync failed: %v", err)
	}
}

func TestSyncReportsFetchLatency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedBody))
	}))
	defer server.Close()

	settings, events, _ := newStores(t)
	latencyChan := make(chan float64, 1)
	s := syncer.New(settings, events, "", latencyChan)

	if _, err := s.Sync(context.Background(), server.URL); err != nil {
		t.Fatal(err)
	}
	select {
	case latency := <-latencyChan:
		if latency < 0 {
			t.Errorf("latency = %f", latency)
		}
	default:
		t.Error("no latency reported")
	}
}

// failure errors carry the run id so log lines from one run correlate
func TestSyncErrorsCarryRunID(t *testing.T) {
	badStatus := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer badStatus.Close()

	runIDPattern := regexp.MustCompile(`^sync [0-9a-f]{8}: `)

	settings, events, _ := newStores(t)
	s := syncer.New(settings, events, "", nil)

	if _, err := s.Sync(context.Background(), badStatus.URL); err == nil || !runIDPattern.MatchString(err.Error()) {
		t.Errorf("fetch error missing run id: %v", err)
	}
	if _, err := s.Sync(context.Background(), ""); err == nil || !runIDPattern.MatchString(err.Error()) {
		t.Errorf("no-source error missing run id: %v", err)
	}
}

func TestSyncNoSourceMentionsCommand(t *testing.T) {
	settings, events, _ := newStores(t)
	s := syncer.New(settings, events, "", nil)
	_, err := s.Sync(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "set-calendar-url") {
		t.Errorf("err = %v, want a hint at /set-calendar-url", err)
	}
}
