package ical

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// A hung feed endpoint must not wedge the daily sync cycle, hence the
// hard client timeout on top of the caller's context.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Fetch downloads the raw iCalendar body from feedUrl. Any non-200
// status is an error; the body is returned untouched for Parse.
func Fetch(ctx context.Context, feedUrl string) ([]byte, error) {
	validUrl, err := url.ParseRequestURI(feedUrl)
	if err != nil {
		return nil, fmt.Errorf("can't parse calendar URL %q: %w", feedUrl, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, validUrl.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("can't create calendar request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't fetch calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("can't fetch calendar: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read calendar body: %w", err)
	}
	return body, nil
}
