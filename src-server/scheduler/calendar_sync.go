package scheduler

import (
	"context"
	"log/slog"

	"foxbot/src-server/utils"
)

// CalendarSync refreshes the event cache from the stored calendar URL.
// Every failure mode is logged and swallowed; the next scheduled run is
// the retry mechanism.
func CalendarSync(as *utils.AppState) {
	result, err := as.Syncer.Sync(context.Background(), "")
	if err != nil {
		slog.Warn("CalendarSync: sync failed", "error", err)
		return
	}
	slog.Info("CalendarSync: complete", "accepted", result.Accepted, "discarded", result.Discarded)
}
