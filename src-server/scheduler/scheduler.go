// Package scheduler runs the two periodic jobs: the daily digest of
// tomorrow's events at a fixed wall-clock time, and the periodic
// calendar resync.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"foxbot/src-server/utils"

	"github.com/robfig/cron/v3"
)

// Start wires both jobs into a cron runner in the configured timezone
// and starts it. The returned cron can be stopped on shutdown.
func Start(as *utils.AppState) *cron.Cron {
	c := cron.New(cron.WithLocation(as.Config.GetLocation()))

	digestSpec := digestCronSpec(as.Config.GetDailyDigestTime())
	if _, err := c.AddFunc(digestSpec, func() {
		DailyDigest(as)
	}); err != nil {
		slog.Error("can't schedule daily digest", "spec", digestSpec, "error", err)
	}

	syncSpec := "@every " + as.Config.GetCalendarSyncInterval().String()
	if _, err := c.AddFunc(syncSpec, func() {
		CalendarSync(as)
	}); err != nil {
		slog.Error("can't schedule calendar sync", "spec", syncSpec, "error", err)
	}

	c.Start()
	slog.Info("scheduler started", "digest", digestSpec, "sync", syncSpec)
	return c
}

// digestCronSpec turns "17:00" into the cron line "0 17 * * *".
func digestCronSpec(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		// Config already validated this; fall back to 5pm anyway.
		return "0 17 * * *"
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour())
}
