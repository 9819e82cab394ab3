package metric

import (
	"time"

	"foxbot/src-server/utils"
)

// Init registers all gauges and starts their feeder goroutines. Meant
// to be run once from main; everything unregisters itself on graceful
// shutdown.
func Init(as *utils.AppState) {
	clearTickerInterval := 5 * time.Minute
	tickerInterval := 30 * time.Second

	calendarFetch(as, &clearTickerInterval)
	discordSendMessage(as, &clearTickerInterval)
	discordHeartbeatLatency(as, &tickerInterval)
	cachedEvents(as, &tickerInterval)
}
