package metric

import (
	"log/slog"
	"time"

	"foxbot/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func calendarFetch(as *utils.AppState, clearTickerInterval *time.Duration) {
	calendarFetch := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foxbot_calendar_fetch_microsec",
		Help: "The latency of the last calendar feed fetch in microseconds",
	})
	good := true
	if err := prometheus.Register(calendarFetch); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register foxbot_calendar_fetch_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("foxbot_calendar_fetch_microsec metric registered")
		calendarFetch.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(calendarFetch) {
				case true:
					slog.Debug("foxbot_calendar_fetch_microsec metric unregistered")
				case false:
					slog.Warn("foxbot_calendar_fetch_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.CalendarFetch:
				calendarFetch.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				calendarFetch.Set(0)
			}
		}
	}()
}

func discordSendMessage(as *utils.AppState, clearTickerInterval *time.Duration) {
	discordSendMessage := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foxbot_discord_send_message_microsec",
		Help: "The latency of a discord message send in microseconds",
	})
	good := true
	if err := prometheus.Register(discordSendMessage); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register foxbot_discord_send_message_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("foxbot_discord_send_message_microsec metric registered")
		discordSendMessage.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(discordSendMessage) {
				case true:
					slog.Debug("foxbot_discord_send_message_microsec metric unregistered")
				case false:
					slog.Warn("foxbot_discord_send_message_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.DiscordSendMessage:
				discordSendMessage.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				discordSendMessage.Set(0)
			}
		}
	}()
}

func discordHeartbeatLatency(as *utils.AppState, tickerInterval *time.Duration) {
	discordHeartbeatLatency := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foxbot_discord_heartbeat_latency_microsec",
		Help: "The latency of a discord heartbeat in microseconds",
	})
	good := true
	if err := prometheus.Register(discordHeartbeatLatency); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register foxbot_discord_heartbeat_latency_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("foxbot_discord_heartbeat_latency_microsec metric registered")
		discordHeartbeatLatency.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(discordHeartbeatLatency) {
				case true:
					slog.Debug("foxbot_discord_heartbeat_latency_microsec metric unregistered")
				case false:
					slog.Warn("foxbot_discord_heartbeat_latency_microsec metric not registered")
				}
				return
			case <-ticker.C:
				discordHeartbeatLatency.Set(float64(as.DgSession.HeartbeatLatency().Microseconds()))
			}
		}
	}()
}

func cachedEvents(as *utils.AppState, tickerInterval *time.Duration) {
	cachedEvents := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foxbot_cached_events",
		Help: "The number of classified events currently cached",
	})
	good := true
	if err := prometheus.Register(cachedEvents); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register foxbot_cached_events metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("foxbot_cached_events metric registered")
		cachedEvents.Set(float64(as.Events.Count()))
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(cachedEvents) {
				case true:
					slog.Debug("foxbot_cached_events metric unregistered")
				case false:
					slog.Warn("foxbot_cached_events metric not registered")
				}
				return
			case <-ticker.C:
				cachedEvents.Set(float64(as.Events.Count()))
			}
		}
	}()
}
