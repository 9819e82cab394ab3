package scheduler

import (
	"log/slog"
	"strconv"
	"time"

	"foxbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// DailyDigest posts one message per event happening tomorrow to the
// configured notification channel. Urgent event types additionally ping
// @everyone when the setting allows it. With no channel configured this
// is a logged no-op.
func DailyDigest(as *utils.AppState) {
	channelID := as.Settings.NotificationChannelID()
	if channelID == 0 {
		slog.Info("DailyDigest: notification channel not set, skipping")
		return
	}

	today := time.Now().In(as.Config.GetLocation())
	tomorrowEvents := as.Events.Tomorrow(today)
	if len(tomorrowEvents) == 0 {
		slog.Debug("DailyDigest: nothing happening tomorrow")
		return
	}

	pingEveryone := as.Settings.PingEveryone()
	for _, event := range tomorrowEvents {
		message := &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       event.EventType.Emoji() + " " + event.EventType.DisplayName() + " Tomorrow!",
					Description: utils.CleanupString(event.EventTitle),
					Color:       0xED4245,
					Fields: []*discordgo.MessageEmbedField{
						{
							Name:  "Date",
							Value: utils.FormatDate(event.Date),
						},
					},
				},
			},
		}
		if pingEveryone && event.EventType.ShouldPing() {
			message.Content = "@everyone"
		}

		startTimer := time.Now()
		if _, err := as.DgSession.ChannelMessageSendComplex(
			strconv.FormatInt(channelID, 10),
			message,
		); err != nil {
			slog.Error("DailyDigest: can't send message", "channel_id", channelID, "error", err)
			continue
		}
		as.MetricChans.DiscordSendMessage <- float64(time.Since(startTimer).Microseconds())
	}

	slog.Info("DailyDigest: sent", "count", len(tomorrowEvents))
}
