package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"foxbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func SetNotificationChannel(as *utils.AppState) {
	id := "set-notification-channel"
	as.AddAppCmdHandler(id, setNotificationChannelHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:                     id,
		Description:              "Set this channel for school event reminders.",
		DefaultMemberPermissions: &adminOnly,
	})
}

func setNotificationChannelHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		channelID, err := strconv.ParseInt(i.ChannelID, 10, 64)
		if err != nil {
			utils.InteractRespHiddenReply(s, i, "Can't read this channel's ID.")
			return fmt.Errorf("setNotificationChannelHandler: can't parse channel ID %q: %w", i.ChannelID, err)
		}
		if err := as.Settings.SetNotificationChannelID(channelID); err != nil {
			utils.InteractRespHiddenReply(s, i, "Can't save the setting, check the logs.")
			return fmt.Errorf("setNotificationChannelHandler: %w", err)
		}
		if err := utils.InteractRespHiddenReply(s, i, fmt.Sprintf(
			"✅ This channel (<#%s>) will now receive school event reminders at %s!",
			i.ChannelID, as.Config.GetDailyDigestTime(),
		)); err != nil {
			slog.Warn("setNotificationChannelHandler: can't respond", "error", err)
		}
		return nil
	}
}

func SetCalendarUrl(as *utils.AppState) {
	id := "set-calendar-url"
	as.AddAppCmdHandler(id, setCalendarUrlHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:                     id,
		Description:              "Set the iCal calendar URL.",
		DefaultMemberPermissions: &adminOnly,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "url",
				Description: "The iCal URL to fetch events from",
				Required:    true,
			},
		},
	})
}

func setCalendarUrlHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		calendarUrl := func() string {
			for _, opt := range i.ApplicationCommandData().Options {
				if opt.Name == "url" {
					return opt.StringValue()
				}
			}
			return ""
		}()
		if _, err := url.ParseRequestURI(calendarUrl); err != nil {
			utils.InteractRespHiddenReply(s, i, "That doesn't look like a valid URL.")
			return nil
		}

		// the refresh below can take a while, ack first
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Flags: discordgo.MessageFlagsEphemeral,
			},
		}); err != nil {
			slog.Warn("setCalendarUrlHandler: can't send defer message", "error", err)
			return nil
		}

		if err := as.Settings.SetIcalUrl(calendarUrl); err != nil {
			msg := "Can't save the setting, check the logs."
			s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &msg})
			return fmt.Errorf("setCalendarUrlHandler: %w", err)
		}

		result, err := as.Syncer.Sync(context.Background(), "")
		msg := func() string {
			if err != nil {
				slog.Warn("setCalendarUrlHandler: sync failed", "error", err)
				return "⚠️ Calendar URL updated, but the first refresh failed. The old cached events are still in use."
			}
			return fmt.Sprintf("✅ Calendar URL updated! Found **%d** events.", result.Accepted)
		}()
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: &msg,
		}); err != nil {
			slog.Warn("setCalendarUrlHandler: can't send followup", "error", err)
		}
		return nil
	}
}

func ShowSettings(as *utils.AppState) {
	id := "show-settings"
	as.AddAppCmdHandler(id, showSettingsHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:                     id,
		Description:              "Show current bot settings.",
		DefaultMemberPermissions: &adminOnly,
	})
}

func showSettingsHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		channelText := "Not set"
		if channelID := as.Settings.NotificationChannelID(); channelID != 0 {
			channelText = fmt.Sprintf("<#%d>", channelID)
		}

		urlText := "Not set"
		if calendarUrl := as.Settings.IcalUrl(); calendarUrl != "" {
			urlText = truncateUrl(calendarUrl, 50)
		}

		pingText := "❌ Disabled"
		if as.Settings.PingEveryone() {
			pingText = "✅ Enabled"
		}

		embed := &discordgo.MessageEmbed{
			Title: "⚙️ FoxBot Settings",
			Color: 0x5865F2,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Notification Channel", Value: channelText},
				{Name: "Calendar URL", Value: urlText},
				{Name: "Ping @everyone", Value: pingText},
				{Name: "Cached Events", Value: strconv.Itoa(as.Events.Count())},
			},
		}

		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Flags:  discordgo.MessageFlagsEphemeral,
				Embeds: []*discordgo.MessageEmbed{embed},
			},
		}); err != nil {
			slog.Warn("showSettingsHandler: can't respond", "error", err)
		}
		return nil
	}
}

// truncateUrl shortens a URL for display to at most max runes,
// counting runes so a multibyte character is never cut in half.
func truncateUrl(rawUrl string, max int) string {
	runes := []rune(rawUrl)
	if len(runes) < max {
		return rawUrl
	}
	return string(runes[:max-3]) + "..."
}

func TogglePingEveryone(as *utils.AppState) {
	id := "toggle-ping-everyone"
	as.AddAppCmdHandler(id, togglePingEveryoneHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:                     id,
		Description:              "Toggle @everyone pings for important events.",
		DefaultMemberPermissions: &adminOnly,
	})
}

func togglePingEveryoneHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		enabled, err := as.Settings.TogglePingEveryone()
		if err != nil {
			utils.InteractRespHiddenReply(s, i, "Can't save the setting, check the logs.")
			return fmt.Errorf("togglePingEveryoneHandler: %w", err)
		}

		msg := "@everyone pings **disabled**. All notifications will be sent without pinging."
		if enabled {
			msg = "@everyone pings **enabled** for dress days, late starts, and extended homerooms."
		}
		if err := utils.InteractRespHiddenReply(s, i, msg); err != nil {
			slog.Warn("togglePingEveryoneHandler: can't respond", "error", err)
		}
		return nil
	}
}
