package handler

import (
	"log/slog"
	"strings"
	"time"

	"foxbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func EventsOn(as *utils.AppState) {
	id := "events-on"
	as.AddAppCmdHandler(id, eventsOnHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "List school events on a date.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "date",
				Description: "A date, e.g. `tomorrow`, `next friday` or `2025-12-01`. Defaults to today.",
				Required:    false,
			},
		},
	})
}

func eventsOnHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		now := time.Now().In(as.Config.GetLocation())

		// parse the date option, fall back to today
		day := func() time.Time {
			options := i.ApplicationCommandData().Options
			if len(options) == 0 {
				return now
			}
			raw := strings.TrimSpace(options[0].StringValue())
			if raw == "" {
				return now
			}
			if parsed, err := time.ParseInLocation("2006-01-02", raw, as.Config.GetLocation()); err == nil {
				return parsed
			}
			result, err := as.When.Parse(raw, now)
			if err != nil || result == nil {
				slog.Debug("eventsOnHandler: can't parse date, using today", "input", raw)
				return now
			}
			return result.Time
		}()

		events := as.Events.EventsOn(day)
		embed := &discordgo.MessageEmbed{
			Title: "🗓️ Events on " + utils.FormatDate(day.Format("2006-01-02")),
			Color: 0x5865F2,
		}
		if len(events) == 0 {
			embed.Description = "Nothing happening that day."
		}
		for _, event := range events {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  event.EventType.Emoji() + " " + event.EventType.DisplayName(),
				Value: utils.CleanupString(event.EventTitle),
			})
		}

		startTimer := time.Now()
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{embed},
			},
		}); err != nil {
			slog.Warn("eventsOnHandler: can't respond", "error", err)
		}
		as.MetricChans.DiscordSendMessage <- float64(time.Since(startTimer).Microseconds())
		return nil
	}
}
