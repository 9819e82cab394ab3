package handler

import (
	"log/slog"
	"time"

	"foxbot/src-server/model"
	"foxbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

const upcomingLimit = 5

var upcomingCommands = []struct {
	ID          string
	EventType   model.EventType
	Title       string
	Description string
	Color       int
}{
	{"upcoming-halls", model.EventTypeHall, "Upcoming Halls", "Get the next 5 hall events.", 0x9B59B6},
	{"upcoming-late-starts", model.EventTypeLateStart, "Upcoming Late Starts", "Get the next 5 late start days.", 0xE67E22},
	{"upcoming-dress-days", model.EventTypeDressDay, "Upcoming Dress Days", "Get the next 5 dress days.", 0x2ECC71},
	{"upcoming-extended-homerooms", model.EventTypeExtendedHomeroom, "Upcoming Extended Homerooms", "Get the next 5 extended homeroom days.", 0x1ABC9C},
}

// Upcoming registers one "next 5 of this type" command per event type.
func Upcoming(as *utils.AppState) {
	for _, cmd := range upcomingCommands {
		as.AddAppCmdHandler(cmd.ID, upcomingHandler(as, cmd.EventType, cmd.Title, cmd.Color))
		as.AddAppCmdInfo(cmd.ID, &discordgo.ApplicationCommand{
			Name:        cmd.ID,
			Description: cmd.Description,
		})
	}
}

func upcomingHandler(as *utils.AppState, eventType model.EventType, title string, color int) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		today := time.Now().In(as.Config.GetLocation())
		events := as.Events.UpcomingByType(eventType, upcomingLimit, today)

		embed := &discordgo.MessageEmbed{
			Title: eventType.Emoji() + " " + title,
			Color: color,
		}
		if len(events) == 0 {
			embed.Description = "No upcoming events found."
		}
		for _, event := range events {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  utils.FormatDate(event.Date),
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
			slog.Warn("upcomingHandler: can't respond", "command", string(eventType), "error", err)
		}
		as.MetricChans.DiscordSendMessage <- float64(time.Since(startTimer).Microseconds())
		return nil
	}
}
