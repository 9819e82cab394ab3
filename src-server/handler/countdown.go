package handler

import (
	"fmt"
	"log/slog"
	"time"

	"foxbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// School-year milestones for the countdown commands. Dates are in the
// configured timezone; see countdownTarget.
var countdownCommands = []struct {
	ID          string
	Description string
	Title       string
	DateText    string
	Color       int
	Year        int
	Month       time.Month
	Day         int
	Hour        int
	Minute      int
}{
	{
		ID:          "days-until-midyears",
		Description: "Countdown to midyear exams.",
		Title:       "📚 Midyears Countdown",
		DateText:    "December 15, 2025 at 8:30 AM",
		Color:       0xED4245,
		Year:        2025, Month: time.December, Day: 15, Hour: 8, Minute: 30,
	},
	{
		ID:          "days-until-winter-break",
		Description: "Countdown to winter break.",
		Title:       "❄️ Winter Break Countdown",
		DateText:    "December 18, 2025 at 2:00 PM",
		Color:       0x3498DB,
		Year:        2025, Month: time.December, Day: 18, Hour: 14, Minute: 0,
	},
	{
		ID:          "days-until-end-of-school",
		Description: "Countdown to end of school.",
		Title:       "🎓 End of School Countdown",
		DateText:    "May 29, 2026 at 11:00 AM",
		Color:       0x2ECC71,
		Year:        2026, Month: time.May, Day: 29, Hour: 11, Minute: 0,
	},
}

func Countdowns(as *utils.AppState) {
	for _, cmd := range countdownCommands {
		target := time.Date(cmd.Year, cmd.Month, cmd.Day, cmd.Hour, cmd.Minute, 0, 0, as.Config.GetLocation())
		as.AddAppCmdHandler(cmd.ID, countdownHandler(as, cmd.Title, cmd.DateText, cmd.Color, target))
		as.AddAppCmdInfo(cmd.ID, &discordgo.ApplicationCommand{
			Name:        cmd.ID,
			Description: cmd.Description,
		})
	}
}

func countdownHandler(as *utils.AppState, title, dateText string, color int, target time.Time) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		now := time.Now().In(as.Config.GetLocation())
		embed := &discordgo.MessageEmbed{
			Title:       title,
			Description: "Time remaining:\n" + FormatCountdown(now, target),
			Color:       color,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Date", Value: dateText},
			},
		}

		startTimer := time.Now()
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Embeds: []*discordgo.MessageEmbed{embed},
			},
		}); err != nil {
			slog.Warn("countdownHandler: can't respond", "command", title, "error", err)
		}
		as.MetricChans.DiscordSendMessage <- float64(time.Since(startTimer).Microseconds())
		return nil
	}
}

// FormatCountdown renders the time between now and target, dropping
// units that would read as zero days or zero hours.
func FormatCountdown(now, target time.Time) string {
	if !now.Before(target) {
		return "already happened! 🎉"
	}

	delta := target.Sub(now)
	days := int(delta.Hours()) / 24
	hours := int(delta.Hours()) % 24
	minutes := int(delta.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("**%d** days, **%d** hours, **%d** minutes", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("**%d** hours, **%d** minutes", hours, minutes)
	default:
		return fmt.Sprintf("**%d** minutes", minutes)
	}
}
