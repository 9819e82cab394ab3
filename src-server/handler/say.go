package handler

import (
	"log/slog"

	"foxbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func Say(as *utils.AppState) {
	id := "say"
	as.AddAppCmdHandler(id, sayHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:        id,
		Description: "Make foxbot say something.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "What should it say?",
				Required:    true,
			},
		},
	})
}

func sayHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		message := func() string {
			for _, opt := range i.ApplicationCommandData().Options {
				if opt.Name == "message" {
					return opt.StringValue()
				}
			}
			return ""
		}()
		if err := utils.InteractRespReply(s, i, message); err != nil {
			slog.Warn("sayHandler: can't respond", "error", err)
		}
		return nil
	}
}
