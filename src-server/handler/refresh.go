package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"foxbot/src-server/syncer"
	"foxbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

var adminOnly int64 = discordgo.PermissionAdministrator

func Refresh(as *utils.AppState) {
	id := "refresh-eventdata"
	as.AddAppCmdHandler(id, refreshHandler(as))
	as.AddAppCmdInfo(id, &discordgo.ApplicationCommand{
		Name:                     id,
		Description:              "Manually refresh calendar event data.",
		DefaultMemberPermissions: &adminOnly,
	})
}

func refreshHandler(as *utils.AppState) func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) error {
		// syncing can take a while, ack first
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		}); err != nil {
			slog.Warn("refreshHandler: can't send defer message", "error", err)
			return nil
		}

		result, err := as.Syncer.Sync(context.Background(), "")
		msg := func() string {
			switch {
			case errors.Is(err, syncer.ErrSyncInProgress):
				return "⏳ A refresh is already running, try again in a moment."
			case err != nil:
				slog.Warn("refreshHandler: sync failed", "error", err)
				return "❌ Refresh failed, the previously cached events are still in use."
			default:
				return fmt.Sprintf("✅ Refreshed calendar data. Found **%d** events.", result.Accepted)
			}
		}()
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Content: &msg,
		}); err != nil {
			slog.Warn("refreshHandler: can't send followup", "error", err)
		}
		return nil
	}
}
