package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const noBaitStatus = "No bait recorded yet 🐟"

// RefreshStatus shows the current top baiter in the bot's presence.
func (h *Handler) RefreshStatus() {
	if h.session == nil {
		return
	}

	h.mu.Lock()
	text := h.statusText(h.session)
	h.mu.Unlock()

	err := h.session.UpdateStatusComplex(discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{
			{
				Name:  "Bait Leaderboard",
				Type:  discordgo.ActivityTypeCustom,
				State: text,
				Emoji: discordgo.Emoji{Name: "🎣"},
			},
		},
		Status: "online",
		AFK:    false,
	})
	if err != nil {
		log.WithError(err).Error("Error updating status")
	}
}

func (h *Handler) statusText(s Session) string {
	top, ok := h.ledger.TopScorer()
	if !ok || top.Score <= 0 {
		return noBaitStatus
	}
	return fmt.Sprintf("Top baiter: %s (%d points)", h.nameFor(s, h.guildID, top.UserID), top.Score)
}
