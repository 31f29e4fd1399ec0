package bot

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// reactToTopScorer marks messages from whoever currently leads the board,
// even when the lead score is zero.
func (h *Handler) reactToTopScorer(s Session, m *discordgo.MessageCreate) {
	if h.reactEmoji == "" {
		return
	}
	top, ok := h.ledger.TopScorer()
	if !ok || top.UserID != m.Author.ID {
		return
	}
	if err := s.MessageReactionAdd(m.ChannelID, m.ID, h.reactEmoji); err != nil {
		log.WithError(err).WithField("message", m.ID).Debug("Could not add top scorer reaction")
	}
}
