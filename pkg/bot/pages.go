package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"baitbot/pkg/ledger"
	"baitbot/pkg/pagination"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	pageKindLeaderboard = "leaderboard"
	pageKindBaits       = "baits"

	pagePrefix   = "page"
	pagePrevious = "prev"
	pageNext     = "next"
)

const expiredPages = "These pages have expired. Run the command again."

// pageButtons builds the ⬅️/➡️ row. Custom IDs look like
// "page:<kind>:<prev|next>[:<subject>]".
func pageButtons(kind, subject string) []discordgo.MessageComponent {
	id := func(dir string) string {
		parts := []string{pagePrefix, kind, dir}
		if subject != "" {
			parts = append(parts, subject)
		}
		return strings.Join(parts, ":")
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Emoji:    &discordgo.ComponentEmoji{Name: "⬅️"},
					Style:    discordgo.SecondaryButton,
					CustomID: id(pagePrevious),
				},
				discordgo.Button{
					Emoji:    &discordgo.ComponentEmoji{Name: "➡️"},
					Style:    discordgo.SecondaryButton,
					CustomID: id(pageNext),
				},
			},
		},
	}
}

type pageAction struct {
	kind    string
	delta   int
	subject string
}

func parsePageCustomID(customID string) (pageAction, bool) {
	parts := strings.Split(customID, ":")
	if len(parts) < 3 || len(parts) > 4 || parts[0] != pagePrefix {
		return pageAction{}, false
	}

	a := pageAction{kind: parts[1]}
	switch parts[2] {
	case pagePrevious:
		a.delta = -1
	case pageNext:
		a.delta = 1
	default:
		return pageAction{}, false
	}
	if len(parts) == 4 {
		a.subject = parts[3]
	}

	switch a.kind {
	case pageKindLeaderboard, pageKindBaits:
		return a, true
	}
	return pageAction{}, false
}

func storeCursor[T any](store pagination.Store[T], cur *pagination.Cursor[T]) func(context.Context, string) error {
	return func(ctx context.Context, messageID string) error {
		return store.Put(ctx, messageID, cur)
	}
}

func (h *Handler) leaderboardEmbed(s Session, guildID string, cur *pagination.Cursor[ledger.Entry]) *discordgo.MessageEmbed {
	page := cur.Page()
	lines := make([]string, 0, len(page))
	for i, e := range page {
		lines = append(lines, fmt.Sprintf("#%d — %s: **%d**", cur.Number(i), h.nameFor(s, guildID, e.UserID), e.Score))
	}
	return &discordgo.MessageEmbed{
		Title:       "🎣 Bait Leaderboard",
		Description: strings.Join(lines, "\n"),
		Color:       colorGold,
		Footer:      &discordgo.MessageEmbedFooter{Text: cur.Label()},
	}
}

func reasonsEmbed(name string, cur *pagination.Cursor[string]) *discordgo.MessageEmbed {
	page := cur.Page()
	lines := make([]string, 0, len(page))
	for i, r := range page {
		lines = append(lines, fmt.Sprintf("%d. %s", cur.Number(i), r))
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎣 %s's Bait Reasons", name),
		Description: strings.Join(lines, "\n"),
		Color:       colorGold,
		Footer:      &discordgo.MessageEmbedFooter{Text: cur.Label()},
	}
}

// handlePageButton moves the cursor stored for the clicked message and
// edits the message in place. A click past either end only acknowledges.
func (h *Handler) handlePageButton(s Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	action, ok := parsePageCustomID(data.CustomID)
	if !ok || i.Message == nil {
		log.WithField("custom_id", data.CustomID).Debug("Ignoring unknown component")
		return
	}

	ctx := context.Background()
	messageID := i.Message.ID

	var (
		embed *discordgo.MessageEmbed
		err   error
		moved bool
	)
	switch action.kind {
	case pageKindLeaderboard:
		embed, moved, err = turnPage(ctx, h.leaderboardPages, messageID, action.delta, func(cur *pagination.Cursor[ledger.Entry]) *discordgo.MessageEmbed {
			return h.leaderboardEmbed(s, i.GuildID, cur)
		})
	case pageKindBaits:
		embed, moved, err = turnPage(ctx, h.reasonPages, messageID, action.delta, func(cur *pagination.Cursor[string]) *discordgo.MessageEmbed {
			return reasonsEmbed(h.nameFor(s, i.GuildID, action.subject), cur)
		})
	}

	var resp *discordgo.InteractionResponse
	switch {
	case errors.Is(err, pagination.ErrNotFound):
		resp = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: expiredPages, Flags: discordgo.MessageFlagsEphemeral},
		}
	case err != nil:
		log.WithError(err).WithField("message", messageID).Error("Error turning page")
		resp = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: genericFailure, Flags: discordgo.MessageFlagsEphemeral},
		}
	case !moved:
		resp = &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
	default:
		resp = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Embeds:     []*discordgo.MessageEmbed{embed},
				Components: pageButtons(action.kind, action.subject),
			},
		}
	}

	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		log.WithError(err).WithField("message", messageID).Error("Error responding to page button")
	}
}

// turnPage loads the cursor for messageID, advances it and saves it back.
func turnPage[T any](ctx context.Context, store pagination.Store[T], messageID string, delta int, render func(*pagination.Cursor[T]) *discordgo.MessageEmbed) (*discordgo.MessageEmbed, bool, error) {
	cur, err := store.Get(ctx, messageID)
	if err != nil {
		return nil, false, err
	}
	if !cur.Advance(delta) {
		return nil, false, nil
	}
	if err := store.Put(ctx, messageID, cur); err != nil {
		return nil, false, err
	}
	return render(cur), true, nil
}
