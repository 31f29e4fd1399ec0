package bot

import (
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// userRef matches a user mention (<@id> or <@!id>) or a bare snowflake.
var userRef = regexp.MustCompile(`^(?:<@!?(\d+)>|(\d{15,21}))$`)

// parseCommand reads a prefixed text command such as "!bait @user reason".
// The first argument, when it names a user, becomes the target and the rest
// of the line is kept as free text.
func (h *Handler) parseCommand(m *discordgo.MessageCreate) (invocation, bool) {
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, h.prefix) {
		return invocation{}, false
	}

	name, rest := splitFirst(strings.TrimPrefix(content, h.prefix))
	if name == "" {
		return invocation{}, false
	}

	inv := invocation{
		command:   name,
		guildID:   m.GuildID,
		channelID: m.ChannelID,
		actor:     m.Author,
	}

	arg, text := splitFirst(rest)
	if id, ok := parseUserRef(arg); ok {
		inv.target = mentionedUser(m, id)
		inv.text = text
	} else {
		inv.text = rest
	}
	return inv, true
}

func splitFirst(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\n' || r == '\t' })
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

func parseUserRef(arg string) (string, bool) {
	match := userRef.FindStringSubmatch(arg)
	if match == nil {
		return "", false
	}
	if match[1] != "" {
		return match[1], true
	}
	return match[2], true
}

// mentionedUser prefers the resolved user Discord sent with the message.
func mentionedUser(m *discordgo.MessageCreate, id string) *discordgo.User {
	for _, u := range m.Mentions {
		if u != nil && u.ID == id {
			return u
		}
	}
	return &discordgo.User{ID: id}
}
