package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	h := NewHandler(panickingLedger{}, Options{})
	const id = "123456789012345678"

	tests := []struct {
		name    string
		content string
		ok      bool
		command string
		target  string
		text    string
	}{
		{"mention", "!bait <@" + id + "> got me", true, "bait", id, "got me"},
		{"nickname mention", "!bait <@!" + id + ">", true, "bait", id, ""},
		{"bare id", "!debait " + id, true, "debait", id, ""},
		{"no target", "!score", true, "score", "", ""},
		{"text only", "!bait someone got me", true, "bait", "", "someone got me"},
		{"multiline reason", "!bait <@" + id + "> line one\nline two", true, "bait", id, "line one\nline two"},
		{"leading space", "   !leaderboard", true, "leaderboard", "", ""},
		{"no prefix", "bait <@" + id + ">", false, "", "", ""},
		{"prefix only", "!", false, "", "", ""},
		{"short number is not a user", "!score 42", true, "score", "", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := h.parseCommand(&discordgo.MessageCreate{Message: &discordgo.Message{
				Author:  alice,
				Content: tt.content,
			}})
			assert.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.command, inv.command)
			assert.Equal(t, tt.text, inv.text)
			if tt.target == "" {
				assert.Nil(t, inv.target)
			} else if assert.NotNil(t, inv.target) {
				assert.Equal(t, tt.target, inv.target.ID)
			}
		})
	}
}

func TestParseCommand_CustomPrefix(t *testing.T) {
	h := NewHandler(panickingLedger{}, Options{Prefix: "?"})

	_, ok := h.parseCommand(&discordgo.MessageCreate{Message: &discordgo.Message{Author: alice, Content: "!score"}})
	assert.False(t, ok)

	inv, ok := h.parseCommand(&discordgo.MessageCreate{Message: &discordgo.Message{Author: alice, Content: "?score"}})
	assert.True(t, ok)
	assert.Equal(t, "score", inv.command)
}

func TestMentionedUserPrefersResolvedUser(t *testing.T) {
	m := &discordgo.MessageCreate{Message: &discordgo.Message{Mentions: []*discordgo.User{bob}}}

	assert.Same(t, bob, mentionedUser(m, bob.ID))
	assert.Equal(t, &discordgo.User{ID: "1"}, mentionedUser(m, "1"))
}
