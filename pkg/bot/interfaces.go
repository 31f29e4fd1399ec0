package bot

import (
	"baitbot/pkg/ledger"

	"github.com/bwmarrin/discordgo"
)

// Session interface abstracts discordgo.Session for testing
type Session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string) error
	User(userID string) (*discordgo.User, error)
	GuildMember(guildID, userID string) (*discordgo.Member, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	InteractionResponse(interaction *discordgo.Interaction) (*discordgo.Message, error)
	UpdateStatusComplex(usd discordgo.UpdateStatusData) error
}

// DiscordSession adapts discordgo.Session to the Session interface
type DiscordSession struct {
	*discordgo.Session
}

func (s *DiscordSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return s.Session.ChannelMessageSendComplex(channelID, data)
}

func (s *DiscordSession) MessageReactionAdd(channelID, messageID, emojiID string) error {
	return s.Session.MessageReactionAdd(channelID, messageID, emojiID)
}

func (s *DiscordSession) User(userID string) (*discordgo.User, error) {
	return s.Session.User(userID)
}

func (s *DiscordSession) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	return s.Session.GuildMember(guildID, userID)
}

func (s *DiscordSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return s.Session.InteractionRespond(interaction, resp)
}

func (s *DiscordSession) InteractionResponse(interaction *discordgo.Interaction) (*discordgo.Message, error) {
	return s.Session.InteractionResponse(interaction)
}

func (s *DiscordSession) UpdateStatusComplex(usd discordgo.UpdateStatusData) error {
	return s.Session.UpdateStatusComplex(usd)
}

// Ledger is the score store the handler drives. *ledger.Ledger satisfies it.
type Ledger interface {
	IncrementScore(target, reason string) (int, error)
	DecrementScore(target string) (int, error)
	Score(target string) int
	Reasons(target string) []string
	Leaderboard() []ledger.Entry
	TopScorer() (ledger.Entry, bool)
	Len() int
}
