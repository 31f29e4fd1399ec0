package bot

import (
	"context"
	"errors"

	"baitbot/pkg/ledger"

	"github.com/bwmarrin/discordgo"
)

const (
	colorGold = 0xf1c40f
	colorBlue = 0x3498db
)

// Response is what a command hands back to the transport, independent of
// whether it came from a text command or a slash command.
type Response struct {
	Content    string
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool

	outcome string
	// bind stores page state under the ID of the message the response became.
	bind func(ctx context.Context, messageID string) error
}

func (r Response) messageSend() *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Content:    r.Content,
		Components: r.Components,
	}
	if r.Embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{r.Embed}
	}
	return send
}

func (r Response) interactionData() *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:    r.Content,
		Components: r.Components,
	}
	if r.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{r.Embed}
	}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

func reply(content, outcome string) Response {
	return Response{Content: content, outcome: outcome}
}

func isPersistenceError(err error) bool {
	var perr *ledger.PersistenceError
	return errors.As(err, &perr)
}
