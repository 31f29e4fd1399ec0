package bot

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

var errNoInteractionUser = errors.New("could not determine user from interaction")

// getUserFromInteraction returns whoever triggered the interaction.
// It handles both guild (Member) and DM (User) contexts.
func getUserFromInteraction(i *discordgo.InteractionCreate) (*discordgo.User, error) {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User, nil
	}
	if i.User != nil {
		return i.User, nil
	}
	return nil, errNoInteractionUser
}

// optionUser resolves a USER option, preferring the resolved user payload.
func optionUser(data discordgo.ApplicationCommandInteractionData, opt *discordgo.ApplicationCommandInteractionDataOption) *discordgo.User {
	id, ok := opt.Value.(string)
	if !ok || id == "" {
		return nil
	}
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[id]; ok && u != nil {
			return u
		}
	}
	return &discordgo.User{ID: id}
}
