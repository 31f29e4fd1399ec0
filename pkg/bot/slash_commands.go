package bot

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func userOption(description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    required,
	}
}

// SlashCommands defines all available slash commands
var SlashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "bait",
		Description: "Add 1 point to a user for baiting",
		Options: []*discordgo.ApplicationCommandOption{
			userOption("Who took the bait", true),
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "What they fell for",
				Required:    false,
			},
		},
	},
	{
		Name:        "debait",
		Description: "Remove 1 point from a user",
		Options:     []*discordgo.ApplicationCommandOption{userOption("Who to debait", true)},
	},
	{
		Name:        "score",
		Description: "Check the bait score of a user",
		Options:     []*discordgo.ApplicationCommandOption{userOption("Defaults to yourself", false)},
	},
	{
		Name:        "leaderboard",
		Description: "Display the top users by bait points",
	},
	{
		Name:        "baits",
		Description: "View the most recent bait reasons for a user",
		Options:     []*discordgo.ApplicationCommandOption{userOption("Whose reasons to show", true)},
	},
	{
		Name:        "cooldowns",
		Description: "See your current bait and debait cooldowns",
	},
	{
		Name:        "commands",
		Description: "List the bot's commands",
	},
}

// InteractionCreate handles slash commands and page buttons.
func (h *Handler) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.HandleInteraction(&DiscordSession{s}, i)
}

func (h *Handler) HandleInteraction(s Session, i *discordgo.InteractionCreate) {
	defer recoverEvent("interaction")

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.mu.Lock()
		defer h.mu.Unlock()
		h.handleSlashCommand(s, i)
	case discordgo.InteractionMessageComponent:
		h.mu.Lock()
		defer h.mu.Unlock()
		h.handlePageButton(s, i)
	}
}

func (h *Handler) handleSlashCommand(s Session, i *discordgo.InteractionCreate) {
	actor, err := getUserFromInteraction(i)
	if err != nil {
		log.WithError(err).Error("Error handling slash command")
		return
	}

	data := i.ApplicationCommandData()
	inv := invocation{
		command:   data.Name,
		guildID:   i.GuildID,
		channelID: i.ChannelID,
		actor:     actor,
		slash:     true,
	}
	for _, opt := range data.Options {
		switch opt.Name {
		case "user":
			inv.target = optionUser(data, opt)
		case "reason":
			inv.text = opt.StringValue()
		}
	}

	resp, ok := h.execute(s, inv)
	if !ok {
		log.WithField("command", data.Name).Warn("Unknown slash command")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: resp.interactionData(),
	})
	if err != nil {
		log.WithError(err).WithField("command", data.Name).Error("Error responding to slash command")
		return
	}

	if resp.bind == nil {
		return
	}
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.WithError(err).WithField("command", data.Name).Error("Error fetching interaction response")
		return
	}
	h.bindPages(resp, msg)
}

// RegisterSlashCommands registers all slash commands with Discord
func RegisterSlashCommands(s *discordgo.Session, guildID string) ([]*discordgo.ApplicationCommand, error) {
	log.Info("Registering slash commands...")

	registeredCommands := make([]*discordgo.ApplicationCommand, len(SlashCommands))

	for i, cmd := range SlashCommands {
		// Register globally (guildID = "") or for a specific guild
		registeredCmd, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			log.WithError(err).Errorf("Cannot create '%s' command", cmd.Name)
			return nil, err
		}
		registeredCommands[i] = registeredCmd
		log.Debugf("Registered command: %s", cmd.Name)
	}

	return registeredCommands, nil
}

// UnregisterSlashCommands removes all registered slash commands
func UnregisterSlashCommands(s *discordgo.Session, guildID string, commands []*discordgo.ApplicationCommand) error {
	log.Info("Unregistering slash commands...")

	for _, cmd := range commands {
		err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID)
		if err != nil {
			log.WithError(err).Errorf("Cannot delete '%s' command", cmd.Name)
			return err
		}
		log.Debugf("Unregistered command: %s", cmd.Name)
	}

	return nil
}
