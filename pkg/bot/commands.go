package bot

import (
	"fmt"
	"strings"

	"baitbot/pkg/cooldown"
	"baitbot/pkg/ledger"
	"baitbot/pkg/metrics"
	"baitbot/pkg/pagination"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// invocation is a parsed command, whichever transport it arrived on.
type invocation struct {
	command   string
	guildID   string
	channelID string
	actor     *discordgo.User
	target    *discordgo.User
	text      string
	slash     bool
}

var commandTable = map[string]func(h *Handler, s Session, inv invocation) Response{
	"bait":        (*Handler).bait,
	"debait":      (*Handler).debait,
	"score":       (*Handler).score,
	"leaderboard": (*Handler).leaderboard,
	"baits":       (*Handler).baits,
	"cooldowns":   (*Handler).cooldowns,
	"commands":    (*Handler).help,
}

var commandUsage = map[string]string{
	"bait":   "bait @user <reason>",
	"debait": "debait @user",
	"baits":  "baits @user",
}

// helpOrder is the order commands appear in the help embed.
var helpOrder = []struct {
	name, usage, description string
}{
	{"bait", "bait @user <reason>", "Add 1 point to a user for baiting. Reason optional. 30-minute cooldown"},
	{"debait", "debait @user", "Remove 1 point from a user. 24-hour cooldown."},
	{"score", "score @user", "Check the bait score of a user (defaults to yourself if no user is mentioned)."},
	{"leaderboard", "leaderboard", "Display the top 10 users by bait points."},
	{"baits", "baits @user", "View the most recent 10 bait reasons for a user."},
	{"cooldowns", "cooldowns", "See your current command cooldowns for bait and debait."},
}

func (h *Handler) usage(inv invocation) Response {
	u := commandUsage[inv.command]
	if inv.slash {
		return Response{Content: "Usage: `/" + u + "`", Ephemeral: true, outcome: metrics.OutcomeRejected}
	}
	return reply("Usage: `"+h.prefix+u+"`", metrics.OutcomeRejected)
}

// bait charges the actor's cooldown before looking at the arguments, so a
// malformed invocation still uses it up.
func (h *Handler) bait(s Session, inv invocation) Response {
	res, err := h.baitGate.CheckAndConsume(inv.actor.ID, h.clock.Now())
	if err != nil {
		return h.failure(inv, err)
	}
	if !res.Allowed {
		h.metrics.CooldownRejected(h.baitGate.Name())
		return Response{
			Content:   fmt.Sprintf("Wait %s before using this command again.", cooldown.FormatCompact(res.RemainingSeconds())),
			Ephemeral: true,
			outcome:   metrics.OutcomeCooldown,
		}
	}
	if inv.target == nil {
		return h.usage(inv)
	}

	total, err := h.ledger.IncrementScore(inv.target.ID, inv.text)
	if err != nil {
		return h.failure(inv, err)
	}
	h.metrics.SetTrackedUsers(h.ledger.Len())

	log.WithFields(log.Fields{
		"command": "bait",
		"actor":   inv.actor.ID,
		"target":  inv.target.ID,
		"total":   total,
	}).Info("Bait recorded")

	name := h.displayName(s, inv.guildID, inv.target)
	content := fmt.Sprintf("🎣 **%s** has baited! ➕ 1 point (Total: **%d**)", name, total)
	if strings.TrimSpace(inv.text) != "" {
		content += "\n Reason recorded!"
	}
	return reply(content, metrics.OutcomeOK)
}

func (h *Handler) debait(s Session, inv invocation) Response {
	if inv.target == nil {
		return h.usage(inv)
	}
	if err := ledger.ValidateDebait(inv.actor.ID, inv.target.ID); err != nil {
		return Response{Content: "You cannot debait yourself!", Ephemeral: true, outcome: metrics.OutcomeRejected}
	}

	// A ledger-backed gate only records the cooldown; DecrementScore saves
	// both in one flush.
	res, err := h.debaitGate.CheckAndConsume(inv.actor.ID, h.clock.Now())
	if err != nil {
		return h.failure(inv, err)
	}
	if !res.Allowed {
		h.metrics.CooldownRejected(h.debaitGate.Name())
		return Response{
			Content:   fmt.Sprintf("Wait **%s**", cooldown.FormatClock(res.RemainingSeconds())),
			Ephemeral: true,
			outcome:   metrics.OutcomeCooldown,
		}
	}

	total, err := h.ledger.DecrementScore(inv.target.ID)
	if err != nil {
		return h.failure(inv, err)
	}
	h.metrics.SetTrackedUsers(h.ledger.Len())

	log.WithFields(log.Fields{
		"command": "debait",
		"actor":   inv.actor.ID,
		"target":  inv.target.ID,
		"total":   total,
	}).Info("Debait recorded")

	name := h.displayName(s, inv.guildID, inv.target)
	return reply(fmt.Sprintf("🪝 **%s** lost 1 bait point (Total: **%d**)!", name, total), metrics.OutcomeOK)
}

func (h *Handler) score(s Session, inv invocation) Response {
	member := inv.target
	if member == nil {
		member = inv.actor
	}
	name := h.displayName(s, inv.guildID, member)
	return reply(fmt.Sprintf("**%s** has **%d** bait points.", name, h.ledger.Score(member.ID)), metrics.OutcomeOK)
}

func (h *Handler) leaderboard(s Session, inv invocation) Response {
	board := h.ledger.Leaderboard()
	if len(board) == 0 {
		return reply("No bait has been recorded yet 🐟", metrics.OutcomeOK)
	}

	cur := pagination.New(board, h.pageSize)
	resp := Response{
		Embed:   h.leaderboardEmbed(s, inv.guildID, cur),
		outcome: metrics.OutcomeOK,
	}
	if cur.Paged() {
		resp.Components = pageButtons(pageKindLeaderboard, "")
		resp.bind = storeCursor(h.leaderboardPages, cur)
	}
	return resp
}

func (h *Handler) baits(s Session, inv invocation) Response {
	if inv.target == nil {
		return h.usage(inv)
	}

	name := h.displayName(s, inv.guildID, inv.target)
	reasons := h.ledger.Reasons(inv.target.ID)
	if len(reasons) == 0 {
		return reply(fmt.Sprintf("**%s** has no recorded bait reasons.", name), metrics.OutcomeOK)
	}

	cur := pagination.New(reasons, h.pageSize)
	resp := Response{
		Embed:   reasonsEmbed(name, cur),
		outcome: metrics.OutcomeOK,
	}
	if cur.Paged() {
		resp.Components = pageButtons(pageKindBaits, inv.target.ID)
		resp.bind = storeCursor(h.reasonPages, cur)
	}
	return resp
}

func (h *Handler) cooldowns(_ Session, inv invocation) Response {
	now := h.clock.Now()
	lines := make([]string, 0, 2)

	if wait := h.baitGate.Remaining(inv.actor.ID, now); wait > 0 {
		left := int(wait.Seconds())
		lines = append(lines, "🎣 **Bait:** "+cooldown.FormatCompact(left))
	} else {
		lines = append(lines, "🎣 **Bait:** Ready!")
	}

	if left := int(h.debaitGate.Remaining(inv.actor.ID, now).Seconds()); left > 0 {
		lines = append(lines, fmt.Sprintf("🪝 **Debait:** %s remaining", cooldown.FormatClock(left)))
	} else {
		lines = append(lines, "🪝 **Debait:** Ready!")
	}

	return Response{Content: strings.Join(lines, "\n"), Ephemeral: true, outcome: metrics.OutcomeOK}
}

func (h *Handler) help(_ Session, inv invocation) Response {
	lead := h.prefix
	if inv.slash {
		lead = "/"
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎣 Bait Bot Commands",
		Color: colorBlue,
	}
	for _, c := range helpOrder {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   lead + c.usage,
			Value:  c.description,
			Inline: false,
		})
	}
	return Response{Embed: embed, outcome: metrics.OutcomeOK}
}

// displayName prefers the guild nickname, then the global name, then the
// username, mirroring how Discord shows the member.
func (h *Handler) displayName(s Session, guildID string, u *discordgo.User) string {
	if guildID != "" {
		if member, err := s.GuildMember(guildID, u.ID); err == nil && member != nil {
			if member.Nick != "" {
				return member.Nick
			}
			if member.User != nil && u.Username == "" {
				u = member.User
			}
		}
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	if u.Username != "" {
		return u.Username
	}
	if fetched, err := s.User(u.ID); err == nil && fetched != nil {
		if fetched.GlobalName != "" {
			return fetched.GlobalName
		}
		if fetched.Username != "" {
			return fetched.Username
		}
	}
	return u.ID
}

// nameFor resolves a display name for a bare user ID.
func (h *Handler) nameFor(s Session, guildID, userID string) string {
	return h.displayName(s, guildID, &discordgo.User{ID: userID})
}
