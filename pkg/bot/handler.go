package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"baitbot/pkg/cooldown"
	"baitbot/pkg/ledger"
	"baitbot/pkg/metrics"
	"baitbot/pkg/pagination"

	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

const genericFailure = "Something went wrong while handling that. Try again later."

type Options struct {
	Prefix         string
	AutoReactEmoji string
	PageSize       int
	BaitGate       *cooldown.Gate
	DebaitGate     *cooldown.Gate
	Clock          clockwork.Clock
	Metrics        *metrics.Metrics

	// Cursor stores default to in-memory stores with a one hour TTL.
	LeaderboardPages pagination.Store[ledger.Entry]
	ReasonPages      pagination.Store[string]
}

// Handler turns Discord events into ledger operations. Every event is
// processed to completion under mu, one at a time, because the ledger does
// no locking of its own.
type Handler struct {
	mu sync.Mutex

	ledger     Ledger
	baitGate   *cooldown.Gate
	debaitGate *cooldown.Gate
	clock      clockwork.Clock
	metrics    *metrics.Metrics

	prefix     string
	reactEmoji string
	pageSize   int

	leaderboardPages pagination.Store[ledger.Entry]
	reasonPages      pagination.Store[string]

	botID   string
	guildID string
	session Session
}

func NewHandler(l Ledger, opts Options) *Handler {
	h := &Handler{
		ledger:           l,
		baitGate:         opts.BaitGate,
		debaitGate:       opts.DebaitGate,
		clock:            opts.Clock,
		metrics:          opts.Metrics,
		prefix:           opts.Prefix,
		reactEmoji:       opts.AutoReactEmoji,
		pageSize:         opts.PageSize,
		leaderboardPages: opts.LeaderboardPages,
		reasonPages:      opts.ReasonPages,
	}

	if h.clock == nil {
		h.clock = clockwork.NewRealClock()
	}
	if h.prefix == "" {
		h.prefix = "!"
	}
	if h.pageSize <= 0 {
		h.pageSize = pagination.DefaultPageSize
	}
	if h.baitGate == nil {
		h.baitGate = cooldown.NewGate("bait", 30*time.Minute, cooldown.NewMemoryStore())
	}
	if h.debaitGate == nil {
		h.debaitGate = cooldown.NewGate("debait", 24*time.Hour, cooldown.NewMemoryStore())
	}
	if h.leaderboardPages == nil {
		h.leaderboardPages = pagination.NewMemoryStore[ledger.Entry](h.clock, time.Hour)
	}
	if h.reasonPages == nil {
		h.reasonPages = pagination.NewMemoryStore[string](h.clock, time.Hour)
	}

	h.metrics.SetTrackedUsers(l.Len())
	return h
}

func (h *Handler) SetBotID(id string) {
	h.botID = id
}

// SetGuildID names the guild used to resolve nicknames outside of a message
// context, e.g. for the presence text.
func (h *Handler) SetGuildID(id string) {
	h.guildID = id
}

func (h *Handler) SetSession(s Session) {
	h.session = s
}

func (h *Handler) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.HandleMessage(&DiscordSession{s}, m)
}

func (h *Handler) HandleMessage(s Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == h.botID {
		return
	}
	defer recoverEvent("message")

	h.mu.Lock()
	defer h.mu.Unlock()

	h.reactToTopScorer(s, m)

	inv, ok := h.parseCommand(m)
	if !ok {
		return
	}
	resp, ok := h.execute(s, inv)
	if !ok {
		return
	}
	h.sendResponse(s, m.ChannelID, resp)
}

// execute runs a known command. Panics are contained here so one bad
// command cannot take the process down.
func (h *Handler) execute(s Session, inv invocation) (resp Response, found bool) {
	run, ok := commandTable[inv.command]
	if !ok {
		return Response{}, false
	}

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"command": inv.command,
				"actor":   inv.actor.ID,
				"panic":   fmt.Sprintf("%v", r),
				"stack":   string(debug.Stack()),
			}).Error("Recovered panic in command")
			resp = Response{Content: genericFailure, outcome: metrics.OutcomeError}
		}
		h.metrics.CommandHandled(inv.command, resp.outcome)
	}()

	return run(h, s, inv), true
}

func (h *Handler) sendResponse(s Session, channelID string, resp Response) {
	msg, err := s.ChannelMessageSendComplex(channelID, resp.messageSend())
	if err != nil {
		log.WithError(err).WithField("channel", channelID).Error("Error sending response")
		return
	}
	h.bindPages(resp, msg)
}

func (h *Handler) bindPages(resp Response, msg *discordgo.Message) {
	if resp.bind == nil || msg == nil {
		return
	}
	if err := resp.bind(context.Background(), msg.ID); err != nil {
		log.WithError(err).WithField("message", msg.ID).Error("Error storing page cursor")
	}
}

// failure logs err against the invocation and returns the generic reply.
func (h *Handler) failure(inv invocation, err error) Response {
	fields := log.Fields{"command": inv.command, "actor": inv.actor.ID}
	if inv.target != nil {
		fields["target"] = inv.target.ID
	}
	if isPersistenceError(err) {
		h.metrics.PersistenceFailed()
	}
	log.WithFields(fields).WithError(err).Error("Command failed")
	return Response{Content: genericFailure, outcome: metrics.OutcomeError}
}

func recoverEvent(event string) {
	if r := recover(); r != nil {
		log.WithFields(log.Fields{
			"event": event,
			"panic": fmt.Sprintf("%v", r),
			"stack": string(debug.Stack()),
		}).Error("Recovered panic in event handler")
	}
}
