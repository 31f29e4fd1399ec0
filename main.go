package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"baitbot/pkg/bot"
	"baitbot/pkg/cache"
	"baitbot/pkg/config"
	"baitbot/pkg/cooldown"
	"baitbot/pkg/jobs"
	"baitbot/pkg/ledger"
	"baitbot/pkg/logging"
	"baitbot/pkg/metrics"
	"baitbot/pkg/pagination"
	"baitbot/pkg/storage"
	"baitbot/pkg/surreal"

	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load config.yml
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	// Load .env for secrets
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatal(err)
	}

	backend, closeBackend := openBackend(cfg, env)
	defer closeBackend()

	doc, err := backend.Load()
	if err != nil {
		log.Fatalf("Failed to load bait data: %v", err)
	}
	l := ledger.New(doc, backend, ledger.WithMaxReasons(cfg.Ledger.MaxReasons))
	log.WithFields(log.Fields{"backend": cfg.Storage.Backend, "users": l.Len()}).Info("Bait data loaded")

	clock := clockwork.NewRealClock()
	m := metrics.New()

	opts := bot.Options{
		Prefix:         cfg.Bot.CommandPrefix,
		AutoReactEmoji: cfg.Bot.AutoReactEmoji,
		PageSize:       cfg.Ledger.PageSize,
		BaitGate:       cooldown.NewGate("bait", cfg.BaitWindow(), cooldown.NewMemoryStore()),
		DebaitGate:     cooldown.NewGate("debait", cfg.DebaitWindow(), l.DebaitCooldowns()),
		Clock:          clock,
		Metrics:        m,
	}

	var sweepers []func() int
	if env.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(env.RedisURL, "baitbot")
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		opts.LeaderboardPages = cache.NewCursorStore[ledger.Entry](redisCache, "leaderboard", cfg.CursorTTL())
		opts.ReasonPages = cache.NewCursorStore[string](redisCache, "baits", cfg.CursorTTL())
		log.Info("Page cursors stored in Redis")
	} else {
		leaderboardPages := pagination.NewMemoryStore[ledger.Entry](clock, cfg.CursorTTL())
		reasonPages := pagination.NewMemoryStore[string](clock, cfg.CursorTTL())
		opts.LeaderboardPages = leaderboardPages
		opts.ReasonPages = reasonPages
		sweepers = append(sweepers, leaderboardPages.Sweep, reasonPages.Sweep)
	}

	if cfg.Metrics.ListenAddr != "" {
		srv := m.NewServer(cfg.Metrics.ListenAddr)
		go func() {
			log.WithField("addr", cfg.Metrics.ListenAddr).Info("Serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("Metrics server stopped")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	// Initialize Bot Handler
	handler := bot.NewHandler(l, opts)

	// Create Discord Session
	dg, err := discordgo.New("Bot " + env.DiscordToken)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	// Register Handlers
	dg.AddHandler(handler.MessageCreate)
	dg.AddHandler(handler.InteractionCreate)

	// Open Connection
	if err := dg.Open(); err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}
	defer dg.Close()

	// Set Bot ID in handler (so it can ignore itself)
	handler.SetBotID(dg.State.User.ID)
	handler.SetGuildID(env.DiscordGuildID)
	handler.SetSession(&bot.DiscordSession{Session: dg})

	// Register slash commands (empty string = global, or specify guild ID for faster testing)
	registeredCommands, err := bot.RegisterSlashCommands(dg, env.DiscordGuildID)
	if err != nil {
		log.Fatalf("Error registering slash commands: %v", err)
	}
	defer func() {
		if err := bot.UnregisterSlashCommands(dg, env.DiscordGuildID, registeredCommands); err != nil {
			log.WithError(err).Error("Error unregistering slash commands")
		}
	}()

	scheduler := jobs.NewScheduler()
	if err := scheduler.Add("status", cfg.Status.Schedule, handler.RefreshStatus); err != nil {
		log.Fatal(err)
	}
	if len(sweepers) > 0 {
		err := scheduler.Add("sweep-cursors", "@every 10m", func() {
			removed := 0
			for _, sweep := range sweepers {
				removed += sweep()
			}
			if removed > 0 {
				log.WithField("removed", removed).Debug("Expired page cursors swept")
			}
		})
		if err != nil {
			log.Fatal(err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()
	handler.RefreshStatus()

	log.WithField("user", dg.State.User.Username).Info("Bait bot is now running. Press CTRL-C to exit.")

	// Wait for signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info("Shutting down")
}

// openBackend picks where the bait document lives.
func openBackend(cfg *config.Config, env *config.Env) (storage.Backend, func()) {
	if cfg.Storage.Backend != "surreal" {
		log.WithField("path", cfg.Storage.DataFile).Info("Using file storage")
		return storage.NewFileStore(cfg.Storage.DataFile), func() {}
	}

	if env.SurrealHost == "" || env.SurrealUser == "" || env.SurrealPass == "" {
		log.Fatal("SURREAL_DB_HOST, SURREAL_DB_USER and SURREAL_DB_PASS are required for the surreal backend")
	}

	host := env.SurrealHost
	// Add protocol if missing
	if !strings.HasPrefix(host, "ws://") && !strings.HasPrefix(host, "wss://") {
		host = "wss://" + host + "/rpc"
	}

	log.Infof("Connecting to SurrealDB at %s (NS: %s, DB: %s)", host, env.SurrealNS, env.SurrealDatabase)
	client, err := surreal.NewClient(host, env.SurrealUser, env.SurrealPass, env.SurrealNS, env.SurrealDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to SurrealDB: %v", err)
	}
	return storage.NewSurrealStore(client), client.Close
}
