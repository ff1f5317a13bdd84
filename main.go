package main

import (
	"ciesta/internal/adapters/content"
	"ciesta/internal/adapters/handler"
	"ciesta/internal/adapters/sender"
	"ciesta/internal/adapters/store"
	"ciesta/internal/config"
	"ciesta/internal/core/domain"
	"ciesta/internal/core/domain/command"
	"ciesta/internal/core/service"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const startupNotice = "🤖 Ciesta bot has started and is ready to use."

func main() {
	started := time.Now()

	log.Info().Msg("starting ciesta...")

	log.Info().Msg("reading config file...")
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config")
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	userStore, closeStore := store.Must(store.Open(ctx, store.Options{
		Driver:    cfg.StorageDriver,
		Path:      cfg.StoragePath,
		RedisAddr: cfg.RedisAddr,
		RedisKey:  cfg.RedisKey,
	}))
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn().Err(err).Msg("failed closing user store")
		}
	}()

	registry, err := service.NewUserRegistry(ctx, userStore, cfg.OwnerIDs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed loading user registry")
	}

	b, err := bot.New(cfg.BotToken, bot.WithDefaultHandler(noOpHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)

	broadcaster := service.NewBroadcaster(s,
		service.WithDelay(cfg.BroadcastDelay),
		service.WithDeliveryTimeout(cfg.DeliveryTimeout))

	news := content.NewNews(cfg.NewsURL, cfg.NewsAPIKey)
	weather := content.NewWeather(cfg.WeatherURL, cfg.WeatherAPIKey)
	ip := content.NewIP(cfg.IPURL)
	gallery := content.NewGallery(cfg.ImageCollections)

	commandRegistry := &command.Registry{}

	commandRegistry.Register(command.NewStart(registry, s, "/start"))
	commandRegistry.Register(command.NewRegister(registry, s, "/register"))
	commandRegistry.Register(command.NewListMenu(registry, s, "/listmenu"))
	commandRegistry.Register(command.NewPremium(registry, s, "/premium"))

	commandRegistry.Register(command.NewStatus(registry, s, "/status"))
	commandRegistry.Register(command.NewStats(registry, s, "/stats"))
	commandRegistry.Register(command.NewGetIP(ip, s, "/getip"))
	commandRegistry.Register(command.NewOwner(cfg.OwnerContact, s, "/owner"))

	commandRegistry.Register(command.NewWeather(weather, s, s, cfg.DefaultCity, "/weather"))
	commandRegistry.Register(command.NewTopNews(news, s, "/topnews"))
	commandRegistry.Register(command.NewImage(cfg.EunsooURL, s, s, "/eunsoo"))
	commandRegistry.Register(command.NewRandomImage("waifu", gallery, s, s, "/randomwaifu"))
	commandRegistry.Register(command.NewRandomImage("anime", gallery, s, s, "/randomanime"))

	commandRegistry.Register(command.NewSetPremium(registry, s, "/setpremium"))
	commandRegistry.Register(command.NewRevokePremium(registry, s, "/revokepremium"))
	commandRegistry.Register(command.NewListUsers(registry, s, "/listusers"))
	commandRegistry.Register(command.NewBroadcast(registry, broadcaster, s, "/broadcast"))
	commandRegistry.Register(command.NewDebug(registry, s, started, "/debug"))

	me, err := b.GetMe(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed fetching bot identity")
	}

	log.Info().Str("username", me.Username).Msg("authenticated as bot")

	router := service.NewRouter(commandRegistry, service.NewGate(registry), s,
		cfg.CommandPrefix, me.Username, cfg.HandlerTimeout)

	commandHandler := handler.NewCommand(router)

	b.RegisterHandler(bot.HandlerTypeMessageText, cfg.CommandPrefix, bot.MatchTypePrefix, commandHandler.Handle)
	b.RegisterHandler(bot.HandlerTypePhotoCaption, cfg.CommandPrefix, bot.MatchTypePrefix, commandHandler.Handle)

	notifyOwners(ctx, s, cfg.OwnerIDs, cfg.DeliveryTimeout)

	log.Info().Strs("commands", commandRegistry.ListCommands()).Msg("bot listening")
	b.Start(ctx)

	log.Info().Msg("shutting down, waiting for running commands...")
	router.Wait()
	log.Info().Msg("bye")
}

func notifyOwners(ctx context.Context, s *sender.Telegram, owners []string, timeout time.Duration) {
	for _, owner := range owners {
		sendCtx, cancel := context.WithTimeout(ctx, timeout)
		if err := s.Send(sendCtx, owner, startupNotice, domain.Plain); err != nil {
			log.Warn().Err(err).Str("identity", owner).Msg("failed to send startup notice")
		}
		cancel()
	}
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
