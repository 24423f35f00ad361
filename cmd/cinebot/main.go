package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/cinesystem/cinebot/internal/cache"
	"github.com/cinesystem/cinebot/internal/config"
	"github.com/cinesystem/cinebot/internal/ingresso"
	"github.com/cinesystem/cinebot/internal/log"
	"github.com/cinesystem/cinebot/internal/registry"
	"github.com/cinesystem/cinebot/internal/render"
	"github.com/cinesystem/cinebot/internal/service"
	"github.com/cinesystem/cinebot/internal/telegram"
)

// Version is set at build time via -ldflags
var Version = "dev"

var dateArg = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

const usage = `Usage: cinebot [command] [args]

Commands:
  hoje [filtro]       today's program (default command)
  amanha [filtro]     tomorrow's program
  YYYY-MM-DD [filtro] program for a specific date
  lancamentos         upcoming releases
  enviar [data]       send the program to the configured Telegram chats
  bot                 run the interactive Telegram bot (long polling)
`

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("cinebot %s\n", Version)
		return
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting cinebot", "version", Version)

	policy := cache.NewPolicy(cfg.Cache.Timezone, logger)
	store := cache.NewStore(cache.NewFileBackend(cfg.CacheFile()), policy, logger)
	store.Load()

	catalog := ingresso.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.CityID, logger)
	program := service.NewProgramService(catalog, store, policy, cfg.Catalog.TheaterID, cfg.Cache.Dir, logger)

	command := "hoje"
	if len(args) > 0 {
		command = args[0]
	}

	ctx := context.Background()

	switch {
	case command == "hoje":
		return printProgram(ctx, program, policy.Today(0), rest(args))
	case command == "amanha":
		return printProgram(ctx, program, policy.Today(1), rest(args))
	case dateArg.MatchString(command):
		return printProgram(ctx, program, command, rest(args))
	case command == "lancamentos":
		return printUpcoming(ctx, program)
	case command == "enviar":
		return sendProgram(ctx, cfg, program, rest(args), logger)
	case command == "bot":
		return runBot(cfg, program, logger)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func rest(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

func printProgram(ctx context.Context, program *service.ProgramService, date, filter string) error {
	result, err := program.FetchProgram(ctx, date)
	if err != nil {
		return err
	}

	// durability failure must not block showing the result
	program.SaveState(result)

	if filter != "" {
		result.Movies = render.FilterMovies(result.Movies, filter)
	}

	fmt.Print(render.Program(result))
	return nil
}

func printUpcoming(ctx context.Context, program *service.ProgramService) error {
	items, err := program.Upcoming(ctx)
	if err != nil {
		return err
	}
	fmt.Println(telegram.FormatUpcoming(items))
	return nil
}

func sendProgram(ctx context.Context, cfg *config.Config, program *service.ProgramService, date string, logger *slog.Logger) error {
	if !cfg.HasTelegram() {
		return fmt.Errorf("telegram token not configured (set CINEBOT_TELEGRAM_TOKEN)")
	}

	result, err := program.FetchProgram(ctx, date)
	if err != nil {
		return err
	}
	program.SaveState(result)

	sender, err := telegram.NewSender(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
	if err != nil {
		return err
	}

	// the configured chat plus every chat that ever started the bot
	targets := map[int64]struct{}{}
	if cfg.Telegram.ChatID != 0 {
		targets[cfg.Telegram.ChatID] = struct{}{}
	}

	chats, err := registry.NewChatRegistry(cfg.RegistryFile())
	if err != nil {
		logger.Warn("chat registry unavailable, sending to configured chat only", "error", err)
	} else {
		defer chats.Close()
		for _, chat := range chats.Chats() {
			targets[chat.ID] = struct{}{}
		}
	}

	if len(targets) == 0 {
		return fmt.Errorf("no delivery targets: configure telegram.chat_id or register chats via the bot")
	}

	var delivered int
	for chatID := range targets {
		if err := sender.SendProgramTo(chatID, result); err != nil {
			logger.Error("delivery failed", "chat", chatID, "error", err)
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return fmt.Errorf("failed to deliver the program to any chat")
	}

	fmt.Printf("Programação enviada para %d chat(s)\n", delivered)
	return nil
}

func runBot(cfg *config.Config, program *service.ProgramService, logger *slog.Logger) error {
	if !cfg.HasTelegram() {
		return fmt.Errorf("telegram token not configured (set CINEBOT_TELEGRAM_TOKEN)")
	}

	chats, err := registry.NewChatRegistry(cfg.RegistryFile())
	if err != nil {
		return fmt.Errorf("failed to open chat registry: %w", err)
	}
	defer chats.Close()

	bot, err := telegram.NewBot(cfg.Telegram.Token, program, chats, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Bot iniciado em modo polling. Ctrl+C para sair.")
	return bot.Run(ctx)
}
