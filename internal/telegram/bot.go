package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/cinesystem/cinebot/internal/ptbr"
	"github.com/cinesystem/cinebot/internal/registry"
	"github.com/cinesystem/cinebot/internal/service"
)

const welcomeCaption = `*🎬 Bem-vindo ao Cinesystem Bot!*

Aqui você encontra a programação dos filmes em cartaz no Cinesystem Maceió.

Escolha uma opção abaixo para começar:`

const helpText = `❓ *Como Funciona*

Este bot busca a programação dos filmes em cartaz no Cinesystem Maceió. Use os botões para consultar os horários de hoje, de amanhã ou os próximos lançamentos.`

const welcomeImageURL = "https://portalhortolandia.com.br/wp-content/uploads/2025/03/cinesystem-hortolandia-350x250.jpg"

// callback identifiers wired to the inline keyboard
const (
	cbToday    = "filmes_hoje"
	cbTomorrow = "filmes_amanha"
	cbUpcoming = "lancamentos_semana"
	cbHelp     = "como_funciona"
)

// Bot serves the program interactively over Telegram long polling. Updates
// are handled one at a time; there is no concurrent fetching.
type Bot struct {
	api     *tgbotapi.BotAPI
	program *service.ProgramService
	chats   *registry.ChatRegistry
	logger  *slog.Logger
}

func NewBot(token string, program *service.ProgramService, chats *registry.ChatRegistry, logger *slog.Logger) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Bot{api: api, program: program, chats: chats, logger: logger}, nil
}

func mainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎬 Filmes de Hoje", cbToday),
			tgbotapi.NewInlineKeyboardButtonData("📅 Filmes de Amanhã", cbTomorrow),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⭐ Lançamentos da Semana", cbUpcoming),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❓ Como Funciona", cbHelp),
		),
	)
}

// Run polls for updates until the context is cancelled
func (b *Bot) Run(ctx context.Context) error {
	setCommands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Iniciar e testar o bot"},
	)
	if _, err := b.api.Request(setCommands); err != nil {
		b.logger.Error("failed to set bot commands", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot polling started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot shutting down")
			return nil
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.logger.Debug("message received", "chat", update.Message.Chat.ID, "text", update.Message.Text)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	if msg.Command() != "start" {
		return
	}

	if err := b.chats.Register(msg.Chat.ID, msg.From.UserName); err != nil {
		b.logger.Warn("failed to register chat", "chat", msg.Chat.ID, "error", err)
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileURL(welcomeImageURL))
	photo.Caption = welcomeCaption
	photo.ParseMode = tgbotapi.ModeMarkdown
	photo.ReplyMarkup = mainKeyboard()

	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("failed to answer /start", "chat", msg.Chat.ID, "error", err)
		return
	}
	b.logger.Info("welcome sent", "chat", msg.Chat.ID, "user", msg.From.UserName)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// acknowledge the tap so the button stops spinning
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Error("failed to answer callback", "error", err)
	}

	// Telegram omits the message on callbacks whose originating message is
	// no longer accessible, so there is nowhere to send the answer.
	if query.Message == nil {
		b.logger.Warn("callback without message ignored", "data", query.Data)
		return
	}

	chatID := query.Message.Chat.ID
	var text string

	switch query.Data {
	case cbToday:
		text = b.programText(ctx, 0)
	case cbTomorrow:
		text = b.programText(ctx, 1)
	case cbUpcoming:
		items, err := b.program.Upcoming(ctx)
		if err != nil {
			b.logger.Error("upcoming fetch failed", "error", err)
			text = "❌ Não foi possível consultar os lançamentos agora. Tente novamente mais tarde."
		} else {
			text = FormatUpcoming(items)
		}
	case cbHelp:
		text = helpText
	default:
		text = "❓ Opção não reconhecida."
	}

	for _, part := range SplitMessage(text) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("failed to answer callback", "chat", chatID, "data", query.Data, "error", err)
			return
		}
	}
	b.logger.Info("callback answered", "chat", chatID, "data", query.Data)
}

func (b *Bot) programText(ctx context.Context, offsetDays int) string {
	program, err := b.program.FetchProgram(ctx, b.program.ResolveDateOffset(offsetDays))
	if err != nil {
		b.logger.Error("program fetch failed", "error", err)
		return "❌ Não foi possível consultar a programação agora. Tente novamente mais tarde."
	}
	if program.Empty() {
		return fmt.Sprintf("📭 Nenhuma sessão encontrada para %s.", ptbr.FormatDate(program.Date))
	}
	return FormatProgram(program)
}
