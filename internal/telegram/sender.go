package telegram

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/cinesystem/cinebot/internal/domain"
)

// Sender pushes formatted programs to Telegram chats, splitting messages
// that exceed the platform limit.
type Sender struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

func NewSender(token string, chatID int64, logger *slog.Logger) (*Sender, error) {
	if logger == nil {
		logger = slog.Default()
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Sender{bot: bot, chatID: chatID, logger: logger}, nil
}

// SendProgram delivers a day's program to the configured default chat
func (s *Sender) SendProgram(program domain.Program) error {
	return s.SendProgramTo(s.chatID, program)
}

// SendProgramTo delivers a day's program to one chat
func (s *Sender) SendProgramTo(chatID int64, program domain.Program) error {
	return s.sendText(chatID, FormatProgram(program))
}

// SendUpcomingTo delivers the coming-soon listing to one chat
func (s *Sender) SendUpcomingTo(chatID int64, items []domain.UpcomingMovie) error {
	return s.sendText(chatID, FormatUpcoming(items))
}

func (s *Sender) sendText(chatID int64, text string) error {
	for _, part := range SplitMessage(text) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := s.bot.Send(msg); err != nil {
			s.logger.Error("failed to send telegram message", "chat", chatID, "error", err)
			return err
		}
	}
	s.logger.Info("telegram message delivered", "chat", chatID)
	return nil
}
