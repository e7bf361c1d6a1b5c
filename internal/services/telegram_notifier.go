package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"photohub/internal/models"
)

// TelegramNotifier — шлёт админу сообщение о каждой новой брони.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, adminChatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: adminChatID}, nil
}

func (t *TelegramNotifier) BookingCreated(studio *models.Studio, user *models.User, booking *models.Booking) error {
	if t == nil || t.chatID == 0 {
		return nil
	}
	text := fmt.Sprintf(
		"Новая бронь №%d\nСтудия: %s (%s)\nКлиент: %s %s <%s>\nВремя: %s — %s",
		booking.ID,
		studio.Name, studio.City,
		user.FirstName, user.LastName, user.Email,
		booking.StartsAt.Format("02.01.2006 15:04"),
		booking.EndsAt.Format("02.01.2006 15:04"),
	)
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
