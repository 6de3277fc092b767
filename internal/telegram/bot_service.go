// Package telegram handles the integration with the Telegram Bot API.
// It is responsible for receiving updates from Telegram, routing them
// into the conversation engine and rendering outbound messages.
package telegram

import (
	"log"

	"arendago/backend/internal/conversation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotService receives Telegram updates and routes them to the engine.
type BotService struct {
	BotAPI *tgbotapi.BotAPI
	Engine *conversation.Engine
}

// NewBotService creates a new BotService instance.
func NewBotService(bot *tgbotapi.BotAPI, engine *conversation.Engine) *BotService {
	return &BotService{BotAPI: bot, Engine: engine}
}

// Run запускает long-poll цикл. Каждое событие обрабатывается в своей
// горутине; сериализацию по пользователю обеспечивает движок.
func (s *BotService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.BotAPI.GetUpdatesChan(u)

	log.Printf("✅ Authorized on account %s", s.BotAPI.Self.UserName)

	for update := range updates {
		switch {
		case update.Message != nil:
			go s.handleMessage(update.Message)
		case update.CallbackQuery != nil:
			go s.handleCallbackQuery(update.CallbackQuery)
		}
	}
}

func (s *BotService) handleMessage(msg *tgbotapi.Message) {
	// Бот работает только в личных чатах, содержимое каналов и групп
	// игнорируется.
	if msg.From == nil || !msg.Chat.IsPrivate() {
		return
	}

	if msg.Photo != nil {
		largest := msg.Photo[len(msg.Photo)-1]
		s.Engine.HandlePhoto(conversation.PhotoEvent{
			UserID:    msg.From.ID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			FileID:    largest.FileID,
		})
		return
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" {
		return
	}
	s.Engine.HandleText(conversation.TextEvent{
		UserID:    msg.From.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		Text:      text,
	})
}

func (s *BotService) handleCallbackQuery(cq *tgbotapi.CallbackQuery) {
	// Respond to the callback query to remove the "loading" state
	callback := tgbotapi.NewCallback(cq.ID, "")
	if _, err := s.BotAPI.Request(callback); err != nil {
		log.Printf("WARN: Failed to answer callback query: %v", err)
	}

	if cq.From == nil || cq.Data == "" {
		return
	}
	ev := conversation.SelectionEvent{
		UserID:    cq.From.ID,
		Username:  cq.From.UserName,
		FirstName: cq.From.FirstName,
		Key:       cq.Data,
	}
	if cq.Message != nil {
		ev.MessageID = cq.Message.MessageID
	}
	s.Engine.HandleSelection(ev)
}
