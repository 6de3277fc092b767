package telegram

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"arendago/backend/internal/config"
	"arendago/backend/internal/models"
	"arendago/backend/internal/transport"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ChannelService renders outbound messages: user prompts, the public
// channel mirror and notifications. Implements transport.Sender; every
// delivery failure is logged here and never reaches the services.
type ChannelService struct {
	BotAPI *tgbotapi.BotAPI
	Config *config.Config
}

var _ transport.Sender = (*ChannelService)(nil)

func NewChannelService(bot *tgbotapi.BotAPI, cfg *config.Config) *ChannelService {
	return &ChannelService{BotAPI: bot, Config: cfg}
}

// SendPrompt отправляет пользователю текст с опциональной клавиатурой.
func (s *ChannelService) SendPrompt(chatID int64, text string, kb *transport.Keyboard) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		msg.ReplyMarkup = toMarkup(kb)
	}
	if _, err := s.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send prompt to %d: %v", chatID, err)
	}
}

// EditKeyboard перерисовывает инлайн-клавиатуру мультиселекта.
func (s *ChannelService) EditKeyboard(chatID int64, messageID int, kb *transport.Keyboard) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, toInlineMarkup(kb))
	if _, err := s.BotAPI.Send(edit); err != nil {
		log.Printf("ERROR: Failed to edit keyboard in chat %d: %v", chatID, err)
	}
}

// PublishListing публикует карточку в основной канал и возвращает
// идентификатор сообщения. С фотографиями уходит медиа-группой,
// подпись на первом фото.
func (s *ChannelService) PublishListing(l *models.Listing) (int, error) {
	card := renderListing(l)

	if len(l.PhotoFileIDs) > 0 {
		media := make([]interface{}, 0, len(l.PhotoFileIDs))
		for i, fileID := range l.PhotoFileIDs {
			photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileID(fileID))
			if i == 0 {
				photo.Caption = card
				photo.ParseMode = tgbotapi.ModeHTML
			}
			media = append(media, photo)
		}
		group := tgbotapi.NewMediaGroup(s.Config.MainChannelID, media)
		messages, err := s.BotAPI.SendMediaGroup(group)
		if err != nil {
			return 0, err
		}
		return messages[0].MessageID, nil
	}

	msg := tgbotapi.NewMessage(s.Config.MainChannelID, card)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = complaintButton(l.ID)
	sent, err := s.BotAPI.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// UpdateListingStatus перерисовывает зеркало в канале после перехода
// статуса. Best effort: статус в базе первичен.
func (s *ChannelService) UpdateListingStatus(l *models.Listing) {
	if l.MainChannelMsgID == nil {
		return
	}
	card := renderListing(l)
	var err error
	if len(l.PhotoFileIDs) > 0 {
		edit := tgbotapi.NewEditMessageCaption(s.Config.MainChannelID, *l.MainChannelMsgID, card)
		edit.ParseMode = tgbotapi.ModeHTML
		_, err = s.BotAPI.Send(edit)
	} else {
		edit := tgbotapi.NewEditMessageText(s.Config.MainChannelID, *l.MainChannelMsgID, card)
		edit.ParseMode = tgbotapi.ModeHTML
		_, err = s.BotAPI.Send(edit)
	}
	if err != nil {
		log.Printf("WARN: Failed to update channel mirror of listing %d: %v", l.ID, err)
	}
}

// RemoveListing удаляет публикацию забаненного объявления из канала.
func (s *ChannelService) RemoveListing(l *models.Listing) {
	if l.MainChannelMsgID == nil {
		return
	}
	del := tgbotapi.NewDeleteMessage(s.Config.MainChannelID, *l.MainChannelMsgID)
	if _, err := s.BotAPI.Request(del); err != nil {
		log.Printf("WARN: Failed to delete channel message of listing %d: %v", l.ID, err)
	}
}

// PublishBlacklistWarning публикует предупреждение о мошеннике.
func (s *ChannelService) PublishBlacklistWarning(l *models.Listing) {
	channelID := s.Config.BlacklistChannelID
	if channelID == 0 {
		channelID = s.Config.MainChannelID
	}
	var b strings.Builder
	b.WriteString("⚠️ <b>Внимание, мошенник!</b>\n\n")
	fmt.Fprintf(&b, "На объявление «%s, %s» поступило несколько жалоб.\n", listingTitle(l), l.District)
	if l.Contact != "" {
		fmt.Fprintf(&b, "Контакт: <code>%s</code>\n", l.Contact)
	}
	b.WriteString("\nНе переводите предоплату до встречи и осмотра жилья!")

	msg := tgbotapi.NewMessage(channelID, b.String())
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := s.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to publish blacklist warning for listing %d: %v", l.ID, err)
	}
}

// SendNotification — уведомление подписчику о новом объявлении.
func (s *ChannelService) SendNotification(chatID int64, l *models.Listing) {
	text := "🔔 Новое объявление по вашей подписке:\n\n" + renderListing(l)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = complaintButton(l.ID)
	if _, err := s.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send notification to %d: %v", chatID, err)
	}
}

// SendMatchNotification — уведомление о встречном объявлении.
func (s *ChannelService) SendMatchNotification(chatID int64, l *models.Listing) {
	text := "🤝 Нашлось встречное объявление:\n\n" + renderListing(l)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = complaintButton(l.ID)
	if _, err := s.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send match notification to %d: %v", chatID, err)
	}
}

// SendReminder спрашивает владельца, актуально ли объявление.
func (s *ChannelService) SendReminder(chatID int64, listingID uint) {
	id := strconv.FormatUint(uint64(listingID), 10)
	msg := tgbotapi.NewMessage(chatID,
		"⏰ Ваше объявление скоро будет снято с публикации.\nОно ещё актуально?")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟢 Да, актуально", "confirm:"+id),
			tgbotapi.NewInlineKeyboardButtonData("✅ Уже сдано", "close:"+id),
		),
	)
	if _, err := s.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send reminder to %d: %v", chatID, err)
	}
}

// ── Rendering ──

// renderListing — полная карточка объявления для канала и уведомлений.
func renderListing(l *models.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s</b>\n\n", l.Status.Emoji(), listingTitle(l))
	if l.District != "" {
		fmt.Fprintf(&b, "📍 Район: %s\n", l.District)
	}
	if l.Rooms != nil {
		fmt.Fprintf(&b, "🚪 Комнат: %d\n", *l.Rooms)
	}
	if l.SpotsAvailable != nil {
		fmt.Fprintf(&b, "🛏 Мест: %d\n", *l.SpotsAvailable)
	}
	if l.Price != nil {
		fmt.Fprintf(&b, "💰 Цена: %d сом/мес\n", *l.Price)
	} else if l.PriceRange != "" {
		fmt.Fprintf(&b, "💰 Бюджет: %s\n", l.PriceRange)
	}
	if l.Type == models.RentOut {
		if l.Furniture {
			b.WriteString("🛋 С мебелью и техникой\n")
		}
		if l.UtilitiesIncluded {
			b.WriteString("💡 Коммунальные включены\n")
		}
		if l.TenantType != "" && l.TenantType != string(models.GenderAny) {
			fmt.Fprintf(&b, "👥 Заселяют: %s\n", tenantLabels(l.TenantType))
		}
	}
	if l.Type == models.RoommateOffer && l.TenantType != "" && l.TenantType != string(models.GenderAny) {
		fmt.Fprintf(&b, "👥 Подселяют: %s\n", tenantLabels(l.TenantType))
	}
	if l.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", l.Description)
	}
	if l.Contact != "" {
		fmt.Fprintf(&b, "\n📞 Контакт: %s", l.Contact)
	}
	return strings.TrimRight(b.String(), "\n")
}

func listingTitle(l *models.Listing) string {
	switch l.Type {
	case models.RentOut:
		return "Сдаётся квартира"
	case models.RentIn:
		return "Ищут квартиру"
	case models.RentRoomIn:
		return "Снимут комнату"
	case models.RoommateSeek:
		return "Ищут подселение"
	case models.RoommateOffer:
		if l.OfferRoomType == models.OfferSpot {
			return "Сдаётся спальное место"
		}
		return "Сдаётся комната"
	case models.CommercialRentOut:
		return "Коммерческая аренда"
	default:
		return string(l.Type)
	}
}

func tenantLabels(tenantTypes string) string {
	labels := map[string]string{
		"ANY":    "не важно",
		"FAMILY": "семья",
		"MALE":   "парень",
		"FEMALE": "девушка",
	}
	tokens := strings.Split(tenantTypes, ",")
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if label, ok := labels[t]; ok {
			out = append(out, label)
		} else {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}

func complaintButton(listingID uint) tgbotapi.InlineKeyboardMarkup {
	id := strconv.FormatUint(uint64(listingID), 10)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚠️ Пожаловаться", "complaint:"+id),
		),
	)
}

// ── Keyboard conversion ──

func toMarkup(kb *transport.Keyboard) interface{} {
	if kb.Inline {
		return toInlineMarkup(kb)
	}
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(b.Label))
		}
		rows = append(rows, buttons)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}

func toInlineMarkup(kb *transport.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
