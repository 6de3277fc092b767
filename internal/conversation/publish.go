package conversation

import (
	"fmt"
	"log"
	"strings"

	"arendago/backend/internal/events"
	"arendago/backend/internal/models"
)

// publishAndFinish — завершение анкеты: черновик материализуется в
// объявление, уходит в канал, подписчикам и встречным объявлениям,
// черновик очищается, пользователь возвращается в меню.
//
// Публикация в канал и рассылки — best effort: статус в базе первичен,
// их сбои логируются и не откатывают объявление.
func (e *Engine) publishAndFinish(user *models.User) {
	draft, err := e.Storage.GetDraft(user.ID)
	if err != nil {
		log.Printf("ERROR: Failed to load draft for user %d: %v", user.ID, err)
		return
	}

	listing, err := e.Listings.CreateFromDraft(user.TelegramID, draft)
	if err != nil {
		log.Printf("ERROR: Failed to create listing for user %d: %v", user.ID, err)
		e.Sender.SendPrompt(user.TelegramID,
			"Не получилось опубликовать объявление, попробуйте ещё раз.", mainMenuKeyboard())
		return
	}

	if msgID, err := e.Sender.PublishListing(listing); err != nil {
		log.Printf("ERROR: Failed to publish listing %d to channel: %v", listing.ID, err)
	} else if err := e.Listings.SaveChannelMessageID(listing.ID, msgID); err != nil {
		log.Printf("ERROR: Failed to save channel message id for listing %d: %v", listing.ID, err)
	}

	e.Notifier.NotifySubscribers(listing)

	counterparties, err := e.Matcher.FindCounterparties(listing)
	if err != nil {
		log.Printf("ERROR: Matching failed for listing %d: %v", listing.ID, err)
	}
	for _, tid := range counterparties {
		e.Sender.SendMatchNotification(tid, listing)
	}

	if err := e.Storage.PublishEvent(events.FromListing(events.KindPublished, listing)); err != nil {
		log.Printf("WARN: Failed to publish event for listing %d: %v", listing.ID, err)
	}

	if err := e.Storage.ClearDraft(user.ID); err != nil {
		log.Printf("ERROR: Failed to clear draft for user %d: %v", user.ID, err)
	}
	e.setState(user, models.StateIdle)
	e.Sender.SendPrompt(user.TelegramID,
		fmt.Sprintf("🎉 Объявление опубликовано!\nОно будет активно %d дней, потом я спрошу, актуально ли оно ещё.",
			e.Config.ListingExpiryDays),
		mainMenuKeyboard())
}

// showMyListings выводит активные и ожидающие подтверждения объявления
// пользователя с кнопками управления.
func (e *Engine) showMyListings(user *models.User) {
	listings, err := e.Listings.FindActiveByUser(user.TelegramID)
	if err != nil {
		log.Printf("ERROR: Failed to load listings for user %d: %v", user.ID, err)
		return
	}
	if len(listings) == 0 {
		e.Sender.SendPrompt(user.TelegramID, "У вас пока нет активных объявлений.", mainMenuKeyboard())
		return
	}
	for i := range listings {
		l := &listings[i]
		e.Sender.SendPrompt(user.TelegramID, summarizeListing(l), myListingKeyboard(l))
	}
}

// summarizeListing — короткая карточка для раздела "Мои объявления".
func summarizeListing(l *models.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", l.Status.Emoji(), listingTypeLabel(l.Type))
	if l.District != "" {
		fmt.Fprintf(&b, "📍 %s\n", l.District)
	}
	if l.Rooms != nil {
		fmt.Fprintf(&b, "🚪 Комнат: %d\n", *l.Rooms)
	}
	if l.Price != nil {
		fmt.Fprintf(&b, "💰 %d сом/мес\n", *l.Price)
	} else if l.PriceRange != "" {
		fmt.Fprintf(&b, "💰 Бюджет: %s\n", l.PriceRange)
	}
	if l.ExpiresAt != nil {
		fmt.Fprintf(&b, "⏳ Активно до %s", l.ExpiresAt.Format("02.01.2006"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func listingTypeLabel(t models.ListingType) string {
	switch t {
	case models.RentOut:
		return "Сдаю квартиру"
	case models.RentIn:
		return "Ищу квартиру"
	case models.RentRoomIn:
		return "Сниму комнату"
	case models.RoommateSeek:
		return "Ищу подселение"
	case models.RoommateOffer:
		return "Сдаю место/комнату"
	case models.CommercialRentOut:
		return "Коммерческая аренда"
	default:
		return string(t)
	}
}
