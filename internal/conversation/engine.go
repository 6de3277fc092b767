// Package conversation implements the per-user dialog state machine:
// five linear intake flows, the "my listings" surface and complaint
// intake. One inbound event is one serialized unit of work per user.
package conversation

import (
	"log"
	"strconv"
	"strings"

	"arendago/backend/internal/complaint"
	"arendago/backend/internal/config"
	"arendago/backend/internal/listing"
	"arendago/backend/internal/matching"
	"arendago/backend/internal/models"
	"arendago/backend/internal/notification"
	"arendago/backend/internal/storage"
	"arendago/backend/internal/subscription"
	"arendago/backend/internal/transport"
	"arendago/backend/internal/userlock"
)

// TextEvent — входящее текстовое сообщение.
type TextEvent struct {
	UserID    int64
	Username  string
	FirstName string
	Text      string
}

// SelectionEvent — нажатие инлайн-кнопки. MessageID нужен для
// перерисовки мультиселекта.
type SelectionEvent struct {
	UserID    int64
	Username  string
	FirstName string
	Key       string
	MessageID int
}

// PhotoEvent — присланная фотография (максимальное разрешение).
type PhotoEvent struct {
	UserID    int64
	Username  string
	FirstName string
	FileID    string
}

type Engine struct {
	Storage       storage.Storage
	Sender        transport.Sender
	Listings      *listing.Service
	Matcher       *matching.Service
	Notifier      *notification.Service
	Complaints    *complaint.Service
	Subscriptions *subscription.Service
	Config        *config.Config

	locks *userlock.Map
}

func NewEngine(
	st storage.Storage,
	sender transport.Sender,
	listings *listing.Service,
	matcher *matching.Service,
	notifier *notification.Service,
	complaints *complaint.Service,
	subs *subscription.Service,
	cfg *config.Config,
) *Engine {
	return &Engine{
		Storage:       st,
		Sender:        sender,
		Listings:      listings,
		Matcher:       matcher,
		Notifier:      notifier,
		Complaints:    complaints,
		Subscriptions: subs,
		Config:        cfg,
		locks:         userlock.New(),
	}
}

// HandleText обрабатывает текстовое сообщение пользователя.
func (e *Engine) HandleText(ev TextEvent) {
	e.withUser(ev.UserID, ev.Username, ev.FirstName, func(user *models.User) {
		text := strings.TrimSpace(ev.Text)

		// Универсальный сброс перекрывает любой текущий шаг.
		if isResetCommand(text) {
			e.resetToMenu(user)
			return
		}

		if user.State == models.StateIdle {
			e.handleMenu(user, text)
			return
		}
		e.handleFormText(user, text)
	})
}

// HandleSelection обрабатывает нажатие инлайн-кнопки.
func (e *Engine) HandleSelection(ev SelectionEvent) {
	e.withUser(ev.UserID, ev.Username, ev.FirstName, func(user *models.User) {
		e.dispatchSelection(user, ev.Key, ev.MessageID)
	})
}

// HandlePhoto обрабатывает фотографию. Вне фото-шагов молча игнорируется.
func (e *Engine) HandlePhoto(ev PhotoEvent) {
	e.withUser(ev.UserID, ev.Username, ev.FirstName, func(user *models.User) {
		switch user.State {
		case models.StateRentOutPhotos, models.StateRoommateOfferPhotos:
			e.appendPhoto(user, ev.FileID)
		}
	})
}

// withUser — общая обвязка каждого события: блокировка по пользователю,
// регистрация, проверка бана и страховка от паники. Ошибка внутри шага
// не должна портить состояние: пользователь остаётся на прежнем шаге.
func (e *Engine) withUser(telegramID int64, username, firstName string, fn func(user *models.User)) {
	e.locks.Lock(telegramID)
	defer e.locks.Unlock(telegramID)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: Panic handling event for user %d: %v", telegramID, r)
		}
	}()

	user, err := e.Storage.GetOrCreateUser(telegramID, username, firstName)
	if err != nil {
		log.Printf("ERROR: Failed to load user %d: %v", telegramID, err)
		return
	}

	if e.isBanned(user) {
		e.Sender.SendPrompt(telegramID, "⛔ Вы временно заблокированы за жалобы других пользователей.", nil)
		return
	}

	fn(user)
}

// isBanned — сначала быстрый ответ из Redis, затем источник истины в базе.
func (e *Engine) isBanned(user *models.User) bool {
	if cached, err := e.Storage.IsBanCached(user.TelegramID); err == nil && cached {
		return true
	}
	return user.IsBanned()
}

func isResetCommand(text string) bool {
	return text == "/start" || text == "/menu" || text == menuBack
}

func (e *Engine) resetToMenu(user *models.User) {
	if err := e.Storage.ClearDraft(user.ID); err != nil {
		log.Printf("ERROR: Failed to clear draft for user %d: %v", user.ID, err)
	}
	e.setState(user, models.StateIdle)
	e.Sender.SendPrompt(user.TelegramID,
		"Привет! Я помогу сдать или найти жильё в Бишкеке.\nВыберите, что вас интересует:",
		mainMenuKeyboard())
}

// handleMenu — маршрутизация из главного меню.
func (e *Engine) handleMenu(user *models.User, text string) {
	switch text {
	case menuRentOut:
		e.startFlow(user, models.RentOut, models.StateRentOutDistrict,
			"В каком районе находится квартира?", districtsKeyboard())
	case menuRentIn:
		e.startFlow(user, models.RentIn, models.StateRentInDistrict,
			"В каком районе ищете квартиру?", districtsKeyboard())
	case menuRentRoomIn:
		e.startFlow(user, models.RentRoomIn, models.StateRentRoomInDistrict,
			"В каком районе ищете комнату?", districtsKeyboard())
	case menuRoommateSeek:
		e.startFlow(user, models.RoommateSeek, models.StateRoommateSeekDistrict,
			"В каком районе ищете подселение?", districtsKeyboard())
	case menuRoommateOffer:
		e.setState(user, models.StateRoommateOfferType)
		if err := e.Storage.SaveDraftField(user.ID, "type", string(models.RoommateOffer)); err != nil {
			log.Printf("ERROR: Failed to save draft for user %d: %v", user.ID, err)
			return
		}
		e.Sender.SendPrompt(user.TelegramID, "Что вы сдаёте?", offerTypeKeyboard())
	case menuCommercial:
		// Коммерческая аренда идёт без анкеты, напрямую в канал.
		e.Sender.SendPrompt(user.TelegramID,
			"🏢 Объявления коммерческой аренды размещаются через администратора: @arenda_bishkek_admin",
			mainMenuKeyboard())
	case menuMyListings:
		e.showMyListings(user)
	case menuNotifications:
		enabled, err := e.Subscriptions.ToggleNotifications(user.TelegramID)
		if err != nil {
			log.Printf("ERROR: Failed to toggle notifications for user %d: %v", user.ID, err)
			return
		}
		if enabled {
			e.Sender.SendPrompt(user.TelegramID, "🔔 Уведомления включены.", mainMenuKeyboard())
		} else {
			e.Sender.SendPrompt(user.TelegramID, "🔕 Уведомления выключены.", mainMenuKeyboard())
		}
	default:
		e.Sender.SendPrompt(user.TelegramID, "Выберите действие на клавиатуре 👇", mainMenuKeyboard())
	}
}

func (e *Engine) startFlow(user *models.User, t models.ListingType, first models.UserState, prompt string, kb *transport.Keyboard) {
	if err := e.Storage.SaveDraftField(user.ID, "type", string(t)); err != nil {
		log.Printf("ERROR: Failed to save draft for user %d: %v", user.ID, err)
		return
	}
	e.setState(user, first)
	e.Sender.SendPrompt(user.TelegramID, prompt, kb)
}

// setState мутирует состояние только после успешной валидации шага.
func (e *Engine) setState(user *models.User, state models.UserState) {
	if err := e.Storage.SetUserState(user.TelegramID, state); err != nil {
		log.Printf("ERROR: Failed to set state %s for user %d: %v", state, user.ID, err)
		return
	}
	user.State = state
}

// saveField пишет поле черновика; false означает "шаг не продолжать".
func (e *Engine) saveField(user *models.User, key string, value any) bool {
	if err := e.Storage.SaveDraftField(user.ID, key, value); err != nil {
		log.Printf("ERROR: Failed to save draft field %q for user %d: %v", key, user.ID, err)
		return false
	}
	return true
}

// advance — стандартный шаг анкеты: записать поле, перейти дальше,
// задать следующий вопрос.
func (e *Engine) advance(user *models.User, key string, value any, next models.UserState, prompt string, kb *transport.Keyboard) {
	if !e.saveField(user, key, value) {
		return
	}
	e.setState(user, next)
	e.Sender.SendPrompt(user.TelegramID, prompt, kb)
}

// parseNumber выбрасывает все нецифровые символы и парсит остаток
// ("5+" → 5, "15 000 сом" → 15000).
func parseNumber(text string) (int, bool) {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
