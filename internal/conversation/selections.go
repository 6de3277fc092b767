package conversation

import (
	"log"
	"strconv"
	"strings"

	"arendago/backend/internal/models"
)

// dispatchSelection — маршрутизация нажатий инлайн-кнопок. Ключ имеет
// вид "действие" или "действие:аргументы".
func (e *Engine) dispatchSelection(user *models.User, key string, messageID int) {
	action, arg, _ := strings.Cut(key, ":")

	switch action {
	case "tenant_toggle":
		e.toggleTenantType(user, arg, messageID)
	case "tenant_done":
		e.finishTenantType(user)
	case "seek_gender":
		e.selectSeekGender(user, arg)
	case "seek_spots":
		e.selectSeekSpots(user, arg)
	case "offer_type":
		e.selectOfferType(user, arg)
	case "confirm":
		e.ownerConfirm(user, arg)
	case "close", "my_close":
		e.ownerClose(user, arg)
	case "my_extend":
		e.ownerExtend(user, arg)
	case "my_reopen":
		e.ownerReopen(user, arg)
	case "complaint":
		e.askComplaintReason(user, arg)
	case "complaint_reason":
		e.submitComplaint(user, arg)
	default:
		log.Printf("WARN: Unknown selection key %q from user %d", key, user.ID)
	}
}

// tenantStates — шаги, на которых активен мультиселект типов жильцов.
func tenantSelectionActive(state models.UserState) bool {
	return state == models.StateRentOutTenantType || state == models.StateRoommateOfferGender
}

// toggleTenantType реализует мультиселект: "Не важно" исключает всё
// остальное, конкретный выбор снимает "Не важно", повторное нажатие
// снимает отметку. Каждое нажатие перерисовывает клавиатуру.
func (e *Engine) toggleTenantType(user *models.User, token string, messageID int) {
	if !tenantSelectionActive(user.State) {
		return
	}
	draft, err := e.Storage.GetDraft(user.ID)
	if err != nil {
		log.Printf("ERROR: Failed to load draft for user %d: %v", user.ID, err)
		return
	}
	selected := draft.StringList("tenantSelection")

	switch {
	case token == string(models.GenderAny):
		if contains(selected, token) {
			selected = remove(selected, token)
		} else {
			selected = []string{token}
		}
	default:
		if contains(selected, token) {
			selected = remove(selected, token)
		} else {
			selected = append(remove(selected, string(models.GenderAny)), token)
		}
	}

	if !e.saveField(user, "tenantSelection", selected) {
		return
	}
	e.Sender.EditKeyboard(user.TelegramID, messageID, tenantTypeKeyboard(selected))
}

// finishTenantType — "Готово" проходит только при непустом наборе.
func (e *Engine) finishTenantType(user *models.User) {
	if !tenantSelectionActive(user.State) {
		return
	}
	draft, err := e.Storage.GetDraft(user.ID)
	if err != nil {
		log.Printf("ERROR: Failed to load draft for user %d: %v", user.ID, err)
		return
	}
	selected := draft.StringList("tenantSelection")
	if len(selected) == 0 {
		e.Sender.SendPrompt(user.TelegramID, "Выберите хотя бы один вариант 👆", nil)
		return
	}
	if !e.saveField(user, "tenantType", strings.Join(selected, ", ")) {
		return
	}

	switch user.State {
	case models.StateRentOutTenantType:
		e.setState(user, models.StateRentOutContact)
		e.Sender.SendPrompt(user.TelegramID, "Оставьте контакт для связи (телефон или @username):", nil)
	case models.StateRoommateOfferGender:
		e.setState(user, models.StateRoommateOfferAmenities)
		e.Sender.SendPrompt(user.TelegramID, "Что есть в квартире? (wi-fi, стиральная машина, ...)", nil)
	}
}

func (e *Engine) selectSeekGender(user *models.User, gender string) {
	if user.State != models.StateRoommateSeekGender {
		return
	}
	if gender != string(models.GenderMale) && gender != string(models.GenderFemale) {
		return
	}
	if !e.saveField(user, "myGender", gender) {
		return
	}
	e.setState(user, models.StateRoommateSeekSpots)
	e.Sender.SendPrompt(user.TelegramID, "Сколько вас человек?", seekSpotsKeyboard())
}

func (e *Engine) selectSeekSpots(user *models.User, arg string) {
	if user.State != models.StateRoommateSeekSpots {
		return
	}
	spots, err := strconv.Atoi(arg)
	if err != nil || spots < 1 {
		return
	}
	if !e.saveField(user, "spotsAvailable", spots) {
		return
	}
	e.setState(user, models.StateRoommateSeekWhen)
	e.Sender.SendPrompt(user.TelegramID, "Когда планируете заехать?", whenKeyboard())
}

func (e *Engine) selectOfferType(user *models.User, arg string) {
	if user.State != models.StateRoommateOfferType {
		return
	}
	if arg != models.OfferWholeRoom && arg != models.OfferSpot {
		return
	}
	if !e.saveField(user, "offerRoomType", arg) {
		return
	}
	e.setState(user, models.StateRoommateOfferDistrict)
	e.Sender.SendPrompt(user.TelegramID, "В каком районе?", districtsKeyboard())
}

// ── Действия владельца ──

// ownedListing загружает объявление и проверяет, что действие совершает
// владелец. Чужое нажатие молча игнорируется.
func (e *Engine) ownedListing(user *models.User, arg string) *models.Listing {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return nil
	}
	l, err := e.Listings.FindByID(uint(id))
	if err != nil {
		log.Printf("WARN: Listing %s not found for owner action by user %d: %v", arg, user.ID, err)
		return nil
	}
	if l.UserID != user.ID {
		log.Printf("WARN: User %d attempted owner action on foreign listing %d", user.ID, l.ID)
		return nil
	}
	return l
}

// ownerConfirm — ответ "ещё актуально" на напоминание.
func (e *Engine) ownerConfirm(user *models.User, arg string) {
	l := e.ownedListing(user, arg)
	if l == nil {
		return
	}
	if err := e.Listings.Confirm(l.ID); err != nil {
		log.Printf("ERROR: Failed to confirm listing %d: %v", l.ID, err)
		return
	}
	l.Status = models.StatusActive
	e.Sender.UpdateListingStatus(l)
	e.Sender.SendPrompt(user.TelegramID, "🟢 Объявление продлено!", nil)
}

func (e *Engine) ownerClose(user *models.User, arg string) {
	l := e.ownedListing(user, arg)
	if l == nil {
		return
	}
	if err := e.Listings.Close(l.ID); err != nil {
		log.Printf("ERROR: Failed to close listing %d: %v", l.ID, err)
		return
	}
	l.Status = models.StatusClosed
	e.Sender.UpdateListingStatus(l)
	e.Sender.SendPrompt(user.TelegramID, "✅ Объявление закрыто. Рады были помочь!", myListingKeyboard(l))
}

func (e *Engine) ownerExtend(user *models.User, arg string) {
	e.ownerConfirm(user, arg)
}

func (e *Engine) ownerReopen(user *models.User, arg string) {
	l := e.ownedListing(user, arg)
	if l == nil {
		return
	}
	if err := e.Listings.Reopen(l.ID); err != nil {
		log.Printf("ERROR: Failed to reopen listing %d: %v", l.ID, err)
		return
	}
	l.Status = models.StatusActive
	e.Sender.UpdateListingStatus(l)
	e.Sender.SendPrompt(user.TelegramID, "♻️ Объявление опубликовано заново!", nil)
}

// ── Жалобы ──

func (e *Engine) askComplaintReason(user *models.User, arg string) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return
	}
	e.Sender.SendPrompt(user.TelegramID, "Укажите причину жалобы:", complaintReasonsKeyboard(uint(id)))
}

// submitComplaint — ключ вида "<listingID>:<REASON>".
func (e *Engine) submitComplaint(user *models.User, arg string) {
	idStr, reasonStr, ok := strings.Cut(arg, ":")
	if !ok {
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return
	}
	reason := models.ComplaintReason(reasonStr)

	outcome, err := e.Complaints.Submit(uint(id), user.TelegramID, reason, "")
	if err != nil {
		log.Printf("ERROR: Failed to submit complaint on listing %d: %v", id, err)
		return
	}

	// Отклонённые жалобы (дубликат, своё объявление) отвечаем так же,
	// как принятым: жалобщику не нужно знать внутренности.
	e.Sender.SendPrompt(user.TelegramID, "Спасибо! Жалоба принята на рассмотрение.", nil)

	if outcome.ListingClosed {
		e.Sender.UpdateListingStatus(outcome.Listing)
	}
	if outcome.Banned {
		e.Sender.RemoveListing(outcome.Listing)
		e.Sender.PublishBlacklistWarning(outcome.Listing)
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}
