package conversation

import (
	"fmt"
	"log"
	"strings"

	"arendago/backend/internal/models"
)

// handleFormText — диспетчер текстового ввода по текущему шагу анкеты.
// Каждый шаг: один валидатор, одно следующее состояние. Невалидный
// числовой ввод повторяет тот же вопрос без изменения состояния и
// черновика.
func (e *Engine) handleFormText(user *models.User, text string) {
	switch user.State {

	// ── Сдаю квартиру ──

	case models.StateRentOutDistrict:
		e.advance(user, "district", text, models.StateRentOutRooms,
			"Сколько комнат?", roomsKeyboard())

	case models.StateRentOutRooms:
		rooms, ok := parseNumber(text)
		if !ok {
			e.Sender.SendPrompt(user.TelegramID, "Сколько комнат?", roomsKeyboard())
			return
		}
		e.advance(user, "rooms", rooms, models.StateRentOutPrice,
			"Укажите цену в сомах за месяц:", nil)

	case models.StateRentOutPrice:
		price, ok := parseNumber(text)
		if !ok {
			e.Sender.SendPrompt(user.TelegramID, "Укажите цену в сомах за месяц:", nil)
			return
		}
		e.advance(user, "price", price, models.StateRentOutFurniture,
			"Есть мебель и техника?", yesNoKeyboard())

	case models.StateRentOutFurniture:
		furnished := text == btnYes
		if !e.saveField(user, "furniture", furnished) {
			return
		}
		e.advance(user, "appliances", furnished, models.StateRentOutUtilities,
			"Коммунальные услуги включены в цену?", yesNoKeyboard())

	case models.StateRentOutUtilities:
		if !e.saveField(user, "utilitiesIncluded", text == btnYes) {
			return
		}
		e.setState(user, models.StateRentOutTenantType)
		e.Sender.SendPrompt(user.TelegramID, "Кого готовы заселить?", tenantTypeKeyboard(nil))

	case models.StateRentOutTenantType, models.StateRoommateOfferGender,
		models.StateRoommateSeekGender, models.StateRoommateSeekSpots,
		models.StateRoommateOfferType:
		// Шаги с кнопками не принимают текст.
		e.Sender.SendPrompt(user.TelegramID, "Пожалуйста, используйте кнопки выше 👆", nil)

	case models.StateRentOutContact:
		e.advance(user, "contact", text, models.StateRentOutPhotos,
			"Пришлите фото квартиры (до 3 штук) или нажмите «Пропустить».", photosKeyboard())

	case models.StateRentOutPhotos:
		e.handlePhotoStepText(user, text, models.StateRentOutDescription)

	case models.StateRentOutDescription:
		e.finishWithDescription(user, text)

	// ── Ищу квартиру ──

	case models.StateRentInDistrict:
		e.advance(user, "district", text, models.StateRentInBudget,
			"Какой у вас бюджет в месяц?", budgetKeyboard(apartmentBudgets))

	case models.StateRentInBudget:
		e.advance(user, "priceRange", text, models.StateRentInRooms,
			"Сколько комнат нужно?", roomsKeyboard())

	case models.StateRentInRooms:
		rooms, ok := parseNumber(text)
		if !ok {
			e.Sender.SendPrompt(user.TelegramID, "Сколько комнат нужно?", roomsKeyboard())
			return
		}
		e.advance(user, "rooms", rooms, models.StateRentInWhen,
			"Когда планируете заехать?", whenKeyboard())

	case models.StateRentInWhen:
		e.advance(user, "when", text, models.StateRentInContact,
			"Оставьте контакт для связи (телефон или @username):", nil)

	case models.StateRentInContact:
		e.advance(user, "contact", text, models.StateRentInDescription,
			"Добавьте описание: кто вы, пожелания к жилью. Или нажмите «Пропустить».", skipKeyboard())

	case models.StateRentInDescription:
		e.finishWithDescription(user, text)

	// ── Сниму комнату ──

	case models.StateRentRoomInDistrict:
		e.advance(user, "district", text, models.StateRentRoomInWho,
			"Кто будет жить? (например: студент, работающая девушка, пара)", nil)

	case models.StateRentRoomInWho:
		e.advance(user, "who", text, models.StateRentRoomInBudget,
			"Какой у вас бюджет в месяц?", budgetKeyboard(roomBudgets))

	case models.StateRentRoomInBudget:
		e.advance(user, "priceRange", text, models.StateRentRoomInWhen,
			"Когда планируете заехать?", whenKeyboard())

	case models.StateRentRoomInWhen:
		e.advance(user, "when", text, models.StateRentRoomInContact,
			"Оставьте контакт для связи (телефон или @username):", nil)

	case models.StateRentRoomInContact:
		e.advance(user, "contact", text, models.StateRentRoomInDescription,
			"Добавьте описание о себе. Или нажмите «Пропустить».", skipKeyboard())

	case models.StateRentRoomInDescription:
		e.finishWithDescription(user, text)

	// ── Ищу подселение ──

	case models.StateRoommateSeekDistrict:
		e.advance(user, "district", text, models.StateRoommateSeekBudget,
			"Какой у вас бюджет в месяц?", budgetKeyboard(roomBudgets))

	case models.StateRoommateSeekBudget:
		if !e.saveField(user, "priceRange", text) {
			return
		}
		e.setState(user, models.StateRoommateSeekGender)
		e.Sender.SendPrompt(user.TelegramID, "Укажите ваш пол:", seekGenderKeyboard())

	case models.StateRoommateSeekWhen:
		e.advance(user, "when", text, models.StateRoommateSeekContact,
			"Оставьте контакт для связи (телефон или @username):", nil)

	case models.StateRoommateSeekContact:
		e.advance(user, "contact", text, models.StateRoommateSeekDescription,
			"Добавьте описание о себе. Или нажмите «Пропустить».", skipKeyboard())

	case models.StateRoommateSeekDescription:
		e.finishWithDescription(user, text)

	// ── Сдаю место / комнату ──

	case models.StateRoommateOfferDistrict:
		e.advance(user, "district", text, models.StateRoommateOfferPrice,
			"Укажите цену в сомах за месяц:", nil)

	case models.StateRoommateOfferPrice:
		price, ok := parseNumber(text)
		if !ok {
			e.Sender.SendPrompt(user.TelegramID, "Укажите цену в сомах за месяц:", nil)
			return
		}
		e.advance(user, "price", price, models.StateRoommateOfferSpots,
			"Сколько мест свободно?", nil)

	case models.StateRoommateOfferSpots:
		spots, ok := parseNumber(text)
		if !ok {
			e.Sender.SendPrompt(user.TelegramID, "Сколько мест свободно?", nil)
			return
		}
		if !e.saveField(user, "spotsAvailable", spots) {
			return
		}
		e.setState(user, models.StateRoommateOfferGender)
		e.Sender.SendPrompt(user.TelegramID, "Кого готовы заселить?", tenantTypeKeyboard(nil))

	case models.StateRoommateOfferAmenities:
		e.advance(user, "amenities", text, models.StateRoommateOfferContact,
			"Оставьте контакт для связи (телефон или @username):", nil)

	case models.StateRoommateOfferContact:
		e.advance(user, "contact", text, models.StateRoommateOfferPhotos,
			"Пришлите фото (до 3 штук) или нажмите «Пропустить».", photosKeyboard())

	case models.StateRoommateOfferPhotos:
		e.handlePhotoStepText(user, text, models.StateRoommateOfferDescription)

	case models.StateRoommateOfferDescription:
		e.finishWithDescription(user, text)

	default:
		e.Sender.SendPrompt(user.TelegramID, "Выберите действие на клавиатуре 👇", mainMenuKeyboard())
	}
}

// handlePhotoStepText — текстовые кнопки фото-шага: «Готово» и
// «Пропустить» ведут к описанию, остальной текст напоминает про фото.
func (e *Engine) handlePhotoStepText(user *models.User, text string, next models.UserState) {
	switch text {
	case btnFinish, btnSkip:
		e.setState(user, next)
		e.Sender.SendPrompt(user.TelegramID,
			"Добавьте описание объявления. Или нажмите «Пропустить».", skipKeyboard())
	default:
		e.Sender.SendPrompt(user.TelegramID,
			"Пришлите фото или нажмите «Готово ✅» / «Пропустить ▶️».", photosKeyboard())
	}
}

// appendPhoto — приём фотографии на фото-шаге.
func (e *Engine) appendPhoto(user *models.User, fileID string) {
	draft, err := e.Storage.GetDraft(user.ID)
	if err != nil {
		log.Printf("ERROR: Failed to load draft for user %d: %v", user.ID, err)
		return
	}
	photos := append(draft.StringList("photos"), fileID)
	if !e.saveField(user, "photos", photos) {
		return
	}
	if len(photos) < 3 {
		e.Sender.SendPrompt(user.TelegramID,
			fmt.Sprintf("Фото %d/3 принято. Пришлите ещё или нажмите «Готово ✅».", len(photos)), photosKeyboard())
	} else {
		e.Sender.SendPrompt(user.TelegramID,
			fmt.Sprintf("Фото %d принято. Нажмите «Готово ✅».", len(photos)), photosKeyboard())
	}
}

// finishWithDescription — терминальный шаг каждой анкеты.
func (e *Engine) finishWithDescription(user *models.User, text string) {
	description := text
	if text == btnSkip {
		description = ""
	}
	if !e.saveField(user, "description", strings.TrimSpace(description)) {
		return
	}
	e.publishAndFinish(user)
}
