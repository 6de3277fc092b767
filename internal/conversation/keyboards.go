package conversation

import (
	"strconv"

	"arendago/backend/internal/models"
	"arendago/backend/internal/transport"
)

// Districts Бишкека, предлагаемые анкетой. Ввод произвольного района
// текстом тоже принимается.
var Districts = []string{
	"Центр", "Джал", "Асанбай", "Аламедин-1", "Восток-5",
	"Мкр. Улан", "Кок-Жар", "Тунгуч", "Политех", "Филармония",
	"Ошский рынок", "Западный автовокзал", "Ак-Кеме", "Арча-Бешик",
}

// Кнопки главного меню.
const (
	menuRentOut       = "🏠 Сдать квартиру"
	menuRentIn        = "🔍 Ищу квартиру"
	menuRentRoomIn    = "🛏 Сниму комнату"
	menuRoommateSeek  = "👥 Ищу подселение"
	menuRoommateOffer = "🤝 Сдаю место/комнату"
	menuCommercial    = "🏢 Коммерческая аренда"
	menuMyListings    = "📋 Мои объявления"
	menuNotifications = "🔔 Уведомления вкл/выкл"
	menuBack          = "◀️ Главное меню"
)

const (
	btnYes    = "Да"
	btnNo     = "Нет"
	btnSkip   = "Пропустить ▶️"
	btnFinish = "Готово ✅"
)

// Токены мультиселекта "кто будет жить".
var tenantTokens = []struct {
	Token models.Gender
	Label string
}{
	{models.GenderAny, "Не важно"},
	{models.GenderFamily, "Семья"},
	{models.GenderMale, "Парень"},
	{models.GenderFemale, "Девушка"},
}

func mainMenuKeyboard() *transport.Keyboard {
	return &transport.Keyboard{Rows: [][]transport.Button{
		transport.Row(transport.Button{Label: menuRentOut}, transport.Button{Label: menuRentIn}),
		transport.Row(transport.Button{Label: menuRentRoomIn}, transport.Button{Label: menuRoommateSeek}),
		transport.Row(transport.Button{Label: menuRoommateOffer}, transport.Button{Label: menuCommercial}),
		transport.Row(transport.Button{Label: menuMyListings}, transport.Button{Label: menuNotifications}),
	}}
}

func districtsKeyboard() *transport.Keyboard {
	kb := &transport.Keyboard{}
	for i := 0; i < len(Districts); i += 2 {
		row := transport.Row(transport.Button{Label: Districts[i]})
		if i+1 < len(Districts) {
			row = append(row, transport.Button{Label: Districts[i+1]})
		}
		kb.Rows = append(kb.Rows, row)
	}
	kb.Rows = append(kb.Rows, transport.Row(transport.Button{Label: menuBack}))
	return kb
}

func roomsKeyboard() *transport.Keyboard {
	return &transport.Keyboard{Rows: [][]transport.Button{
		transport.Row(
			transport.Button{Label: "1"}, transport.Button{Label: "2"},
			transport.Button{Label: "3"}, transport.Button{Label: "4"},
			transport.Button{Label: "5+"},
		),
		transport.Row(transport.Button{Label: menuBack}),
	}}
}

func yesNoKeyboard() *transport.Keyboard {
	return &transport.Keyboard{Rows: [][]transport.Button{
		transport.Row(transport.Button{Label: btnYes}, transport.Button{Label: btnNo}),
		transport.Row(transport.Button{Label: menuBack}),
	}}
}

// budgetKeyboard — пресеты бюджета; произвольный текст тоже принимается.
func budgetKeyboard(ranges []string) *transport.Keyboard {
	kb := &transport.Keyboard{}
	for i := 0; i < len(ranges); i += 2 {
		row := transport.Row(transport.Button{Label: ranges[i]})
		if i+1 < len(ranges) {
			row = append(row, transport.Button{Label: ranges[i+1]})
		}
		kb.Rows = append(kb.Rows, row)
	}
	kb.Rows = append(kb.Rows, transport.Row(transport.Button{Label: menuBack}))
	return kb
}

var apartmentBudgets = []string{
	"до 15 000", "15 000 – 25 000",
	"25 000 – 40 000", "от 40 000",
}

var roomBudgets = []string{
	"до 6 000", "6 000 – 10 000",
	"10 000 – 15 000", "от 15 000",
}

func whenKeyboard() *transport.Keyboard {
	return &transport.Keyboard{Rows: [][]transport.Button{
		transport.Row(transport.Button{Label: "Сегодня-завтра"}),
		transport.Row(transport.Button{Label: "В ближайшую неделю"}),
		transport.Row(transport.Button{Label: "В течение месяца"}),
		transport.Row(transport.Button{Label: menuBack}),
	}}
}

func skipKeyboard() *transport.Keyboard {
	return &transport.Keyboard{Rows: [][]transport.Button{
		transport.Row(transport.Button{Label: btnSkip}),
		transport.Row(transport.Button{Label: menuBack}),
	}}
}

func photosKeyboard() *transport.Keyboard {
	return &transport.Keyboard{Rows: [][]transport.Button{
		transport.Row(transport.Button{Label: btnFinish}, transport.Button{Label: btnSkip}),
		transport.Row(transport.Button{Label: menuBack}),
	}}
}

// tenantTypeKeyboard — инлайн-мультиселект с отметками выбранного.
func tenantTypeKeyboard(selected []string) *transport.Keyboard {
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}
	kb := &transport.Keyboard{Inline: true}
	for _, t := range tenantTokens {
		label := t.Label
		if chosen[string(t.Token)] {
			label = "✅ " + label
		}
		kb.Rows = append(kb.Rows, transport.Row(transport.Button{
			Label:  label,
			Action: "tenant_toggle:" + string(t.Token),
		}))
	}
	kb.Rows = append(kb.Rows, transport.Row(transport.Button{Label: "Готово", Action: "tenant_done"}))
	return kb
}

func seekGenderKeyboard() *transport.Keyboard {
	return &transport.Keyboard{Inline: true, Rows: [][]transport.Button{
		transport.Row(
			transport.Button{Label: "Парень", Action: "seek_gender:MALE"},
			transport.Button{Label: "Девушка", Action: "seek_gender:FEMALE"},
		),
	}}
}

func seekSpotsKeyboard() *transport.Keyboard {
	row := transport.Row()
	for n := 1; n <= 3; n++ {
		row = append(row, transport.Button{
			Label:  strconv.Itoa(n),
			Action: "seek_spots:" + strconv.Itoa(n),
		})
	}
	return &transport.Keyboard{Inline: true, Rows: [][]transport.Button{row}}
}

func offerTypeKeyboard() *transport.Keyboard {
	return &transport.Keyboard{Inline: true, Rows: [][]transport.Button{
		transport.Row(
			transport.Button{Label: "Отдельная комната", Action: "offer_type:ROOM"},
			transport.Button{Label: "Спальное место", Action: "offer_type:SPOT"},
		),
	}}
}

// complaintReasonsKeyboard прикрепляется к карточке объявления.
func complaintReasonsKeyboard(listingID uint) *transport.Keyboard {
	id := strconv.FormatUint(uint64(listingID), 10)
	return &transport.Keyboard{Inline: true, Rows: [][]transport.Button{
		transport.Row(transport.Button{Label: "🚫 Мошенник", Action: "complaint_reason:" + id + ":SCAMMER"}),
		transport.Row(transport.Button{Label: "📷 Фото не соответствует", Action: "complaint_reason:" + id + ":PHOTO_MISMATCH"}),
		transport.Row(transport.Button{Label: "✅ Уже сдана", Action: "complaint_reason:" + id + ":ALREADY_RENTED"}),
		transport.Row(transport.Button{Label: "❓ Другое", Action: "complaint_reason:" + id + ":OTHER"}),
	}}
}

// myListingKeyboard — действия владельца над собственным объявлением.
func myListingKeyboard(l *models.Listing) *transport.Keyboard {
	id := strconv.FormatUint(uint64(l.ID), 10)
	kb := &transport.Keyboard{Inline: true}
	switch l.Status {
	case models.StatusActive:
		kb.Rows = append(kb.Rows,
			transport.Row(transport.Button{Label: "✅ Закрыть (сдано)", Action: "my_close:" + id}),
			transport.Row(transport.Button{Label: "🔄 Продлить", Action: "my_extend:" + id}),
		)
	case models.StatusPending:
		kb.Rows = append(kb.Rows,
			transport.Row(transport.Button{Label: "🟢 Ещё актуально", Action: "confirm:" + id}),
			transport.Row(transport.Button{Label: "✅ Закрыть (сдано)", Action: "my_close:" + id}),
		)
	default:
		kb.Rows = append(kb.Rows,
			transport.Row(transport.Button{Label: "♻️ Опубликовать заново", Action: "my_reopen:" + id}),
		)
	}
	return kb
}
