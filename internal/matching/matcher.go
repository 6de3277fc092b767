// Package matching computes counter-party notification targets for a
// freshly published listing.
package matching

import (
	"log"
	"strings"

	"arendago/backend/internal/models"
	"arendago/backend/internal/storage"
)

type Service struct {
	Storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// FindCounterparties возвращает дедуплицированный набор Telegram ID
// владельцев встречных объявлений. Рендеринг и отправка — забота
// вызывающей стороны.
func (s *Service) FindCounterparties(listing *models.Listing) ([]int64, error) {
	var matched []models.Listing

	switch listing.Type {
	case models.RentOut:
		seekers, err := s.candidates(models.RentIn, listing.District)
		if err != nil {
			return nil, err
		}
		for _, c := range seekers {
			if roomsCompatible(listing.Rooms, c.Rooms) && budgetCompatible(listing, &c) {
				matched = append(matched, c)
			}
		}

	case models.RentIn:
		offers, err := s.candidates(models.RentOut, listing.District)
		if err != nil {
			return nil, err
		}
		for _, c := range offers {
			if roomsCompatible(listing.Rooms, c.Rooms) && budgetCompatible(&c, listing) {
				matched = append(matched, c)
			}
		}

	case models.RentRoomIn:
		// Ищущему целую комнату подходят только предложения целых
		// комнат, не спальных мест.
		offers, err := s.candidates(models.RoommateOffer, listing.District)
		if err != nil {
			return nil, err
		}
		for _, c := range offers {
			if c.OfferRoomType == models.OfferWholeRoom && budgetCompatible(&c, listing) {
				matched = append(matched, c)
			}
		}

	case models.RoommateOffer:
		seekers, err := s.candidates(models.RoommateSeek, listing.District)
		if err != nil {
			return nil, err
		}
		for _, c := range seekers {
			if genderCompatible(listing.TenantType, c.MyGender) && budgetCompatible(listing, &c) {
				matched = append(matched, c)
			}
		}
		if listing.OfferRoomType == models.OfferWholeRoom {
			roomSeekers, err := s.candidates(models.RentRoomIn, listing.District)
			if err != nil {
				return nil, err
			}
			for _, c := range roomSeekers {
				if budgetCompatible(listing, &c) {
					matched = append(matched, c)
				}
			}
		}

	case models.RoommateSeek:
		offers, err := s.candidates(models.RoommateOffer, listing.District)
		if err != nil {
			return nil, err
		}
		for _, c := range offers {
			if genderCompatible(c.TenantType, listing.MyGender) && budgetCompatible(&c, listing) {
				matched = append(matched, c)
			}
		}

	case models.CommercialRentOut:
		// Для коммерческой аренды встречный поиск не определён.
		return nil, nil
	}

	ids := make([]int64, 0, len(matched))
	seen := make(map[int64]struct{}, len(matched))
	for _, m := range matched {
		if m.UserID == listing.UserID {
			continue
		}
		tid := m.User.TelegramID
		if tid == 0 {
			log.Printf("WARN: Matched listing %d has no preloaded user, skipping", m.ID)
			continue
		}
		if _, ok := seen[tid]; ok {
			continue
		}
		seen[tid] = struct{}{}
		ids = append(ids, tid)
	}
	return ids, nil
}

func (s *Service) candidates(t models.ListingType, district string) ([]models.Listing, error) {
	return s.Storage.FindActiveByTypeAndDistrict(t, district)
}

// roomsCompatible: совпадение количества комнат; отсутствие значения
// с любой стороны снимает ограничение.
func roomsCompatible(a, b *int) bool {
	if a == nil || b == nil {
		return true
	}
	return *a == *b
}

// budgetCompatible проверяет цену предложения против бюджета искателя.
func budgetCompatible(offer, seeker *models.Listing) bool {
	if offer.Price == nil {
		return true
	}
	return PriceInBudget(*offer.Price, seeker.PriceRange)
}

// genderCompatible: набор типов жильцов предложения (токены через
// запятую) против пола искателя. Пустой набор совместим со всеми.
func genderCompatible(tenantTypes string, seeker models.Gender) bool {
	if tenantTypes == "" || seeker == "" {
		return true
	}
	for _, token := range strings.Split(tenantTypes, ",") {
		token = strings.TrimSpace(token)
		if token == string(models.GenderAny) || token == string(models.GenderFamily) || token == string(seeker) {
			return true
		}
	}
	return false
}
