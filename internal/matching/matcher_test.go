package matching

import (
	"testing"

	"arendago/backend/internal/models"
	"arendago/backend/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func seeker(id uint, tid int64, district, budget string, rooms *int) models.Listing {
	return models.Listing{
		ID:         id,
		UserID:     id,
		User:       models.User{ID: id, TelegramID: tid},
		Type:       models.RentIn,
		Status:     models.StatusActive,
		District:   district,
		PriceRange: budget,
		Rooms:      rooms,
	}
}

func TestFindCounterparties_RentOutMatchesSeekers(t *testing.T) {
	// Arrange
	mockStorage := new(mocks.Storage)
	svc := NewService(mockStorage)

	offer := &models.Listing{
		ID:       100,
		UserID:   1,
		User:     models.User{ID: 1, TelegramID: 111},
		Type:     models.RentOut,
		District: "Джал",
		Rooms:    intPtr(2),
		Price:    intPtr(15000),
	}

	candidates := []models.Listing{
		seeker(2, 222, "Джал", "до 20 000", intPtr(2)),  // подходит
		seeker(3, 333, "Джал", "до 10 000", intPtr(2)),  // бюджет ниже цены
		seeker(4, 444, "Джал", "до 20 000", intPtr(3)),  // другое число комнат
		seeker(5, 555, "Джал", "до 20 000", nil),        // комнаты не указаны — подходит
	}
	mockStorage.On("FindActiveByTypeAndDistrict", models.RentIn, "Джал").Return(candidates, nil)

	// Act
	ids, err := svc.FindCounterparties(offer)

	// Assert
	assert.NoError(t, err)
	assert.ElementsMatch(t, []int64{222, 555}, ids)
	mockStorage.AssertExpectations(t)
}

func TestFindCounterparties_ExcludesOwnListings(t *testing.T) {
	mockStorage := new(mocks.Storage)
	svc := NewService(mockStorage)

	offer := &models.Listing{
		ID:       100,
		UserID:   1,
		User:     models.User{ID: 1, TelegramID: 111},
		Type:     models.RentOut,
		District: "Асанбай",
		Price:    intPtr(25000),
	}

	own := seeker(1, 111, "Асанбай", "", nil)
	own.UserID = 1
	other := seeker(2, 222, "Асанбай", "", nil)
	mockStorage.On("FindActiveByTypeAndDistrict", models.RentIn, "Асанбай").
		Return([]models.Listing{own, other}, nil)

	ids, err := svc.FindCounterparties(offer)

	assert.NoError(t, err)
	assert.Equal(t, []int64{222}, ids)
}

func TestFindCounterparties_DeduplicatesUsers(t *testing.T) {
	mockStorage := new(mocks.Storage)
	svc := NewService(mockStorage)

	offer := &models.Listing{
		ID:       100,
		UserID:   1,
		Type:     models.RentOut,
		District: "Центр",
		Price:    intPtr(30000),
	}

	first := seeker(2, 222, "Центр", "", nil)
	second := seeker(3, 222, "Центр", "", nil) // второй ряд того же пользователя
	second.UserID = 2
	first.UserID = 2
	mockStorage.On("FindActiveByTypeAndDistrict", models.RentIn, "Центр").
		Return([]models.Listing{first, second}, nil)

	ids, err := svc.FindCounterparties(offer)

	assert.NoError(t, err)
	assert.Equal(t, []int64{222}, ids)
}

func TestFindCounterparties_RoomSubtypeGating(t *testing.T) {
	mockStorage := new(mocks.Storage)
	svc := NewService(mockStorage)

	roomSeeker := &models.Listing{
		ID:         10,
		UserID:     1,
		Type:       models.RentRoomIn,
		District:   "Восток-5",
		PriceRange: "до 12 000",
	}

	wholeRoom := models.Listing{
		ID: 20, UserID: 2, User: models.User{ID: 2, TelegramID: 222},
		Type: models.RoommateOffer, District: "Восток-5",
		OfferRoomType: models.OfferWholeRoom, Price: intPtr(10000),
	}
	spot := models.Listing{
		ID: 21, UserID: 3, User: models.User{ID: 3, TelegramID: 333},
		Type: models.RoommateOffer, District: "Восток-5",
		OfferRoomType: models.OfferSpot, Price: intPtr(5000),
	}
	mockStorage.On("FindActiveByTypeAndDistrict", models.RoommateOffer, "Восток-5").
		Return([]models.Listing{wholeRoom, spot}, nil)

	ids, err := svc.FindCounterparties(roomSeeker)

	assert.NoError(t, err)
	assert.Equal(t, []int64{222}, ids)
}

func TestFindCounterparties_RoommateOfferAlsoNotifiesRoomSeekers(t *testing.T) {
	mockStorage := new(mocks.Storage)
	svc := NewService(mockStorage)

	offer := &models.Listing{
		ID:            30,
		UserID:        1,
		Type:          models.RoommateOffer,
		District:      "Аламедин-1",
		OfferRoomType: models.OfferWholeRoom,
		TenantType:    "ANY",
		Price:         intPtr(8000),
	}

	roommateSeeker := models.Listing{
		ID: 40, UserID: 2, User: models.User{ID: 2, TelegramID: 222},
		Type: models.RoommateSeek, District: "Аламедин-1",
		MyGender: models.GenderFemale, PriceRange: "до 10 000",
	}
	roomSeeker := models.Listing{
		ID: 41, UserID: 3, User: models.User{ID: 3, TelegramID: 333},
		Type: models.RentRoomIn, District: "Аламедин-1",
		PriceRange: "до 10 000",
	}
	mockStorage.On("FindActiveByTypeAndDistrict", models.RoommateSeek, "Аламедин-1").
		Return([]models.Listing{roommateSeeker}, nil)
	mockStorage.On("FindActiveByTypeAndDistrict", models.RentRoomIn, "Аламедин-1").
		Return([]models.Listing{roomSeeker}, nil)

	ids, err := svc.FindCounterparties(offer)

	assert.NoError(t, err)
	assert.ElementsMatch(t, []int64{222, 333}, ids)
}

func TestFindCounterparties_GenderFiltering(t *testing.T) {
	mockStorage := new(mocks.Storage)
	svc := NewService(mockStorage)

	// Искатель подселения — мужчина; предложение принимает только девушек.
	roommateSeeker := &models.Listing{
		ID:       50,
		UserID:   1,
		Type:     models.RoommateSeek,
		District: "Джал",
		MyGender: models.GenderMale,
	}

	femaleOnly := models.Listing{
		ID: 60, UserID: 2, User: models.User{ID: 2, TelegramID: 222},
		Type: models.RoommateOffer, District: "Джал",
		TenantType: "FEMALE", Price: intPtr(6000),
	}
	anyGender := models.Listing{
		ID: 61, UserID: 3, User: models.User{ID: 3, TelegramID: 333},
		Type: models.RoommateOffer, District: "Джал",
		TenantType: "FEMALE, ANY", Price: intPtr(6000),
	}
	noPreference := models.Listing{
		ID: 62, UserID: 4, User: models.User{ID: 4, TelegramID: 444},
		Type: models.RoommateOffer, District: "Джал",
		Price: intPtr(6000),
	}
	mockStorage.On("FindActiveByTypeAndDistrict", models.RoommateOffer, "Джал").
		Return([]models.Listing{femaleOnly, anyGender, noPreference}, nil)

	ids, err := svc.FindCounterparties(roommateSeeker)

	assert.NoError(t, err)
	assert.ElementsMatch(t, []int64{333, 444}, ids)
}

func TestFindCounterparties_CommercialHasNoCounterparties(t *testing.T) {
	mockStorage := new(mocks.Storage)
	svc := NewService(mockStorage)

	offer := &models.Listing{ID: 70, UserID: 1, Type: models.CommercialRentOut, District: "Центр"}

	ids, err := svc.FindCounterparties(offer)

	assert.NoError(t, err)
	assert.Empty(t, ids)
	mockStorage.AssertNotCalled(t, "FindActiveByTypeAndDistrict")
}
