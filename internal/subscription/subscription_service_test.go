package subscription

import (
	"testing"

	"arendago/backend/internal/models"
	"arendago/backend/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubscribe_ReactivatesExisting(t *testing.T) {
	st := new(mocks.Storage)
	svc := NewService(st)

	user := &models.User{ID: 2, TelegramID: 222}
	inactive := models.Subscription{ID: 7, UserID: 2, ListingType: models.RentOut, District: "Джал", Active: false}

	st.On("GetUserByTelegramID", int64(222)).Return(user, nil)
	st.On("FindSubscriptionsByUser", uint(2)).Return([]models.Subscription{inactive}, nil)
	st.On("SaveSubscription", mock.AnythingOfType("*models.Subscription")).Return(nil)

	sub, err := svc.Subscribe(222, models.RentOut, "Джал")

	assert.NoError(t, err)
	assert.Equal(t, uint(7), sub.ID)
	assert.True(t, sub.Active)
}

func TestSubscribe_ActiveIsIdempotent(t *testing.T) {
	st := new(mocks.Storage)
	svc := NewService(st)

	user := &models.User{ID: 2, TelegramID: 222}
	active := models.Subscription{ID: 7, UserID: 2, ListingType: models.RentOut, District: "Джал", Active: true}

	st.On("GetUserByTelegramID", int64(222)).Return(user, nil)
	st.On("FindSubscriptionsByUser", uint(2)).Return([]models.Subscription{active}, nil)

	sub, err := svc.Subscribe(222, models.RentOut, "Джал")

	assert.NoError(t, err)
	assert.Equal(t, uint(7), sub.ID)
	st.AssertNotCalled(t, "SaveSubscription", mock.Anything)
}

func TestToggleNotifications(t *testing.T) {
	st := new(mocks.Storage)
	svc := NewService(st)

	user := &models.User{ID: 2, TelegramID: 222, NotificationsEnabled: true}
	st.On("GetUserByTelegramID", int64(222)).Return(user, nil)
	st.On("SaveUser", user).Return(nil)

	enabled, err := svc.ToggleNotifications(222)

	assert.NoError(t, err)
	assert.False(t, enabled)
}
