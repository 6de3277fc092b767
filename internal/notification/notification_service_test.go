package notification

import (
	"testing"
	"time"

	"arendago/backend/internal/config"
	"arendago/backend/internal/models"
	"arendago/backend/internal/storage/mocks"
	"arendago/backend/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of the transport.Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendPrompt(chatID int64, text string, kb *transport.Keyboard) {
	m.Called(chatID, text, kb)
}

func (m *MockSender) EditKeyboard(chatID int64, messageID int, kb *transport.Keyboard) {
	m.Called(chatID, messageID, kb)
}

func (m *MockSender) PublishListing(l *models.Listing) (int, error) {
	args := m.Called(l)
	return args.Int(0), args.Error(1)
}

func (m *MockSender) UpdateListingStatus(l *models.Listing) { m.Called(l) }
func (m *MockSender) RemoveListing(l *models.Listing)       { m.Called(l) }
func (m *MockSender) PublishBlacklistWarning(l *models.Listing) {
	m.Called(l)
}

func (m *MockSender) SendNotification(chatID int64, l *models.Listing) {
	m.Called(chatID, l)
}

func (m *MockSender) SendMatchNotification(chatID int64, l *models.Listing) {
	m.Called(chatID, l)
}

func (m *MockSender) SendReminder(chatID int64, listingID uint) {
	m.Called(chatID, listingID)
}

func newService(st *mocks.Storage, sender *MockSender) *Service {
	return NewService(st, sender, &config.Config{MaxNotificationsPerDay: 2})
}

func subFor(userID uint, tid int64) models.Subscription {
	return models.Subscription{
		ID:          userID,
		UserID:      userID,
		User:        models.User{ID: userID, TelegramID: tid, NotificationsEnabled: true},
		ListingType: models.RentOut,
		Active:      true,
	}
}

func TestNotifySubscribers_SendsAndLogs(t *testing.T) {
	// Arrange
	st := new(mocks.Storage)
	sender := new(MockSender)
	svc := newService(st, sender)

	listing := &models.Listing{ID: 10, UserID: 1, Type: models.RentOut, District: "Джал"}
	st.On("FindActiveSubscriptions", models.RentOut, "Джал").
		Return([]models.Subscription{subFor(2, 222)}, nil)
	st.On("NotificationExists", uint(2), uint(10)).Return(false, nil)
	st.On("CountNotificationsSince", uint(2), mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	st.On("LogNotification", uint(2), uint(10)).Return(nil)
	sender.On("SendNotification", int64(222), listing).Return()

	// Act
	svc.NotifySubscribers(listing)

	// Assert
	st.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestNotifySubscribers_DailyCapReached(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	svc := newService(st, sender)

	listing := &models.Listing{ID: 10, UserID: 1, Type: models.RentOut, District: "Джал"}
	st.On("FindActiveSubscriptions", models.RentOut, "Джал").
		Return([]models.Subscription{subFor(2, 222)}, nil)
	st.On("NotificationExists", uint(2), uint(10)).Return(false, nil)
	st.On("CountNotificationsSince", uint(2), mock.AnythingOfType("time.Time")).Return(int64(2), nil)

	svc.NotifySubscribers(listing)

	st.AssertNotCalled(t, "LogNotification", mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything)
}

func TestNotifySubscribers_SkipsOwnerBannedAndAlreadyNotified(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	svc := newService(st, sender)

	owner := subFor(1, 111)
	banned := subFor(3, 333)
	until := time.Now().Add(time.Hour)
	banned.User.BannedUntil = &until
	muted := subFor(4, 444)
	muted.User.NotificationsEnabled = false
	duplicate := subFor(5, 555)

	listing := &models.Listing{ID: 10, UserID: 1, Type: models.RentOut, District: "Джал"}
	st.On("FindActiveSubscriptions", models.RentOut, "Джал").
		Return([]models.Subscription{owner, banned, muted, duplicate}, nil)
	st.On("NotificationExists", uint(5), uint(10)).Return(true, nil)

	svc.NotifySubscribers(listing)

	st.AssertNotCalled(t, "LogNotification", mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything)
}

func TestNotifySubscribers_LogFailureSuppressesSend(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	svc := newService(st, sender)

	listing := &models.Listing{ID: 10, UserID: 1, Type: models.RentOut, District: "Джал"}
	st.On("FindActiveSubscriptions", models.RentOut, "Джал").
		Return([]models.Subscription{subFor(2, 222)}, nil)
	st.On("NotificationExists", uint(2), uint(10)).Return(false, nil)
	st.On("CountNotificationsSince", uint(2), mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	st.On("LogNotification", uint(2), uint(10)).Return(assert.AnError)

	svc.NotifySubscribers(listing)

	sender.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything)
}
