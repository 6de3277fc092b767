package scheduler

import (
	"testing"

	"arendago/backend/internal/config"
	"arendago/backend/internal/listing"
	"arendago/backend/internal/models"
	"arendago/backend/internal/storage"
	"arendago/backend/internal/storage/mocks"
	"arendago/backend/internal/transport"

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

func (m *MockSender) UpdateListingStatus(l *models.Listing)     { m.Called(l) }
func (m *MockSender) RemoveListing(l *models.Listing)           { m.Called(l) }
func (m *MockSender) PublishBlacklistWarning(l *models.Listing) { m.Called(l) }

func (m *MockSender) SendNotification(chatID int64, l *models.Listing) {
	m.Called(chatID, l)
}

func (m *MockSender) SendMatchNotification(chatID int64, l *models.Listing) {
	m.Called(chatID, l)
}

func (m *MockSender) SendReminder(chatID int64, listingID uint) {
	m.Called(chatID, listingID)
}

func newScheduler(st *mocks.Storage, sender *MockSender) *Scheduler {
	cfg := &config.Config{ListingExpiryDays: 7, ListingReminderDays: 3}
	return New(st, listing.NewService(st, cfg), sender)
}

func TestReminderSweep_MarksBeforeSending(t *testing.T) {
	// Arrange
	st := new(mocks.Storage)
	sender := new(MockSender)
	s := newScheduler(st, sender)

	stale := models.Listing{
		ID:     10,
		UserID: 1,
		User:   models.User{ID: 1, TelegramID: 111},
		Status: models.StatusActive,
	}
	st.On("FindNeedingReminder", mock.AnythingOfType("time.Time")).Return([]models.Listing{stale}, nil)
	st.On("GetListingByID", uint(10)).Return(&stale, nil)
	st.On("SaveListing", mock.AnythingOfType("*models.Listing")).Return(nil)
	sender.On("SendReminder", int64(111), uint(10)).Return()

	// Act
	s.RunReminderSweep()

	// Assert
	st.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestReminderSweep_RowFailureDoesNotBlockOthers(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	s := newScheduler(st, sender)

	broken := models.Listing{ID: 10, UserID: 1, User: models.User{TelegramID: 111}, Status: models.StatusActive}
	healthy := models.Listing{ID: 11, UserID: 2, User: models.User{TelegramID: 222}, Status: models.StatusActive}

	st.On("FindNeedingReminder", mock.AnythingOfType("time.Time")).
		Return([]models.Listing{broken, healthy}, nil)
	st.On("GetListingByID", uint(10)).Return(nil, storage.ErrNotFound)
	st.On("GetListingByID", uint(11)).Return(&healthy, nil)
	st.On("SaveListing", mock.AnythingOfType("*models.Listing")).Return(nil)
	sender.On("SendReminder", int64(222), uint(11)).Return()

	s.RunReminderSweep()

	sender.AssertNotCalled(t, "SendReminder", int64(111), uint(10))
	sender.AssertCalled(t, "SendReminder", int64(222), uint(11))
}

func TestExpirySweep_ArchivesAndNotifies(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	s := newScheduler(st, sender)

	expired := models.Listing{
		ID:     10,
		UserID: 1,
		User:   models.User{ID: 1, TelegramID: 111},
		Status: models.StatusPending,
	}
	st.On("FindExpired", mock.AnythingOfType("time.Time")).Return([]models.Listing{expired}, nil)
	st.On("GetListingByID", uint(10)).Return(&expired, nil)
	st.On("SaveListing", mock.AnythingOfType("*models.Listing")).Return(nil)
	st.On("PublishEvent", mock.Anything).Return(nil)
	sender.On("UpdateListingStatus", mock.AnythingOfType("*models.Listing")).Return()
	sender.On("SendPrompt", int64(111), mock.AnythingOfType("string"), (*transport.Keyboard)(nil)).Return()

	s.RunExpirySweep()

	st.AssertExpectations(t)
	sender.AssertExpectations(t)
}
