// Package mocks provides a testify mock of storage.Storage shared by
// the service test suites.
package mocks

import (
	"time"

	"arendago/backend/internal/models"
	"arendago/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

var _ storage.Storage = (*Storage)(nil)

func (m *Storage) GetOrCreateUser(telegramID int64, username, firstName string) (*models.User, error) {
	args := m.Called(telegramID, username, firstName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *Storage) GetUserByTelegramID(telegramID int64) (*models.User, error) {
	args := m.Called(telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *Storage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *Storage) SaveUser(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *Storage) SetUserState(telegramID int64, state models.UserState) error {
	return m.Called(telegramID, state).Error(0)
}

func (m *Storage) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *Storage) GetDraft(userID uint) (models.DraftData, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.DraftData), args.Error(1)
}

func (m *Storage) SaveDraftField(userID uint, key string, value any) error {
	return m.Called(userID, key, value).Error(0)
}

func (m *Storage) ClearDraft(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *Storage) SaveListing(listing *models.Listing) error {
	return m.Called(listing).Error(0)
}

func (m *Storage) GetListingByID(id uint) (*models.Listing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *Storage) GetListingForUpdate(id uint) (*models.Listing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *Storage) FindActiveByTypeAndDistrict(t models.ListingType, district string) ([]models.Listing, error) {
	args := m.Called(t, district)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *Storage) FindActiveByUser(telegramID int64) ([]models.Listing, error) {
	args := m.Called(telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *Storage) FindNeedingReminder(threshold time.Time) ([]models.Listing, error) {
	args := m.Called(threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *Storage) FindExpired(now time.Time) ([]models.Listing, error) {
	args := m.Called(now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *Storage) DeleteListing(id uint) error {
	return m.Called(id).Error(0)
}

func (m *Storage) ListListings(f storage.ListingFilter) ([]models.Listing, int64, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *Storage) CountListingsByStatus(status models.ListingStatus) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Storage) CountActiveByType(t models.ListingType) (int64, error) {
	args := m.Called(t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Storage) CountListings() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *Storage) SaveComplaint(complaint *models.Complaint) error {
	return m.Called(complaint).Error(0)
}

func (m *Storage) ComplaintExists(listingID, reporterID uint) (bool, error) {
	args := m.Called(listingID, reporterID)
	return args.Bool(0), args.Error(1)
}

func (m *Storage) CountComplaintsTowardBan(listingID uint) (int64, error) {
	args := m.Called(listingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Storage) CountComplaints() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *Storage) SaveBlacklistEntry(entry *models.BlacklistEntry) error {
	return m.Called(entry).Error(0)
}

func (m *Storage) BlacklistContains(telegramID int64) (bool, error) {
	args := m.Called(telegramID)
	return args.Bool(0), args.Error(1)
}

func (m *Storage) BlacklistContainsPhone(phone string) (bool, error) {
	args := m.Called(phone)
	return args.Bool(0), args.Error(1)
}

func (m *Storage) ListBlacklist() ([]models.BlacklistEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlacklistEntry), args.Error(1)
}

func (m *Storage) CountBlacklist() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *Storage) FindActiveSubscriptions(t models.ListingType, district string) ([]models.Subscription, error) {
	args := m.Called(t, district)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *Storage) FindSubscriptionsByUser(userID uint) ([]models.Subscription, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *Storage) SaveSubscription(sub *models.Subscription) error {
	return m.Called(sub).Error(0)
}

func (m *Storage) NotificationExists(userID, listingID uint) (bool, error) {
	args := m.Called(userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *Storage) CountNotificationsSince(userID uint, since time.Time) (int64, error) {
	args := m.Called(userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Storage) LogNotification(userID, listingID uint) error {
	return m.Called(userID, listingID).Error(0)
}

// Transaction runs fn against the same mock so expectations set on it
// cover the transactional path too.
func (m *Storage) Transaction(fn func(tx storage.Storage) error) error {
	args := m.Called(fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *Storage) CacheBan(telegramID int64, until time.Time) error {
	return m.Called(telegramID, until).Error(0)
}

func (m *Storage) IsBanCached(telegramID int64) (bool, error) {
	args := m.Called(telegramID)
	return args.Bool(0), args.Error(1)
}

func (m *Storage) PublishEvent(payload any) error {
	return m.Called(payload).Error(0)
}
