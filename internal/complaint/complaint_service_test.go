package complaint

import (
	"testing"
	"time"

	"arendago/backend/internal/config"
	"arendago/backend/internal/models"
	"arendago/backend/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newService(st *mocks.Storage) *Service {
	return NewService(st, &config.Config{
		ComplaintThreshold: 3,
		BanDuration:        7 * 24 * time.Hour,
	})
}

func activeListing() *models.Listing {
	return &models.Listing{
		ID:      10,
		UserID:  1,
		User:    models.User{ID: 1, TelegramID: 111, Username: "owner"},
		Type:    models.RentOut,
		Status:  models.StatusActive,
		Contact: "+996 555 123456",
	}
}

func TestSubmit_ThresholdComplaintBansOwner(t *testing.T) {
	// Arrange
	st := new(mocks.Storage)
	svc := newService(st)
	listing := activeListing()
	reporter := &models.User{ID: 5, TelegramID: 555}

	st.On("Transaction", mock.Anything).Return(nil)
	st.On("GetListingForUpdate", uint(10)).Return(listing, nil)
	st.On("GetUserByTelegramID", int64(555)).Return(reporter, nil)
	st.On("ComplaintExists", uint(10), uint(5)).Return(false, nil)
	st.On("SaveComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil)
	st.On("CountComplaintsTowardBan", uint(10)).Return(int64(3), nil)
	st.On("SaveListing", listing).Return(nil)
	st.On("GetUserByID", uint(1)).Return(&listing.User, nil)
	st.On("SaveUser", mock.AnythingOfType("*models.User")).Return(nil)
	st.On("SaveBlacklistEntry", mock.AnythingOfType("*models.BlacklistEntry")).Return(nil)
	st.On("CacheBan", int64(111), mock.AnythingOfType("time.Time")).Return(nil)

	// Act
	outcome, err := svc.Submit(10, 555, models.ReasonScammer, "обман с предоплатой")

	// Assert
	assert.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.True(t, outcome.Banned)
	assert.Equal(t, models.StatusArchived, listing.Status)
	assert.NotNil(t, listing.User.BannedUntil)
	st.AssertNumberOfCalls(t, "SaveBlacklistEntry", 1)
}

func TestSubmit_BelowThresholdOnlyRecords(t *testing.T) {
	st := new(mocks.Storage)
	svc := newService(st)
	listing := activeListing()

	st.On("Transaction", mock.Anything).Return(nil)
	st.On("GetListingForUpdate", uint(10)).Return(listing, nil)
	st.On("GetUserByTelegramID", int64(555)).Return(&models.User{ID: 5, TelegramID: 555}, nil)
	st.On("ComplaintExists", uint(10), uint(5)).Return(false, nil)
	st.On("SaveComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil)
	st.On("CountComplaintsTowardBan", uint(10)).Return(int64(2), nil)

	outcome, err := svc.Submit(10, 555, models.ReasonPhotoMismatch, "")

	assert.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.False(t, outcome.Banned)
	assert.Equal(t, models.StatusActive, listing.Status)
	st.AssertNotCalled(t, "SaveBlacklistEntry", mock.Anything)
}

func TestSubmit_AlreadyRentedClosesImmediately(t *testing.T) {
	st := new(mocks.Storage)
	svc := newService(st)
	listing := activeListing()

	st.On("Transaction", mock.Anything).Return(nil)
	st.On("GetListingForUpdate", uint(10)).Return(listing, nil)
	st.On("GetUserByTelegramID", int64(555)).Return(&models.User{ID: 5, TelegramID: 555}, nil)
	st.On("SaveListing", listing).Return(nil)

	outcome, err := svc.Submit(10, 555, models.ReasonAlreadyRented, "")

	assert.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.True(t, outcome.ListingClosed)
	assert.Equal(t, models.StatusClosed, listing.Status)
	st.AssertNotCalled(t, "ComplaintExists", mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "SaveComplaint", mock.Anything)
	st.AssertNotCalled(t, "SaveBlacklistEntry", mock.Anything)
}

func TestSubmit_SelfComplaintIgnored(t *testing.T) {
	st := new(mocks.Storage)
	svc := newService(st)
	listing := activeListing()

	st.On("Transaction", mock.Anything).Return(nil)
	st.On("GetListingForUpdate", uint(10)).Return(listing, nil)
	st.On("GetUserByTelegramID", int64(111)).Return(&listing.User, nil)

	outcome, err := svc.Submit(10, 111, models.ReasonScammer, "")

	assert.NoError(t, err)
	assert.False(t, outcome.Accepted)
	st.AssertNotCalled(t, "SaveComplaint", mock.Anything)
}

func TestSubmit_DuplicateComplaintSilentlyAbsorbed(t *testing.T) {
	st := new(mocks.Storage)
	svc := newService(st)
	listing := activeListing()

	st.On("Transaction", mock.Anything).Return(nil)
	st.On("GetListingForUpdate", uint(10)).Return(listing, nil)
	st.On("GetUserByTelegramID", int64(555)).Return(&models.User{ID: 5, TelegramID: 555}, nil)
	st.On("ComplaintExists", uint(10), uint(5)).Return(true, nil)

	outcome, err := svc.Submit(10, 555, models.ReasonScammer, "")

	assert.NoError(t, err)
	assert.False(t, outcome.Accepted)
	st.AssertNotCalled(t, "SaveComplaint", mock.Anything)
}

func TestSubmit_ArchivedListingNotBannedTwice(t *testing.T) {
	// Конкурентная пороговая жалоба уже забанила владельца — второй
	// участник гонки видит ARCHIVED и больше ничего не делает.
	st := new(mocks.Storage)
	svc := newService(st)
	listing := activeListing()
	listing.Status = models.StatusArchived

	st.On("Transaction", mock.Anything).Return(nil)
	st.On("GetListingForUpdate", uint(10)).Return(listing, nil)
	st.On("GetUserByTelegramID", int64(556)).Return(&models.User{ID: 6, TelegramID: 556}, nil)
	st.On("ComplaintExists", uint(10), uint(6)).Return(false, nil)
	st.On("SaveComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil)
	st.On("CountComplaintsTowardBan", uint(10)).Return(int64(4), nil)

	outcome, err := svc.Submit(10, 556, models.ReasonScammer, "")

	assert.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.False(t, outcome.Banned)
	st.AssertNotCalled(t, "SaveBlacklistEntry", mock.Anything)
	st.AssertNotCalled(t, "SaveUser", mock.Anything)
}
