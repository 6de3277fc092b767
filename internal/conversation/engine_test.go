package conversation

import (
	"testing"

	"arendago/backend/internal/complaint"
	"arendago/backend/internal/config"
	"arendago/backend/internal/listing"
	"arendago/backend/internal/matching"
	"arendago/backend/internal/models"
	"arendago/backend/internal/notification"
	"arendago/backend/internal/storage/mocks"
	"arendago/backend/internal/subscription"
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

func newEngine(st *mocks.Storage, sender *MockSender) *Engine {
	cfg := &config.Config{
		ListingExpiryDays:      7,
		ListingReminderDays:    3,
		MaxNotificationsPerDay: 2,
		ComplaintThreshold:     3,
	}
	return NewEngine(
		st,
		sender,
		listing.NewService(st, cfg),
		matching.NewService(st),
		notification.NewService(st, sender, cfg),
		complaint.NewService(st, cfg),
		subscription.NewService(st),
		cfg,
	)
}

func expectUser(st *mocks.Storage, state models.UserState) *models.User {
	user := &models.User{ID: 1, TelegramID: 111, State: state, NotificationsEnabled: true}
	st.On("GetOrCreateUser", int64(111), "bob", "Bob").Return(user, nil)
	st.On("IsBanCached", int64(111)).Return(false, nil)
	return user
}

func TestHandleText_NumericRetryKeepsStateAndDraft(t *testing.T) {
	// Arrange
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)
	expectUser(st, models.StateRentOutRooms)

	sender.On("SendPrompt", int64(111), "Сколько комнат?", mock.Anything).Return()

	// Act
	engine.HandleText(TextEvent{UserID: 111, Username: "bob", FirstName: "Bob", Text: "не знаю"})

	// Assert: состояние и черновик не тронуты, вопрос повторён
	st.AssertNotCalled(t, "SaveDraftField", mock.Anything, mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "SetUserState", mock.Anything, mock.Anything)
	sender.AssertExpectations(t)
}

func TestHandleText_ValidRoomsAdvances(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)
	expectUser(st, models.StateRentOutRooms)

	st.On("SaveDraftField", uint(1), "rooms", 5).Return(nil)
	st.On("SetUserState", int64(111), models.StateRentOutPrice).Return(nil)
	sender.On("SendPrompt", int64(111), "Укажите цену в сомах за месяц:", mock.Anything).Return()

	engine.HandleText(TextEvent{UserID: 111, Username: "bob", FirstName: "Bob", Text: "5+"})

	st.AssertExpectations(t)
}

func TestHandleText_ResetOverridesFlow(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)
	expectUser(st, models.StateRentOutPrice)

	st.On("ClearDraft", uint(1)).Return(nil)
	st.On("SetUserState", int64(111), models.StateIdle).Return(nil)
	sender.On("SendPrompt", int64(111), mock.AnythingOfType("string"), mock.Anything).Return()

	engine.HandleText(TextEvent{UserID: 111, Username: "bob", FirstName: "Bob", Text: "/start"})

	st.AssertExpectations(t)
}

func TestHandleText_ButtonStepRejectsText(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)
	expectUser(st, models.StateRentOutTenantType)

	sender.On("SendPrompt", int64(111), "Пожалуйста, используйте кнопки выше 👆", mock.Anything).Return()

	engine.HandleText(TextEvent{UserID: 111, Username: "bob", FirstName: "Bob", Text: "семья"})

	st.AssertNotCalled(t, "SaveDraftField", mock.Anything, mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "SetUserState", mock.Anything, mock.Anything)
	sender.AssertExpectations(t)
}

func TestHandleText_BannedUserBlocked(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)

	user := &models.User{ID: 1, TelegramID: 111, State: models.StateIdle}
	st.On("GetOrCreateUser", int64(111), "bob", "Bob").Return(user, nil)
	st.On("IsBanCached", int64(111)).Return(true, nil)
	sender.On("SendPrompt", int64(111), mock.AnythingOfType("string"), mock.Anything).Return()

	engine.HandleText(TextEvent{UserID: 111, Username: "bob", FirstName: "Bob", Text: "/start"})

	st.AssertNotCalled(t, "SetUserState", mock.Anything, mock.Anything)
}

func TestToggleTenantType_AnyIsExclusive(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)
	expectUser(st, models.StateRentOutTenantType)

	st.On("GetDraft", uint(1)).Return(models.DraftData{
		"tenantSelection": []any{"MALE", "FEMALE"},
	}, nil)
	st.On("SaveDraftField", uint(1), "tenantSelection", []string{"ANY"}).Return(nil)
	sender.On("EditKeyboard", int64(111), 42, mock.Anything).Return()

	engine.HandleSelection(SelectionEvent{UserID: 111, Username: "bob", FirstName: "Bob", Key: "tenant_toggle:ANY", MessageID: 42})

	st.AssertExpectations(t)
}

func TestToggleTenantType_ConcreteRemovesAny(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)
	expectUser(st, models.StateRentOutTenantType)

	st.On("GetDraft", uint(1)).Return(models.DraftData{
		"tenantSelection": []any{"ANY"},
	}, nil)
	st.On("SaveDraftField", uint(1), "tenantSelection", []string{"FEMALE"}).Return(nil)
	sender.On("EditKeyboard", int64(111), 42, mock.Anything).Return()

	engine.HandleSelection(SelectionEvent{UserID: 111, Username: "bob", FirstName: "Bob", Key: "tenant_toggle:FEMALE", MessageID: 42})

	st.AssertExpectations(t)
}

func TestToggleTenantType_DoubleToggleRestoresSet(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)

	user := &models.User{ID: 1, TelegramID: 111, State: models.StateRentOutTenantType}
	st.On("GetOrCreateUser", int64(111), "bob", "Bob").Return(user, nil)
	st.On("IsBanCached", int64(111)).Return(false, nil)
	sender.On("EditKeyboard", int64(111), 42, mock.Anything).Return()

	// Первое нажатие добавляет, второе снимает.
	st.On("GetDraft", uint(1)).Return(models.DraftData{"tenantSelection": []any{"MALE"}}, nil).Once()
	st.On("SaveDraftField", uint(1), "tenantSelection", []string{"MALE", "FEMALE"}).Return(nil).Once()
	st.On("GetDraft", uint(1)).Return(models.DraftData{"tenantSelection": []any{"MALE", "FEMALE"}}, nil).Once()
	st.On("SaveDraftField", uint(1), "tenantSelection", []string{"MALE"}).Return(nil).Once()

	ev := SelectionEvent{UserID: 111, Username: "bob", FirstName: "Bob", Key: "tenant_toggle:FEMALE", MessageID: 42}
	engine.HandleSelection(ev)
	engine.HandleSelection(ev)

	st.AssertExpectations(t)
}

func TestFinishTenantType_EmptySetDoesNotAdvance(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)
	expectUser(st, models.StateRentOutTenantType)

	st.On("GetDraft", uint(1)).Return(models.DraftData{}, nil)
	sender.On("SendPrompt", int64(111), "Выберите хотя бы один вариант 👆", mock.Anything).Return()

	engine.HandleSelection(SelectionEvent{UserID: 111, Username: "bob", FirstName: "Bob", Key: "tenant_done"})

	st.AssertNotCalled(t, "SetUserState", mock.Anything, mock.Anything)
}

func TestHandlePhoto_IgnoredOutsidePhotoStates(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)
	expectUser(st, models.StateRentInBudget)

	engine.HandlePhoto(PhotoEvent{UserID: 111, Username: "bob", FirstName: "Bob", FileID: "file1"})

	st.AssertNotCalled(t, "SaveDraftField", mock.Anything, mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "SendPrompt", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlePhoto_AppendsAndPrompts(t *testing.T) {
	st := new(mocks.Storage)
	sender := new(MockSender)
	engine := newEngine(st, sender)
	expectUser(st, models.StateRentOutPhotos)

	st.On("GetDraft", uint(1)).Return(models.DraftData{"photos": []any{"file1"}}, nil)
	st.On("SaveDraftField", uint(1), "photos", []string{"file1", "file2"}).Return(nil)
	sender.On("SendPrompt", int64(111), "Фото 2/3 принято. Пришлите ещё или нажмите «Готово ✅».", mock.Anything).Return()

	engine.HandlePhoto(PhotoEvent{UserID: 111, Username: "bob", FirstName: "Bob", FileID: "file2"})

	st.AssertExpectations(t)
	sender.AssertExpectations(t)
}
