// Package transport defines the outbound contract between the core and
// the message-delivery collaborator. The core never deals with markup,
// photo storage or keyboard wire formats — only with "send prompt P with
// options O" and "render listing L".
package transport

import "arendago/backend/internal/models"

// Button is one labeled action inside a keyboard layout.
type Button struct {
	Label  string
	Action string // callback payload; empty for plain reply buttons
}

// Keyboard is an opaque rows-of-buttons layout. Inline keyboards carry
// callback actions; reply keyboards carry plain labels.
type Keyboard struct {
	Rows   [][]Button
	Inline bool
}

// Row is a convenience constructor for one keyboard row.
func Row(buttons ...Button) []Button { return buttons }

// Sender delivers outbound renderings. Delivery failures are logged by
// the implementation and never propagate to the caller; the only method
// returning an error is PublishListing, whose message handle the core
// persists.
type Sender interface {
	// SendPrompt отправляет пользователю текст с опциональной клавиатурой.
	SendPrompt(chatID int64, text string, kb *Keyboard)

	// EditKeyboard перерисовывает инлайн-клавиатуру существующего сообщения
	// (используется мультиселектом).
	EditKeyboard(chatID int64, messageID int, kb *Keyboard)

	// PublishListing renders a fresh listing into the public channel and
	// returns the channel message handle.
	PublishListing(l *models.Listing) (int, error)

	// UpdateListingStatus re-renders the channel mirror after a lifecycle
	// transition. Best effort: the status in the database is the source
	// of truth.
	UpdateListingStatus(l *models.Listing)

	// RemoveListing deletes the public rendering of a banned listing.
	RemoveListing(l *models.Listing)

	// PublishBlacklistWarning posts the warning broadcast after a ban.
	PublishBlacklistWarning(l *models.Listing)

	// SendNotification — уведомление подписчику.
	SendNotification(chatID int64, l *models.Listing)

	// SendMatchNotification — уведомление о встречном объявлении.
	SendMatchNotification(chatID int64, l *models.Listing)

	// SendReminder asks the owner whether the listing is still relevant.
	SendReminder(chatID int64, listingID uint)
}
