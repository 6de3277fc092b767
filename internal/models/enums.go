package models

// ListingType определяет сторону рынка, к которой относится объявление.
type ListingType string

const (
	RentOut           ListingType = "RENT_OUT"            // сдаю квартиру
	RentIn            ListingType = "RENT_IN"             // ищу квартиру
	RentRoomIn        ListingType = "RENT_ROOM_IN"        // сниму комнату
	RoommateSeek      ListingType = "ROOMMATE_SEEK"       // ищу подселение
	RoommateOffer     ListingType = "ROOMMATE_OFFER"      // сдаю место/комнату
	CommercialRentOut ListingType = "COMMERCIAL_RENT_OUT" // коммерческая аренда
)

// ListingStatus is the lifecycle status of a published listing.
type ListingStatus string

const (
	StatusActive   ListingStatus = "ACTIVE"
	StatusPending  ListingStatus = "PENDING"
	StatusExpired  ListingStatus = "EXPIRED"
	StatusClosed   ListingStatus = "CLOSED"
	StatusArchived ListingStatus = "ARCHIVED"
)

// Emoji returns the status marker used when rendering a listing.
func (s ListingStatus) Emoji() string {
	switch s {
	case StatusActive:
		return "🟢"
	case StatusPending:
		return "🟡"
	case StatusExpired:
		return "🔴"
	case StatusClosed:
		return "✅"
	case StatusArchived:
		return "📦"
	default:
		return ""
	}
}

// Gender is used both for tenant-type tokens and for the seeker's own gender.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderFamily Gender = "FAMILY"
	GenderMixed  Gender = "MIXED"
	GenderAny    Gender = "ANY"
)

// ComplaintReason classifies a complaint against a listing.
type ComplaintReason string

const (
	ReasonScammer       ComplaintReason = "SCAMMER"
	ReasonPhotoMismatch ComplaintReason = "PHOTO_MISMATCH"
	ReasonAlreadyRented ComplaintReason = "ALREADY_RENTED"
	ReasonOther         ComplaintReason = "OTHER"
)

// CountsTowardBan reports whether the reason contributes to the ban threshold.
func (r ComplaintReason) CountsTowardBan() bool {
	return r == ReasonScammer || r == ReasonPhotoMismatch
}

// OfferRoomType for ROOMMATE_OFFER: a whole room or a spot in a shared room.
const (
	OfferWholeRoom = "ROOM"
	OfferSpot      = "SPOT"
)
