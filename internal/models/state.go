package models

// UserState tracks where a user currently is inside the conversational
// intake form. The state set is flat: IDLE plus one state per form step,
// five independent linear flows (one per listing type that has a form).
type UserState string

const (
	StateIdle UserState = "IDLE"

	// Сдаю квартиру
	StateRentOutDistrict    UserState = "RENT_OUT_DISTRICT"
	StateRentOutRooms       UserState = "RENT_OUT_ROOMS"
	StateRentOutPrice       UserState = "RENT_OUT_PRICE"
	StateRentOutFurniture   UserState = "RENT_OUT_FURNITURE"
	StateRentOutUtilities   UserState = "RENT_OUT_UTILITIES"
	StateRentOutTenantType  UserState = "RENT_OUT_TENANT_TYPE"
	StateRentOutContact     UserState = "RENT_OUT_CONTACT"
	StateRentOutPhotos      UserState = "RENT_OUT_PHOTOS"
	StateRentOutDescription UserState = "RENT_OUT_DESCRIPTION"

	// Ищу квартиру
	StateRentInDistrict    UserState = "RENT_IN_DISTRICT"
	StateRentInBudget      UserState = "RENT_IN_BUDGET"
	StateRentInRooms       UserState = "RENT_IN_ROOMS"
	StateRentInWhen        UserState = "RENT_IN_WHEN"
	StateRentInContact     UserState = "RENT_IN_CONTACT"
	StateRentInDescription UserState = "RENT_IN_DESCRIPTION"

	// Сниму комнату
	StateRentRoomInDistrict    UserState = "RENT_ROOM_IN_DISTRICT"
	StateRentRoomInWho         UserState = "RENT_ROOM_IN_WHO"
	StateRentRoomInBudget      UserState = "RENT_ROOM_IN_BUDGET"
	StateRentRoomInWhen        UserState = "RENT_ROOM_IN_WHEN"
	StateRentRoomInContact     UserState = "RENT_ROOM_IN_CONTACT"
	StateRentRoomInDescription UserState = "RENT_ROOM_IN_DESCRIPTION"

	// Ищу подселение
	StateRoommateSeekDistrict    UserState = "ROOMMATE_SEEK_DISTRICT"
	StateRoommateSeekBudget      UserState = "ROOMMATE_SEEK_BUDGET"
	StateRoommateSeekGender      UserState = "ROOMMATE_SEEK_GENDER"
	StateRoommateSeekSpots       UserState = "ROOMMATE_SEEK_SPOTS"
	StateRoommateSeekWhen        UserState = "ROOMMATE_SEEK_WHEN"
	StateRoommateSeekContact     UserState = "ROOMMATE_SEEK_CONTACT"
	StateRoommateSeekDescription UserState = "ROOMMATE_SEEK_DESCRIPTION"

	// Сдаю место
	StateRoommateOfferType        UserState = "ROOMMATE_OFFER_TYPE"
	StateRoommateOfferDistrict    UserState = "ROOMMATE_OFFER_DISTRICT"
	StateRoommateOfferPrice       UserState = "ROOMMATE_OFFER_PRICE"
	StateRoommateOfferSpots       UserState = "ROOMMATE_OFFER_SPOTS"
	StateRoommateOfferGender      UserState = "ROOMMATE_OFFER_GENDER"
	StateRoommateOfferAmenities   UserState = "ROOMMATE_OFFER_AMENITIES"
	StateRoommateOfferContact     UserState = "ROOMMATE_OFFER_CONTACT"
	StateRoommateOfferPhotos      UserState = "ROOMMATE_OFFER_PHOTOS"
	StateRoommateOfferDescription UserState = "ROOMMATE_OFFER_DESCRIPTION"
)
