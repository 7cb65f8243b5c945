package models

// ResolveRequest is the body of POST /api/v1/resolve.
type ResolveRequest struct {
	Sentence string `json:"sentence" validate:"required"`
	Helpful  bool   `json:"helpful"`
	Mode     string `json:"mode" validate:"omitempty,oneof=rules"`
}

// ItineraryRequest is the body of POST /api/v1/itinerary. Stations are
// referenced by UIC code; Via is optional.
type ItineraryRequest struct {
	DepartureUIC string `json:"departureUic" validate:"required,len=8,numeric"`
	ViaUIC       string `json:"viaUic" validate:"omitempty,len=8,numeric"`
	ArrivalUIC   string `json:"arrivalUic" validate:"required,len=8,numeric"`
}
