// Package view holds the JSON shapes the web client reads. Field names and the
// timestamp form match the documents the client already understands.
package view

import (
	"time"

	"ridebook/internal/domain"
)

// Timestamp is a point in time in the {_seconds, _nanoseconds} form.
type Timestamp struct {
	Seconds     int64 `json:"_seconds"`
	Nanoseconds int32 `json:"_nanoseconds"`
}

// NewTimestamp converts t, returning nil for the zero time so optional fields are omitted.
func NewTimestamp(t time.Time) *Timestamp {
	if t.IsZero() {
		return nil
	}
	return &Timestamp{Seconds: t.Unix(), Nanoseconds: int32(t.Nanosecond())}
}

// Time converts back to time.Time.
func (ts *Timestamp) Time() time.Time {
	if ts == nil {
		return time.Time{}
	}
	return time.Unix(ts.Seconds, int64(ts.Nanoseconds)).UTC()
}

// Location is a LocationPoint.
type Location struct {
	Address    string  `json:"address"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DoorOrFlat string  `json:"doorOrFlat,omitempty"`
}

// NewLocation converts a domain location point.
func NewLocation(p domain.LocationPoint) Location {
	return Location{Address: p.Address, Latitude: p.Latitude, Longitude: p.Longitude, DoorOrFlat: p.DoorOrFlat}
}

func newStops(stops []domain.LocationPoint) []Location {
	if len(stops) == 0 {
		return nil
	}
	out := make([]Location, 0, len(stops))
	for _, s := range stops {
		out = append(out, NewLocation(s))
	}
	return out
}

// FavoriteLocationData is a favorite location document body.
type FavoriteLocationData struct {
	UserID    string     `json:"userId"`
	Label     string     `json:"label"`
	Address   string     `json:"address"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	CreatedAt *Timestamp `json:"createdAt,omitempty"`
}

// FavoriteLocation is a favorite location document with its ID.
type FavoriteLocation struct {
	ID string `json:"id"`
	FavoriteLocationData
}

// NewFavoriteLocation converts a domain favorite location.
func NewFavoriteLocation(l *domain.FavoriteLocation) FavoriteLocation {
	return FavoriteLocation{
		ID: l.ID,
		FavoriteLocationData: FavoriteLocationData{
			UserID:    l.UserID,
			Label:     l.Label,
			Address:   l.Address,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
			CreatedAt: NewTimestamp(l.CreatedAt),
		},
	}
}

// FavoriteLocations converts a list, never returning nil.
func FavoriteLocations(locations []*domain.FavoriteLocation) []FavoriteLocation {
	out := make([]FavoriteLocation, 0, len(locations))
	for _, l := range locations {
		out = append(out, NewFavoriteLocation(l))
	}
	return out
}

// SavedRouteData is a saved route document body.
type SavedRouteData struct {
	UserID          string     `json:"userId"`
	Label           string     `json:"label"`
	PickupLocation  Location   `json:"pickupLocation"`
	DropoffLocation Location   `json:"dropoffLocation"`
	Stops           []Location `json:"stops,omitempty"`
	CreatedAt       *Timestamp `json:"createdAt,omitempty"`
}

// SavedRoute is a saved route document with its ID.
type SavedRoute struct {
	ID string `json:"id"`
	SavedRouteData
}

// NewSavedRoute converts a domain saved route.
func NewSavedRoute(r *domain.SavedRoute) SavedRoute {
	return SavedRoute{
		ID: r.ID,
		SavedRouteData: SavedRouteData{
			UserID:          r.UserID,
			Label:           r.Label,
			PickupLocation:  NewLocation(r.PickupLocation),
			DropoffLocation: NewLocation(r.DropoffLocation),
			Stops:           newStops(r.Stops),
			CreatedAt:       NewTimestamp(r.CreatedAt),
		},
	}
}

// SavedRoutes converts a list, never returning nil.
func SavedRoutes(routes []*domain.SavedRoute) []SavedRoute {
	out := make([]SavedRoute, 0, len(routes))
	for _, r := range routes {
		out = append(out, NewSavedRoute(r))
	}
	return out
}

// FavoriteDriver is an enriched favorite driver entry.
type FavoriteDriver struct {
	ID          string `json:"id"`
	DriverID    string `json:"driverId"`
	Name        string `json:"name,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	VehicleInfo string `json:"vehicleInfo,omitempty"`
	CustomID    string `json:"customId,omitempty"`
}

// FavoriteDrivers converts a list, never returning nil.
func FavoriteDrivers(views []domain.FavoriteDriverView) []FavoriteDriver {
	out := make([]FavoriteDriver, 0, len(views))
	for _, v := range views {
		out = append(out, FavoriteDriver{
			ID:          v.ID,
			DriverID:    v.DriverID,
			Name:        v.Name,
			AvatarURL:   v.AvatarURL,
			VehicleInfo: v.VehicleInfo,
			CustomID:    v.CustomID,
		})
	}
	return out
}

// Booking is a booking document.
type Booking struct {
	ID              string     `json:"id"`
	PassengerID     string     `json:"passengerId"`
	PassengerName   string     `json:"passengerName"`
	PassengerPhone  string     `json:"passengerPhone,omitempty"`
	PassengerRating float64    `json:"passengerRating,omitempty"`
	PickupLocation  Location   `json:"pickupLocation"`
	DropoffLocation Location   `json:"dropoffLocation"`
	Stops           []Location `json:"stops,omitempty"`
	FareEstimate    float64    `json:"fareEstimate"`
	DistanceMiles   float64    `json:"distanceMiles,omitempty"`
	PassengerCount  int        `json:"passengerCount"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	DriverID        string     `json:"driverId,omitempty"`
	DriverName      string     `json:"driverName,omitempty"`

	NotifiedPassengerArrivalTimestamp     *Timestamp `json:"notifiedPassengerArrivalTimestamp,omitempty"`
	PassengerAcknowledgedArrivalTimestamp *Timestamp `json:"passengerAcknowledgedArrivalTimestamp,omitempty"`
	RideStartedAt                         *Timestamp `json:"rideStartedAt,omitempty"`
	CompletedAt                           *Timestamp `json:"completedAt,omitempty"`
	CancelledAt                           *Timestamp `json:"cancelledAt,omitempty"`

	CreatedAt *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`
}

// NewBooking converts a domain booking.
func NewBooking(b *domain.Booking) Booking {
	return Booking{
		ID:              b.ID,
		PassengerID:     b.PassengerID,
		PassengerName:   b.PassengerName,
		PassengerPhone:  b.PassengerPhone,
		PassengerRating: b.PassengerRating,
		PickupLocation:  NewLocation(b.PickupLocation),
		DropoffLocation: NewLocation(b.DropoffLocation),
		Stops:           newStops(b.Stops),
		FareEstimate:    b.FareEstimate,
		DistanceMiles:   b.DistanceMiles,
		PassengerCount:  b.PassengerCount,
		Notes:           b.Notes,
		Status:          string(b.Status),
		DriverID:        b.DriverID,
		DriverName:      b.DriverName,

		NotifiedPassengerArrivalTimestamp:     NewTimestamp(b.NotifiedPassengerArrivalAt),
		PassengerAcknowledgedArrivalTimestamp: NewTimestamp(b.PassengerAcknowledgedArrivalAt),
		RideStartedAt:                         NewTimestamp(b.RideStartedAt),
		CompletedAt:                           NewTimestamp(b.CompletedAt),
		CancelledAt:                           NewTimestamp(b.CancelledAt),

		CreatedAt: NewTimestamp(b.CreatedAt),
		UpdatedAt: NewTimestamp(b.UpdatedAt),
	}
}

// Bookings converts a list, never returning nil.
func Bookings(bookings []*domain.Booking) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBooking(b))
	}
	return out
}
