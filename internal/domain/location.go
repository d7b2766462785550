package domain

import "time"

// LocationPoint is an address with coordinates.
type LocationPoint struct {
	Address    string
	Latitude   float64
	Longitude  float64
	DoorOrFlat string
}

// FavoriteLocation is a labelled place saved by a user.
type FavoriteLocation struct {
	ID        string
	UserID    string
	Label     string
	Address   string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

// SavedRoute is a labelled pickup/dropoff pair with optional intermediate stops.
type SavedRoute struct {
	ID              string
	UserID          string
	Label           string
	PickupLocation  LocationPoint
	DropoffLocation LocationPoint
	Stops           []LocationPoint
	CreatedAt       time.Time
}
