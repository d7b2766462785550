package domain

import "time"

// FavoriteDriver links a passenger to a driver they want to ride with again.
type FavoriteDriver struct {
	ID        string
	UserID    string
	DriverID  string
	Name      string
	CreatedAt time.Time
}

// FavoriteDriverView is a FavoriteDriver enriched with the driver's profile.
type FavoriteDriverView struct {
	ID          string
	DriverID    string
	Name        string
	AvatarURL   string
	VehicleInfo string
	CustomID    string
}
