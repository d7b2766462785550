package domain

import "time"

// UserRole is the role a user signs in with.
type UserRole string

const (
	UserRolePassenger UserRole = "passenger"
	UserRoleDriver    UserRole = "driver"
	UserRoleOperator  UserRole = "operator"
	UserRoleAdmin     UserRole = "admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRolePassenger, UserRoleDriver, UserRoleOperator, UserRoleAdmin:
		return true
	}
	return false
}

// User represents any account in the system.
type User struct {
	ID                  string
	Name                string
	Email               string
	Phone               string
	Role                UserRole
	AvatarURL           string
	VehicleMakeModel    string
	VehicleRegistration string
	CustomID            string
	DriverIdentifier    string
	CreatedAt           time.Time
}
