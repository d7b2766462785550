package postgres

import (
	"context"
	"database/sql"

	"ridebook/internal/domain"
	"ridebook/internal/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, role, avatar_url, vehicle_make_model, vehicle_registration, custom_id, driver_identifier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Name,
		nullString(u.Email),
		nullString(u.Phone),
		u.Role,
		nullString(u.AvatarURL),
		nullString(u.VehicleMakeModel),
		nullString(u.VehicleRegistration),
		nullString(u.CustomID),
		nullString(u.DriverIdentifier),
		u.CreatedAt,
	)
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, email, phone, role, avatar_url, vehicle_make_model, vehicle_registration, custom_id, driver_identifier, created_at
		FROM users WHERE id = $1
	`
	var (
		user                                domain.User
		email, phone, avatarURL, makeModel  sql.NullString
		registration, customID, driverIdent sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&email,
		&phone,
		&user.Role,
		&avatarURL,
		&makeModel,
		&registration,
		&customID,
		&driverIdent,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user.Email = email.String
	user.Phone = phone.String
	user.AvatarURL = avatarURL.String
	user.VehicleMakeModel = makeModel.String
	user.VehicleRegistration = registration.String
	user.CustomID = customID.String
	user.DriverIdentifier = driverIdent.String
	return &user, nil
}
