package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"ridebook/internal/domain"
	"ridebook/internal/repository"
)

// roleIdentifiers lists the roles that receive a sequential customId on registration.
var roleIdentifiers = map[domain.UserRole]IdentifierKind{
	domain.UserRoleDriver:   IdentifierDriver,
	domain.UserRoleOperator: IdentifierOperator,
}

// UserService handles user registration and lookup.
type UserService struct {
	userRepo    repository.UserRepository
	identifiers *IdentifierService
	now         func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, identifiers *IdentifierService) *UserService {
	return &UserService{userRepo: userRepo, identifiers: identifiers, now: time.Now}
}

// RegisterUserRequest contains the parameters for registering a user.
type RegisterUserRequest struct {
	ID                  string // Optional: generated when empty
	Name                string
	Email               string
	Phone               string
	Role                domain.UserRole
	AvatarURL           string
	VehicleMakeModel    string
	VehicleRegistration string
	DriverIdentifier    string
}

// Register creates a user. Drivers and operators get a customId such as DR001.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*domain.User, error) {
	if blank(req.Name) {
		return nil, ErrInvalidName
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.New().String()
	}

	user := &domain.User{
		ID:                  id,
		Name:                strings.TrimSpace(req.Name),
		Email:               strings.TrimSpace(req.Email),
		Phone:               strings.TrimSpace(req.Phone),
		Role:                req.Role,
		AvatarURL:           strings.TrimSpace(req.AvatarURL),
		VehicleMakeModel:    strings.TrimSpace(req.VehicleMakeModel),
		VehicleRegistration: strings.TrimSpace(req.VehicleRegistration),
		DriverIdentifier:    strings.TrimSpace(req.DriverIdentifier),
		CreatedAt:           s.now().UTC(),
	}

	if kind, ok := roleIdentifiers[req.Role]; ok && s.identifiers != nil {
		customID, err := s.identifiers.Generate(ctx, kind)
		if err != nil {
			return nil, err
		}
		user.CustomID = customID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if blank(id) {
		return nil, ErrInvalidUserID
	}
	return s.userRepo.GetByID(ctx, id)
}
