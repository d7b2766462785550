package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebook/internal/domain"
	"ridebook/internal/service"
	"ridebook/internal/view"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest is the HTTP request body for user registration.
type RegisterRequest struct {
	ID                  string `json:"id,omitempty"`
	Name                string `json:"name"`
	Email               string `json:"email,omitempty"`
	Phone               string `json:"phone,omitempty"`
	Role                string `json:"role"`
	AvatarURL           string `json:"avatarUrl,omitempty"`
	VehicleMakeModel    string `json:"vehicleMakeModel,omitempty"`
	VehicleRegistration string `json:"vehicleRegistration,omitempty"`
	DriverIdentifier    string `json:"driverIdentifier,omitempty"`
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Email               string          `json:"email,omitempty"`
	Phone               string          `json:"phone,omitempty"`
	Role                string          `json:"role"`
	AvatarURL           string          `json:"avatarUrl,omitempty"`
	VehicleMakeModel    string          `json:"vehicleMakeModel,omitempty"`
	VehicleRegistration string          `json:"vehicleRegistration,omitempty"`
	CustomID            string          `json:"customId,omitempty"`
	DriverIdentifier    string          `json:"driverIdentifier,omitempty"`
	CreatedAt           *view.Timestamp `json:"createdAt,omitempty"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		Phone:               u.Phone,
		Role:                string(u.Role),
		AvatarURL:           u.AvatarURL,
		VehicleMakeModel:    u.VehicleMakeModel,
		VehicleRegistration: u.VehicleRegistration,
		CustomID:            u.CustomID,
		DriverIdentifier:    u.DriverIdentifier,
		CreatedAt:           view.NewTimestamp(u.CreatedAt),
	}
}

// Register handles POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterUserRequest{
		ID:                  req.ID,
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Role:                domain.UserRole(req.Role),
		AvatarURL:           req.AvatarURL,
		VehicleMakeModel:    req.VehicleMakeModel,
		VehicleRegistration: req.VehicleRegistration,
		DriverIdentifier:    req.DriverIdentifier,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
