package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ridebook/internal/auth"
	"ridebook/internal/domain"
	"ridebook/internal/view"
)

// AuthHandler issues guest tokens.
type AuthHandler struct {
	issuer *auth.Issuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// GuestLoginRequest is the HTTP request body for a guest sign-in.
type GuestLoginRequest struct {
	Role   string `json:"role"`
	UserID string `json:"userId,omitempty"`
}

// GuestLoginResponse carries the signed token.
type GuestLoginResponse struct {
	Token     string          `json:"token"`
	UserID    string          `json:"userId"`
	Role      string          `json:"role"`
	ExpiresAt *view.Timestamp `json:"expiresAt"`
}

// GuestLogin handles POST /api/auth/guest
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	if h.issuer == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "authentication is disabled"})
		return
	}

	var req GuestLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	role := domain.UserRole(req.Role)
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "role must be one of passenger, driver, operator, admin"})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = "guest-" + uuid.New().String()
	}

	token, expiresAt, err := h.issuer.Issue(userID, role)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, GuestLoginResponse{
		Token:     token,
		UserID:    userID,
		Role:      string(role),
		ExpiresAt: view.NewTimestamp(expiresAt),
	})
}
