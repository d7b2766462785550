package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebook/internal/service"
)

// AdminHandler handles HTTP requests for admin tooling.
type AdminHandler struct {
	identifierService *service.IdentifierService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(identifierService *service.IdentifierService) *AdminHandler {
	return &AdminHandler{identifierService: identifierService}
}

// GenerateAdminIDResponse is the HTTP response for minting an admin ID.
type GenerateAdminIDResponse struct {
	Success bool   `json:"success"`
	AdminID string `json:"adminId"`
}

// GenerateAdminID handles POST /api/users/generate-admin-id
func (h *AdminHandler) GenerateAdminID(c *gin.Context) {
	adminID, err := h.identifierService.GenerateAdminID(c.Request.Context())
	if err != nil {
		log.Printf("failed to generate admin id: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	respondJSON(c, http.StatusOK, GenerateAdminIDResponse{Success: true, AdminID: adminID})
}
