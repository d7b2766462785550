package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebook/internal/service"
	"ridebook/internal/view"
)

// FavoritesHandler handles HTTP requests for a user's favorites and saved routes.
type FavoritesHandler struct {
	favoritesService *service.FavoritesService
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(favoritesService *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

// AddFavoriteLocationRequest is the HTTP request body for adding a favorite location.
type AddFavoriteLocationRequest struct {
	UserID    string   `json:"userId"`
	Label     string   `json:"label"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// AddFavoriteLocationResponse echoes the stored favorite location.
type AddFavoriteLocationResponse struct {
	ID   string                    `json:"id"`
	Data view.FavoriteLocationData `json:"data"`
}

// LocationRequest is a location as sent by the client.
type LocationRequest struct {
	Address    string   `json:"address"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	DoorOrFlat string   `json:"doorOrFlat,omitempty"`
}

func (l *LocationRequest) toInput() *service.LocationInput {
	if l == nil {
		return nil
	}
	return &service.LocationInput{
		Address:    l.Address,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		DoorOrFlat: l.DoorOrFlat,
	}
}

func toInputs(stops []LocationRequest) []service.LocationInput {
	if len(stops) == 0 {
		return nil
	}
	out := make([]service.LocationInput, 0, len(stops))
	for i := range stops {
		out = append(out, *stops[i].toInput())
	}
	return out
}

// AddSavedRouteRequest is the HTTP request body for adding a saved route.
type AddSavedRouteRequest struct {
	UserID          string            `json:"userId"`
	Label           string            `json:"label"`
	PickupLocation  *LocationRequest  `json:"pickupLocation"`
	DropoffLocation *LocationRequest  `json:"dropoffLocation"`
	Stops           []LocationRequest `json:"stops,omitempty"`
}

// AddSavedRouteResponse echoes the stored saved route.
type AddSavedRouteResponse struct {
	Message string              `json:"message"`
	ID      string              `json:"id"`
	Data    view.SavedRouteData `json:"data"`
}

// AddFavoriteDriverRequest is the HTTP request body for adding a favorite driver.
type AddFavoriteDriverRequest struct {
	DriverID string `json:"driverId"`
	Name     string `json:"name,omitempty"`
}

// AddFavoriteLocation handles POST /api/users/favorite-locations/add
func (h *FavoritesHandler) AddFavoriteLocation(c *gin.Context) {
	var req AddFavoriteLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	location, err := h.favoritesService.AddFavoriteLocation(c.Request.Context(), service.AddFavoriteLocationRequest{
		UserID:    req.UserID,
		Label:     req.Label,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respondFailure(c, err, "Failed to add favorite location")
		return
	}

	stored := view.NewFavoriteLocation(location)
	respondJSON(c, http.StatusOK, AddFavoriteLocationResponse{
		ID:   stored.ID,
		Data: stored.FavoriteLocationData,
	})
}

// ListFavoriteLocations handles GET /api/users/:id/favorite-locations
func (h *FavoritesHandler) ListFavoriteLocations(c *gin.Context) {
	locations, err := h.favoritesService.ListFavoriteLocations(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"favoriteLocations": view.FavoriteLocations(locations)})
}

// AddSavedRoute handles POST /api/users/saved-routes/add
func (h *FavoritesHandler) AddSavedRoute(c *gin.Context) {
	var req AddSavedRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	route, err := h.favoritesService.AddSavedRoute(c.Request.Context(), service.AddSavedRouteRequest{
		UserID:          req.UserID,
		Label:           req.Label,
		PickupLocation:  req.PickupLocation.toInput(),
		DropoffLocation: req.DropoffLocation.toInput(),
		Stops:           toInputs(req.Stops),
	})
	if err != nil {
		respondFailure(c, err, "Failed to add saved route")
		return
	}

	stored := view.NewSavedRoute(route)
	respondJSON(c, http.StatusOK, AddSavedRouteResponse{
		Message: "Saved route added successfully",
		ID:      stored.ID,
		Data:    stored.SavedRouteData,
	})
}

// ListSavedRoutes handles GET /api/users/:id/saved-routes
func (h *FavoritesHandler) ListSavedRoutes(c *gin.Context) {
	routes, err := h.favoritesService.ListSavedRoutes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"savedRoutes": view.SavedRoutes(routes)})
}

// AddFavoriteDriver handles POST /api/users/:id/favorite-drivers
func (h *FavoritesHandler) AddFavoriteDriver(c *gin.Context) {
	var req AddFavoriteDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	favorite, err := h.favoritesService.AddFavoriteDriver(c.Request.Context(), service.AddFavoriteDriverRequest{
		UserID:   c.Param("id"),
		DriverID: req.DriverID,
		Name:     req.Name,
	})
	if err != nil {
		respondFailure(c, err, "Failed to add favorite driver")
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{
		"id":        favorite.ID,
		"driverId":  favorite.DriverID,
		"name":      favorite.Name,
		"createdAt": view.NewTimestamp(favorite.CreatedAt),
	})
}

// ListFavoriteDrivers handles GET /api/users/:id/favorite-drivers
func (h *FavoritesHandler) ListFavoriteDrivers(c *gin.Context) {
	drivers, err := h.favoritesService.ListFavoriteDrivers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"favoriteDrivers": view.FavoriteDrivers(drivers)})
}
