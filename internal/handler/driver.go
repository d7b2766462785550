package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ridebook/internal/service"
	"ridebook/internal/view"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// SetAvailabilityRequest is the HTTP request body for going online or offline.
type SetAvailabilityRequest struct {
	Online *bool    `json:"online"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// UpdateLocationRequest is the HTTP request body for updating driver location.
type UpdateLocationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// NearbyDriverResponse is one entry of a nearby search.
type NearbyDriverResponse struct {
	DriverID string  `json:"driverId"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// RideRequestResponse is one entry of the ride-offer feed.
type RideRequestResponse struct {
	Booking    view.Booking `json:"booking"`
	DistanceKm float64      `json:"distanceKm"`
}

// SetAvailability handles POST /api/drivers/:id/availability
func (h *DriverHandler) SetAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Online == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.driverService.SetAvailability(c.Request.Context(), service.SetAvailabilityRequest{
		DriverID: c.Param("id"),
		Online:   *req.Online,
		Lat:      req.Lat,
		Lng:      req.Lng,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"driverId": c.Param("id"), "online": *req.Online})
}

// UpdateLocation handles POST /api/drivers/:id/location
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Lat == nil || req.Lng == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.driverService.UpdateLocation(c.Request.Context(), service.UpdateLocationRequest{
		DriverID: c.Param("id"),
		Lat:      *req.Lat,
		Lng:      *req.Lng,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// NearbyDrivers handles GET /api/drivers/nearby?lat=&lng=&radiusKm=
func (h *DriverHandler) NearbyDrivers(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat and lng query parameters are required"})
		return
	}
	radiusKm, ok := optionalFloat(c, "radiusKm")
	if !ok {
		return
	}

	drivers, err := h.driverService.NearbyDrivers(c.Request.Context(), service.NearbyDriversRequest{
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radiusKm,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]NearbyDriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, NearbyDriverResponse{DriverID: d.DriverID, Lat: d.Lat, Lng: d.Lng})
	}
	respondJSON(c, http.StatusOK, gin.H{"drivers": response})
}

// RideRequests handles GET /api/drivers/:id/ride-requests?radiusKm=
func (h *DriverHandler) RideRequests(c *gin.Context) {
	radiusKm, ok := optionalFloat(c, "radiusKm")
	if !ok {
		return
	}

	requests, err := h.driverService.RideRequests(c.Request.Context(), c.Param("id"), radiusKm)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideRequestResponse, 0, len(requests))
	for _, r := range requests {
		response = append(response, RideRequestResponse{Booking: view.NewBooking(r.Booking), DistanceKm: r.DistanceKm})
	}
	respondJSON(c, http.StatusOK, gin.H{"rideRequests": response})
}

// optionalFloat parses an optional numeric query parameter, answering 400 when malformed.
func optionalFloat(c *gin.Context, key string) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: key + " must be a number"})
		return 0, false
	}
	return v, true
}
