package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ridebook/internal/domain"
	"ridebook/internal/service"
	"ridebook/internal/view"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	PassengerID     string            `json:"passengerId"`
	PassengerName   string            `json:"passengerName"`
	PassengerPhone  string            `json:"passengerPhone,omitempty"`
	PassengerRating float64           `json:"passengerRating,omitempty"`
	PickupLocation  *LocationRequest  `json:"pickupLocation"`
	DropoffLocation *LocationRequest  `json:"dropoffLocation"`
	Stops           []LocationRequest `json:"stops,omitempty"`
	FareEstimate    float64           `json:"fareEstimate"`
	PassengerCount  int               `json:"passengerCount,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

// UpdateBookingRequest is the HTTP request body for an operator/driver update.
type UpdateBookingRequest struct {
	Action     string `json:"action,omitempty"`
	Status     string `json:"status,omitempty"`
	DriverID   string `json:"driverId,omitempty"`
	DriverName string `json:"driverName,omitempty"`
}

// BookingResponse wraps a single booking.
type BookingResponse struct {
	Booking view.Booking `json:"booking"`
}

// BookingListResponse wraps a booking listing.
type BookingListResponse struct {
	Bookings []view.Booking `json:"bookings"`
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		PassengerID:     req.PassengerID,
		PassengerName:   req.PassengerName,
		PassengerPhone:  req.PassengerPhone,
		PassengerRating: req.PassengerRating,
		PickupLocation:  req.PickupLocation.toInput(),
		DropoffLocation: req.DropoffLocation.toInput(),
		Stops:           toInputs(req.Stops),
		FareEstimate:    req.FareEstimate,
		PassengerCount:  req.PassengerCount,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, BookingResponse{Booking: view.NewBooking(booking)})
}

// GetBooking handles GET /api/operator/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, BookingResponse{Booking: view.NewBooking(booking)})
}

// ListBookings handles GET /api/operator/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	bookings, err := h.bookingService.ListBookings(c.Request.Context(), domain.BookingStatus(c.Query("status")), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, BookingListResponse{Bookings: view.Bookings(bookings)})
}

// UpdateBooking handles POST /api/operator/bookings/:id
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), service.UpdateBookingRequest{
		BookingID:  c.Param("id"),
		Action:     domain.BookingAction(req.Action),
		Status:     domain.BookingStatus(req.Status),
		DriverID:   req.DriverID,
		DriverName: req.DriverName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, BookingResponse{Booking: view.NewBooking(booking)})
}
