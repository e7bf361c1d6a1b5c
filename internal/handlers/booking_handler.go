package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"photohub/internal/models"
	"photohub/internal/services"
)

type BookingHandler struct {
	service services.BookingService
}

func NewBookingHandler(service services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	StudioID int       `json:"studio_id" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
	Comment  string    `json:"comment"`
}

// @Summary      Забронировать студию
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        booking  body      createBookingRequest  true  "Бронь"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, _ := getCaller(c)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking := &models.Booking{
		StudioID: req.StudioID,
		UserID:   userID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Comment:  req.Comment,
	}
	receiptPath, err := h.service.CreateBooking(booking)
	switch err {
	case nil:
		c.JSON(http.StatusCreated, gin.H{
			"booking": booking,
			"receipt": receiptPath,
		})
	case services.ErrInvalidTimeRange:
		c.JSON(http.StatusBadRequest, gin.H{"error": "end time must be after start time"})
	case services.ErrBookingOverlap:
		c.JSON(http.StatusConflict, gin.H{"error": "studio is already booked for this time"})
	default:
		log.Printf("[booking][http] create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
	}
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, _ := getCaller(c)
	limit, offset := parsePagination(c)
	bookings, err := h.service.ListUserBookings(userID, limit, offset)
	if err != nil {
		log.Printf("[booking][http] list failed: user_id=%d err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) ListByStudio(c *gin.Context) {
	studioID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid studio id"})
		return
	}
	limit, offset := parsePagination(c)
	bookings, err := h.service.ListStudioBookings(studioID, limit, offset)
	if err != nil {
		log.Printf("[booking][http] studio list failed: studio_id=%d err=%v", studioID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	userID, isAdmin := getCaller(c)
	switch err := h.service.CancelBooking(id, userID, isAdmin); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
	case services.ErrNotBookingOwner:
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		log.Printf("[booking][http] cancel failed: id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
	}
}
