package handlers

import (
	"net/http"

	"givegot_backend/internal/middleware"
	"givegot_backend/internal/services"
	"givegot_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.CallerIDMiddleware())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetAllBookings)
		bookings.GET("/my", h.GetMyBookings)
		bookings.POST("/:bookingId/accept", h.AcceptBooking)
		bookings.POST("/:bookingId/complete", h.CompleteSession)
		bookings.POST("/:bookingId/cancel", h.CancelBooking)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.bookingService.CreateBooking(callerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	bookingID, ok := h.RequireParam(c, "bookingId")
	if !ok {
		return
	}

	result, err := h.bookingService.AcceptBooking(bookingID, callerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) CompleteSession(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	bookingID, ok := h.RequireParam(c, "bookingId")
	if !ok {
		return
	}

	var req dto.CompleteBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.bookingService.CompleteSessionWithReview(bookingID, callerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	bookingID, ok := h.RequireParam(c, "bookingId")
	if !ok {
		return
	}

	result, err := h.bookingService.CancelBooking(bookingID, callerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.GetMyBookings(callerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	bookings, err := h.bookingService.GetAllBookings()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}
