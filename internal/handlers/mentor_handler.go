package handlers

import (
	"net/http"

	"givegot_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MentorHandler serves the public reputation surface of a mentor: aggregate
// rating and the review feed.
type MentorHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewMentorHandler(base *BaseHandler, reviewService services.ReviewService) *MentorHandler {
	return &MentorHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *MentorHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	mentors := r.Group("/mentors")
	{
		mentors.GET("/:mentorId/rating", h.GetMentorRating)
		mentors.GET("/:mentorId/reviews", h.GetMentorReviews)
	}
}

func (h *MentorHandler) GetMentorRating(c *gin.Context) {
	mentorID, ok := h.RequireParam(c, "mentorId")
	if !ok {
		return
	}

	rating, err := h.reviewService.GetMentorRating(mentorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

func (h *MentorHandler) GetMentorReviews(c *gin.Context) {
	mentorID, ok := h.RequireParam(c, "mentorId")
	if !ok {
		return
	}

	reviews, err := h.reviewService.GetMentorReviews(mentorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}
