package handlers

import (
	"net/http"

	"givegot_backend/internal/middleware"
	"givegot_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	matching := r.Group("/matching")
	matching.Use(middleware.CallerIDMiddleware())
	{
		matching.GET("/auto", h.AutoMatch)
	}

	mentors := r.Group("/mentors")
	mentors.Use(middleware.CallerIDMiddleware())
	{
		mentors.GET("", h.GetAllMentors)
	}
}

// AutoMatch ranks mentors against the caller's learning goals.
func (h *MatchingHandler) AutoMatch(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.matchingService.AutoMatch(c.Request.Context(), callerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MatchingHandler) GetAllMentors(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	mentors, err := h.matchingService.GetAllMentors(c.Request.Context(), callerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mentors": mentors,
		"total":   len(mentors),
	})
}
