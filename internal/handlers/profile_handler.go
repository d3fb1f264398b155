package handlers

import (
	"net/http"

	"givegot_backend/internal/middleware"
	"givegot_backend/internal/services"
	"givegot_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public routes
	users := r.Group("/users")
	{
		users.GET("", h.GetAllUsers)
		users.GET("/:userId", h.GetUser)
	}
	r.GET("/skills", h.ListSkills)

	// Caller-scoped routes
	me := r.Group("/users/me")
	me.Use(middleware.CallerIDMiddleware())
	{
		me.GET("", h.GetMyProfile)
		me.PUT("", h.UpdateMyProfile)
	}
}

func (h *ProfileHandler) GetAllUsers(c *gin.Context) {
	users, err := h.profileService.GetAllUsers()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}

func (h *ProfileHandler) GetUser(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	user, err := h.profileService.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.profileService.GetProfile(callerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ProfileUpdateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.profileService.UpdateProfile(c.Request.Context(), callerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ProfileHandler) ListSkills(c *gin.Context) {
	skills, err := h.profileService.ListSkills()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"skills": skills,
		"total":  len(skills),
	})
}
