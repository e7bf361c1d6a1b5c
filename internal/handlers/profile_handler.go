package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"photohub/internal/services"
)

type ProfileHandler struct {
	userService services.UserService
}

func NewProfileHandler(userService services.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, _ := getCaller(c)
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, _ := getCaller(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone

	if err := h.userService.UpdateProfile(user); err != nil {
		log.Printf("[profile][update] failed: user_id=%d err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

// ToggleTheme — переключает тёмную тему и возвращает новое значение.
func (h *ProfileHandler) ToggleTheme(c *gin.Context) {
	userID, _ := getCaller(c)
	dark, err := h.userService.ToggleDarkTheme(userID)
	if err != nil {
		log.Printf("[profile][theme] toggle failed: user_id=%d err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dark_theme": dark})
}
