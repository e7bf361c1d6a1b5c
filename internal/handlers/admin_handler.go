package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"photohub/internal/services"
)

type AdminHandler struct {
	userService   services.UserService
	studioService services.StudioService
}

func NewAdminHandler(userService services.UserService, studioService services.StudioService) *AdminHandler {
	return &AdminHandler{userService: userService, studioService: studioService}
}

// @Summary      Админ-панель
// @Description  Последние 10 пользователей и 10 студий
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	users, err := h.userService.ListNewest(10)
	if err != nil {
		log.Printf("[admin][dashboard] users query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	studios, err := h.studioService.ListNewest(10)
	if err != nil {
		log.Printf("[admin][dashboard] studios query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	userCount, err := h.userService.GetUserCount()
	if err != nil {
		userCount = len(users)
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"studios":    studios,
		"user_count": userCount,
	})
}
