package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"photohub/internal/services"
)

type PasswordResetHandler struct {
	resets services.PasswordResetService
}

func NewPasswordResetHandler(resets services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resets: resets}
}

// @Summary      Запрос восстановления пароля
// @Description  Отправляет код на email и открывает сессию сброса. Ответ одинаков для известных и неизвестных адресов.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /auth/password-reset [post]
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.resets.RequestReset(req.Email)
	if err != nil {
		log.Printf("[password-reset][http] request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send reset code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "If the email is registered, a reset code has been sent",
		"reset_token": token,
	})
}

func (h *PasswordResetHandler) ConfirmReset(c *gin.Context) {
	var req struct {
		ResetToken  string `json:"reset_token" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch err := h.resets.ConfirmReset(req.ResetToken, req.Code, req.NewPassword); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Password changed, you can log in now"})
	case services.ErrNoResetSession:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "reset session expired, request a new code"})
	case services.ErrCodeExpired:
		c.JSON(http.StatusBadRequest, gin.H{"error": "code expired, request a new one"})
	case services.ErrCodeInvalid:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid code"})
	default:
		log.Printf("[password-reset][http] confirm failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
	}
}
