package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"photohub/internal/services"
)

type ConfirmHandler struct {
	userService  services.UserService
	confirmation *services.ConfirmationService
}

func NewConfirmHandler(userService services.UserService, confirmation *services.ConfirmationService) *ConfirmHandler {
	return &ConfirmHandler{userService: userService, confirmation: confirmation}
}

// @Summary      Подтверждение email
// @Description  Проверяет 6-значный код; код действителен 24 часа
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /auth/confirm-email [post]
func (h *ConfirmHandler) ConfirmEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetUserByEmail(strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil || user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid code"})
		return
	}

	switch err := h.confirmation.Confirm(user, req.Code); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Email confirmed"})
	case services.ErrAlreadyConfirmed:
		// идемпотентно: повторная отправка того же кода — не ошибка состояния
		c.JSON(http.StatusOK, gin.H{"message": "Email already confirmed"})
	case services.ErrCodeExpired:
		c.JSON(http.StatusBadRequest, gin.H{"error": "code expired, please request a new one"})
	case services.ErrCodeInvalid:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid code"})
	default:
		log.Printf("[confirm][http] confirm failed: user_id=%d err=%v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "confirmation failed"})
	}
}

// ResendCode — повторная отправка кода, не чаще раза в 5 минут.
// Для незарегистрированного email отвечаем так же, как для зарегистрированного.
func (h *ConfirmHandler) ResendCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetUserByEmail(strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil || user == nil {
		c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a code has been sent"})
		return
	}

	switch err := h.confirmation.IssueCode(user); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a code has been sent"})
	case services.ErrAlreadyConfirmed:
		c.JSON(http.StatusOK, gin.H{"message": "Email already confirmed"})
	case services.ErrResendThrottled:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try later"})
	default:
		log.Printf("[confirm][http] resend failed: user_id=%d err=%v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send code"})
	}
}
