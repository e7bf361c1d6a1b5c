package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"photohub/internal/models"
	"photohub/internal/repositories"
)

var (
	ErrResendThrottled  = errors.New("resend throttled")
	ErrCodeExpired      = errors.New("code expired")
	ErrCodeInvalid      = errors.New("code invalid")
	ErrAlreadyConfirmed = errors.New("email already confirmed")
)

// Код живёт 24 часа, повторная отправка — не чаще раза в 5 минут.
const (
	codeValidityWindow = 24 * time.Hour
	resendCooldown     = 5 * time.Minute
)

// generateConfirmationCode — 6-значный код в диапазоне 100000–999999.
// Коллизии допустимы: код короткоживущий и привязан к аккаунту.
func generateConfirmationCode() string {
	src := rand.NewSource(time.Now().UnixNano())
	rnd := rand.New(src)
	return fmt.Sprintf("%06d", 100000+rnd.Intn(900000))
}

// ConfirmationService — выдача и проверка кодов подтверждения email.
type ConfirmationService struct {
	UserRepo repositories.UserRepository
	Emails   EmailService
}

func NewConfirmationService(userRepo repositories.UserRepository, emails EmailService) *ConfirmationService {
	return &ConfirmationService{
		UserRepo: userRepo,
		Emails:   emails,
	}
}

// IssueCode — выдаёт новый код и отправляет письмо. Если активный код моложе
// 5 минут — троттлим, чтобы обновление страницы не спамило почту.
// Если письмо не ушло, код откатываем: "выданный, но не доставленный" код
// не должен оставаться действительным.
func (s *ConfirmationService) IssueCode(user *models.User) error {
	if user.EmailConfirmed {
		return ErrAlreadyConfirmed
	}
	if user.ConfirmationCode != nil && user.ConfirmationCodeCreated != nil &&
		time.Since(*user.ConfirmationCodeCreated) < resendCooldown {
		return ErrResendThrottled
	}

	code := generateConfirmationCode()
	createdAt := time.Now()
	if err := s.UserRepo.SetConfirmationCode(user.ID, code, createdAt); err != nil {
		return err
	}

	if err := s.Emails.SendConfirmationEmail(user.Email, user.FirstName, code); err != nil {
		if clearErr := s.UserRepo.ClearConfirmationCode(user.ID); clearErr != nil {
			log.Printf("[confirm][issue] rollback failed: user_id=%d err=%v", user.ID, clearErr)
		}
		return fmt.Errorf("send confirmation email: %w", err)
	}

	user.ConfirmationCode = &code
	user.ConfirmationCodeCreated = &createdAt
	log.Printf("[confirm][issue] ok: user_id=%d", user.ID)
	return nil
}

// Confirm — сверяет код (точное совпадение строки) и окно в 24 часа.
// Успех очищает код и помечает email подтверждённым; повторная попытка на
// уже подтверждённом аккаунте — идемпотентный ErrAlreadyConfirmed.
func (s *ConfirmationService) Confirm(user *models.User, code string) error {
	if user.EmailConfirmed {
		return ErrAlreadyConfirmed
	}
	if user.ConfirmationCode == nil || user.ConfirmationCodeCreated == nil {
		return ErrCodeInvalid
	}
	if *user.ConfirmationCode != code {
		return ErrCodeInvalid
	}
	if time.Since(*user.ConfirmationCodeCreated) >= codeValidityWindow {
		return ErrCodeExpired
	}

	if err := s.UserRepo.ConfirmEmail(user.ID); err != nil {
		return err
	}
	user.EmailConfirmed = true
	user.ConfirmationCode = nil
	user.ConfirmationCodeCreated = nil
	log.Printf("[confirm][ok] user_id=%d", user.ID)
	return nil
}
