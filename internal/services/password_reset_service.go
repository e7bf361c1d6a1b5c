package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"photohub/internal/repositories"
	"photohub/internal/utils"
)

var ErrNoResetSession = errors.New("no active reset session")

type PasswordResetService interface {
	RequestReset(email string) (string, error)
	ConfirmReset(sessionToken, code, newPassword string) error
}

type passwordResetService struct {
	userRepo repositories.UserRepository
	sessions repositories.ResetSessionRepository
	emails   EmailService
	auth     AuthService
}

func NewPasswordResetService(
	userRepo repositories.UserRepository,
	sessions repositories.ResetSessionRepository,
	emails EmailService,
	auth AuthService,
) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		sessions: sessions,
		emails:   emails,
		auth:     auth,
	}
}

// RequestReset — выдаёт код и открывает сессию сброса. Для неизвестного email
// возвращаем такой же токен, но ничего не сохраняем и не отправляем, чтобы по
// ответу нельзя было перебрать зарегистрированные адреса.
// Кулдауна здесь нет: каждый запрос перевыдаёт код (старый становится
// недействительным).
func (s *passwordResetService) RequestReset(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", fmt.Errorf("email is required")
	}

	// попутно чистим брошенные сессии: код старше 24 часов всё равно мёртв
	if err := s.sessions.DeleteExpired(time.Now().Add(-codeValidityWindow)); err != nil {
		log.Printf("[password-reset] expired session cleanup failed: %v", err)
	}

	token, err := utils.NewOpaqueToken(32)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		// сбой БД — не маскируем под "пользователь не найден"
		return "", fmt.Errorf("user lookup: %w", err)
	}
	if user == nil {
		// не выдаём, что пользователя нет; токен-пустышка отвалится
		// на ConfirmReset с ErrNoResetSession
		log.Printf("[password-reset] request for unknown email")
		return token, nil
	}

	code := generateConfirmationCode()
	createdAt := time.Now()
	if err := s.userRepo.SetConfirmationCode(user.ID, code, createdAt); err != nil {
		return "", err
	}

	if err := s.emails.SendPasswordResetEmail(user.Email, user.FirstName, code); err != nil {
		if clearErr := s.userRepo.ClearConfirmationCode(user.ID); clearErr != nil {
			log.Printf("[password-reset] rollback failed: user_id=%d err=%v", user.ID, clearErr)
		}
		return "", fmt.Errorf("send password reset email: %w", err)
	}

	if err := s.sessions.Create(token, email, createdAt); err != nil {
		return "", err
	}
	log.Printf("[password-reset] code issued: user_id=%d", user.ID)
	return token, nil
}

// ConfirmReset — проверяет сессию и код, ставит новый пароль.
// Код сверяется так же, как при подтверждении email: точное совпадение
// и окно в 24 часа. Сессия удаляется только при успехе.
func (s *passwordResetService) ConfirmReset(sessionToken, code, newPassword string) error {
	sessionToken = strings.TrimSpace(sessionToken)
	newPassword = strings.TrimSpace(newPassword)
	if sessionToken == "" {
		return ErrNoResetSession
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	sess, err := s.sessions.GetByToken(sessionToken)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrNoResetSession
	}

	user, err := s.userRepo.GetByEmail(sess.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("user lookup: %w", err)
	}
	if user == nil {
		return ErrNoResetSession
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

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	if err := s.userRepo.ClearConfirmationCode(user.ID); err != nil {
		return err
	}
	if err := s.sessions.Delete(sessionToken); err != nil {
		log.Printf("[password-reset] session cleanup failed: %v", err)
	}
	log.Printf("[password-reset] password changed: user_id=%d", user.ID)
	return nil
}
