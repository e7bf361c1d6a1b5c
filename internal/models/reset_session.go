package models

import "time"

// ResetSession — связка "токен сессии сброса -> email", создаётся на
// запрос восстановления пароля и удаляется после успешной смены.
type ResetSession struct {
	Token     string    `json:"-"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
