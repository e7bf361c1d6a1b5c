package models

import "time"

type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // не отдаём наружу
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone,omitempty"`

	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`
	DarkTheme   bool `json:"dark_theme"`

	// подтверждение email: код и отметка времени живут/очищаются только парой
	EmailConfirmed          bool       `json:"email_confirmed"`
	ConfirmationCode        *string    `json:"-"`
	ConfirmationCodeCreated *time.Time `json:"-"`

	// refresh-хранение в БД
	RefreshToken     *string    `json:"-"` // храним opaque строку
	RefreshExpiresAt *time.Time `json:"-"`
	RefreshRevoked   bool       `json:"-"`

	DateJoined time.Time `json:"date_joined"`
}

// IsAdmin — доступ к админ-панели и операциям модерации.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
