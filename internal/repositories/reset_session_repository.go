package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"photohub/internal/models"
)

// ResetSessionRepository — хранит связку "токен сессии сброса -> email".
// Запись создаётся при запросе восстановления и удаляется после смены пароля.
type ResetSessionRepository interface {
	Create(token, email string, createdAt time.Time) error
	GetByToken(token string) (*models.ResetSession, error)
	Delete(token string) error
	DeleteExpired(olderThan time.Time) error
}

type resetSessionRepository struct {
	DB *sql.DB
}

func NewResetSessionRepository(db *sql.DB) ResetSessionRepository {
	return &resetSessionRepository{DB: db}
}

func (r *resetSessionRepository) Create(token, email string, createdAt time.Time) error {
	const q = `
		INSERT INTO password_reset_sessions (token, email, created_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.DB.Exec(q, token, email, createdAt); err != nil {
		return fmt.Errorf("reset_session create: %w", err)
	}
	return nil
}

// GetByToken — nil без ошибки, если сессии нет (истекла или не создавалась).
func (r *resetSessionRepository) GetByToken(token string) (*models.ResetSession, error) {
	const q = `
		SELECT token, email, created_at
		FROM password_reset_sessions
		WHERE token = $1
	`
	row := r.DB.QueryRow(q, token)
	var s models.ResetSession
	if err := row.Scan(&s.Token, &s.Email, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("reset_session get: %w", err)
	}
	return &s, nil
}

func (r *resetSessionRepository) Delete(token string) error {
	_, err := r.DB.Exec(`DELETE FROM password_reset_sessions WHERE token=$1`, token)
	return err
}

// DeleteExpired — чистим брошенные сессии (окно кода всё равно 24 часа).
func (r *resetSessionRepository) DeleteExpired(olderThan time.Time) error {
	_, err := r.DB.Exec(`DELETE FROM password_reset_sessions WHERE created_at < $1`, olderThan)
	return err
}
