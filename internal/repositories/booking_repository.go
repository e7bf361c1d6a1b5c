package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"photohub/internal/models"
)

type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id int) (*models.Booking, error)
	UpdateStatus(id int, status string) error
	ListByUser(userID int, limit, offset int) ([]*models.Booking, error)
	ListByStudio(studioID int, limit, offset int) ([]*models.Booking, error)
	CountOverlapping(studioID int, startsAt, endsAt time.Time) (int, error)
}

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{DB: db}
}

const bookingColumns = `id, studio_id, user_id, starts_at, ends_at, status, comment, created_at`

func (r *bookingRepository) Create(booking *models.Booking) error {
	const q = `
		INSERT INTO bookings (studio_id, user_id, starts_at, ends_at, status, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q,
		booking.StudioID,
		booking.UserID,
		booking.StartsAt,
		booking.EndsAt,
		booking.Status,
		booking.Comment,
	).Scan(&booking.ID, &booking.CreatedAt)
}

func (r *bookingRepository) GetByID(id int) (*models.Booking, error) {
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b := &models.Booking{}
	var comment sql.NullString
	err := row.Scan(&b.ID, &b.StudioID, &b.UserID, &b.StartsAt, &b.EndsAt, &b.Status, &comment, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if comment.Valid {
		b.Comment = comment.String
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatus(id int, status string) error {
	_, err := r.DB.Exec(`UPDATE bookings SET status=$1 WHERE id=$2`, status, id)
	return err
}

func (r *bookingRepository) ListByUser(userID int, limit, offset int) ([]*models.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY starts_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryBookings(q, userID, limit, offset)
}

func (r *bookingRepository) ListByStudio(studioID int, limit, offset int) ([]*models.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE studio_id = $1
		ORDER BY starts_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryBookings(q, studioID, limit, offset)
}

// CountOverlapping — занятые интервалы той же студии; отменённые брони не считаем.
func (r *bookingRepository) CountOverlapping(studioID int, startsAt, endsAt time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM bookings
		WHERE studio_id = $1
		  AND status <> $2
		  AND starts_at < $4
		  AND ends_at > $3
	`
	var c int
	err := r.DB.QueryRow(q, studioID, models.BookingStatusCancelled, startsAt, endsAt).Scan(&c)
	return c, err
}

func (r *bookingRepository) queryBookings(q string, args ...interface{}) ([]*models.Booking, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("bookings query: %w", err)
	}
	defer rows.Close()

	var res []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		var comment sql.NullString
		if err := rows.Scan(&b.ID, &b.StudioID, &b.UserID, &b.StartsAt, &b.EndsAt, &b.Status, &comment, &b.CreatedAt); err != nil {
			return nil, err
		}
		if comment.Valid {
			b.Comment = comment.String
		}
		res = append(res, b)
	}
	return res, rows.Err()
}
