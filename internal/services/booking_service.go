package services

import (
	"errors"
	"fmt"
	"log"

	"photohub/internal/models"
	"photohub/internal/pdf"
	"photohub/internal/repositories"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrBookingOverlap   = errors.New("booking overlaps an existing one")
	ErrNotBookingOwner  = errors.New("not booking owner")
)

// AdminNotifier — уведомление админа о новой брони (Telegram).
type AdminNotifier interface {
	BookingCreated(studio *models.Studio, user *models.User, booking *models.Booking) error
}

type BookingService interface {
	CreateBooking(booking *models.Booking) (receiptPath string, err error)
	GetBookingByID(id int) (*models.Booking, error)
	CancelBooking(bookingID, callerID int, callerIsAdmin bool) error
	ListUserBookings(userID, limit, offset int) ([]*models.Booking, error)
	ListStudioBookings(studioID, limit, offset int) ([]*models.Booking, error)
}

type bookingService struct {
	repo       repositories.BookingRepository
	studioRepo repositories.StudioRepository
	userRepo   repositories.UserRepository
	receipts   pdf.Generator
	notifier   AdminNotifier
}

func NewBookingService(
	repo repositories.BookingRepository,
	studioRepo repositories.StudioRepository,
	userRepo repositories.UserRepository,
	receipts pdf.Generator,
	notifier AdminNotifier,
) BookingService {
	return &bookingService{
		repo:       repo,
		studioRepo: studioRepo,
		userRepo:   userRepo,
		receipts:   receipts,
		notifier:   notifier,
	}
}

// CreateBooking — проверка интервала и пересечений, затем запись.
// PDF-квитанция и Telegram-уведомление best-effort: их сбой бронь не отменяет.
func (s *bookingService) CreateBooking(booking *models.Booking) (string, error) {
	if !booking.EndsAt.After(booking.StartsAt) {
		return "", ErrInvalidTimeRange
	}

	studio, err := s.studioRepo.GetByID(booking.StudioID)
	if err != nil {
		return "", fmt.Errorf("studio lookup: %w", err)
	}

	overlaps, err := s.repo.CountOverlapping(booking.StudioID, booking.StartsAt, booking.EndsAt)
	if err != nil {
		return "", err
	}
	if overlaps > 0 {
		return "", ErrBookingOverlap
	}

	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	if err := s.repo.Create(booking); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByID(booking.UserID)
	if err != nil {
		log.Printf("[booking][create] user lookup failed: user_id=%d err=%v", booking.UserID, err)
		return "", nil
	}

	var receiptPath string
	if s.receipts != nil {
		hours := booking.EndsAt.Sub(booking.StartsAt).Hours()
		path, rErr := s.receipts.GenerateBookingReceipt(pdf.ReceiptData{
			BookingID:  booking.ID,
			StudioName: studio.Name,
			City:       studio.City,
			Address:    studio.Address,
			ClientName: user.FirstName + " " + user.LastName,
			ClientMail: user.Email,
			StartsAt:   booking.StartsAt,
			EndsAt:     booking.EndsAt,
			Amount:     int64(hours * float64(studio.PricePerHour)),
			CreatedAt:  booking.CreatedAt,
		})
		if rErr != nil {
			log.Printf("[booking][create] receipt failed: booking_id=%d err=%v", booking.ID, rErr)
		} else {
			receiptPath = path
		}
	}

	if s.notifier != nil {
		if nErr := s.notifier.BookingCreated(studio, user, booking); nErr != nil {
			log.Printf("[booking][create] admin notify failed: booking_id=%d err=%v", booking.ID, nErr)
		}
	}

	log.Printf("[booking][create] ok: booking_id=%d studio_id=%d user_id=%d", booking.ID, booking.StudioID, booking.UserID)
	return receiptPath, nil
}

func (s *bookingService) GetBookingByID(id int) (*models.Booking, error) {
	return s.repo.GetByID(id)
}

// CancelBooking — отменить может владелец брони или админ.
func (s *bookingService) CancelBooking(bookingID, callerID int, callerIsAdmin bool) error {
	booking, err := s.repo.GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != callerID && !callerIsAdmin {
		return ErrNotBookingOwner
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil // уже отменена
	}
	return s.repo.UpdateStatus(bookingID, models.BookingStatusCancelled)
}

func (s *bookingService) ListUserBookings(userID, limit, offset int) ([]*models.Booking, error) {
	return s.repo.ListByUser(userID, limit, offset)
}

func (s *bookingService) ListStudioBookings(studioID, limit, offset int) ([]*models.Booking, error) {
	return s.repo.ListByStudio(studioID, limit, offset)
}
