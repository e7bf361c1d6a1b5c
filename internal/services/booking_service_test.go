package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photohub/internal/models"
	"photohub/internal/pdf"
)

type fakeBookingRepo struct {
	bookings map[int]*models.Booking
	nextID   int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[int]*models.Booking{}, nextID: 1}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	b.ID = f.nextID
	f.nextID++
	b.CreatedAt = time.Now()
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) GetByID(id int) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, assert.AnError
	}
	return b, nil
}

func (f *fakeBookingRepo) UpdateStatus(id int, status string) error {
	b, ok := f.bookings[id]
	if !ok {
		return assert.AnError
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) ListByUser(userID, limit, offset int) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByStudio(studioID, limit, offset int) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.StudioID == studioID {
			out = append(out, b)
		}
	}
	return out, nil
}

// CountOverlapping — та же логика интервалов, что и в SQL-запросе:
// пересекаются, если starts_at < endsAt и ends_at > startsAt, отменённые не в счёт.
func (f *fakeBookingRepo) CountOverlapping(studioID int, startsAt, endsAt time.Time) (int, error) {
	n := 0
	for _, b := range f.bookings {
		if b.StudioID != studioID || b.Status == models.BookingStatusCancelled {
			continue
		}
		if b.StartsAt.Before(endsAt) && b.EndsAt.After(startsAt) {
			n++
		}
	}
	return n, nil
}

type fakeStudioRepo struct {
	studios map[int]*models.Studio
}

func (f *fakeStudioRepo) Create(s *models.Studio) error { f.studios[s.ID] = s; return nil }
func (f *fakeStudioRepo) GetByID(id int) (*models.Studio, error) {
	s, ok := f.studios[id]
	if !ok {
		return nil, assert.AnError
	}
	return s, nil
}
func (f *fakeStudioRepo) Update(s *models.Studio) error { return nil }
func (f *fakeStudioRepo) Delete(id int) error           { delete(f.studios, id); return nil }
func (f *fakeStudioRepo) List(limit, offset int) ([]*models.Studio, error) { return nil, nil }
func (f *fakeStudioRepo) ListByCity(city string, limit, offset int) ([]*models.Studio, error) {
	return nil, nil
}
func (f *fakeStudioRepo) ListNewest(limit int) ([]*models.Studio, error) { return nil, nil }

type fakeReceipts struct {
	calls []pdf.ReceiptData
	fail  bool
}

func (f *fakeReceipts) GenerateBookingReceipt(data pdf.ReceiptData) (string, error) {
	if f.fail {
		return "", assert.AnError
	}
	f.calls = append(f.calls, data)
	return "/files/receipts/test.pdf", nil
}

type fakeNotifier struct {
	notified int
	fail     bool
}

func (f *fakeNotifier) BookingCreated(studio *models.Studio, user *models.User, booking *models.Booking) error {
	if f.fail {
		return assert.AnError
	}
	f.notified++
	return nil
}

func newBookingFixture() (*fakeBookingRepo, *fakeReceipts, *fakeNotifier, BookingService) {
	bookings := newFakeBookingRepo()
	studios := &fakeStudioRepo{studios: map[int]*models.Studio{
		1: {ID: 1, OwnerID: 2, Name: "Лофт на Арбате", City: "Москва", PricePerHour: 2000},
	}}
	users := newFakeUserRepo()
	users.addUser(&models.User{Email: "client@example.com", FirstName: "Иван", LastName: "Петров"})
	receipts := &fakeReceipts{}
	notifier := &fakeNotifier{}
	svc := NewBookingService(bookings, studios, users, receipts, notifier)
	return bookings, receipts, notifier, svc
}

func TestCreateBookingHappyPath(t *testing.T) {
	_, receipts, notifier, svc := newBookingFixture()

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	booking := &models.Booking{StudioID: 1, UserID: 1, StartsAt: start, EndsAt: start.Add(3 * time.Hour)}

	receiptPath, err := svc.CreateBooking(booking)
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, "/files/receipts/test.pdf", receiptPath)

	require.Len(t, receipts.calls, 1)
	assert.Equal(t, int64(6000), receipts.calls[0].Amount) // 3 часа по 2000
	assert.Equal(t, 1, notifier.notified)
}

func TestCreateBookingInvalidTimeRange(t *testing.T) {
	_, _, _, svc := newBookingFixture()

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	booking := &models.Booking{StudioID: 1, UserID: 1, StartsAt: start, EndsAt: start}

	_, err := svc.CreateBooking(booking)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCreateBookingOverlap(t *testing.T) {
	bookings, _, _, svc := newBookingFixture()

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	bookings.bookings[99] = &models.Booking{
		ID: 99, StudioID: 1, UserID: 5,
		StartsAt: start, EndsAt: start.Add(2 * time.Hour),
		Status: models.BookingStatusConfirmed,
	}

	booking := &models.Booking{
		StudioID: 1, UserID: 1,
		StartsAt: start.Add(time.Hour), EndsAt: start.Add(4 * time.Hour),
	}
	_, err := svc.CreateBooking(booking)
	assert.ErrorIs(t, err, ErrBookingOverlap)
}

func TestCreateBookingIgnoresCancelledOverlap(t *testing.T) {
	bookings, _, _, svc := newBookingFixture()

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	bookings.bookings[99] = &models.Booking{
		ID: 99, StudioID: 1, UserID: 5,
		StartsAt: start, EndsAt: start.Add(2 * time.Hour),
		Status: models.BookingStatusCancelled,
	}

	booking := &models.Booking{StudioID: 1, UserID: 1, StartsAt: start, EndsAt: start.Add(time.Hour)}
	_, err := svc.CreateBooking(booking)
	require.NoError(t, err)
}

func TestCreateBookingReceiptFailureDoesNotCancel(t *testing.T) {
	bookings := newFakeBookingRepo()
	studios := &fakeStudioRepo{studios: map[int]*models.Studio{
		1: {ID: 1, Name: "Лофт", PricePerHour: 1000},
	}}
	users := newFakeUserRepo()
	users.addUser(&models.User{Email: "client@example.com"})
	svc := NewBookingService(bookings, studios, users, &fakeReceipts{fail: true}, &fakeNotifier{fail: true})

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	booking := &models.Booking{StudioID: 1, UserID: 1, StartsAt: start, EndsAt: start.Add(time.Hour)}

	receiptPath, err := svc.CreateBooking(booking)
	require.NoError(t, err)
	assert.Empty(t, receiptPath)
	assert.Len(t, bookings.bookings, 1)
}

func TestCancelBooking(t *testing.T) {
	bookings, _, _, svc := newBookingFixture()

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	booking := &models.Booking{StudioID: 1, UserID: 1, StartsAt: start, EndsAt: start.Add(time.Hour)}
	_, err := svc.CreateBooking(booking)
	require.NoError(t, err)

	// чужой пользователь без прав админа
	err = svc.CancelBooking(booking.ID, 42, false)
	assert.ErrorIs(t, err, ErrNotBookingOwner)
	assert.Equal(t, models.BookingStatusPending, bookings.bookings[booking.ID].Status)

	// владелец
	require.NoError(t, svc.CancelBooking(booking.ID, 1, false))
	assert.Equal(t, models.BookingStatusCancelled, bookings.bookings[booking.ID].Status)

	// повторная отмена — no-op
	require.NoError(t, svc.CancelBooking(booking.ID, 1, false))
}

func TestCancelBookingAsAdmin(t *testing.T) {
	bookings, _, _, svc := newBookingFixture()

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	booking := &models.Booking{StudioID: 1, UserID: 1, StartsAt: start, EndsAt: start.Add(time.Hour)}
	_, err := svc.CreateBooking(booking)
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(booking.ID, 42, true))
	assert.Equal(t, models.BookingStatusCancelled, bookings.bookings[booking.ID].Status)
}
