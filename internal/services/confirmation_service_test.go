package services

import (
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photohub/internal/models"
)

// --- fakes ---

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int

	getByEmailErr error // имитация сбоя БД
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) addUser(u *models.User) *models.User {
	u.ID = f.nextID
	f.nextID++
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(u *models.User) error {
	f.addUser(u)
	return nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) Update(u *models.User) error { return nil }

func (f *fakeUserRepo) UpdatePassword(userID int, hash string) error {
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) ListNewest(limit int) ([]*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetCount() (int, error)                       { return len(f.users), nil }

func (f *fakeUserRepo) SetConfirmationCode(userID int, code string, createdAt time.Time) error {
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.ConfirmationCode = &code
	u.ConfirmationCodeCreated = &createdAt
	return nil
}

func (f *fakeUserRepo) ClearConfirmationCode(userID int) error {
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.ConfirmationCode = nil
	u.ConfirmationCodeCreated = nil
	return nil
}

func (f *fakeUserRepo) ConfirmEmail(userID int) error {
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.EmailConfirmed = true
	u.ConfirmationCode = nil
	u.ConfirmationCodeCreated = nil
	return nil
}

func (f *fakeUserRepo) ToggleDarkTheme(userID int) (bool, error) {
	u, ok := f.users[userID]
	if !ok {
		return false, sql.ErrNoRows
	}
	u.DarkTheme = !u.DarkTheme
	return u.DarkTheme, nil
}

func (f *fakeUserRepo) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	return nil
}
func (f *fakeUserRepo) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeUserRepo) ClearRefresh(userID int) error { return nil }
func (f *fakeUserRepo) GetByRefreshToken(token string) (*models.User, error) {
	return nil, sql.ErrNoRows
}

type sentMail struct {
	To   string
	Code string
}

// fakeMailer — пишет отправки в память; failNext имитирует сбой SMTP.
type fakeMailer struct {
	confirmations []sentMail
	resets        []sentMail
	failNext      bool
}

func (m *fakeMailer) SendConfirmationEmail(email, firstName, code string) error {
	if m.failNext {
		return assert.AnError
	}
	m.confirmations = append(m.confirmations, sentMail{To: email, Code: code})
	return nil
}

func (m *fakeMailer) SendPasswordResetEmail(email, firstName, code string) error {
	if m.failNext {
		return assert.AnError
	}
	m.resets = append(m.resets, sentMail{To: email, Code: code})
	return nil
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

// --- tests ---

func TestGenerateConfirmationCodeRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := generateConfirmationCode()
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestIssueCodeOnFreshAccount(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := NewConfirmationService(repo, mailer)

	user := repo.addUser(&models.User{Email: "a@example.com", FirstName: "Аня"})

	require.NoError(t, svc.IssueCode(user))

	assert.False(t, user.EmailConfirmed)
	require.NotNil(t, user.ConfirmationCode)
	require.NotNil(t, user.ConfirmationCodeCreated)
	require.Len(t, mailer.confirmations, 1)
	assert.Equal(t, "a@example.com", mailer.confirmations[0].To)
	assert.Equal(t, *user.ConfirmationCode, mailer.confirmations[0].Code)
}

func TestConfirmCorrectCodeWithinWindow(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewConfirmationService(repo, &fakeMailer{})

	// код выдан почти сутки назад — всё ещё в окне
	user := repo.addUser(&models.User{
		Email:                   "a@example.com",
		ConfirmationCode:        strPtr("123456"),
		ConfirmationCodeCreated: timePtr(time.Now().Add(-23*time.Hour - 59*time.Minute)),
	})

	require.NoError(t, svc.Confirm(user, "123456"))
	assert.True(t, user.EmailConfirmed)
	assert.Nil(t, user.ConfirmationCode)
	assert.Nil(t, user.ConfirmationCodeCreated)

	// повторная отправка того же кода — идемпотентный no-op
	err := svc.Confirm(user, "123456")
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.True(t, user.EmailConfirmed)
}

func TestConfirmWrongCode(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewConfirmationService(repo, &fakeMailer{})

	user := repo.addUser(&models.User{
		Email:                   "a@example.com",
		ConfirmationCode:        strPtr("123456"),
		ConfirmationCodeCreated: timePtr(time.Now()),
	})

	err := svc.Confirm(user, "654321")
	assert.ErrorIs(t, err, ErrCodeInvalid)
	assert.False(t, user.EmailConfirmed)
	require.NotNil(t, user.ConfirmationCode)
	assert.Equal(t, "123456", *user.ConfirmationCode)
}

func TestConfirmExpiredCode(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewConfirmationService(repo, &fakeMailer{})

	user := repo.addUser(&models.User{
		Email:                   "a@example.com",
		ConfirmationCode:        strPtr("123456"),
		ConfirmationCodeCreated: timePtr(time.Now().Add(-25 * time.Hour)),
	})

	err := svc.Confirm(user, "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)
	assert.False(t, user.EmailConfirmed)
	assert.NotNil(t, user.ConfirmationCode)
}

func TestIssueCodeCooldown(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := NewConfirmationService(repo, mailer)

	// активный код моложе 5 минут — повторная выдача троттлится
	user := repo.addUser(&models.User{
		Email:                   "a@example.com",
		ConfirmationCode:        strPtr("123456"),
		ConfirmationCodeCreated: timePtr(time.Now().Add(-1 * time.Minute)),
	})

	err := svc.IssueCode(user)
	assert.ErrorIs(t, err, ErrResendThrottled)
	assert.Empty(t, mailer.confirmations)
	assert.Equal(t, "123456", *user.ConfirmationCode)
}

func TestIssueCodeAfterCooldownReplacesOld(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := NewConfirmationService(repo, mailer)

	oldCreated := time.Now().Add(-6 * time.Minute)
	// "000000" генератор выдать не может, поэтому новый код гарантированно другой
	user := repo.addUser(&models.User{
		Email:                   "a@example.com",
		ConfirmationCode:        strPtr("000000"),
		ConfirmationCodeCreated: timePtr(oldCreated),
	})

	require.NoError(t, svc.IssueCode(user))
	require.Len(t, mailer.confirmations, 1)
	require.NotNil(t, user.ConfirmationCode)
	assert.NotEqual(t, "000000", *user.ConfirmationCode)
	assert.True(t, user.ConfirmationCodeCreated.After(oldCreated))

	// старый код больше не принимается, даже в своём 24-часовом окне
	err := svc.Confirm(user, "000000")
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestIssueCodeAlreadyConfirmed(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := NewConfirmationService(repo, mailer)

	user := repo.addUser(&models.User{Email: "a@example.com", EmailConfirmed: true})

	err := svc.IssueCode(user)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.Empty(t, mailer.confirmations)
}

func TestIssueCodeDeliveryFailureRollsBack(t *testing.T) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{failNext: true}
	svc := NewConfirmationService(repo, mailer)

	user := repo.addUser(&models.User{Email: "a@example.com"})

	err := svc.IssueCode(user)
	require.Error(t, err)

	// недоставленный код не должен остаться действительным
	stored := repo.users[user.ID]
	assert.Nil(t, stored.ConfirmationCode)
	assert.Nil(t, stored.ConfirmationCodeCreated)
}
