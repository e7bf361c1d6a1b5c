package repositories

import (
	"database/sql"
	"time"

	"photohub/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePassword(userID int, passwordHash string) error
	ListNewest(limit int) ([]*models.User, error)
	GetCount() (int, error)

	// confirmation helpers: код и отметка времени всегда ставятся/чистятся парой
	SetConfirmationCode(userID int, code string, createdAt time.Time) error
	ClearConfirmationCode(userID int) error
	ConfirmEmail(userID int) error

	ToggleDarkTheme(userID int) (bool, error)

	// refresh helpers
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	ClearRefresh(userID int) error
	GetByRefreshToken(token string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, email, password_hash, first_name, last_name, phone,
	is_staff, is_superuser, dark_theme,
	email_confirmed, confirmation_code, confirmation_code_created,
	refresh_token, refresh_expires_at, refresh_revoked,
	date_joined
`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		phone  sql.NullString
		code   sql.NullString
		codeAt sql.NullTime
		rt     sql.NullString
		rte    sql.NullTime
		rr     sql.NullBool
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &phone,
		&u.IsStaff, &u.IsSuperuser, &u.DarkTheme,
		&u.EmailConfirmed, &code, &codeAt,
		&rt, &rte, &rr,
		&u.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		u.Phone = phone.String
	}
	if code.Valid {
		s := code.String
		u.ConfirmationCode = &s
	}
	if codeAt.Valid {
		t := codeAt.Time
		u.ConfirmationCodeCreated = &t
	}
	if rt.Valid {
		s := rt.String
		u.RefreshToken = &s
	}
	if rte.Valid {
		t := rte.Time
		u.RefreshExpiresAt = &t
	}
	if rr.Valid {
		u.RefreshRevoked = rr.Bool
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			email, password_hash, first_name, last_name, phone,
			is_staff, is_superuser, dark_theme,
			email_confirmed, confirmation_code, confirmation_code_created,
			refresh_token, refresh_expires_at, refresh_revoked,
			date_joined
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NULL,NULL,FALSE,NOW())
		RETURNING id, date_joined
	`
	return r.DB.QueryRow(q,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.IsStaff,
		user.IsSuperuser,
		user.DarkTheme,
		user.EmailConfirmed,
		user.ConfirmationCode,
		user.ConfirmationCodeCreated,
	).Scan(&user.ID, &user.DateJoined)
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET first_name=$1, last_name=$2, phone=$3
		WHERE id=$4
	`
	_, err := r.DB.Exec(q, user.FirstName, user.LastName, user.Phone, user.ID)
	return err
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	_, err := r.DB.Exec(`UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, userID)
	return err
}

func (r *userRepository) ListNewest(limit int) ([]*models.User, error) {
	const q = `
		SELECT id, email, first_name, last_name, is_staff, is_superuser,
		       email_confirmed, date_joined
		FROM users
		ORDER BY date_joined DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.IsStaff, &u.IsSuperuser,
			&u.EmailConfirmed, &u.DateJoined,
		); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) GetCount() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c)
	return c, err
}

// ===== confirmation helpers =====

func (r *userRepository) SetConfirmationCode(userID int, code string, createdAt time.Time) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET confirmation_code=$1, confirmation_code_created=$2
		WHERE id=$3
	`, code, createdAt, userID)
	return err
}

func (r *userRepository) ClearConfirmationCode(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET confirmation_code=NULL, confirmation_code_created=NULL
		WHERE id=$1
	`, userID)
	return err
}

func (r *userRepository) ConfirmEmail(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET email_confirmed=TRUE, confirmation_code=NULL, confirmation_code_created=NULL
		WHERE id=$1
	`, userID)
	return err
}

func (r *userRepository) ToggleDarkTheme(userID int) (bool, error) {
	var dark bool
	err := r.DB.QueryRow(`
		UPDATE users
		SET dark_theme = NOT dark_theme
		WHERE id=$1
		RETURNING dark_theme
	`, userID).Scan(&dark)
	return dark, err
}

// ===== refresh helpers =====

func (r *userRepository) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, token, expiresAt, userID)
	return err
}

func (r *userRepository) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE refresh_token=$3
		RETURNING ` + userColumns
	return scanUser(r.DB.QueryRow(q, newToken, newExpiresAt, oldToken))
}

func (r *userRepository) ClearRefresh(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET refresh_token=NULL, refresh_expires_at=NULL, refresh_revoked=TRUE
		WHERE id=$1
	`, userID)
	return err
}

func (r *userRepository) GetByRefreshToken(token string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token))
}
