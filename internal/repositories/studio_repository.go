package repositories

import (
	"database/sql"
	"fmt"

	"photohub/internal/models"
)

type StudioRepository interface {
	Create(studio *models.Studio) error
	GetByID(id int) (*models.Studio, error)
	Update(studio *models.Studio) error
	Delete(id int) error
	List(limit, offset int) ([]*models.Studio, error)
	ListByCity(city string, limit, offset int) ([]*models.Studio, error)
	ListNewest(limit int) ([]*models.Studio, error)
}

type studioRepository struct {
	DB *sql.DB
}

func NewStudioRepository(db *sql.DB) StudioRepository {
	return &studioRepository{DB: db}
}

const studioColumns = `
	id, owner_id, name, description, address, latitude, longitude,
	city, district, price_per_hour, created_at
`

func (r *studioRepository) Create(studio *models.Studio) error {
	const q = `
		INSERT INTO studios (
			owner_id, name, description, address, latitude, longitude,
			city, district, price_per_hour, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
		RETURNING id, created_at
	`
	return r.DB.QueryRow(q,
		studio.OwnerID,
		studio.Name,
		studio.Description,
		studio.Address,
		studio.Latitude,
		studio.Longitude,
		studio.City,
		studio.District,
		studio.PricePerHour,
	).Scan(&studio.ID, &studio.CreatedAt)
}

func (r *studioRepository) GetByID(id int) (*models.Studio, error) {
	row := r.DB.QueryRow(`SELECT `+studioColumns+` FROM studios WHERE id = $1`, id)
	return scanStudio(row)
}

func scanStudio(row *sql.Row) (*models.Studio, error) {
	s := &models.Studio{}
	var desc, addr, city, district sql.NullString
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &desc, &addr, &s.Latitude, &s.Longitude,
		&city, &district, &s.PricePerHour, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		s.Description = desc.String
	}
	if addr.Valid {
		s.Address = addr.String
	}
	if city.Valid {
		s.City = city.String
	}
	if district.Valid {
		s.District = district.String
	}
	return s, nil
}

func (r *studioRepository) Update(studio *models.Studio) error {
	const q = `
		UPDATE studios
		SET name=$1, description=$2, address=$3, latitude=$4, longitude=$5,
		    city=$6, district=$7, price_per_hour=$8
		WHERE id=$9
	`
	_, err := r.DB.Exec(q,
		studio.Name,
		studio.Description,
		studio.Address,
		studio.Latitude,
		studio.Longitude,
		studio.City,
		studio.District,
		studio.PricePerHour,
		studio.ID,
	)
	return err
}

func (r *studioRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM studios WHERE id=$1`, id)
	return err
}

func (r *studioRepository) List(limit, offset int) ([]*models.Studio, error) {
	const q = `SELECT ` + studioColumns + ` FROM studios ORDER BY id LIMIT $1 OFFSET $2`
	return r.queryStudios(q, limit, offset)
}

func (r *studioRepository) ListByCity(city string, limit, offset int) ([]*models.Studio, error) {
	const q = `SELECT ` + studioColumns + ` FROM studios WHERE city = $1 ORDER BY id LIMIT $2 OFFSET $3`
	return r.queryStudios(q, city, limit, offset)
}

func (r *studioRepository) ListNewest(limit int) ([]*models.Studio, error) {
	const q = `SELECT ` + studioColumns + ` FROM studios ORDER BY created_at DESC LIMIT $1`
	return r.queryStudios(q, limit)
}

func (r *studioRepository) queryStudios(q string, args ...interface{}) ([]*models.Studio, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("studios query: %w", err)
	}
	defer rows.Close()

	var res []*models.Studio
	for rows.Next() {
		s := &models.Studio{}
		var desc, addr, city, district sql.NullString
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Name, &desc, &addr, &s.Latitude, &s.Longitude,
			&city, &district, &s.PricePerHour, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		if desc.Valid {
			s.Description = desc.String
		}
		if addr.Valid {
			s.Address = addr.String
		}
		if city.Valid {
			s.City = city.String
		}
		if district.Valid {
			s.District = district.String
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
