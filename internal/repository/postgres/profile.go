package postgres

import (
	"context"
	"database/sql"
	"time"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/repository"

	"github.com/google/uuid"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	query := `INSERT INTO profiles (id, organisation_id, display_name, email, avatar_url, country, city, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.OrganisationID, p.DisplayName, p.Email, p.AvatarURL, p.Country, p.City, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	p := &domain.Profile{}
	query := `SELECT id, organisation_id, display_name, email, COALESCE(avatar_url, ''), COALESCE(country, ''), COALESCE(city, ''), created_at, updated_at
	          FROM profiles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.OrganisationID, &p.DisplayName, &p.Email, &p.AvatarURL, &p.Country, &p.City, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	p.UpdatedAt = time.Now()
	query := `UPDATE profiles SET display_name=$1, email=$2, avatar_url=$3, country=$4, city=$5, updated_at=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, p.DisplayName, p.Email, p.AvatarURL, p.Country, p.City, p.UpdatedAt, p.ID)
	return err
}

func (r *profileRepository) SetOrganisation(ctx context.Context, profileID string, organisationID *string) error {
	query := `UPDATE profiles SET organisation_id=$1, updated_at=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, organisationID, time.Now(), profileID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *profileRepository) ListByOrganisation(ctx context.Context, organisationID string, limit, offset int) ([]domain.Profile, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles WHERE organisation_id = $1`, organisationID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, organisation_id, display_name, email, COALESCE(avatar_url, ''), COALESCE(country, ''), COALESCE(city, ''), created_at, updated_at
	          FROM profiles WHERE organisation_id = $1 ORDER BY display_name LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, organisationID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.OrganisationID, &p.DisplayName, &p.Email, &p.AvatarURL, &p.Country, &p.City, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}
