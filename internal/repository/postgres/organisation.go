package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/repository"

	"github.com/google/uuid"
)

type organisationRepository struct {
	db *sql.DB
}

func NewOrganisationRepository(db *sql.DB) repository.OrganisationRepository {
	return &organisationRepository{db: db}
}

const organisationColumns = `o.id, o.name, COALESCE(o.description, ''), COALESCE(o.logo_url, ''), COALESCE(o.country, ''), COALESCE(o.city, ''), COALESCE(o.type, ''), o.status, o.created_by, o.created_at, o.updated_at,
	          (SELECT COUNT(*) FROM profiles p WHERE p.organisation_id = o.id)`

func scanOrganisation(row interface{ Scan(...any) error }) (*domain.Organisation, error) {
	o := &domain.Organisation{}
	err := row.Scan(&o.ID, &o.Name, &o.Description, &o.LogoURL, &o.Country, &o.City, &o.Type, &o.Status, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.MemberCount)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organisationRepository) Create(ctx context.Context, o *domain.Organisation) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	query := `INSERT INTO organisations (id, name, description, logo_url, country, city, type, status, created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, o.ID, o.Name, o.Description, o.LogoURL, o.Country, o.City, o.Type, o.Status, o.CreatedBy, o.CreatedAt, o.UpdatedAt)
	return err
}

func (r *organisationRepository) GetByID(ctx context.Context, id string) (*domain.Organisation, error) {
	query := `SELECT ` + organisationColumns + ` FROM organisations o WHERE o.id = $1`
	return scanOrganisation(r.db.QueryRowContext(ctx, query, id))
}

func (r *organisationRepository) Update(ctx context.Context, o *domain.Organisation) error {
	o.UpdatedAt = time.Now()
	query := `UPDATE organisations SET name=$1, description=$2, logo_url=$3, country=$4, city=$5, type=$6, updated_at=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, o.Name, o.Description, o.LogoURL, o.Country, o.City, o.Type, o.UpdatedAt, o.ID)
	return err
}

func (r *organisationRepository) List(ctx context.Context, limit, offset int) ([]domain.Organisation, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM organisations`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + organisationColumns + ` FROM organisations o ORDER BY o.name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orgs, err := collectOrganisations(rows)
	return orgs, total, err
}

func (r *organisationRepository) Search(ctx context.Context, name, country string, limit, offset int) ([]domain.Organisation, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM organisations o WHERE o.name ILIKE $1 AND o.country ILIKE $2`
	if err := r.db.QueryRowContext(ctx, countQuery, "%"+name+"%", "%"+country+"%").Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + organisationColumns + ` FROM organisations o
	          WHERE o.name ILIKE $1 AND o.country ILIKE $2 ORDER BY o.name LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, "%"+name+"%", "%"+country+"%", limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orgs, err := collectOrganisations(rows)
	return orgs, total, err
}

func collectOrganisations(rows *sql.Rows) ([]domain.Organisation, error) {
	var orgs []domain.Organisation
	for rows.Next() {
		o, err := scanOrganisation(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *o)
	}
	return orgs, rows.Err()
}

func (r *organisationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrganisationStatus) error {
	query := `UPDATE organisations SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidStatusTransition
	}
	return nil
}

// Activate flips the status and links the creator's profile atomically, so
// an approved organisation can never exist without its creator affiliated.
func (r *organisationRepository) Activate(ctx context.Context, o *domain.Organisation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE organisations SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`,
		domain.OrganisationStatusActive, now, o.ID, domain.OrganisationStatusPendingApproval)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInvalidStatusTransition
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET organisation_id=$1, updated_at=$2 WHERE id=$3`,
		o.ID, now, o.CreatedBy); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *organisationRepository) GetPendingByCreator(ctx context.Context, creatorProfileID string) (*domain.Organisation, error) {
	query := `SELECT ` + organisationColumns + ` FROM organisations o
	          WHERE o.created_by = $1 AND o.status = $2 ORDER BY o.created_at DESC LIMIT 1`
	o, err := scanOrganisation(r.db.QueryRowContext(ctx, query, creatorProfileID, domain.OrganisationStatusPendingApproval))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}
