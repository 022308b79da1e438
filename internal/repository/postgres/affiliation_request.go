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

type affiliationRequestRepository struct {
	db *sql.DB
}

func NewAffiliationRequestRepository(db *sql.DB) repository.AffiliationRequestRepository {
	return &affiliationRequestRepository{db: db}
}

const requestColumns = `r.id, r.profile_id, r.organisation_id, COALESCE(r.request_message, ''), COALESCE(r.admin_response, ''), r.request_status, r.requested_at, r.responded_at, o.name, COALESCE(o.logo_url, '')`

func scanRequest(row interface{ Scan(...any) error }) (*domain.AffiliationRequest, error) {
	req := &domain.AffiliationRequest{}
	err := row.Scan(&req.ID, &req.ProfileID, &req.OrganisationID, &req.Message, &req.AdminResponse, &req.Status, &req.RequestedAt, &req.RespondedAt, &req.OrganisationName, &req.OrganisationLogoURL)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Create inserts the request conditionally: the insert is a no-op when a
// pending request for the same (profile, organisation) pair already exists.
func (r *affiliationRequestRepository) Create(ctx context.Context, req *domain.AffiliationRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.Status = domain.AffiliationRequestStatusPending
	req.RequestedAt = time.Now()

	query := `INSERT INTO affiliation_requests (id, profile_id, organisation_id, request_message, request_status, requested_at)
	          SELECT $1, $2, $3, $4, $5, $6
	          WHERE NOT EXISTS (
	              SELECT 1 FROM affiliation_requests
	              WHERE profile_id = $2 AND organisation_id = $3 AND request_status = $7
	          )
	          RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		req.ID, req.ProfileID, req.OrganisationID, req.Message, req.Status, req.RequestedAt,
		domain.AffiliationRequestStatusPending,
	).Scan(&req.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrDuplicatePendingRequest
	}
	return err
}

func (r *affiliationRequestRepository) GetByID(ctx context.Context, id string) (*domain.AffiliationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM affiliation_requests r
	          JOIN organisations o ON o.id = r.organisation_id WHERE r.id = $1`
	return scanRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *affiliationRequestRepository) GetPendingByProfile(ctx context.Context, profileID string) (*domain.AffiliationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM affiliation_requests r
	          JOIN organisations o ON o.id = r.organisation_id
	          WHERE r.profile_id = $1 AND r.request_status = $2
	          ORDER BY r.requested_at DESC LIMIT 1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, profileID, domain.AffiliationRequestStatusPending))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *affiliationRequestRepository) ListByOrganisation(ctx context.Context, organisationID string) ([]domain.AffiliationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM affiliation_requests r
	          JOIN organisations o ON o.id = r.organisation_id
	          WHERE r.organisation_id = $1 ORDER BY r.requested_at DESC`
	rows, err := r.db.QueryContext(ctx, query, organisationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.AffiliationRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

// UpdateStatus is guarded on the request still being pending so two admins
// racing on the same request cannot both win.
func (r *affiliationRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.AffiliationRequestStatus, adminResponse string, respondedAt time.Time) error {
	query := `UPDATE affiliation_requests SET request_status=$1, admin_response=$2, responded_at=$3
	          WHERE id=$4 AND request_status=$5`
	res, err := r.db.ExecContext(ctx, query, status, adminResponse, respondedAt, id, domain.AffiliationRequestStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRequestAlreadyResolved
	}
	return nil
}

// Approve transitions the request and links the requester's profile to the
// organisation in a single transaction, so a crash cannot leave an approved
// request with an unaffiliated profile.
func (r *affiliationRequestRepository) Approve(ctx context.Context, req *domain.AffiliationRequest, adminResponse string, respondedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE affiliation_requests SET request_status=$1, admin_response=$2, responded_at=$3
		 WHERE id=$4 AND request_status=$5`,
		domain.AffiliationRequestStatusApproved, adminResponse, respondedAt, req.ID, domain.AffiliationRequestStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRequestAlreadyResolved
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET organisation_id=$1, updated_at=$2 WHERE id=$3`,
		req.OrganisationID, respondedAt, req.ProfileID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *affiliationRequestRepository) ExpireOlderThan(ctx context.Context, cutoff time.Time, adminResponse string) (int64, error) {
	query := `UPDATE affiliation_requests SET request_status=$1, admin_response=$2, responded_at=$3
	          WHERE request_status=$4 AND requested_at < $5`
	res, err := r.db.ExecContext(ctx, query,
		domain.AffiliationRequestStatusCancelled, adminResponse, time.Now(),
		domain.AffiliationRequestStatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *affiliationRequestRepository) ListPendingGroupedByOrganisation(ctx context.Context) ([]domain.AffiliationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM affiliation_requests r
	          JOIN organisations o ON o.id = r.organisation_id
	          WHERE r.request_status = $1 ORDER BY r.organisation_id, r.requested_at`
	rows, err := r.db.QueryContext(ctx, query, domain.AffiliationRequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.AffiliationRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}
