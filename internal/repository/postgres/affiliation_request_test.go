package postgres_test

import (
	"context"
	"testing"
	"time"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func requestRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "profile_id", "organisation_id", "request_message", "admin_response",
		"request_status", "requested_at", "responded_at", "name", "logo_url",
	})
}

func TestAffiliationRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAffiliationRequestRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		req := &domain.AffiliationRequest{
			ProfileID:      "p1",
			OrganisationID: "org-1",
			Message:        "hello",
		}

		mock.ExpectQuery("INSERT INTO affiliation_requests").
			WithArgs(sqlmock.AnyArg(), "p1", "org-1", "hello",
				string(domain.AffiliationRequestStatusPending), sqlmock.AnyArg(),
				string(domain.AffiliationRequestStatusPending)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("req-1"))

		err := repo.Create(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "req-1", req.ID)
		assert.Equal(t, domain.AffiliationRequestStatusPending, req.Status)
	})

	t.Run("DuplicatePending", func(t *testing.T) {
		req := &domain.AffiliationRequest{
			ProfileID:      "p1",
			OrganisationID: "org-1",
		}

		// The conditional insert matches no row when a pending request exists.
		mock.ExpectQuery("INSERT INTO affiliation_requests").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := repo.Create(ctx, req)
		assert.ErrorIs(t, err, domain.ErrDuplicatePendingRequest)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAffiliationRequestRepository_GetPendingByProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAffiliationRequestRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT .+ FROM affiliation_requests r").
			WithArgs("p1", string(domain.AffiliationRequestStatusPending)).
			WillReturnRows(requestRows().AddRow(
				"req-1", "p1", "org-1", "hello", "",
				string(domain.AffiliationRequestStatusPending), now, nil,
				"Civic Alliance", "https://cdn.example.org/logo.png"))

		req, err := repo.GetPendingByProfile(ctx, "p1")
		assert.NoError(t, err)
		assert.Equal(t, "req-1", req.ID)
		assert.Equal(t, "Civic Alliance", req.OrganisationName)
		assert.Nil(t, req.RespondedAt)
	})

	t.Run("NoneReturnsNilNil", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM affiliation_requests r").
			WithArgs("p1", string(domain.AffiliationRequestStatusPending)).
			WillReturnRows(requestRows())

		req, err := repo.GetPendingByProfile(ctx, "p1")
		assert.NoError(t, err)
		assert.Nil(t, req)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAffiliationRequestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAffiliationRequestRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE affiliation_requests SET").
			WithArgs(string(domain.AffiliationRequestStatusRejected), "no", now, "req-1",
				string(domain.AffiliationRequestStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "req-1", domain.AffiliationRequestStatusRejected, "no", now)
		assert.NoError(t, err)
	})

	t.Run("AlreadyResolved", func(t *testing.T) {
		// The pending guard misses: zero rows updated.
		mock.ExpectExec("UPDATE affiliation_requests SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, "req-1", domain.AffiliationRequestStatusRejected, "no", now)
		assert.ErrorIs(t, err, domain.ErrRequestAlreadyResolved)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAffiliationRequestRepository_Approve(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAffiliationRequestRepository(db)
	ctx := context.Background()
	now := time.Now()
	req := &domain.AffiliationRequest{
		ID:             "req-1",
		ProfileID:      "p1",
		OrganisationID: "org-1",
		Status:         domain.AffiliationRequestStatusPending,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE affiliation_requests SET").
			WithArgs(string(domain.AffiliationRequestStatusApproved), "welcome", now, "req-1",
				string(domain.AffiliationRequestStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE profiles SET organisation_id").
			WithArgs("org-1", now, "p1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Approve(ctx, req, "welcome", now)
		assert.NoError(t, err)
	})

	t.Run("AlreadyResolvedRollsBack", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE affiliation_requests SET").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Approve(ctx, req, "welcome", now)
		assert.ErrorIs(t, err, domain.ErrRequestAlreadyResolved)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAffiliationRequestRepository_ExpireOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAffiliationRequestRepository(db)
	ctx := context.Background()
	cutoff := time.Now().AddDate(0, 0, -60)

	mock.ExpectExec("UPDATE affiliation_requests SET").
		WithArgs(string(domain.AffiliationRequestStatusCancelled), "expired", sqlmock.AnyArg(),
			string(domain.AffiliationRequestStatusPending), cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.ExpireOlderThan(ctx, cutoff, "expired")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
