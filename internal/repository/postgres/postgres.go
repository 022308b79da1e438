package postgres

import (
	"database/sql"

	"civichub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProfileRepository
	repository.OrganisationRepository
	repository.AffiliationRequestRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                           db,
		ProfileRepository:            NewProfileRepository(db),
		OrganisationRepository:       NewOrganisationRepository(db),
		AffiliationRequestRepository: NewAffiliationRequestRepository(db),
		NotificationRepository:       NewNotificationRepository(db),
	}
}
