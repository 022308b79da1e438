package service

import (
	"context"
	"database/sql"
	"errors"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/repository"
)

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := s.profileRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProfileNotFound
	}
	return p, err
}

// CreateProfile provisions a profile on first login; the id comes from the
// identity provider so repeated logins are idempotent upstream.
func (s *profileService) CreateProfile(ctx context.Context, p *domain.Profile) error {
	return s.profileRepo.Create(ctx, p)
}

func (s *profileService) UpdateProfile(ctx context.Context, actor domain.Actor, p *domain.Profile) error {
	if p.ID != actor.ProfileID && !actor.PlatformAdmin {
		return domain.ErrNotAuthorized
	}
	existing, err := s.profileRepo.GetByID(ctx, p.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return err
	}
	// The affiliation link is owned by the workflow, not self-service edits.
	p.OrganisationID = existing.OrganisationID
	return s.profileRepo.Update(ctx, p)
}
