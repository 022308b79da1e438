package service

import (
	"context"
	"database/sql"
	"errors"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, profileID string, page, pageSize int) ([]domain.Notification, int, error) {
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, profileID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, profileID, notificationID string) error {
	err := s.noteRepo.MarkAsRead(ctx, notificationID, profileID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotificationNotFound
	}
	return err
}
