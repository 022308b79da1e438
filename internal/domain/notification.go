package domain

import "time"

type NotificationType string

const (
	NotificationTypeAffiliationRequested NotificationType = "affiliation_requested"
	NotificationTypeAffiliationApproved  NotificationType = "affiliation_approved"
	NotificationTypeAffiliationRejected  NotificationType = "affiliation_rejected"
	NotificationTypeAffiliationCancelled NotificationType = "affiliation_cancelled"
	NotificationTypeOrganisationStatus   NotificationType = "organisation_status"
)

type Notification struct {
	ID        string           `json:"id"`
	ProfileID string           `json:"profile_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
