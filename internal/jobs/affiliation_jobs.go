package jobs

import (
	"context"
	"time"

	"civichub-backend/internal/logger"
)

const staleRequestResponse = "Automatically expired after prolonged inactivity"

// ExpireStalePendingRequests cancels affiliation requests that have sat in
// pending longer than the configured age.
func (jr *JobRunner) ExpireStalePendingRequests() {
	jr.runWithRecovery("ExpireStalePendingRequests", func() {
		ctx := context.Background()

		cutoff := time.Now().AddDate(0, 0, -jr.config.Scheduler.StaleRequestAgeDays)
		count, err := jr.store.ExpireOlderThan(ctx, cutoff, staleRequestResponse)
		if err != nil {
			logger.Error("Failed to expire stale affiliation requests", "error", err)
			return
		}

		logger.Info("Expired stale affiliation requests",
			"count", count,
			"cutoff", cutoff.Format("2006-01-02"),
			"max_age_days", jr.config.Scheduler.StaleRequestAgeDays)
	})
}

// SendPendingRequestsDigest emails each organisation admin a summary of how
// many affiliation requests are waiting on their decision.
func (jr *JobRunner) SendPendingRequestsDigest() {
	jr.runWithRecovery("SendPendingRequestsDigest", func() {
		ctx := context.Background()

		pending, err := jr.store.ListPendingGroupedByOrganisation(ctx)
		if err != nil {
			logger.Error("Failed to list pending affiliation requests", "error", err)
			return
		}
		if len(pending) == 0 {
			logger.Info("No pending affiliation requests, skipping digest")
			return
		}

		// Rows arrive ordered by organisation, so counting runs is enough.
		counts := make(map[string]int)
		names := make(map[string]string)
		for _, req := range pending {
			counts[req.OrganisationID]++
			names[req.OrganisationID] = req.OrganisationName
		}

		sent := 0
		for orgID, count := range counts {
			org, err := jr.store.OrganisationRepository.GetByID(ctx, orgID)
			if err != nil {
				logger.Error("Failed to load organisation for digest", "organisation_id", orgID, "error", err)
				continue
			}
			admin, err := jr.store.ProfileRepository.GetByID(ctx, org.CreatedBy)
			if err != nil {
				logger.Error("Failed to load organisation admin for digest",
					"organisation_id", orgID, "profile_id", org.CreatedBy, "error", err)
				continue
			}

			if err := jr.services.Email.SendPendingRequestsDigest(ctx, admin.Email, names[orgID], count); err != nil {
				logger.Error("Failed to send pending requests digest",
					"organisation_id", orgID, "admin_email", admin.Email, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent pending request digests", "organisations", len(counts), "sent", sent)
	})
}
