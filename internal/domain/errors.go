package domain

import "errors"

// Business errors. Handlers report these as structured {success:false, error}
// responses; anything else is treated as an infrastructure failure.
var (
	ErrProfileNotFound         = errors.New("profile not found")
	ErrOrganisationNotFound    = errors.New("organisation not found")
	ErrRequestNotFound         = errors.New("affiliation request not found")
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrNotAuthorized           = errors.New("not authorized to perform this action")
	ErrAlreadyAffiliated       = errors.New("profile is already affiliated with an organisation")
	ErrDuplicatePendingRequest = errors.New("a pending affiliation request already exists for this organisation")
	ErrRequestAlreadyResolved  = errors.New("affiliation request has already been resolved")
	ErrOrganisationNotActive   = errors.New("organisation is not accepting affiliation requests")
	ErrInvalidRequestStatus    = errors.New("invalid affiliation request status")
	ErrInvalidStatusTransition = errors.New("invalid organisation status transition")
)

var businessErrors = []error{
	ErrProfileNotFound,
	ErrOrganisationNotFound,
	ErrRequestNotFound,
	ErrNotificationNotFound,
	ErrNotAuthorized,
	ErrAlreadyAffiliated,
	ErrDuplicatePendingRequest,
	ErrRequestAlreadyResolved,
	ErrOrganisationNotActive,
	ErrInvalidRequestStatus,
	ErrInvalidStatusTransition,
}

// IsBusinessError reports whether err (or anything it wraps) is an expected
// business failure rather than a transport/infrastructure one.
func IsBusinessError(err error) bool {
	for _, be := range businessErrors {
		if errors.Is(err, be) {
			return true
		}
	}
	return false
}
