package domain

// Actor identifies who is performing an operation, as asserted by the
// identity provider's token.
type Actor struct {
	ProfileID     string
	PlatformAdmin bool
}
