package gateway

import (
	"context"

	"github.com/matchbook-app/matchbook-client/internal/domain"
)

// SignInResult is the remote service's answer to a sign-in or account
// creation. The profile snapshot may be incomplete for fresh accounts.
type SignInResult struct {
	Token   string
	Profile *domain.Profile
}

// ProfileGateway is the contract against the remote profile service.
// Implementations map transport failures onto the domain error taxonomy:
// *domain.NetworkError for transient failures, domain.ErrProfileNotFound
// for a missing profile, domain.ErrAuthRejected for credential failures and
// domain.ErrConflict for stale writes.
type ProfileGateway interface {
	// CheckEmail reports whether an account exists for the email. The check
	// is idempotent and safe to re-run.
	CheckEmail(ctx context.Context, email string) (exists bool, err error)

	// SignIn authenticates, or creates the account first when isNewUser is
	// set, and returns the current profile snapshot.
	SignIn(ctx context.Context, email, password string, isNewUser bool) (*SignInResult, error)

	// FetchCurrent returns the signed-in user's profile.
	FetchCurrent(ctx context.Context) (*domain.Profile, error)

	// CreateProfile persists a new profile and returns the stored
	// representation, including the assigned ID.
	CreateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)

	// UpdateProfile replaces the stored profile and returns the server's
	// representation, which is authoritative on every field it echoes.
	UpdateProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)

	// UpdatePersonality stores the questionnaire answers for the profile.
	UpdatePersonality(ctx context.Context, profileID string, personality map[string]string, idealPartner string) (*domain.Profile, error)

	// ClearCredentials drops any stored session credential so later calls
	// go out unauthenticated. Invoked on sign-out.
	ClearCredentials()
}
