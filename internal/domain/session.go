package domain

// Step is the onboarding position the client is in. Exactly one step is
// current at any time; transitions are owned by the onboarding machine.
type Step string

const (
	StepUnauthenticated         Step = "unauthenticated"
	StepEmailSubmitted          Step = "email_submitted"
	StepNewAccountPassword      Step = "new_account_password"
	StepExistingAccountPassword Step = "existing_account_password"
	StepProfileIncomplete       Step = "profile_incomplete"
	StepPersonalityOptional     Step = "personality_optional"
	StepAuthenticated           Step = "authenticated"
)

// AwaitingPassword reports whether the step is one of the two password
// screens.
func (s Step) AwaitingPassword() bool {
	return s == StepNewAccountPassword || s == StepExistingAccountPassword
}

// Session is the transient per-process onboarding state. It is never
// persisted; only the mirrored profile survives a restart.
type Session struct {
	Email        string `json:"email"`
	IsNewAccount bool   `json:"isNewAccount"`
	Step         Step   `json:"step"`
}

// NewSession returns a session at the start of the flow.
func NewSession() *Session {
	return &Session{Step: StepUnauthenticated}
}

// Reset returns the session to the unauthenticated state, discarding the
// email under verification and the account-novelty flag.
func (s *Session) Reset() {
	s.Email = ""
	s.IsNewAccount = false
	s.Step = StepUnauthenticated
}
