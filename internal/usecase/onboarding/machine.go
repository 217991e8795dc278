// Package onboarding drives the multi-step flow from email entry to the
// waiting screen: email existence check, password entry or account
// creation, profile completion and the optional personality questionnaire.
package onboarding

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/matchbook-app/matchbook-client/internal/domain"
	"github.com/matchbook-app/matchbook-client/internal/gateway"
	"github.com/matchbook-app/matchbook-client/internal/store"
	"github.com/matchbook-app/matchbook-client/internal/usecase/syncengine"
)

// Machine is the onboarding state machine. It owns the session, drives the
// profile store through the synchronization engine and never advances a
// step on a failed remote call.
type Machine struct {
	mu      sync.Mutex
	session *domain.Session

	gateway gateway.ProfileGateway
	engine  *syncengine.Engine
	store   *store.Store
	logger  *zap.Logger
}

// NewMachine creates a machine at the unauthenticated step.
func NewMachine(gw gateway.ProfileGateway, engine *syncengine.Engine, st *store.Store, logger *zap.Logger) *Machine {
	return &Machine{
		session: domain.NewSession(),
		gateway: gw,
		engine:  engine,
		store:   st,
		logger:  logger,
	}
}

// Step returns the current onboarding step.
func (m *Machine) Step() domain.Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Step
}

// Session returns a copy of the current session.
func (m *Machine) Session() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.session
}

// Profile returns a clone of the current profile, or nil when signed out.
func (m *Machine) Profile() *domain.Profile {
	p, _ := m.store.Get()
	return p
}

// SubmitEmail runs the account-existence check and moves to the matching
// password step. Re-submitting from a password step re-runs the check:
// account existence can change underneath us between steps. On a failed
// check the step is left unchanged and the operation is safely retryable.
func (m *Machine) SubmitEmail(ctx context.Context, email string) error {
	if errs := validateEmail(email); errs != nil {
		return errs
	}

	m.mu.Lock()
	prev := m.session.Step
	switch prev {
	case domain.StepUnauthenticated, domain.StepEmailSubmitted,
		domain.StepNewAccountPassword, domain.StepExistingAccountPassword:
		// allowed
	default:
		m.mu.Unlock()
		return domain.ValidationErrors{"email": "Already signed in"}
	}
	m.session.Step = domain.StepEmailSubmitted
	m.mu.Unlock()

	exists, err := m.gateway.CheckEmail(ctx, email)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.session.Step = prev
		return err
	}

	m.session.Email = email
	m.session.IsNewAccount = !exists
	if exists {
		m.session.Step = domain.StepExistingAccountPassword
	} else {
		m.session.Step = domain.StepNewAccountPassword
	}
	m.logger.Info("email check completed",
		zap.String("email", email),
		zap.Bool("exists", exists))
	return nil
}

// SubmitPassword signs in, or creates the account first for a new email.
// On success the returned profile snapshot is adopted; completeness decides
// whether onboarding is already done.
func (m *Machine) SubmitPassword(ctx context.Context, password, confirm string) error {
	m.mu.Lock()
	if !m.session.Step.AwaitingPassword() {
		m.mu.Unlock()
		return domain.ValidationErrors{"password": "Submit your email first"}
	}
	email := m.session.Email
	isNew := m.session.IsNewAccount
	m.mu.Unlock()

	if errs := validatePassword(password, confirm, isNew); errs != nil {
		return errs
	}

	result, err := m.gateway.SignIn(ctx, email, password, isNew)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRejected) {
			m.mu.Lock()
			m.session.Reset()
			m.mu.Unlock()
			m.logger.Warn("credentials rejected", zap.String("email", email))
		}
		return err
	}

	profile := result.Profile
	if profile.Email == "" {
		profile.Email = email
	}
	if err := m.engine.Adopt(ctx, profile); err != nil {
		m.logger.Warn("failed to mirror profile after sign-in", zap.Error(err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if profile.IsComplete() {
		m.session.Step = domain.StepAuthenticated
	} else {
		m.session.Step = domain.StepProfileIncomplete
	}
	m.logger.Info("signed in",
		zap.String("email", email),
		zap.Bool("new_account", isNew),
		zap.Bool("complete_profile", profile.IsComplete()))
	return nil
}

// SubmitProfile validates the full onboarding form, persists the profile
// remotely and moves to the optional personality step. Validation failures
// return the field→message map without touching the network.
func (m *Machine) SubmitProfile(ctx context.Context, in *ProfileInput) error {
	m.mu.Lock()
	if m.session.Step != domain.StepProfileIncomplete {
		m.mu.Unlock()
		return domain.ValidationErrors{"form": "Profile submission is not available at this step"}
	}
	m.mu.Unlock()

	if errs := validateProfileInput(in); errs != nil {
		return errs
	}

	patch := inputToPatch(in)
	if _, err := m.engine.Update(ctx, patch); err != nil {
		return err
	}

	m.mu.Lock()
	m.session.Step = domain.StepPersonalityOptional
	m.mu.Unlock()
	return nil
}

// SubmitPersonality stores the questionnaire answers and finishes
// onboarding. Advancing only happens once the remote write succeeds.
func (m *Machine) SubmitPersonality(ctx context.Context, answers map[string]string, idealPartner string) error {
	m.mu.Lock()
	if m.session.Step != domain.StepPersonalityOptional {
		m.mu.Unlock()
		return domain.ValidationErrors{"form": "Personality submission is not available at this step"}
	}
	m.mu.Unlock()

	profile, _ := m.store.Get()
	if profile == nil {
		return domain.ErrNoProfile
	}

	stored, err := m.gateway.UpdatePersonality(ctx, profile.ID, answers, idealPartner)
	if err != nil {
		return err
	}
	if err := m.engine.Adopt(ctx, stored); err != nil {
		m.logger.Warn("failed to mirror personality update", zap.Error(err))
	}

	m.mu.Lock()
	m.session.Step = domain.StepAuthenticated
	m.mu.Unlock()
	return nil
}

// SkipPersonality finishes onboarding without answers. The questionnaire
// is optional.
func (m *Machine) SkipPersonality() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Step != domain.StepPersonalityOptional {
		return domain.ValidationErrors{"form": "Personality submission is not available at this step"}
	}
	m.session.Step = domain.StepAuthenticated
	return nil
}

// EditEmail returns to the email screen. Any password already entered is
// discarded along with the account-novelty flag.
func (m *Machine) EditEmail() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Reset()
}

// SignOut clears the session, the stored credential, the store and the
// local cache entry and returns to the unauthenticated step. Valid from
// any step.
func (m *Machine) SignOut(ctx context.Context) error {
	m.mu.Lock()
	m.session.Reset()
	m.mu.Unlock()

	m.gateway.ClearCredentials()
	if err := m.engine.Logout(ctx); err != nil {
		return err
	}
	m.logger.Info("signed out")
	return nil
}

func inputToPatch(in *ProfileInput) *domain.ProfilePatch {
	return &domain.ProfilePatch{
		Name:              &in.Name,
		Age:               &in.Age,
		Gender:            &in.Gender,
		LookingFor:        &in.LookingFor,
		Location:          &in.Location,
		Occupation:        &in.Occupation,
		Education:         &in.Education,
		Bio:               &in.Bio,
		RelationshipGoals: &in.RelationshipGoals,
		Smoking:           &in.Smoking,
		Drinking:          &in.Drinking,
		Interests:         &in.Interests,
		Hobbies:           &in.Hobbies,
		Languages:         &in.Languages,
		FirstDateIdeas:    &in.FirstDateIdeas,
		Photos:            &in.Photos,
	}
}
