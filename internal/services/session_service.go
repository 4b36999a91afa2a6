package services

import (
	"context"
	"strings"
	"time"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/state"
	log "github.com/sirupsen/logrus"
)

// SessionService handles login, registration and the settings screen.
// Credentials are never checked or stored.
type SessionService struct {
	store *state.Store
	risk  *RiskService
	now   Clock
}

// NewSessionService creates a new SessionService
func NewSessionService(store *state.Store, risk *RiskService, now Clock) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{store: store, risk: risk, now: now}
}

// Login signs the user in under username and opens the dashboard.
func (s *SessionService) Login(ctx context.Context, req models.LoginRequest) (*models.ProfileResponse, error) {
	name := strings.TrimSpace(req.Username)
	if name == "" {
		name = models.DefaultUsername
	}

	var profile models.ProfileResponse
	err := s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		st.Forms.LoginUsername = req.Username
		st.Session.DisplayName = name
		em.Emit(models.EventSession, state.CopySession(st.Session))
		showView(st, em, models.ViewDashboard)
		profile = s.profileOf(st.Session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Infof("User %q logged in", name)
	return &profile, nil
}

// Register is the credentials phase of registration. The username is kept
// as a draft and the risk questionnaire opens.
func (s *SessionService) Register(ctx context.Context, req models.RegisterRequest) error {
	if req.Password != req.ConfirmPassword {
		return invalid("confirm_password", "password and confirmation do not match")
	}
	return s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		st.Forms.RegisterUsername = strings.TrimSpace(req.Username)
		em.Emit(models.EventForms, state.CopyForms(st.Forms))
		showView(st, em, models.ViewRiskAssessment)
		return nil
	})
}

// SetRiskAnswers records questionnaire answers, replacing earlier answers to the same questions.
func (s *SessionService) SetRiskAnswers(ctx context.Context, answers models.RiskAnswers) (models.RiskAnswers, error) {
	if err := s.risk.ValidateAnswers(answers); err != nil {
		return nil, err
	}
	var out models.RiskAnswers
	err := s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		if st.Navigation.ActiveView != models.ViewRiskAssessment {
			return ErrNotRegistering
		}
		if st.Forms.RiskAnswers == nil {
			st.Forms.RiskAnswers = models.RiskAnswers{}
		}
		for idx, w := range answers {
			st.Forms.RiskAnswers[idx] = w
		}
		f := state.CopyForms(st.Forms)
		em.Emit(models.EventForms, f)
		out = f.RiskAnswers
		return nil
	})
	return out, err
}

// CompleteRegistration scores the questionnaire, signs the new user in and
// opens the dashboard. The registration drafts are cleared. It only runs
// while the risk questionnaire is the active screen.
func (s *SessionService) CompleteRegistration(ctx context.Context) (*models.RiskAssessment, error) {
	var answers models.RiskAnswers
	var registering bool
	s.store.View(func(st *state.AppState) {
		registering = st.Navigation.ActiveView == models.ViewRiskAssessment
		answers = state.CopyForms(st.Forms).RiskAnswers
	})
	if !registering {
		return nil, ErrNotRegistering
	}

	assessment, err := s.risk.Evaluate(ctx, answers)
	if err != nil {
		return nil, err
	}

	var name string
	err = s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		if st.Navigation.ActiveView != models.ViewRiskAssessment {
			return ErrNotRegistering
		}
		name = st.Forms.RegisterUsername
		if name == "" {
			name = models.DefaultNewUsername
		}
		st.Session.DisplayName = name
		st.Session.RiskProfile = assessment.Tier
		st.Session.AvatarURL = models.DefaultAvatar
		em.Emit(models.EventSession, state.CopySession(st.Session))

		st.Forms.RegisterUsername = ""
		st.Forms.RiskAnswers = models.RiskAnswers{}
		em.Emit(models.EventForms, state.CopyForms(st.Forms))

		showView(st, em, models.ViewDashboard)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Registered %q with risk profile %s (score %d)", name, assessment.Tier, assessment.Total)
	return assessment, nil
}

// Logout returns to the login screen and clears the form fields. The
// portfolio and the subscription survive.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		st.Forms = models.FormState{RiskAnswers: models.RiskAnswers{}}
		em.Emit(models.EventForms, state.CopyForms(st.Forms))
		showView(st, em, models.ViewLogin)
		return nil
	})
}

// Profile returns the user card
func (s *SessionService) Profile() models.ProfileResponse {
	var p models.ProfileResponse
	s.store.View(func(st *state.AppState) {
		p = s.profileOf(st.Session)
	})
	return p
}

// UpdateProfile changes the display name and avatar. An empty avatar resets to the default one.
func (s *SessionService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, invalid("display_name", "is required")
	}
	avatar := strings.TrimSpace(req.AvatarURL)
	if avatar == "" {
		avatar = models.DefaultAvatar
	}

	var p models.ProfileResponse
	err := s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		st.Session.DisplayName = name
		st.Session.AvatarURL = avatar
		em.Emit(models.EventSession, state.CopySession(st.Session))
		p = s.profileOf(st.Session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ChangePassword validates a password change. Nothing is stored.
func (s *SessionService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmNewPassword {
		return invalid("confirm_new_password", "new password and confirmation do not match")
	}
	if req.OldPassword == "" {
		return invalid("old_password", "is required")
	}
	if req.NewPassword == "" {
		return invalid("new_password", "is required")
	}
	log.Info("Password change accepted (simulated)")
	return nil
}

func (s *SessionService) profileOf(u models.UserSession) models.ProfileResponse {
	now := s.now()
	p := models.ProfileResponse{
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		RiskProfile: u.RiskProfile,
		RiskLabel:   u.RiskProfile.Label(),
		IsPremium:   u.HasEntitlement(now),
		Status:      u.Status(now),
	}
	if u.PremiumExpiry != nil {
		t := *u.PremiumExpiry
		p.PremiumExpiry = &t
	}
	return p
}
