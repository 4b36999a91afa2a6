package services

import (
	"context"
	"errors"
	"testing"

	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
	"github.com/epeers/investdash/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(t *testing.T) (*SessionService, *state.Store) {
	t.Helper()
	store, ref := newTestStore(t)
	return NewSessionService(store, NewRiskService(ref), fixedClock(testNow)), store
}

func TestSessionService_Login(t *testing.T) {
	svc, store := newTestSessionService(t)

	profile, err := svc.Login(context.Background(), models.LoginRequest{Username: "budi", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "budi", profile.DisplayName)
	assert.Equal(t, models.StatusFreeUser, profile.Status)

	snap := store.Snapshot()
	assert.Equal(t, models.ViewDashboard, snap.Navigation.ActiveView)
	assert.Equal(t, "budi", snap.Session.DisplayName)
}

func TestSessionService_LoginEmptyUsername(t *testing.T) {
	svc, _ := newTestSessionService(t)

	profile, err := svc.Login(context.Background(), models.LoginRequest{Username: "  "})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUsername, profile.DisplayName)
}

func TestSessionService_RegisterPasswordMismatch(t *testing.T) {
	svc, store := newTestSessionService(t)

	err := svc.Register(context.Background(), models.RegisterRequest{Username: "sari", Password: "a", ConfirmPassword: "b"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "confirm_password", verr.Field)
	assert.Equal(t, models.ViewLogin, store.Snapshot().Navigation.ActiveView)
}

func TestSessionService_FullRegistration(t *testing.T) {
	svc, store := newTestSessionService(t)

	err := svc.Register(context.Background(), models.RegisterRequest{Username: "sari", Password: "p", ConfirmPassword: "p"})
	require.NoError(t, err)
	assert.Equal(t, models.ViewRiskAssessment, store.Snapshot().Navigation.ActiveView)

	_, err = svc.SetRiskAnswers(context.Background(), uniformAnswers(10, 4))
	require.NoError(t, err)
	answers, err := svc.SetRiskAnswers(context.Background(), models.RiskAnswers{0: 5, 1: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, answers[0])
	assert.Equal(t, 4, answers[9])

	assessment, err := svc.CompleteRegistration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, assessment.Total)
	assert.Equal(t, models.RiskAggressive, assessment.Tier)

	snap := store.Snapshot()
	assert.Equal(t, "sari", snap.Session.DisplayName)
	assert.Equal(t, models.RiskAggressive, snap.Session.RiskProfile)
	assert.Equal(t, models.DefaultAvatar, snap.Session.AvatarURL)
	assert.Equal(t, models.ViewDashboard, snap.Navigation.ActiveView)
	assert.Empty(t, snap.Forms.RegisterUsername)
	assert.Empty(t, snap.Forms.RiskAnswers)
}

func TestSessionService_CompleteRegistrationDefaults(t *testing.T) {
	svc, store := newTestSessionService(t)
	forceView(store, models.ViewRiskAssessment)
	ctx, wc := NewWarningContext(context.Background())

	assessment, err := svc.CompleteRegistration(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, assessment.Total)
	assert.Equal(t, models.RiskVeryConservative, assessment.Tier)
	assert.Len(t, assessment.Unanswered, 10)
	assert.Len(t, wc.GetWarnings(), 1)
	assert.Equal(t, models.DefaultNewUsername, store.Snapshot().Session.DisplayName)
}

func TestSessionService_SetRiskAnswersRejectsBadWeight(t *testing.T) {
	svc, store := newTestSessionService(t)

	_, err := svc.SetRiskAnswers(context.Background(), models.RiskAnswers{0: 3, 1: 9})
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	assert.Empty(t, store.Snapshot().Forms.RiskAnswers, "no partial update")
}

func TestSessionService_LogoutKeepsPortfolio(t *testing.T) {
	svc, store := newTestSessionService(t)
	ref := repository.NewReferenceRepository()
	portfolio := NewPortfolioService(store, ref, newTestMetrics())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "budi"})
	require.NoError(t, err)
	_, err = portfolio.Remove(context.Background(), 0)
	require.NoError(t, err)
	require.NoError(t, svc.Register(context.Background(), models.RegisterRequest{Username: "budi2", Password: "p", ConfirmPassword: "p"}))
	_, err = svc.SetRiskAnswers(context.Background(), models.RiskAnswers{0: 2})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))

	snap := store.Snapshot()
	assert.Equal(t, models.ViewLogin, snap.Navigation.ActiveView)
	assert.Empty(t, snap.Forms.LoginUsername)
	assert.Empty(t, snap.Forms.RegisterUsername)
	assert.Empty(t, snap.Forms.RiskAnswers)
	assert.Len(t, snap.Holdings, 2)
}

func TestSessionService_RegistrationPhaseTwoNeedsQuestionnaire(t *testing.T) {
	svc, store := newTestSessionService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice"})
	require.NoError(t, err)
	_ = store.Update(func(st *state.AppState, em *state.Emitter) error {
		st.Session.RiskProfile = models.RiskAggressive
		return nil
	})

	_, err = svc.SetRiskAnswers(context.Background(), models.RiskAnswers{0: 1})
	assert.ErrorIs(t, err, ErrNotRegistering)

	assessment, err := svc.CompleteRegistration(context.Background())
	assert.ErrorIs(t, err, ErrNotRegistering)
	assert.Nil(t, assessment)

	snap := store.Snapshot()
	assert.Equal(t, "alice", snap.Session.DisplayName)
	assert.Equal(t, models.RiskAggressive, snap.Session.RiskProfile)
	assert.Equal(t, models.ViewDashboard, snap.Navigation.ActiveView)
	assert.Empty(t, snap.Forms.RiskAnswers)
}

func TestSessionService_UpdateProfile(t *testing.T) {
	svc, _ := newTestSessionService(t)

	p, err := svc.UpdateProfile(context.Background(), models.UpdateProfileRequest{DisplayName: "Ani", AvatarURL: "https://example.com/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "Ani", p.DisplayName)
	assert.Equal(t, "https://example.com/a.png", p.AvatarURL)

	p, err = svc.UpdateProfile(context.Background(), models.UpdateProfileRequest{DisplayName: "Ani"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAvatar, p.AvatarURL)

	_, err = svc.UpdateProfile(context.Background(), models.UpdateProfileRequest{DisplayName: " "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSessionService_ChangePassword(t *testing.T) {
	svc, _ := newTestSessionService(t)

	testCases := []struct {
		name  string
		req   models.ChangePasswordRequest
		field string
	}{
		{"mismatch checked first", models.ChangePasswordRequest{NewPassword: "a", ConfirmNewPassword: "b"}, "confirm_new_password"},
		{"missing old", models.ChangePasswordRequest{NewPassword: "a", ConfirmNewPassword: "a"}, "old_password"},
		{"missing new", models.ChangePasswordRequest{OldPassword: "o"}, "new_password"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ChangePassword(context.Background(), tc.req)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	assert.NoError(t, svc.ChangePassword(context.Background(), models.ChangePasswordRequest{
		OldPassword: "o", NewPassword: "n", ConfirmNewPassword: "n",
	}))
}

func TestSessionService_ProfileReflectsEntitlement(t *testing.T) {
	svc, store := newTestSessionService(t)
	makePremium(store, testNow.AddDate(0, 1, 0))

	p := svc.Profile()
	assert.True(t, p.IsPremium)
	assert.Equal(t, models.StatusPremiumUser, p.Status)
	require.NotNil(t, p.PremiumExpiry)
}
