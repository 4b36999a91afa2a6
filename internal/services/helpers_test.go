package services

import (
	"testing"
	"time"

	"github.com/epeers/investdash/internal/metrics"
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/repository"
	"github.com/epeers/investdash/internal/state"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestStore returns a store seeded the way main seeds a fresh process.
func newTestStore(t *testing.T) (*state.Store, *repository.ReferenceRepository) {
	t.Helper()
	ref := repository.NewReferenceRepository()
	store := state.NewStore(state.AppState{
		Session:    models.NewUserSession(),
		Navigation: models.NavigationState{ActiveView: models.ViewLogin},
		Holdings:   ref.InitialHoldings(),
		Forms:      models.FormState{LoginUsername: models.DefaultLoginUsername},
	})
	return store, ref
}

func newTestMetrics() *metrics.Metrics {
	return metrics.New()
}

func makePremium(store *state.Store, expiry time.Time) {
	_ = store.Update(func(st *state.AppState, em *state.Emitter) error {
		st.Session.IsPremium = true
		st.Session.PremiumExpiry = &expiry
		return nil
	})
}

func forceView(store *state.Store, v models.View) {
	_ = store.Update(func(st *state.AppState, em *state.Emitter) error {
		st.Navigation.ActiveView = v
		return nil
	})
}
