package services

import (
	"context"
	"time"

	"github.com/epeers/investdash/internal/metrics"
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/state"
	"github.com/epeers/investdash/internal/util"
	log "github.com/sirupsen/logrus"
)

// SubscriptionResult is the outcome of a simulated purchase.
type SubscriptionResult struct {
	Plan       models.PlanType        `json:"plan"`
	Expiry     time.Time              `json:"premium_expiry"`
	Resumed    bool                   `json:"resumed"`
	Navigation models.NavigationState `json:"navigation"`
}

// SubscriptionService grants premium entitlement
type SubscriptionService struct {
	store   *state.Store
	now     Clock
	metrics *metrics.Metrics
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(store *state.Store, now Clock, m *metrics.Metrics) *SubscriptionService {
	if now == nil {
		now = time.Now
	}
	return &SubscriptionService{store: store, now: now, metrics: m}
}

// Subscribe records a purchase of plan. No payment is taken. The upgrade
// prompt closes and a view that was refused for lack of entitlement opens.
func (s *SubscriptionService) Subscribe(ctx context.Context, plan models.PlanType) (*SubscriptionResult, error) {
	expiry, err := util.PlanExpiry(plan, s.now())
	if err != nil {
		return nil, ErrInvalidPlan
	}

	res := &SubscriptionResult{Plan: plan, Expiry: expiry}
	err = s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		st.Session.IsPremium = true
		st.Session.PremiumExpiry = &expiry
		em.Emit(models.EventSession, state.CopySession(st.Session))

		if st.UpgradePromptOpen {
			st.UpgradePromptOpen = false
			em.Emit(models.EventUpgradePrompt, false)
		}

		if next, ok := Resume(st.Navigation); ok {
			st.Navigation.PendingGatedView = nil
			showView(st, em, next.ActiveView)
			res.Resumed = true
		}
		res.Navigation = state.CopyNavigation(st.Navigation)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Subscriptions.WithLabelValues(string(plan)).Inc()
	log.Infof("Subscribed to %s plan, premium until %s (resumed=%v)", plan, expiry.Format(time.RFC3339), res.Resumed)
	return res, nil
}
