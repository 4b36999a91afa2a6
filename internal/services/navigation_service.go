package services

import (
	"context"
	"time"

	"github.com/epeers/investdash/internal/metrics"
	"github.com/epeers/investdash/internal/models"
	"github.com/epeers/investdash/internal/state"
	log "github.com/sirupsen/logrus"
)

// Transition applies a navigation request to nav. A premium target without
// entitlement leaves the active view alone and records the target as pending;
// gated reports that case.
func Transition(nav models.NavigationState, target models.View, entitled bool) (next models.NavigationState, gated bool, err error) {
	if !target.Valid() {
		return nav, false, ErrUnknownView
	}
	if target.Premium() && !entitled {
		pending := target
		return models.NavigationState{ActiveView: nav.ActiveView, PendingGatedView: &pending}, true, nil
	}
	return models.NavigationState{ActiveView: target, PendingGatedView: nav.PendingGatedView}, false, nil
}

// Resume consumes a pending gated view once entitlement has been granted.
func Resume(nav models.NavigationState) (models.NavigationState, bool) {
	if nav.PendingGatedView == nil {
		return nav, false
	}
	return models.NavigationState{ActiveView: *nav.PendingGatedView}, true
}

// showView makes v the active screen. Changing screens always closes an open news article.
func showView(st *state.AppState, em *state.Emitter, v models.View) {
	st.Navigation.ActiveView = v
	em.Emit(models.EventNavigation, state.CopyNavigation(st.Navigation))
	if st.SelectedArticle != nil {
		st.SelectedArticle = nil
		em.Emit(models.EventNews, nil)
	}
}

// gateView records v as waiting for entitlement and opens the upgrade prompt.
func gateView(st *state.AppState, em *state.Emitter, v models.View) {
	pending := v
	st.Navigation.PendingGatedView = &pending
	em.Emit(models.EventNavigation, state.CopyNavigation(st.Navigation))
	if !st.UpgradePromptOpen {
		st.UpgradePromptOpen = true
		em.Emit(models.EventUpgradePrompt, true)
	}
}

// NavigationService moves the dashboard between screens
type NavigationService struct {
	store   *state.Store
	now     Clock
	metrics *metrics.Metrics
}

// NewNavigationService creates a new NavigationService
func NewNavigationService(store *state.Store, now Clock, m *metrics.Metrics) *NavigationService {
	if now == nil {
		now = time.Now
	}
	return &NavigationService{store: store, now: now, metrics: m}
}

// Navigate switches to target, or opens the upgrade prompt when target is
// premium and the user has no active entitlement.
func (s *NavigationService) Navigate(ctx context.Context, target models.View) (*models.NavigateResponse, error) {
	resp := &models.NavigateResponse{}
	err := s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		now := s.now()
		entitled := st.Session.HasEntitlement(now)
		if st.Session.IsPremium && !entitled && target.Premium() {
			AddWarning(ctx, models.WarnEntitlementExpired, "premium access expired at %s", st.Session.PremiumExpiry.Format(time.RFC3339))
		}

		next, gated, err := Transition(st.Navigation, target, entitled)
		if err != nil {
			return err
		}
		if gated {
			gateView(st, em, target)
		} else {
			st.Navigation.PendingGatedView = next.PendingGatedView
			showView(st, em, next.ActiveView)
		}
		resp.UpgradeRequired = gated
		resp.Navigation = state.CopyNavigation(st.Navigation)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.UpgradeRequired {
		s.metrics.GatedNavigation.WithLabelValues(target.String()).Inc()
		log.Infof("Navigation to %s gated, upgrade prompt opened", target)
	} else {
		log.Debugf("Navigated to %s", target)
	}
	return resp, nil
}

// DismissUpgrade closes the upgrade prompt and forgets any pending gated view.
func (s *NavigationService) DismissUpgrade(ctx context.Context) models.NavigationState {
	var nav models.NavigationState
	_ = s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		if st.UpgradePromptOpen {
			st.UpgradePromptOpen = false
			em.Emit(models.EventUpgradePrompt, false)
		}
		if st.Navigation.PendingGatedView != nil {
			st.Navigation.PendingGatedView = nil
			em.Emit(models.EventNavigation, state.CopyNavigation(st.Navigation))
		}
		nav = state.CopyNavigation(st.Navigation)
		return nil
	})
	return nav
}

// RequirePremium returns nil when the user may use view. Otherwise it gates
// view like a refused navigation would and returns a *PremiumRequiredError.
func (s *NavigationService) RequirePremium(ctx context.Context, view models.View) (*models.NavigationState, error) {
	var gated bool
	var nav models.NavigationState
	_ = s.store.Update(func(st *state.AppState, em *state.Emitter) error {
		if st.Session.HasEntitlement(s.now()) {
			return nil
		}
		gated = true
		gateView(st, em, view)
		nav = state.CopyNavigation(st.Navigation)
		return nil
	})
	if !gated {
		return nil, nil
	}
	s.metrics.GatedNavigation.WithLabelValues(view.String()).Inc()
	return &nav, &PremiumRequiredError{PendingView: view}
}

// Entitled reports whether premium features are currently unlocked.
func (s *NavigationService) Entitled() bool {
	var ok bool
	s.store.View(func(st *state.AppState) {
		ok = st.Session.HasEntitlement(s.now())
	})
	return ok
}

// Current returns the navigation state and the menu. Premium screens are
// locked while the user has no active entitlement.
func (s *NavigationService) Current() models.NavigationOverview {
	var out models.NavigationOverview
	s.store.View(func(st *state.AppState) {
		entitled := st.Session.HasEntitlement(s.now())
		out.Navigation = state.CopyNavigation(st.Navigation)
		for _, v := range models.AllViews() {
			out.Screens = append(out.Screens, models.ScreenInfo{View: v, Premium: v.Premium(), Locked: v.Premium() && !entitled})
		}
	})
	return out
}
