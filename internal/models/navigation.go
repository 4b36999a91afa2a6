package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// View is one screen of the dashboard. The set is closed.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewRiskAssessment
	ViewDashboard
	ViewPortfolio
	ViewNews
	ViewAnalysis
	ViewAskAI
	ViewSettings
)

var viewNames = [...]string{
	ViewLogin:          "login",
	ViewRegister:       "register",
	ViewRiskAssessment: "risk_assessment",
	ViewDashboard:      "dashboard",
	ViewPortfolio:      "portfolio",
	ViewNews:           "news",
	ViewAnalysis:       "analysis",
	ViewAskAI:          "ask_ai",
	ViewSettings:       "settings",
}

// AllViews lists every screen in declaration order.
func AllViews() []View {
	views := make([]View, len(viewNames))
	for i := range viewNames {
		views[i] = View(i)
	}
	return views
}

func (v View) Valid() bool { return v >= ViewLogin && v <= ViewSettings }

// Premium reports whether the screen requires an active entitlement.
func (v View) Premium() bool { return v == ViewAnalysis || v == ViewAskAI }

func (v View) String() string {
	if !v.Valid() {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView resolves a screen name, case-insensitively.
func ParseView(s string) (View, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range viewNames {
		if n == name {
			return View(i), nil
		}
	}
	return 0, fmt.Errorf("unknown view %q", s)
}

func (v View) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *View) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseView(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// NavigationState tracks the active screen and a gated screen waiting for entitlement.
type NavigationState struct {
	ActiveView       View  `json:"active_view"`
	PendingGatedView *View `json:"pending_gated_view,omitempty"`
}

// NavigateRequest represents the request body for a navigation
type NavigateRequest struct {
	View View `json:"view"`
}

// ScreenInfo describes one screen of the menu.
type ScreenInfo struct {
	View    View `json:"view"`
	Premium bool `json:"premium"`
	Locked  bool `json:"locked"`
}

// NavigationOverview is the current navigation state plus the menu.
type NavigationOverview struct {
	Navigation NavigationState `json:"navigation"`
	Screens    []ScreenInfo    `json:"screens"`
}

// NavigateResponse reports the outcome of a navigation.
type NavigateResponse struct {
	Navigation      NavigationState `json:"navigation"`
	UpgradeRequired bool            `json:"upgrade_required"`
}
