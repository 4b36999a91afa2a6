package models

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// UpgradeRequiredResponse is returned when a premium feature is used without entitlement.
type UpgradeRequiredResponse struct {
	Error           string `json:"error"`
	Message         string `json:"message"`
	UpgradeRequired bool   `json:"upgrade_required"`
	PendingView     *View  `json:"pending_view,omitempty"`
}

// WarningsResponse wraps a payload with the non-fatal warnings collected while producing it.
type WarningsResponse struct {
	Data     any       `json:"data"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// DashboardResponse is everything the dashboard screen shows.
type DashboardResponse struct {
	Profile      ProfileResponse   `json:"profile"`
	Summary      PortfolioSummary  `json:"summary"`
	Allocation   []AllocationSlice `json:"allocation"`
	ValueHistory []float64         `json:"value_history"`
	HistoryLabel []string          `json:"history_labels"`
}

// StateSnapshot is a read-only copy of the whole application state.
type StateSnapshot struct {
	Session           UserSession     `json:"session"`
	Navigation        NavigationState `json:"navigation"`
	Holdings          []Holding       `json:"holdings"`
	Forms             FormState       `json:"forms"`
	UpgradePromptOpen bool            `json:"upgrade_prompt_open"`
	SelectedArticle   *int            `json:"selected_article,omitempty"`
	Chat              []ChatMessage   `json:"chat"`
}
