package models

// EventKind names what part of the application state changed.
type EventKind string

const (
	EventNavigation    EventKind = "navigation"
	EventSession       EventKind = "session"
	EventPortfolio     EventKind = "portfolio"
	EventUpgradePrompt EventKind = "upgrade_prompt"
	EventSlot          EventKind = "slot"
	EventChat          EventKind = "chat"
	EventNews          EventKind = "news"
	EventForms         EventKind = "forms"
)

// Event is a change notification emitted by the state container.
type Event struct {
	Seq     uint64    `json:"seq"`
	Kind    EventKind `json:"kind"`
	Payload any       `json:"payload,omitempty"`
}
