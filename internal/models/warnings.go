package models

// WarningCode categorizes warnings by subsystem.
// W3xxx = validation, W4xxx = async display slots.
type WarningCode string

const (
	WarnUnansweredQuestions WarningCode = "W3001" // risk questions left blank, scored as 0
	WarnEntitlementExpired  WarningCode = "W3002" // premium flag set but expiry has passed
	WarnStaleResultDropped  WarningCode = "W4001" // async result arrived after a newer request
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
