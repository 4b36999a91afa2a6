package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	DefaultUsername      = "Pengguna"
	DefaultNewUsername   = "Pengguna Baru"
	DefaultAvatar        = "https://picsum.photos/seed/avatar/40/40"
	DefaultLoginUsername = "investor_demo"
	StatusFreeUser       = "Free User"
	StatusPremiumUser    = "Premium User"
)

// UserSession is the single signed-in user of the process. It is never persisted.
type UserSession struct {
	DisplayName   string     `json:"display_name"`
	AvatarURL     string     `json:"avatar_url"`
	RiskProfile   RiskTier   `json:"risk_profile"`
	IsPremium     bool       `json:"is_premium"`
	PremiumExpiry *time.Time `json:"premium_expiry,omitempty"`
}

// NewUserSession returns the session a fresh process starts with.
func NewUserSession() UserSession {
	return UserSession{
		DisplayName: DefaultUsername,
		AvatarURL:   DefaultAvatar,
		RiskProfile: DefaultRiskTier,
	}
}

// HasEntitlement reports whether premium features are unlocked at now.
// A premium flag without an expiry never lapses.
func (u UserSession) HasEntitlement(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	return u.PremiumExpiry == nil || now.Before(*u.PremiumExpiry)
}

// Status is the membership label shown under the user's name.
func (u UserSession) Status(now time.Time) string {
	if u.HasEntitlement(now) {
		return StatusPremiumUser
	}
	return StatusFreeUser
}

// PlanType is a subscription plan.
type PlanType string

const (
	PlanMonthly PlanType = "monthly"
	PlanYearly  PlanType = "yearly"
)

func (p *PlanType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch PlanType(s) {
	case PlanMonthly, PlanYearly:
		*p = PlanType(s)
		return nil
	}
	return fmt.Errorf("unknown plan %q", s)
}

// FormState holds session-scoped form fields cleared on logout.
type FormState struct {
	LoginUsername    string      `json:"login_username"`
	RegisterUsername string      `json:"register_username"`
	RiskAnswers      RiskAnswers `json:"risk_answers"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents the request body for the credentials phase of registration
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RiskAnswersRequest represents the request body for recording questionnaire answers
type RiskAnswersRequest struct {
	Answers RiskAnswers `json:"answers" binding:"required"`
}

// UpdateProfileRequest represents the request body for editing the profile
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	AvatarURL   string `json:"avatar_url"`
}

// ChangePasswordRequest represents the request body for a password change
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

// SubscribeRequest represents the request body for a subscription purchase.
// PaymentMethod is accepted and ignored.
type SubscribeRequest struct {
	Plan          PlanType `json:"plan" binding:"required"`
	PaymentMethod string   `json:"payment_method"`
}

// ProfileResponse is the user card shown in the sidebar and settings.
type ProfileResponse struct {
	DisplayName   string     `json:"display_name"`
	AvatarURL     string     `json:"avatar_url"`
	RiskProfile   RiskTier   `json:"risk_profile"`
	RiskLabel     string     `json:"risk_label"`
	IsPremium     bool       `json:"is_premium"`
	Status        string     `json:"status"`
	PremiumExpiry *time.Time `json:"premium_expiry,omitempty"`
}
