package models

import "time"

// Slot names a display area that receives asynchronous results.
type Slot string

const (
	SlotPortfolioAnalysis Slot = "portfolio_analysis"
	SlotAnalysis          Slot = "analysis"
	SlotDeepDive          Slot = "deep_dive"
)

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	switch s {
	case SlotPortfolioAnalysis, SlotAnalysis, SlotDeepDive:
		return true
	}
	return false
}

// SlotResult is what a finished asynchronous request shows in its slot.
// Exactly one of HTML/Error is meaningful; Document carries the structured form
// of HTML and Text the same content without markup.
type SlotResult struct {
	Title    string          `json:"title,omitempty"`
	HTML     string          `json:"html,omitempty"`
	Text     string          `json:"text,omitempty"`
	Document any             `json:"document,omitempty"`
	Analysis *AnalysisResult `json:"analysis,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// SlotState is the current display state of a slot.
type SlotState struct {
	Slot      Slot        `json:"slot"`
	Token     uint64      `json:"token"`
	Loading   bool        `json:"loading"`
	Result    *SlotResult `json:"result,omitempty"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// AnalysisAction is the simulated model's recommendation.
type AnalysisAction string

const (
	ActionBuy  AnalysisAction = "Beli"
	ActionSell AnalysisAction = "Jual"
)

// AnalysisResult is the output of a simulated model run.
type AnalysisResult struct {
	ModelID    string         `json:"model_id"`
	ModelName  string         `json:"model_name"`
	AssetClass AssetClass     `json:"asset_class"`
	Code       string         `json:"code"`
	LastPrice  float64        `json:"last_price"`
	Prediction float64        `json:"prediction"`
	Action     AnalysisAction `json:"action"`
	Accuracy   string         `json:"accuracy"`
}

// RunAnalysisRequest represents the request body for a simulated model run
type RunAnalysisRequest struct {
	AssetClass string `json:"asset_class" binding:"required"`
	Code       string `json:"code" binding:"required"`
	ModelID    string `json:"model_id" binding:"required"`
}

// DeepDiveRequest represents the request body for an AI deep dive following a model run
type DeepDiveRequest struct {
	Code    string `json:"code" binding:"required"`
	ModelID string `json:"model_id" binding:"required"`
}

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatMessage is one entry of the AskAI conversation.
type ChatMessage struct {
	ID      string `json:"id"`
	Sender  Sender `json:"sender"`
	Text    string `json:"text"`
	IsHTML  bool   `json:"is_html"`
	Pending bool   `json:"pending,omitempty"`
}

// AskRequest represents the request body for an AskAI question
type AskRequest struct {
	Question string `json:"question"`
}

// StartedResponse acknowledges an asynchronous request.
type StartedResponse struct {
	Slot  Slot   `json:"slot,omitempty"`
	Token uint64 `json:"token,omitempty"`
	ID    string `json:"id,omitempty"`
}
