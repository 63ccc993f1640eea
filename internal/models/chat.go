package models

import "encoding/json"

// ChatMessage represents a single turn of client-supplied conversation
// history.
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// GenerateRequest is the payload sent to the generate endpoint.
// History is a pointer so that an absent field is distinguishable from
// an empty conversation: a brand-new chat sends [], which is valid.
// Scenario is accepted for forward compatibility but unused.
type GenerateRequest struct {
	UserQuery    string          `json:"userQuery" validate:"required"`
	SystemPrompt string          `json:"systemPrompt" validate:"required"`
	Scenario     json.RawMessage `json:"scenario,omitempty"`
	History      *[]ChatMessage  `json:"history" validate:"required"`
}

// GenerateResponse is the reply relayed back from the AI.
type GenerateResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the flat error body every failure path returns.
type ErrorResponse struct {
	Error string `json:"error"`
}
