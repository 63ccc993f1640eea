package services

import (
	"context"

	"github.com/google/generative-ai-go/genai"

	"chatrelay-backend/internal/models"
)

// Generator is the single upstream capability the proxy depends on:
// send a conversation, get reply text back. GeminiService implements it
// for production; tests substitute a stub.
type Generator interface {
	GenerateReply(ctx context.Context, systemPrompt string, contents []*genai.Content) (string, error)
}

// GenerateService runs the request core: configuration check, history
// transform, upstream call, empty-reply check. A nil generator means
// the API key was absent at startup.
type GenerateService struct {
	generator Generator
}

func NewGenerateService(generator Generator) *GenerateService {
	return &GenerateService{generator: generator}
}

// Generate produces the reply text for a validated request, or one of
// the typed service errors.
func (s *GenerateService) Generate(ctx context.Context, req models.GenerateRequest) (string, error) {
	if s.generator == nil {
		return "", &NotConfiguredError{}
	}

	var history []models.ChatMessage
	if req.History != nil {
		history = *req.History
	}
	contents := BuildContents(history, req.UserQuery)

	text, err := s.generator.GenerateReply(ctx, req.SystemPrompt, contents)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	if text == "" {
		return "", &EmptyResponseError{}
	}

	return text, nil
}

// BuildContents maps client history into the Gemini content sequence.
// Any role other than "user" collapses to "model", including malformed
// or missing roles. If the mapped sequence is empty or does not already
// end with the current query, the query is appended as a final user
// turn, so a client that echoes its own message as the last history
// item does not produce a duplicate.
func BuildContents(history []models.ChatMessage, userQuery string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		role := "model"
		if msg.Role == "user" {
			role = "user"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}

	if len(contents) == 0 || lastText(contents) != userQuery {
		contents = append(contents, &genai.Content{
			Role:  "user",
			Parts: []genai.Part{genai.Text(userQuery)},
		})
	}

	return contents
}

func lastText(contents []*genai.Content) string {
	last := contents[len(contents)-1]
	for _, part := range last.Parts {
		if t, ok := part.(genai.Text); ok {
			return string(t)
		}
	}
	return ""
}

// Service error types

type NotConfiguredError struct{}

func (e *NotConfiguredError) Error() string { return "Gemini API key not configured" }

type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string { return "Gemini returned empty text" }

// UpstreamError wraps the raw Gemini failure. The wrapped detail is for
// server-side logs only and must never reach a client.
type UpstreamError struct{ Err error }

func (e *UpstreamError) Error() string { return e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }
