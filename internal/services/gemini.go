package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"google.golang.org/api/option"
)

const (
	geminiModel       = "gemini-2.5-flash"
	geminiTemperature = 0.8
)

// GeminiService is the production Generator backed by the Gemini API.
type GeminiService struct {
	client *genai.Client
}

func NewGeminiService(ctx context.Context, apiKey string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{client: client}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// GenerateReply sends the conversation to Gemini as a chat, with the
// final content entry as the outgoing message and everything before it
// as history. Single attempt, no retry.
func (s *GeminiService) GenerateReply(ctx context.Context, systemPrompt string, contents []*genai.Content) (string, error) {
	if len(contents) == 0 {
		return "", fmt.Errorf("empty content sequence")
	}

	model := s.client.GenerativeModel(geminiModel)
	model.SetTemperature(geminiTemperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	last := contents[len(contents)-1]
	cs := model.StartChat()
	cs.History = contents[:len(contents)-1]

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
