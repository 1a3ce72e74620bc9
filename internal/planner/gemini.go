package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiConfig holds settings for the Gemini-backed planner.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Gemini generates paths and chat replies through the Google Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini planner.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

func (g *Gemini) ProposeTasks(ctx context.Context, req ProposeRequest) ([]ProposedTask, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: buildProposePrompt(req)}},
	}}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	raw := json.RawMessage(stripCodeFences(result.Text()))
	return ParseTasks(raw, req.Bundle.Category)
}

func (g *Gemini) Chat(ctx context.Context, req ChatRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: buildChatSystemPrompt(req)}},
		},
	}

	contents := buildGeminiContents(req.History)

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", mapGeminiError(err)
	}

	reply := result.Text()
	if strings.TrimSpace(reply) == "" {
		return "", &ErrUnavailable{Err: errors.New("empty model reply")}
	}
	return reply, nil
}

func buildGeminiContents(history []ChatMessage) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == "model" || m.Role == "assistant" {
			role = "model"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	if len(out) == 0 {
		out = append(out, &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{{Text: "Hello!"}},
		})
	}
	return out
}

// stripCodeFences tolerates models that wrap JSON in a markdown block
// despite the JSON response MIME type.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// mapGeminiError wraps transport and API failures so callers can fall
// back without inspecting SDK error types.
func mapGeminiError(err error) error {
	return &ErrUnavailable{Err: err}
}
