package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

/* ─── OpenAI prompt ──────────────────────────────────────────────────── */

const foodSystemPrompt = `You are a nutrition assistant. Identify the food described by the user and return a JSON object with:
- "name" (string, cleaned up title case)
- "unit" (string, the natural serving unit, e.g. "100g", "slice", "cup", "each")
- "calories" (number, kcal for ONE unit)

Always provide your best estimate, even for unfamiliar or vague items. Only return {"error": "unrecognized"} if the input is not food at all.
Return only valid JSON, no explanation.`

/* ─── OpenAI HTTP client ─────────────────────────────────────────────── */

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the request body for the OpenAI chat completions API.
type openAIRequest struct {
	Model          string                 `json:"model"`
	Messages       []openAIMessage        `json:"messages"`
	Temperature    float64                `json:"temperature"`
	ResponseFormat map[string]interface{} `json:"response_format"`
}

// openAIResolver resolves foods through an OpenAI-compatible chat completions
// endpoint. It implements foodResolver.
type openAIResolver struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func newOpenAIResolver(cfg config) *openAIResolver {
	return &openAIResolver{
		baseURL: cfg.OpenAIBaseURL,
		apiKey:  cfg.OpenAIKey,
		model:   cfg.OpenAIModel,
		client:  &http.Client{Timeout: cfg.AITimeout},
	}
}

// callOpenAI sends a chat completions request and returns the raw content string
// from the first choice. Uses raw net/http to avoid pulling in the OpenAI SDK.
// Failures are already classified as *ResolutionError.
func (r *openAIResolver) callOpenAI(ctx context.Context, messages []openAIMessage) (string, error) {
	if r.apiKey == "" {
		return "", newResolutionError(ResolutionUnauthorized, "AI lookup is not configured (missing API key)", nil)
	}

	bodyBytes, err := json.Marshal(openAIRequest{
		Model:       r.model,
		Messages:    messages,
		Temperature: 0,
		ResponseFormat: map[string]interface{}{
			"type": "json_object",
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return "", newResolutionError(ResolutionTimeout, "food lookup timed out", err)
		}
		return "", newResolutionError(ResolutionUnreachable, "could not reach the AI service", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newResolutionError(ResolutionUnreachable, "could not read the AI response", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", newResolutionError(ResolutionUnauthorized, "the AI service rejected the API key",
			fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes)))
	case resp.StatusCode != http.StatusOK:
		return "", newResolutionError(ResolutionUnreachable, "the AI service returned an error",
			fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes)))
	}

	// Parse the response to extract choices[0].message.content
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", newResolutionError(ResolutionMalformed, "the AI response was not understood", err)
	}
	if len(result.Choices) == 0 {
		return "", newResolutionError(ResolutionMalformed, "the AI response was empty", nil)
	}

	return result.Choices[0].Message.Content, nil
}

// ResolveFood asks the model for the food's per-unit calories.
func (r *openAIResolver) ResolveFood(ctx context.Context, description string) (LibraryItem, error) {
	content, err := r.callOpenAI(ctx, []openAIMessage{
		{Role: "system", Content: foodSystemPrompt},
		{Role: "user", Content: description},
	})
	if err != nil {
		log.Printf("[ResolveFood] OpenAI error: %v", err)
		return LibraryItem{}, err
	}
	return parseFoodEstimate(content)
}

/* ─── Payload parsing ────────────────────────────────────────────────── */

// foodEstimate is the JSON object the model is asked to return. Calories is
// left raw so a quoted number can be told apart from a missing one.
type foodEstimate struct {
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Calories json.RawMessage `json:"calories"`
	Error    string          `json:"error"`
}

// parseFoodEstimate strips formatting around the model output and decodes it.
func parseFoodEstimate(content string) (LibraryItem, error) {
	payload := stripFormatting(content)

	var est foodEstimate
	if err := json.Unmarshal([]byte(payload), &est); err != nil {
		return LibraryItem{}, newResolutionError(ResolutionMalformed, "the AI response was not valid JSON", err)
	}
	if est.Error == "unrecognized" {
		return LibraryItem{}, newResolutionError(ResolutionMalformed, "the description was not recognized as food", nil)
	}
	if len(est.Calories) == 0 {
		return LibraryItem{}, newResolutionError(ResolutionMalformed, "the AI response had no calories", nil)
	}
	// A JSON null decodes without error, so it has to be caught as nil here.
	var calories *float64
	if err := json.Unmarshal(est.Calories, &calories); err != nil {
		return LibraryItem{}, newResolutionError(ResolutionMalformed, "the AI response had non-numeric calories", err)
	}
	if calories == nil {
		return LibraryItem{}, newResolutionError(ResolutionMalformed, "the AI response had no calories", nil)
	}

	item := LibraryItem{
		Name:            strings.TrimSpace(est.Name),
		Unit:            strings.TrimSpace(est.Unit),
		CaloriesPerUnit: *calories,
	}
	if err := validateLibraryItem(item); err != nil {
		return LibraryItem{}, err
	}
	return item, nil
}

// stripFormatting removes markdown code fences and any text around the outermost
// JSON object. Models sometimes wrap their answer in ```json ... ``` even when
// asked not to.
func stripFormatting(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			// Drop the language tag line ("json").
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return strings.TrimSpace(s)
}

// isTimeout reports whether err is a client or context deadline.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// withTimeout bounds a lookup by the configured timeout on top of ctx.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
