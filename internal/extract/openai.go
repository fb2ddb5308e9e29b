package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const extractSystemPrompt = "Extract 3-5 key elements or themes from the dream description. " +
	"Return just a JSON object with an \"elements\" array of strings. " +
	"Each element should be a single word or short phrase."

// OpenAIExtractor asks a chat-completions model to identify thematic
// keywords from the description.
type OpenAIExtractor struct {
	client *resty.Client
	model  string
}

// NewOpenAIExtractor creates an extractor backed by the OpenAI API.
// baseURL is overridable for tests; empty means the public endpoint.
func NewOpenAIExtractor(apiKey, model, baseURL string) *OpenAIExtractor {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &OpenAIExtractor{client: c, model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract calls the chat-completions endpoint and parses an
// {"elements": [...]} object from the response content.
func (e *OpenAIExtractor) Extract(ctx context.Context, description string) ([]string, error) {
	req := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: extractSystemPrompt},
			{Role: "user", Content: description},
		},
	}
	req.ResponseFormat.Type = "json_object"

	var out chatResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(&req).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	var parsed struct {
		Elements []string `json:"elements"`
	}
	if err := json.Unmarshal([]byte(out.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("parse elements: %w", err)
	}
	return parsed.Elements, nil
}
