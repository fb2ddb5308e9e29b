package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const hfNegativePrompt = "low quality, bad anatomy, blurry, pixelated"

// HuggingFaceProvider calls the hosted inference API for a diffusion model.
// The response body is raw image bytes, returned as a base64 data URI with
// the provider-reported content type.
type HuggingFaceProvider struct {
	client *resty.Client
	model  string
}

// NewHuggingFaceProvider creates a provider for the given model.
// baseURL is overridable for tests; empty means the public endpoint.
func NewHuggingFaceProvider(apiKey, model, baseURL string) *HuggingFaceProvider {
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)

	return &HuggingFaceProvider{client: c, model: model}
}

func (p *HuggingFaceProvider) Name() string { return "huggingface" }

type hfRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		NegativePrompt string `json:"negative_prompt"`
	} `json:"parameters"`
}

// Generate posts the prompt and encodes the binary response as a data URI.
func (p *HuggingFaceProvider) Generate(ctx context.Context, prompt string) (string, error) {
	req := hfRequest{Inputs: prompt}
	req.Parameters.NegativePrompt = hfNegativePrompt

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&req).
		Post("/models/" + p.model)
	if err != nil {
		return "", fmt.Errorf("huggingface request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("huggingface status %d: %s", resp.StatusCode(), resp.String())
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	encoded := base64.StdEncoding.EncodeToString(resp.Body())
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), nil
}
