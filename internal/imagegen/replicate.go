package imagegen

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// SDXL base model pinned by version hash.
	replicateVersion = "d94c0f3ebaf1cc875d9698423ad79d55831a5ef7412d0b90a36da99222823a75"

	replicateNegativePrompt = "low quality, bad anatomy, blurry, pixelated, distorted proportions, " +
		"disfigured, watermark, signature, ugly"

	replicateMaxPolls     = 30
	replicatePollInterval = 2 * time.Second
)

// ReplicateProvider creates a prediction and polls it until it settles.
type ReplicateProvider struct {
	client       *resty.Client
	pollInterval time.Duration
}

// NewReplicateProvider creates a provider authenticated with the given token.
// baseURL is overridable for tests; empty means the public endpoint.
func NewReplicateProvider(apiToken, baseURL string) *ReplicateProvider {
	if baseURL == "" {
		baseURL = "https://api.replicate.com"
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", "Token "+apiToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &ReplicateProvider{client: c, pollInterval: replicatePollInterval}
}

func (p *ReplicateProvider) Name() string { return "replicate" }

type predictionInput struct {
	Prompt            string  `json:"prompt"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	Refine            string  `json:"refine"`
	Scheduler         string  `json:"scheduler"`
	NumOutputs        int     `json:"num_outputs"`
	GuidanceScale     float64 `json:"guidance_scale"`
	HighNoiseFrac     float64 `json:"high_noise_frac"`
	NegativePrompt    string  `json:"negative_prompt"`
	NumInferenceSteps int     `json:"num_inference_steps"`
}

type prediction struct {
	ID     string   `json:"id"`
	Status string   `json:"status"`
	Output []string `json:"output"`
	Error  string   `json:"error"`
}

// Generate starts a prediction and waits for it to succeed, with a
// bounded number of status polls.
func (p *ReplicateProvider) Generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]interface{}{
		"version": replicateVersion,
		"input": predictionInput{
			Prompt:            prompt,
			Width:             768,
			Height:            768,
			Refine:            "expert_ensemble_refiner",
			Scheduler:         "K_EULER_ANCESTRAL",
			NumOutputs:        1,
			GuidanceScale:     7.5,
			HighNoiseFrac:     0.8,
			NegativePrompt:    replicateNegativePrompt,
			NumInferenceSteps: 40,
		},
	}

	var pred prediction
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&pred).
		Post("/v1/predictions")
	if err != nil {
		return "", fmt.Errorf("replicate request: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("replicate status %d: %s", resp.StatusCode(), resp.String())
	}

	return p.waitForPrediction(ctx, pred)
}

func (p *ReplicateProvider) waitForPrediction(ctx context.Context, pred prediction) (string, error) {
	for i := 0; i < replicateMaxPolls; i++ {
		switch pred.Status {
		case "succeeded":
			if len(pred.Output) == 0 {
				return "", fmt.Errorf("replicate prediction %s succeeded without output", pred.ID)
			}
			return pred.Output[0], nil
		case "failed", "canceled":
			return "", fmt.Errorf("replicate prediction %s %s: %s", pred.ID, pred.Status, pred.Error)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(p.pollInterval):
		}

		resp, err := p.client.R().
			SetContext(ctx).
			SetResult(&pred).
			Get("/v1/predictions/" + pred.ID)
		if err != nil {
			return "", fmt.Errorf("replicate poll: %w", err)
		}
		if resp.StatusCode() != http.StatusOK {
			return "", fmt.Errorf("replicate poll status %d: %s", resp.StatusCode(), resp.String())
		}
	}
	return "", fmt.Errorf("replicate prediction %s did not settle after %d polls", pred.ID, replicateMaxPolls)
}
