// Package imagegen turns a text prompt into an image reference.
package imagegen

import "context"

// Provider is a single remote image-generation backend.
// Generate returns either a hosted URL or a data URI.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
