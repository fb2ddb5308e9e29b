// Package extract derives short keyword "elements" from a dream description.
package extract

import (
	"context"

	"github.com/rs/zerolog"
)

// maxElements caps every extraction result.
const maxElements = 5

// Extractor produces up to five elements from free text.
type Extractor interface {
	Extract(ctx context.Context, description string) ([]string, error)
}

// Chain tries an optional primary extractor and degrades to the
// deterministic keyword fallback. Extract never fails the caller.
type Chain struct {
	primary Extractor // may be nil
	log     zerolog.Logger
}

// NewChain builds a chain. primary may be nil, in which case only the
// keyword fallback runs.
func NewChain(primary Extractor, log zerolog.Logger) *Chain {
	return &Chain{primary: primary, log: log}
}

// Extract returns 0-5 elements, never an error.
func (c *Chain) Extract(ctx context.Context, description string) []string {
	if c.primary != nil {
		elements, err := c.primary.Extract(ctx, description)
		if err == nil {
			if len(elements) > maxElements {
				elements = elements[:maxElements]
			}
			return elements
		}
		c.log.Warn().Err(err).Msg("primary extractor failed, using keyword fallback")
	}
	return Keywords(description)
}
