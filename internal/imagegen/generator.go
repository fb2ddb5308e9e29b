package imagegen

import (
	"context"

	"github.com/rs/zerolog"
)

// enhancement is prepended once to every prompt before the provider chain runs.
const enhancement = "Create a dreamlike visualization with ethereal quality: "

// qualifiers are appended static style qualifiers.
const qualifiers = ". Highly detailed, mystical atmosphere, fantasy art, 4K, " +
	"trending on artstation, ultra realistic, cinematic lighting, hyper detailed."

// Generator walks an ordered provider chain and falls back to a locally
// synthesized placeholder. Generate never fails the caller.
type Generator struct {
	providers []Provider
	fallback  *FallbackProvider
	log       zerolog.Logger
}

// NewGenerator builds a generator over the given providers, tried in order.
func NewGenerator(log zerolog.Logger, providers ...Provider) *Generator {
	return &Generator{
		providers: providers,
		fallback:  NewFallbackProvider(),
		log:       log,
	}
}

// Generate returns a non-empty image reference for the prompt. Provider
// attempts are strictly sequential; each failure is logged and the next
// provider is tried. The terminal fallback cannot fail.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	enhanced := enhancement + prompt + qualifiers

	for _, p := range g.providers {
		ref, err := p.Generate(ctx, enhanced)
		if err != nil {
			g.log.Warn().Err(err).Str("provider", p.Name()).Msg("image provider failed, trying next")
			continue
		}
		g.log.Info().Str("provider", p.Name()).Msg("image generated")
		return ref
	}

	g.log.Info().Msg("all image providers exhausted, using local fallback")
	return g.fallback.Generate(prompt)
}
