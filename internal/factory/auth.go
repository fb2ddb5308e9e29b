package factory

import (
	"github.com/rs/zerolog"

	"github.com/dreamcanvas/server/internal/auth"
	"github.com/dreamcanvas/server/internal/config"
)

// NewVerifier returns the Supabase verifier when an identity provider is
// configured, otherwise the static local-dev verifier.
func NewVerifier(cfg *config.Config, log zerolog.Logger) auth.Verifier {
	if cfg.SupabaseURL != "" {
		log.Info().Str("provider", "supabase").Msg("credential verifier configured")
		return auth.NewSupabaseVerifier(cfg.SupabaseURL, cfg.SupabaseAnonKey, log)
	}
	log.Warn().Msg("no identity provider configured, using static dev verifier")
	return auth.NewStaticVerifier(cfg.DevToken)
}
