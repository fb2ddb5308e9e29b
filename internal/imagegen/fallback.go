package imagegen

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"math/rand"
	"strings"
)

// palette holds the fixed colors the fallback gradient draws from.
var palette = []string{"6B46C1", "9F7AEA", "76E4F7", "FF63C3"}

const (
	fallbackCaption    = "Dream Visualization"
	fallbackCaptionMax = 48
)

// FallbackProvider synthesizes a placeholder SVG locally. It is the
// terminal step of the chain and cannot fail.
type FallbackProvider struct {
	pick func(n int) int
}

// NewFallbackProvider creates a fallback with pseudo-random color choice.
func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{pick: rand.Intn}
}

// Generate returns a data:image/svg+xml;base64 URI embedding a two-color
// gradient with a noise overlay and the prompt text as caption.
func (f *FallbackProvider) Generate(prompt string) string {
	c1 := palette[f.pick(len(palette))]
	c2 := palette[f.pick(len(palette))]

	svg := fmt.Sprintf(`<svg width="512" height="512" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="grad" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" style="stop-color:#%s;stop-opacity:1" />
      <stop offset="100%%" style="stop-color:#%s;stop-opacity:1" />
    </linearGradient>
    <filter id="noise" x="0%%" y="0%%" width="100%%" height="100%%">
      <feTurbulence type="fractalNoise" baseFrequency="0.5" result="noise" />
      <feColorMatrix type="matrix" values="1 0 0 0 0 0 1 0 0 0 0 0 1 0 0 0 0 0 0.5 0" result="coloredNoise" />
      <feComposite operator="in" in="coloredNoise" in2="SourceGraphic" result="compositedNoise"/>
    </filter>
  </defs>
  <rect width="512" height="512" fill="url(#grad)" />
  <rect width="512" height="512" fill="url(#grad)" filter="url(#noise)" opacity="0.3" />
  <text x="50%%" y="50%%" font-family="Arial" font-size="24" fill="white" text-anchor="middle">%s</text>
</svg>`, c1, c2, caption(prompt))

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// caption escapes the prompt for embedding in markup and keeps it short
// enough to render on one line.
func caption(prompt string) string {
	text := strings.TrimSpace(prompt)
	if text == "" {
		return fallbackCaption
	}
	// Truncate on rune boundaries so multibyte characters survive intact.
	if runes := []rune(text); len(runes) > fallbackCaptionMax {
		text = string(runes[:fallbackCaptionMax])
	}
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(text))
	return b.String()
}
