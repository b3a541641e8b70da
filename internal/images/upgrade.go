package images

import (
	"net/url"
	"strings"
	"sync"
)

// UpgradeFunc rewrites an image URL to request a higher-resolution
// variant from a recognized source. Unknown sources pass through.
type UpgradeFunc func(imageURL string) string

// UpgradeRegistry maps a source name to its image upgrade strategy.
// Adding a source means registering an entry, never touching branching
// logic.
type UpgradeRegistry struct {
	mu         sync.RWMutex
	strategies map[string]UpgradeFunc
}

func NewUpgradeRegistry() *UpgradeRegistry {
	return &UpgradeRegistry{strategies: make(map[string]UpgradeFunc)}
}

// Register binds a strategy to a source name (case-insensitive).
func (r *UpgradeRegistry) Register(sourceName string, fn UpgradeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[strings.ToLower(sourceName)] = fn
}

// Apply runs the source's strategy if one is registered; otherwise the
// URL is returned unchanged.
func (r *UpgradeRegistry) Apply(sourceName, imageURL string) string {
	if imageURL == "" {
		return imageURL
	}

	r.mu.RLock()
	fn, ok := r.strategies[strings.ToLower(sourceName)]
	r.mu.RUnlock()

	if !ok {
		return imageURL
	}
	return fn(imageURL)
}

// setQueryParams rewrites selected query parameters, leaving the rest
// of the URL intact. Malformed URLs pass through untouched.
func setQueryParams(imageURL string, params map[string]string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return imageURL
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// WidthParamUpgrade returns a strategy that forces a width query
// parameter, the common CDN convention (?width=1280, ?w=1280).
func WidthParamUpgrade(param, value string) UpgradeFunc {
	return func(imageURL string) string {
		return setQueryParams(imageURL, map[string]string{param: value})
	}
}

// QualityParamUpgrade bumps both a width and a quality parameter.
func QualityParamUpgrade(widthParam, width, qualityParam, quality string) UpgradeFunc {
	return func(imageURL string) string {
		return setQueryParams(imageURL, map[string]string{
			widthParam:   width,
			qualityParam: quality,
		})
	}
}

// DefaultUpgrades returns the registry for the sources whose image CDNs
// are recognized. Everything else passes through unchanged.
func DefaultUpgrades() *UpgradeRegistry {
	r := NewUpgradeRegistry()

	// Vox Media properties serve chorus assets with w/q params.
	r.Register("The Verge", QualityParamUpgrade("w", "1200", "q", "90"))
	r.Register("Polygon", QualityParamUpgrade("w", "1200", "q", "90"))

	r.Register("IGN", WidthParamUpgrade("width", "1280"))
	r.Register("GameSpot", WidthParamUpgrade("width", "1280"))
	r.Register("Eurogamer", WidthParamUpgrade("width", "1280"))
	r.Register("Rock Paper Shotgun", WidthParamUpgrade("width", "1280"))
	r.Register("PC Gamer", WidthParamUpgrade("width", "1280"))

	r.Register("TechCrunch", WidthParamUpgrade("w", "1200"))
	r.Register("Variety", WidthParamUpgrade("w", "1200"))
	r.Register("Rolling Stone", WidthParamUpgrade("w", "1200"))

	return r
}
