package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPlaceholder(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example.com/photo.jpg", false},
		{"https://cdn.example.com/placeholder.png", true},
		{"https://cdn.example.com/default-image.jpg", true},
		{"https://cdn.example.com/site-logo.svg", true},
		{"https://cdn.example.com/favicon.ico", true},
		{"https://cdn.example.com/tracking/1x1.gif", true},
		{"https://cdn.example.com/spacer.gif", true},
		// Markers inside the query string do not condemn the asset.
		{"https://cdn.example.com/photo.jpg?from=logo", false},
		{"", true},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, IsPlaceholder(c.url), c.url)
	}
}

func TestUpgradeRegistry_UnknownSourcePassesThrough(t *testing.T) {
	r := NewUpgradeRegistry()
	assert.Equal(t, "https://x.example/a.jpg", r.Apply("Nobody", "https://x.example/a.jpg"))
}

func TestUpgradeRegistry_IsCaseInsensitive(t *testing.T) {
	r := NewUpgradeRegistry()
	r.Register("The Verge", WidthParamUpgrade("w", "1200"))

	got := r.Apply("the verge", "https://cdn.example.com/a.jpg")
	assert.Equal(t, "https://cdn.example.com/a.jpg?w=1200", got)
}

func TestWidthParamUpgrade_ReplacesExistingParam(t *testing.T) {
	fn := WidthParamUpgrade("width", "1280")
	assert.Equal(t,
		"https://cdn.example.com/a.jpg?width=1280",
		fn("https://cdn.example.com/a.jpg?width=320"))
}

func TestQualityParamUpgrade_KeepsUnrelatedParams(t *testing.T) {
	fn := QualityParamUpgrade("w", "1200", "q", "90")
	got := fn("https://cdn.example.com/a.jpg?crop=fit&w=100")
	assert.Contains(t, got, "crop=fit")
	assert.Contains(t, got, "w=1200")
	assert.Contains(t, got, "q=90")
}

func TestDefaultUpgrades_CoverGamingOutlets(t *testing.T) {
	r := DefaultUpgrades()

	got := r.Apply("IGN", "https://assets.ign.com/shot.jpg")
	assert.Equal(t, "https://assets.ign.com/shot.jpg?width=1280", got)
}

func TestFirstImageInFragment(t *testing.T) {
	assert.Equal(t, "", FirstImageInFragment("no markup here"))

	frag := `<p>text</p><img src="https://cdn.example.com/pixel.gif"><img src="https://cdn.example.com/real.jpg">`
	assert.Equal(t, "https://cdn.example.com/real.jpg", FirstImageInFragment(frag))

	// Relative URLs are useless outside the page context.
	assert.Equal(t, "", FirstImageInFragment(`<img src="/local/img.jpg">`))

	lazy := `<img data-src="https://cdn.example.com/lazy.jpg">`
	assert.Equal(t, "https://cdn.example.com/lazy.jpg", FirstImageInFragment(lazy))
}

func TestFromPage_PrefersOpenGraphMeta(t *testing.T) {
	page := `<html><head>
	<meta property="og:image" content="https://cdn.example.com/og.jpg">
	</head><body><article><img src="https://cdn.example.com/body.jpg"></article></body></html>`

	assert.Equal(t, "https://cdn.example.com/og.jpg", FromPage(page))
}

func TestFromPage_FallsBackToArticleBody(t *testing.T) {
	page := `<html><body><article><img src="https://cdn.example.com/body.jpg"></article></body></html>`
	assert.Equal(t, "https://cdn.example.com/body.jpg", FromPage(page))
}

func TestFromPage_RejectsPlaceholderMeta(t *testing.T) {
	page := `<html><head>
	<meta property="og:image" content="https://cdn.example.com/default-share-logo.png">
	</head><body><main><img src="https://cdn.example.com/real.jpg"></main></body></html>`

	assert.Equal(t, "https://cdn.example.com/real.jpg", FromPage(page))
}
