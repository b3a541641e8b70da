package images

import "strings"

// placeholderMarkers are filename fragments that identify site
// furniture rather than article imagery.
var placeholderMarkers = []string{
	"placeholder",
	"default",
	"logo",
	"icon",
	"favicon",
	"avatar",
	"sprite",
	"spacer",
	"blank",
	"1x1",
	"pixel",
	"badge",
	"brandmark",
}

// IsPlaceholder reports whether the URL points at a placeholder, logo,
// icon or avatar asset based on filename heuristics. Such images are
// rejected rather than shown as article art.
func IsPlaceholder(imageURL string) bool {
	if imageURL == "" {
		return true
	}

	lower := strings.ToLower(imageURL)

	// Only the path matters; markers inside query values (e.g. a
	// tracking param) would cause false positives.
	if i := strings.IndexByte(lower, '?'); i >= 0 {
		lower = lower[:i]
	}

	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
