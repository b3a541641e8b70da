package images

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstImageInFragment returns the src of the first usable <img> inside
// an HTML fragment (a feed item's description or content body), or ""
// when none qualifies.
func FirstImageInFragment(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var found string
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			src, _ = s.Attr("data-src")
		}
		if src == "" || IsPlaceholder(src) {
			return true
		}
		if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
			return true
		}
		found = src
		return false
	})
	return found
}

// FromPage extracts a representative image from a full article page:
// og:image and twitter:image metadata first, then the first usable
// image inside the article body.
func FromPage(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	metaSelectors := []string{
		`meta[property="og:image"]`,
		`meta[name="twitter:image"]`,
		`meta[property="og:image:url"]`,
	}
	for _, sel := range metaSelectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			content = strings.TrimSpace(content)
			if content != "" && !IsPlaceholder(content) {
				return content
			}
		}
	}

	bodySelectors := []string{
		"article img",
		".article-body img",
		".content img",
		"main img",
	}
	for _, sel := range bodySelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			src, ok := s.Attr("src")
			if !ok || src == "" || IsPlaceholder(src) {
				return true
			}
			if !strings.HasPrefix(src, "http") {
				return true
			}
			found = src
			return false
		})
		if found != "" {
			return found
		}
	}

	return ""
}
