// Package parser turns raw RSS/Atom payloads into normalized articles.
// Dialect detection is structural (the XML itself decides, never the
// source name), delegated to gofeed.
package parser

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/images"
)

const wordsPerMinute = 200

type Parser struct {
	feedParser   *gofeed.Parser
	upgrades     *images.UpgradeRegistry
	maxPerSource int
	maxGaming    int
}

// New builds a parser. maxPerSource caps how many articles one fetch of
// one source may contribute; the gaming category gets the higher
// maxGaming cap.
func New(upgrades *images.UpgradeRegistry, maxPerSource, maxGaming int) *Parser {
	if maxPerSource <= 0 {
		maxPerSource = 15
	}
	if maxGaming <= 0 {
		maxGaming = 25
	}
	return &Parser{
		feedParser:   gofeed.NewParser(),
		upgrades:     upgrades,
		maxPerSource: maxPerSource,
		maxGaming:    maxGaming,
	}
}

// Parse converts one feed payload into articles carrying the source's
// declared category. A malformed payload is an error for this source
// only; the caller isolates it from the batch.
func (p *Parser) Parse(raw []byte, source domain.Source) ([]domain.Article, error) {
	feed, err := p.feedParser.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse feed from %s: %w", source.Name, err)
	}

	limit := p.maxPerSource
	if source.Category == domain.CategoryGaming {
		limit = p.maxGaming
	}

	articles := make([]domain.Article, 0, limit)
	for _, item := range feed.Items {
		if len(articles) >= limit {
			break
		}

		title := CleanText(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		summary := CleanText(item.Description)
		fullContent := CleanText(item.Content)
		if fullContent == "" {
			fullContent = summary
		}
		if summary == "" {
			summary = fullContent
		}

		imageURL := p.extractImage(item)
		if imageURL != "" {
			imageURL = p.upgrades.Apply(source.Name, imageURL)
		}

		articles = append(articles, domain.Article{
			ID:              domain.NewArticleID(),
			Title:           title,
			Summary:         summary,
			FullContent:     fullContent,
			SourceName:      source.Name,
			Category:        source.Category,
			ImageURL:        imageURL,
			URL:             link,
			PublishedAt:     publishedTime(item),
			ReadTimeMinutes: ReadTime(fullContent),
		})
	}

	return articles, nil
}

// publishedTime resolves the item timestamp, falling back to the
// current time when the feed omits it or gofeed could not parse it.
func publishedTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Now()
}

// extractImage walks the priority chain: media:content (largest
// declared width, image types only), media:thumbnail, typed image
// enclosure, first <img> in the item body. Placeholder assets are
// rejected at every step.
func (p *Parser) extractImage(item *gofeed.Item) string {
	if url := largestMediaContent(item); url != "" {
		return url
	}

	if url := mediaThumbnail(item); url != "" {
		return url
	}

	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") && !images.IsPlaceholder(enc.URL) {
			return enc.URL
		}
	}

	if url := images.FirstImageInFragment(item.Description); url != "" {
		return url
	}
	return images.FirstImageInFragment(item.Content)
}

func largestMediaContent(item *gofeed.Item) string {
	var best string
	bestWidth := -1

	for _, e := range mediaExtensions(item, "content") {
		url := e.Attrs["url"]
		if url == "" || images.IsPlaceholder(url) {
			continue
		}
		if !isImageMedia(e.Attrs) {
			continue
		}

		width := 0
		if w, err := strconv.Atoi(e.Attrs["width"]); err == nil {
			width = w
		}
		if width > bestWidth {
			best = url
			bestWidth = width
		}
	}
	return best
}

func mediaThumbnail(item *gofeed.Item) string {
	for _, e := range mediaExtensions(item, "thumbnail") {
		url := e.Attrs["url"]
		if url != "" && !images.IsPlaceholder(url) {
			return url
		}
	}
	return ""
}

func mediaExtensions(item *gofeed.Item, name string) []ext.Extension {
	media, ok := item.Extensions["media"]
	if !ok {
		return nil
	}
	return media[name]
}

// isImageMedia filters out video/audio media:content variants, which
// several feeds mix into the same element list.
func isImageMedia(attrs map[string]string) bool {
	if t := attrs["type"]; t != "" {
		return strings.HasPrefix(t, "image/")
	}
	if m := attrs["medium"]; m != "" {
		return m == "image"
	}
	// No type declared at all; accept and rely on the placeholder check.
	return true
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanText strips markup and decodes HTML entities (named, numeric and
// hex forms) so no raw entity codes or tags are ever persisted.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	// Some feeds double-encode entities (&amp;#8217;).
	s = html.UnescapeString(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ReadTime estimates reading minutes from the word count, never less
// than one minute.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := words / wordsPerMinute
	if words%wordsPerMinute != 0 {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
