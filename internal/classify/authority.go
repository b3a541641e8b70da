package classify

import (
	"strings"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
)

// categoryWhitelists are the curated source lists for categories whose
// feed-declared labels are too noisy to trust. A whitelist existing for
// a category means sources outside it may not declare that category.
var categoryWhitelists = map[domain.Category][]string{
	domain.CategoryGaming: {
		"IGN", "GameSpot", "Kotaku", "Polygon", "Eurogamer", "PC Gamer",
		"Rock Paper Shotgun", "Destructoid", "VG247", "Nintendo Life",
		"Game Informer",
	},
	domain.CategoryCrypto: {
		"CoinDesk", "Cointelegraph", "Decrypt", "The Block",
	},
	domain.CategorySports: {
		"ESPN", "BBC Sport", "Sky Sports", "CBS Sports",
		"Sports Illustrated", "The Athletic",
	},
}

// categoryBlacklists name sources that must never carry a category, no
// matter what their feed declares. General-news and sports outlets are
// never gaming.
var categoryBlacklists = map[domain.Category][]string{
	domain.CategoryGaming: {
		"ESPN", "BBC Sport", "Sky Sports", "CBS Sports", "BBC News",
		"CNN", "NPR News", "Reuters", "Al Jazeera", "Politico",
		"The Hill", "Fox News",
	},
}

// reverseWhitelistIndex maps a lowercased source name to its
// authoritative category, derived from the whitelists above. Built
// once at init.
var reverseWhitelistIndex = buildReverseIndex()

func buildReverseIndex() map[string]domain.Category {
	index := make(map[string]domain.Category)
	for _, cat := range domain.Categories() {
		for _, name := range categoryWhitelists[cat] {
			index[strings.ToLower(name)] = cat
		}
	}
	return index
}

func isBlacklisted(category domain.Category, sourceName string) bool {
	for _, name := range categoryBlacklists[category] {
		if strings.EqualFold(name, sourceName) {
			return true
		}
	}
	return false
}

// isWhitelisted reports whether the source may declare the category.
// Categories without a whitelist accept any source.
func isWhitelisted(category domain.Category, sourceName string) bool {
	list, exists := categoryWhitelists[category]
	if !exists {
		return true
	}
	for _, name := range list {
		if strings.EqualFold(name, sourceName) {
			return true
		}
	}
	return false
}

// SourceAllowed reports whether a source may carry articles in the
// category: not blacklisted, and whitelisted where a whitelist exists.
// The feed service applies this as a post-filter on curated categories.
func SourceAllowed(category domain.Category, sourceName string) bool {
	return !isBlacklisted(category, sourceName) && isWhitelisted(category, sourceName)
}

// authoritativeCategory resolves a source to the category its
// whitelist membership vouches for, when it has one.
func authoritativeCategory(sourceName string) (domain.Category, bool) {
	cat, ok := reverseWhitelistIndex[strings.ToLower(sourceName)]
	return cat, ok
}
