package classify

import (
	"regexp"
	"strings"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
)

// categoryKeywords are the ten topical keyword sets scored during
// conflict resolution. Matches are counted per distinct keyword.
var categoryKeywords = map[domain.Category][]string{
	domain.CategoryTech: {
		"software", "startup", "silicon valley", "smartphone", "chip",
		"semiconductor", "artificial intelligence", "machine learning",
		"cloud computing", "cybersecurity", "gadget", "robot",
		"operating system", "data center", "open source",
	},
	domain.CategoryBusiness: {
		"earnings", "revenue", "stocks", "shares", "ipo", "merger",
		"acquisition", "profit", "ceo", "investor", "inflation",
		"economy", "quarterly", "wall street", "interest rate",
	},
	domain.CategorySports: {
		"team", "player", "season", "championship", "league", "coach",
		"playoff", "tournament", "quarterback", "touchdown", "nba",
		"nfl", "premier league", "transfer window", "home run",
	},
	domain.CategoryEntertainment: {
		"movie", "film", "actor", "actress", "trailer", "box office",
		"celebrity", "album", "singer", "netflix", "tv series",
		"premiere", "hollywood", "concert", "red carpet",
	},
	domain.CategoryHealth: {
		"disease", "treatment", "vaccine", "clinical trial", "patients",
		"doctors", "fda", "symptoms", "mental health", "drug",
		"diagnosis", "cancer", "outbreak", "nutrition", "wellness",
	},
	domain.CategoryGaming: {
		"console", "multiplayer", "esports", "playstation", "xbox",
		"nintendo", "gameplay", "dlc", "game developer", "speedrun",
		"patch notes", "rpg", "first-person shooter", "game studio",
		"gamer", "twitch",
	},
	domain.CategoryCrypto: {
		"bitcoin", "ethereum", "blockchain", "cryptocurrency", "token",
		"defi", "nft", "stablecoin", "crypto exchange", "altcoin",
		"wallet", "web3", "solana", "binance",
	},
	domain.CategoryTravel: {
		"travel", "flight", "airline", "hotel", "destination",
		"tourism", "passport", "cruise", "vacation", "itinerary",
		"airport", "resort", "sightseeing",
	},
	domain.CategoryPolitics: {
		"election", "senate", "congress", "parliament", "president",
		"legislation", "government", "democrat", "republican",
		"campaign", "ballot", "minister", "white house",
		"supreme court", "impeachment", "lawmakers",
	},
	domain.CategoryWorld: {
		"united nations", "border", "treaty", "refugee",
		"foreign minister", "embassy", "ceasefire", "humanitarian",
		"summit", "nato", "diplomat", "sanctions",
	},
}

// politicalKeywords drive the force-route to politics. An article
// scoring politicalOverrideHits or more here is routed to politics no
// matter what the other stages say.
var politicalKeywords = []string{
	"election", "senate", "congress", "parliament", "president",
	"legislation", "government", "democrat", "republican", "campaign",
	"ballot", "minister", "white house", "supreme court",
	"impeachment", "lawmakers", "policy", "governor",
}

// tradeKeywords identify tariff/trade language used by the
// category-agnostic fallback and the gaming sanity check.
var tradeKeywords = []string{
	"tariff", "tariffs", "trade deal", "trade war", "imports",
	"exports", "trade agreement", "customs duty",
}

// Thresholds preserved from the reference behavior; empirical numbers,
// not re-derived.
const (
	politicalOverrideHits  = 3 // distinct political keywords forcing politics
	keywordDecisiveHits    = 2 // minimum score for a category to win outright
	cryptoOverBusinessHits = 2 // crypto hits needed to beat declared business
	gamingSanityMinTerms   = 2 // gaming-domain terms required of a gaming article
	strongSignalHits       = 2 // distinct hits making a non-gaming signal "strong"
)

// containsKeyword distinguishes phrases and short words: phrases match
// as substrings, tokens of three characters or fewer require word
// boundaries (so "nba" never matches inside "unbalanced"), everything
// else is a plain substring match.
func containsKeyword(text, keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return false
	}

	if strings.Contains(keyword, " ") {
		return strings.Contains(text, keyword)
	}

	if len(keyword) <= 3 {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
		return re.MatchString(text)
	}

	return strings.Contains(text, keyword)
}

// countDistinct returns how many distinct keywords from the set appear
// in the text. The text must already be lowercased.
func countDistinct(text string, keywords []string) int {
	count := 0
	for _, k := range keywords {
		if containsKeyword(text, k) {
			count++
		}
	}
	return count
}

// scoreAll computes the distinct-match score against every category
// keyword set.
func scoreAll(text string) map[domain.Category]int {
	scores := make(map[domain.Category]int, len(categoryKeywords))
	for cat, keywords := range categoryKeywords {
		scores[cat] = countDistinct(text, keywords)
	}
	return scores
}

// bestCategory picks the highest-scoring category. Ties break by the
// fixed category order so the result is deterministic.
func bestCategory(scores map[domain.Category]int, exclude domain.Category) (domain.Category, int) {
	best := domain.CategoryGeneral
	bestScore := 0
	for _, cat := range domain.Categories() {
		if cat == exclude {
			continue
		}
		if s, ok := scores[cat]; ok && s > bestScore {
			best = cat
			bestScore = s
		}
	}
	return best, bestScore
}
