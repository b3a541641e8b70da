// Package classify assigns a final category to each article. It is an
// ordered cascade of named rules, each returning either a decisive
// category or no opinion; the priority order is an explicit, testable
// artifact. Deliberately deterministic rather than statistical so a
// misclassification is always auditable and correctable by hand.
package classify

import (
	"strings"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
)

// Input carries everything a rule may look at. Classification is a
// pure function of this struct.
type Input struct {
	Title       string
	Description string
	Declared    domain.Category
	SourceName  string
}

func (in Input) text() string {
	return strings.ToLower(in.Title + " " + in.Description)
}

// Rule inspects an article and either decides its category or declines
// an opinion.
type Rule struct {
	Name  string
	Apply func(in Input) (domain.Category, bool)
}

type Classifier struct {
	rules []Rule
}

// New builds the classifier with the standard rule order: political
// override, source authority, content sanity, keyword resolution.
func New() *Classifier {
	return &Classifier{
		rules: []Rule{
			{Name: "political-override", Apply: politicalOverride},
			{Name: "source-authority", Apply: sourceAuthority},
			{Name: "content-sanity", Apply: contentSanity},
			{Name: "keyword-resolution", Apply: keywordResolution},
		},
	}
}

// RuleNames exposes the evaluation order for audit output.
func (c *Classifier) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

// Classify runs the cascade; the first decisive rule wins. When no rule
// has an opinion the declared category stands, so ambiguity never fails
// an article's ingestion.
func (c *Classifier) Classify(in Input) domain.Category {
	if !domain.ValidCategory(in.Declared) {
		in.Declared = domain.CategoryGeneral
	}

	for _, rule := range c.rules {
		if cat, decided := rule.Apply(in); decided {
			return cat
		}
	}
	return in.Declared
}

// politicalOverride force-routes heavily political articles to
// politics regardless of every later stage.
func politicalOverride(in Input) (domain.Category, bool) {
	if countDistinct(in.text(), politicalKeywords) >= politicalOverrideHits {
		return domain.CategoryPolitics, true
	}
	return "", false
}

// sourceAuthority rejects a declared category the source is not
// allowed to carry: blacklisted for it, or absent from its whitelist
// when one exists. On rejection the source's own whitelist membership
// decides; failing that, keyword scoring with a category-agnostic
// fallback.
func sourceAuthority(in Input) (domain.Category, bool) {
	rejected := isBlacklisted(in.Declared, in.SourceName) || !isWhitelisted(in.Declared, in.SourceName)
	if !rejected {
		return "", false
	}

	if cat, ok := authoritativeCategory(in.SourceName); ok {
		return cat, true
	}

	return fallbackByKeywords(in.text(), in.Declared), true
}

// fallbackByKeywords resolves an article whose declared category was
// rejected and whose source is unknown to every whitelist. The best
// keyword score wins when decisive; otherwise tariff/trade language
// means business, team/player language means sports, else general.
func fallbackByKeywords(text string, rejected domain.Category) domain.Category {
	scores := scoreAll(text)
	if best, score := bestCategory(scores, rejected); score >= keywordDecisiveHits {
		return best
	}
	if countDistinct(text, tradeKeywords) > 0 {
		return domain.CategoryBusiness
	}
	if scores[domain.CategorySports] > 0 {
		return domain.CategorySports
	}
	return domain.CategoryGeneral
}

// contentSanity double-checks categories that demand corroborating
// vocabulary even from an authorized source. A gaming article must
// read like one: at least gamingSanityMinTerms gaming-domain terms and
// no strong non-gaming signal, or it is re-routed by keywords.
func contentSanity(in Input) (domain.Category, bool) {
	if in.Declared != domain.CategoryGaming {
		return "", false
	}

	text := in.text()
	gamingTerms := countDistinct(text, categoryKeywords[domain.CategoryGaming])

	strongOffTopic := countDistinct(text, politicalKeywords) >= strongSignalHits ||
		countDistinct(text, tradeKeywords) >= strongSignalHits ||
		countDistinct(text, categoryKeywords[domain.CategorySports]) >= strongSignalHits

	if gamingTerms >= gamingSanityMinTerms && !strongOffTopic {
		return "", false // reads like gaming; later stages may still weigh in
	}

	scores := scoreAll(text)
	if best, score := bestCategory(scores, domain.CategoryGaming); score >= keywordDecisiveHits {
		return best, true
	}
	return domain.CategoryGeneral, true
}

// keywordResolution is the final stage: score the title+description
// against every category set and resolve conflicts deterministically.
// A declared category with any support stands. With zero support the
// fixed tie-break ladder applies, then the overall best score if
// decisive, then the declared category as a last resort.
func keywordResolution(in Input) (domain.Category, bool) {
	scores := scoreAll(in.text())

	if scores[in.Declared] > 0 {
		return in.Declared, true
	}

	switch in.Declared {
	case domain.CategoryTech:
		// Gaming vocabulary overlaps tech heavily; gaming wins ties.
		if scores[domain.CategoryGaming] > 0 && scores[domain.CategoryGaming] >= scores[domain.CategoryTech] {
			return domain.CategoryGaming, true
		}
	case domain.CategoryBusiness:
		if scores[domain.CategoryCrypto] >= cryptoOverBusinessHits {
			return domain.CategoryCrypto, true
		}
		if scores[domain.CategoryTech] > 0 && scores[domain.CategoryTech] >= scores[domain.CategoryBusiness] {
			return domain.CategoryTech, true
		}
	case domain.CategoryEntertainment:
		if scores[domain.CategorySports] > 0 && scores[domain.CategorySports] >= scores[domain.CategoryEntertainment] {
			return domain.CategorySports, true
		}
	}

	if best, score := bestCategory(scores, ""); score >= keywordDecisiveHits {
		return best, true
	}

	return in.Declared, true
}
