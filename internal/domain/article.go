package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is the closed set of topics an article can be filed under.
type Category string

const (
	CategoryTech          Category = "tech"
	CategoryBusiness      Category = "business"
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryGaming        Category = "gaming"
	CategoryCrypto        Category = "crypto"
	CategoryTravel        Category = "travel"
	CategoryPolitics      Category = "politics"
	CategoryWorld         Category = "world"
	CategoryGeneral       Category = "general"
)

// Categories lists every valid category.
func Categories() []Category {
	return []Category{
		CategoryTech,
		CategoryBusiness,
		CategorySports,
		CategoryEntertainment,
		CategoryHealth,
		CategoryGaming,
		CategoryCrypto,
		CategoryTravel,
		CategoryPolitics,
		CategoryWorld,
		CategoryGeneral,
	}
}

// ValidCategory reports whether c belongs to the closed category set.
func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Article is a normalized news item produced by the ingestion pipeline.
// Its identity is the canonical URL: two fetches of the same URL must
// resolve to a single stored row.
type Article struct {
	ID              string
	Title           string
	Summary         string
	FullContent     string
	SourceName      string
	Category        Category
	ImageURL        string // empty when no image could be resolved
	URL             string // canonical article URL, unique key
	PublishedAt     time.Time
	ReadTimeMinutes int
	Trending        bool
	EngagementScore float64
}

// NewArticleID returns a fresh row identifier.
func NewArticleID() string {
	return uuid.NewString()
}

// Source describes one feed to poll. Built-in sources have an empty
// OwnerID; custom sources belong to the user who added them.
type Source struct {
	ID       string
	Name     string
	FeedURL  string
	Category Category
	OwnerID  string
	Enabled  bool
}

// BuiltIn reports whether the source is part of the curated set.
func (s Source) BuiltIn() bool {
	return s.OwnerID == ""
}
