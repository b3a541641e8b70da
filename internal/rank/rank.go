// Package rank orders candidate articles for a personalized feed. The
// same scoring structure backs both the server-side discover ranking
// and any client-side local re-rank, so the two can never disagree on
// shape.
package rank

import (
	"sort"
	"time"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
)

// Scoring weights. Category affinity dominates, source affinity is
// half of it, trending and stored engagement are small nudges.
const (
	categoryWeight   = 2.0
	sourceWeight     = 1.0
	trendingBonus    = 0.5
	engagementWeight = 0.1
	recencyMaxBonus  = 1.0
)

type Ranker struct {
	horizon time.Duration // recency bonus reaches zero at this age
}

func NewRanker(horizon time.Duration) *Ranker {
	if horizon <= 0 {
		horizon = 72 * time.Hour
	}
	return &Ranker{horizon: horizon}
}

// RecencyBonus decays linearly from the full bonus at publish time to
// zero once the article is older than the horizon. Articles dated in
// the future get the full bonus.
func (r *Ranker) RecencyBonus(publishedAt, now time.Time) float64 {
	age := now.Sub(publishedAt)
	if age <= 0 {
		return recencyMaxBonus
	}
	if age >= r.horizon {
		return 0
	}
	return recencyMaxBonus * (1 - float64(age)/float64(r.horizon))
}

// Score computes the preference score of one article for one profile.
func (r *Ranker) Score(a domain.Article, p *Profile, now time.Time) float64 {
	score := categoryWeight*p.CategoryPreference(a.Category) +
		sourceWeight*p.SourcePreference(a.SourceName) +
		engagementWeight*a.EngagementScore +
		r.RecencyBonus(a.PublishedAt, now)

	if a.Trending {
		score += trendingBonus
	}
	return score
}

// Rank returns the articles in feed order without mutating the input.
// A user with no interaction history gets a pure recency ordering:
// scoring an all-zero profile would only produce order-unstable ties.
func (r *Ranker) Rank(articles []domain.Article, p *Profile, now time.Time) []domain.Article {
	ranked := make([]domain.Article, len(articles))
	copy(ranked, articles)

	if p.Empty() {
		sortByRecency(ranked)
		return ranked
	}

	scores := make(map[string]float64, len(ranked))
	for _, a := range ranked {
		scores[a.URL] = r.Score(a, p, now)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].URL], scores[ranked[j].URL]
		if si != sj {
			return si > sj
		}
		if !ranked[i].PublishedAt.Equal(ranked[j].PublishedAt) {
			return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
		}
		return ranked[i].URL < ranked[j].URL
	})

	return ranked
}

func sortByRecency(articles []domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		if !articles[i].PublishedAt.Equal(articles[j].PublishedAt) {
			return articles[i].PublishedAt.After(articles[j].PublishedAt)
		}
		return articles[i].URL < articles[j].URL
	})
}
