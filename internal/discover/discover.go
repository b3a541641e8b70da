// Package discover assembles the personalized feed: load a candidate
// pool, rebuild the caller's preference profile from the interaction
// log, rank, and page.
package discover

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/classify"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/logger"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/rank"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/store"
)

// Store is the slice of persistence the feed service reads.
type Store interface {
	QueryArticles(ctx context.Context, opts store.QueryOptions) ([]domain.Article, error)
	ListInteractions(ctx context.Context, userID string) ([]domain.Interaction, error)
	ArticleRefs(ctx context.Context, ids []string) (map[string]store.ArticleRef, error)
}

// Options tune pool sizing and paging.
type Options struct {
	PageSize        int
	OverfetchFactor int // candidate pool multiplier for filtered requests
	MaxPoolSize     int
}

// Page is one ranked page of the feed.
type Page struct {
	Articles []domain.Article
	Page     int
	PageSize int
	HasMore  bool
}

type Service struct {
	store  Store
	ranker *rank.Ranker
	opts   Options
	log    *slog.Logger
}

func New(st Store, ranker *rank.Ranker, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.OverfetchFactor <= 0 {
		opts.OverfetchFactor = 3
	}
	if opts.MaxPoolSize <= 0 {
		opts.MaxPoolSize = 300
	}
	return &Service{
		store:  st,
		ranker: ranker,
		opts:   opts,
		log:    logger.With("discover"),
	}
}

// Feed returns one ranked page for the user. category narrows the pool
// ("" or "all" means everything); page is zero-based.
//
// Category requests over-fetch the pool before post-filtering, because
// curated categories drop articles from unauthorized sources. A failure
// to rebuild the profile degrades to the cold-start recency order
// rather than failing the request.
func (s *Service) Feed(ctx context.Context, userID, category string, page int) (Page, error) {
	if page < 0 {
		page = 0
	}

	pool, err := s.loadPool(ctx, category, page)
	if err != nil {
		return Page{}, err
	}

	profile := s.profileFor(ctx, userID)
	ranked := s.ranker.Rank(pool, profile, time.Now())

	return s.paginate(ranked, page), nil
}

// loadPool fetches the candidate pool for one page. Filtered requests
// over-fetch so the whitelist post-filter still leaves a full page.
func (s *Service) loadPool(ctx context.Context, category string, page int) ([]domain.Article, error) {
	need := (page + 2) * s.opts.PageSize // requested page plus one to decide HasMore

	limit := need
	filtered := category != "" && category != "all"
	if filtered {
		limit = need * s.opts.OverfetchFactor
	}
	if limit > s.opts.MaxPoolSize {
		limit = s.opts.MaxPoolSize
	}

	articles, err := s.store.QueryArticles(ctx, store.QueryOptions{
		Category: category,
		Limit:    uint64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("load feed pool: %w", err)
	}

	if filtered {
		articles = filterAuthorized(domain.Category(category), articles)
	}
	return articles, nil
}

// filterAuthorized drops articles whose source may not carry the
// category. Categories without a curated list pass everything through.
func filterAuthorized(category domain.Category, articles []domain.Article) []domain.Article {
	kept := articles[:0]
	for _, a := range articles {
		if classify.SourceAllowed(category, a.SourceName) {
			kept = append(kept, a)
		}
	}
	return kept
}

// profileFor rebuilds the user's preference profile from the
// interaction log. Any failure degrades to an empty profile, which the
// ranker treats as cold start.
func (s *Service) profileFor(ctx context.Context, userID string) *rank.Profile {
	if userID == "" {
		return rank.NewProfile()
	}

	interactions, err := s.store.ListInteractions(ctx, userID)
	if err != nil {
		s.log.Warn("profile degraded to cold start", "user", userID, "error", err)
		return rank.NewProfile()
	}
	if len(interactions) == 0 {
		return rank.NewProfile()
	}

	ids := make([]string, 0, len(interactions))
	seen := make(map[string]bool, len(interactions))
	for _, in := range interactions {
		if !seen[in.ArticleID] {
			seen[in.ArticleID] = true
			ids = append(ids, in.ArticleID)
		}
	}

	refs, err := s.store.ArticleRefs(ctx, ids)
	if err != nil {
		s.log.Warn("profile degraded to cold start", "user", userID, "error", err)
		return rank.NewProfile()
	}

	replayRefs := make(map[string]rank.ArticleRef, len(refs))
	for id, ref := range refs {
		replayRefs[id] = rank.ArticleRef{Category: ref.Category, Source: ref.SourceName}
	}
	return rank.Replay(interactions, replayRefs)
}

func (s *Service) paginate(ranked []domain.Article, page int) Page {
	start := page * s.opts.PageSize
	if start >= len(ranked) {
		return Page{Articles: []domain.Article{}, Page: page, PageSize: s.opts.PageSize}
	}

	end := start + s.opts.PageSize
	hasMore := end < len(ranked)
	if end > len(ranked) {
		end = len(ranked)
	}

	return Page{
		Articles: ranked[start:end],
		Page:     page,
		PageSize: s.opts.PageSize,
		HasMore:  hasMore,
	}
}
