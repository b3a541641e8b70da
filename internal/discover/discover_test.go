package discover

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/rank"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/store"
)

type fakeStore struct {
	articles        []domain.Article
	interactions    []domain.Interaction
	interactionsErr error
	refsErr         error
	lastLimit       uint64
}

func (f *fakeStore) QueryArticles(ctx context.Context, opts store.QueryOptions) ([]domain.Article, error) {
	f.lastLimit = opts.Limit

	var out []domain.Article
	for _, a := range f.articles {
		if opts.Category != "" && opts.Category != "all" && string(a.Category) != opts.Category {
			continue
		}
		out = append(out, a)
		if opts.Limit > 0 && uint64(len(out)) >= opts.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) ListInteractions(ctx context.Context, userID string) ([]domain.Interaction, error) {
	if f.interactionsErr != nil {
		return nil, f.interactionsErr
	}
	return f.interactions, nil
}

func (f *fakeStore) ArticleRefs(ctx context.Context, ids []string) (map[string]store.ArticleRef, error) {
	if f.refsErr != nil {
		return nil, f.refsErr
	}
	refs := make(map[string]store.ArticleRef)
	for _, a := range f.articles {
		refs[a.ID] = store.ArticleRef{ID: a.ID, Category: a.Category, SourceName: a.SourceName}
	}
	return refs, nil
}

func makeArticles(n int, category domain.Category, source string, now time.Time) []domain.Article {
	out := make([]domain.Article, n)
	for i := range out {
		out[i] = domain.Article{
			ID:          fmt.Sprintf("%s-%d", category, i),
			Title:       fmt.Sprintf("Article %d", i),
			URL:         fmt.Sprintf("https://example.com/%s/%d", category, i),
			Category:    category,
			SourceName:  source,
			PublishedAt: now.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

func newService(st Store) *Service {
	return New(st, rank.NewRanker(72*time.Hour), Options{PageSize: 5, OverfetchFactor: 3, MaxPoolSize: 100})
}

func TestFeed_ColdStartIsNewestFirst(t *testing.T) {
	now := time.Now()
	st := &fakeStore{articles: makeArticles(8, domain.CategoryTech, "Wired", now)}
	svc := newService(st)

	page, err := svc.Feed(context.Background(), "", "", 0)
	require.NoError(t, err)
	require.Len(t, page.Articles, 5)
	assert.True(t, page.HasMore)

	for i := 1; i < len(page.Articles); i++ {
		assert.False(t, page.Articles[i].PublishedAt.After(page.Articles[i-1].PublishedAt))
	}
}

func TestFeed_PaginationOffsets(t *testing.T) {
	now := time.Now()
	st := &fakeStore{articles: makeArticles(12, domain.CategoryTech, "Wired", now)}
	svc := newService(st)

	first, err := svc.Feed(context.Background(), "", "", 0)
	require.NoError(t, err)
	second, err := svc.Feed(context.Background(), "", "", 1)
	require.NoError(t, err)

	require.Len(t, first.Articles, 5)
	require.Len(t, second.Articles, 5)
	assert.NotEqual(t, first.Articles[0].ID, second.Articles[0].ID)
	assert.Equal(t, 1, second.Page)
}

func TestFeed_PageBeyondPoolIsEmpty(t *testing.T) {
	now := time.Now()
	st := &fakeStore{articles: makeArticles(3, domain.CategoryTech, "Wired", now)}
	svc := newService(st)

	page, err := svc.Feed(context.Background(), "", "", 7)
	require.NoError(t, err)
	assert.Empty(t, page.Articles)
	assert.False(t, page.HasMore)
}

func TestFeed_CategoryRequestsOverfetch(t *testing.T) {
	now := time.Now()
	st := &fakeStore{articles: makeArticles(50, domain.CategoryGaming, "IGN", now)}
	svc := newService(st)

	_, err := svc.Feed(context.Background(), "", "gaming", 0)
	require.NoError(t, err)

	unfiltered := uint64((0 + 2) * 5)
	assert.Equal(t, unfiltered*3, st.lastLimit, "filtered request asks for the over-fetched pool")
}

func TestFeed_GamingPoolDropsUnauthorizedSources(t *testing.T) {
	now := time.Now()
	authorized := makeArticles(4, domain.CategoryGaming, "IGN", now)
	// Mislabeled rows from a non-gaming outlet must not surface in the
	// gaming feed even if they slipped into storage.
	smuggled := []domain.Article{{
		ID: "bad-1", Title: "Sports thing", URL: "https://espn.example/x",
		Category: domain.CategoryGaming, SourceName: "ESPN", PublishedAt: now,
	}}
	st := &fakeStore{articles: append(smuggled, authorized...)}
	svc := newService(st)

	page, err := svc.Feed(context.Background(), "", "gaming", 0)
	require.NoError(t, err)
	for _, a := range page.Articles {
		assert.NotEqual(t, "ESPN", a.SourceName)
	}
	assert.Len(t, page.Articles, 4)
}

func TestFeed_ProfileReordersTowardLikedCategory(t *testing.T) {
	now := time.Now()
	tech := makeArticles(3, domain.CategoryTech, "Wired", now.Add(-time.Minute))
	sports := makeArticles(3, domain.CategorySports, "ESPN", now.Add(-48*time.Hour))
	st := &fakeStore{
		articles: append(tech, sports...),
		interactions: []domain.Interaction{
			{UserID: "u1", ArticleID: sports[0].ID, Action: domain.ActionThumbsUp, CreatedAt: now.Add(-time.Hour)},
			{UserID: "u1", ArticleID: sports[1].ID, Action: domain.ActionSave, CreatedAt: now.Add(-time.Hour)},
		},
	}
	svc := newService(st)

	page, err := svc.Feed(context.Background(), "u1", "", 0)
	require.NoError(t, err)
	require.NotEmpty(t, page.Articles)

	// Stale sports articles outrank fresh tech once the profile leans
	// sports hard enough.
	assert.Equal(t, domain.CategorySports, page.Articles[0].Category)
}

func TestFeed_InteractionFailureDegradesToRecency(t *testing.T) {
	now := time.Now()
	st := &fakeStore{
		articles:        makeArticles(6, domain.CategoryTech, "Wired", now),
		interactionsErr: errors.New("db down"),
	}
	svc := newService(st)

	page, err := svc.Feed(context.Background(), "u1", "", 0)
	require.NoError(t, err, "profile trouble must not fail the feed")
	require.Len(t, page.Articles, 5)
	assert.Equal(t, "tech-0", page.Articles[0].ID)
}

func TestFeed_RefsFailureDegradesToRecency(t *testing.T) {
	now := time.Now()
	st := &fakeStore{
		articles: makeArticles(6, domain.CategoryTech, "Wired", now),
		interactions: []domain.Interaction{
			{UserID: "u1", ArticleID: "tech-0", Action: domain.ActionThumbsUp, CreatedAt: now},
		},
		refsErr: errors.New("db down"),
	}
	svc := newService(st)

	page, err := svc.Feed(context.Background(), "u1", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "tech-0", page.Articles[0].ID)
}
