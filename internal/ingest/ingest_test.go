package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/classify"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/fetch"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/images"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/parser"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/store"
)

type fakeResolver struct {
	sources []domain.Source
}

func (f *fakeResolver) SourcesFor(ctx context.Context, ownerID, category string) ([]domain.Source, error) {
	var out []domain.Source
	for _, s := range f.sources {
		if category != "" && category != "all" && string(s.Category) != category {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// fakeWriter enforces the URL uniqueness gate in memory.
type fakeWriter struct {
	mu    sync.Mutex
	byURL map[string]domain.Article
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{byURL: make(map[string]domain.Article)}
}

func (f *fakeWriter) UpsertArticle(ctx context.Context, a domain.Article) (store.UpsertOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.byURL[a.URL]; dup {
		return store.UpsertSkipped, nil
	}
	f.byURL[a.URL] = a
	return store.UpsertInserted, nil
}

type trendingWriter struct {
	*fakeWriter
	refreshed int
}

func (t *trendingWriter) RefreshTrending(ctx context.Context, window time.Duration, limit int) error {
	t.refreshed++
	return nil
}

func rssFeed(items ...string) string {
	body := `<?xml version="1.0"?><rss version="2.0"><channel><title>T</title>`
	for _, it := range items {
		body += it
	}
	return body + `</channel></rss>`
}

func rssItem(title, link string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate></item>`, title, link)
}

func newTestPipeline(resolver SourceResolver, writer ArticleWriter) *Pipeline {
	return New(
		resolver,
		fetch.New(nil),
		parser.New(images.NewUpgradeRegistry(), 15, 25),
		classify.New(),
		writer,
		nil,
		2*time.Second,
	)
}

func TestRun_InsertsParsedArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(
			rssItem("First story", "https://example.com/1"),
			rssItem("Second story", "https://example.com/2"),
		))
	}))
	defer srv.Close()

	resolver := &fakeResolver{sources: []domain.Source{
		{ID: "s1", Name: "Feed One", FeedURL: srv.URL, Category: domain.CategoryGeneral, Enabled: true},
	}}
	writer := newFakeWriter()

	res, err := newTestPipeline(resolver, writer).Run(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Seen)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 0, res.Skipped)
	assert.Len(t, writer.byURL, 2)
}

func TestRun_SecondRunSkipsDuplicates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(rssItem("Same story", "https://example.com/same")))
	}))
	defer srv.Close()

	resolver := &fakeResolver{sources: []domain.Source{
		{ID: "s1", Name: "Feed One", FeedURL: srv.URL, Category: domain.CategoryGeneral, Enabled: true},
	}}
	writer := newFakeWriter()
	p := newTestPipeline(resolver, writer)

	first, err := p.Run(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Inserted)

	second, err := p.Run(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 1, second.Skipped)
	assert.Len(t, writer.byURL, 1)
}

func TestRun_OneBadSourceDoesNotAbortTheOthers(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(rssItem("Good story", "https://example.com/good")))
	}))
	defer good.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "definitely not a feed")
	}))
	defer broken.Close()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer dead.Close()

	resolver := &fakeResolver{sources: []domain.Source{
		{ID: "s1", Name: "Good", FeedURL: good.URL, Category: domain.CategoryGeneral, Enabled: true},
		{ID: "s2", Name: "Broken", FeedURL: broken.URL, Category: domain.CategoryGeneral, Enabled: true},
		{ID: "s3", Name: "Dead", FeedURL: dead.URL, Category: domain.CategoryGeneral, Enabled: true},
	}}
	writer := newFakeWriter()

	res, err := newTestPipeline(resolver, writer).Run(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 2, res.SourcesFailed)
}

func TestRun_ReclassifiesMislabeledArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(rssItem(
			"Senate passes legislation as president and lawmakers clash over the government shutdown",
			"https://example.com/politics-story",
		)))
	}))
	defer srv.Close()

	resolver := &fakeResolver{sources: []domain.Source{
		{ID: "s1", Name: "Tech Site", FeedURL: srv.URL, Category: domain.CategoryTech, Enabled: true},
	}}
	writer := newFakeWriter()

	_, err := newTestPipeline(resolver, writer).Run(context.Background(), "", "")
	require.NoError(t, err)

	stored := writer.byURL["https://example.com/politics-story"]
	assert.Equal(t, domain.CategoryPolitics, stored.Category)
}

func TestRun_RefreshesTrendingWhenTheWriterSupportsIt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(rssItem("A story", "https://example.com/a")))
	}))
	defer srv.Close()

	resolver := &fakeResolver{sources: []domain.Source{
		{ID: "s1", Name: "Feed One", FeedURL: srv.URL, Category: domain.CategoryGeneral, Enabled: true},
	}}
	writer := &trendingWriter{fakeWriter: newFakeWriter()}

	_, err := newTestPipeline(resolver, writer).Run(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, writer.refreshed)
}

func TestRun_CategoryFilterNarrowsSources(t *testing.T) {
	var techHits, sportsHits int
	tech := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		techHits++
		fmt.Fprint(w, rssFeed(rssItem("Tech story", "https://example.com/tech")))
	}))
	defer tech.Close()

	sports := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sportsHits++
		fmt.Fprint(w, rssFeed(rssItem("Sports story", "https://example.com/sports")))
	}))
	defer sports.Close()

	resolver := &fakeResolver{sources: []domain.Source{
		{ID: "s1", Name: "Tech Site", FeedURL: tech.URL, Category: domain.CategoryTech, Enabled: true},
		{ID: "s2", Name: "ESPN", FeedURL: sports.URL, Category: domain.CategorySports, Enabled: true},
	}}
	writer := newFakeWriter()

	res, err := newTestPipeline(resolver, writer).Run(context.Background(), "", "tech")
	require.NoError(t, err)

	assert.Equal(t, 1, techHits)
	assert.Equal(t, 0, sportsHits)
	assert.Equal(t, 1, res.Inserted)
}
