package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/classify"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/fetch"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/logger"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/metrics"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/parser"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/store"
)

// SourceResolver yields the sources to poll for a run. Satisfied by
// registry.Registry.
type SourceResolver interface {
	SourcesFor(ctx context.Context, ownerID, category string) ([]domain.Source, error)
}

// ArticleWriter is the slice of the store the pipeline writes through.
type ArticleWriter interface {
	UpsertArticle(ctx context.Context, a domain.Article) (store.UpsertOutcome, error)
}

// TrendingRefresher is implemented by stores that maintain the
// trending flag. Optional; the pipeline runs the pass when available.
type TrendingRefresher interface {
	RefreshTrending(ctx context.Context, window time.Duration, limit int) error
}

const (
	trendingWindow = 24 * time.Hour
	trendingCount  = 12
)

// ImageResolver backfills images for articles whose feed entry carried
// none. Optional; a nil resolver skips the pass.
type ImageResolver interface {
	ResolveMissing(ctx context.Context, articles []domain.Article) map[string]string
}

// Result summarizes one ingestion run.
type Result struct {
	SourcesFetched int
	SourcesFailed  int
	Seen           int
	Inserted       int
	Skipped        int
	Duration       time.Duration
}

// Pipeline runs the full refresh: resolve sources, fetch feeds
// concurrently, parse, classify, backfill images, and write through
// the dedup gate. One bad source never aborts the run.
type Pipeline struct {
	registry   SourceResolver
	fetcher    *fetch.Fetcher
	parser     *parser.Parser
	classifier *classify.Classifier
	writer     ArticleWriter
	images     ImageResolver

	fetchTimeout time.Duration
	log          *slog.Logger
}

func New(reg SourceResolver, fetcher *fetch.Fetcher, p *parser.Parser,
	c *classify.Classifier, writer ArticleWriter, images ImageResolver,
	fetchTimeout time.Duration) *Pipeline {
	return &Pipeline{
		registry:     reg,
		fetcher:      fetcher,
		parser:       p,
		classifier:   c,
		writer:       writer,
		images:       images,
		fetchTimeout: fetchTimeout,
		log:          logger.With("ingest"),
	}
}

// Run refreshes the article pool. ownerID scopes which custom sources
// join the built-in set; category narrows the run to one category's
// sources, with "" or "all" meaning every source.
func (p *Pipeline) Run(ctx context.Context, ownerID, category string) (Result, error) {
	started := time.Now()
	var res Result

	sources, err := p.registry.SourcesFor(ctx, ownerID, category)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return res, err
	}

	p.log.Info("starting ingestion", "sources", len(sources), "category", category)

	fetched := p.fetcher.FetchAll(ctx, sources, p.fetchTimeout)
	res.SourcesFetched = len(fetched)
	metrics.Global.AddSourcesFetched(int64(len(fetched)))

	var pool []domain.Article
	for _, fr := range fetched {
		if fr.Err != nil {
			res.SourcesFailed++
			metrics.Global.IncrementFetchErrors()
			continue
		}

		articles, err := p.parser.Parse(fr.Body, fr.Source)
		if err != nil {
			res.SourcesFailed++
			metrics.Global.IncrementParseErrors()
			p.log.Warn("feed parse failed", "source", fr.Source.Name, "error", err)
			continue
		}
		pool = append(pool, p.classifyAll(articles)...)
	}

	res.Seen = len(pool)
	metrics.Global.AddArticlesSeen(int64(len(pool)))

	if p.images != nil {
		resolved := p.images.ResolveMissing(ctx, pool)
		for i := range pool {
			if pool[i].ImageURL == "" {
				if img, ok := resolved[pool[i].ID]; ok && img != "" {
					pool[i].ImageURL = img
				}
			}
		}
	}

	for _, article := range pool {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		outcome, err := p.writer.UpsertArticle(ctx, article)
		if err != nil {
			p.log.Warn("article store failed", "url", article.URL, "error", err)
			continue
		}
		switch outcome {
		case store.UpsertInserted:
			res.Inserted++
			metrics.Global.IncrementArticlesInserted()
		case store.UpsertSkipped:
			res.Skipped++
			metrics.Global.IncrementDuplicatesSkipped()
		}
	}

	if tr, ok := p.writer.(TrendingRefresher); ok {
		if err := tr.RefreshTrending(ctx, trendingWindow, trendingCount); err != nil {
			p.log.Warn("trending refresh failed", "error", err)
		}
	}

	res.Duration = time.Since(started)
	metrics.Global.RecordIngestTime(res.Duration)
	metrics.Global.SetLastRun()

	p.log.Info("ingestion finished",
		"seen", res.Seen,
		"inserted", res.Inserted,
		"skipped", res.Skipped,
		"failed_sources", res.SourcesFailed,
		"duration", res.Duration)
	return res, nil
}

// classifyAll runs every article through the rule chain, counting
// re-files where the verdict differs from the source's declared
// category.
func (p *Pipeline) classifyAll(articles []domain.Article) []domain.Article {
	for i := range articles {
		verdict := p.classifier.Classify(classify.Input{
			Title:       articles[i].Title,
			Description: articles[i].Summary,
			Declared:    articles[i].Category,
			SourceName:  articles[i].SourceName,
		})
		if verdict != articles[i].Category {
			metrics.Global.IncrementReclassified()
			p.log.Debug("article re-filed",
				"title", articles[i].Title,
				"from", articles[i].Category,
				"to", verdict)
			articles[i].Category = verdict
		}
	}
	return articles
}
