package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
)

// UpsertOutcome is the dedup gate's verdict on one article.
type UpsertOutcome int

const (
	UpsertInserted UpsertOutcome = iota
	UpsertSkipped
)

const articleColumns = "id, title, summary, full_content, source_name, category, image_url, url, published_at, read_time_minutes, trending, engagement_score"

// UpsertArticle inserts the article unless its canonical URL is
// already stored. A duplicate is the expected steady-state outcome of
// re-fetching a feed, reported as UpsertSkipped, never as an error.
func (s *Postgres) UpsertArticle(ctx context.Context, a domain.Article) (UpsertOutcome, error) {
	var imageURL sql.NullString
	if a.ImageURL != "" {
		imageURL = sql.NullString{String: a.ImageURL, Valid: true}
	}

	result, err := psql.Insert("articles").
		Columns("id", "title", "summary", "full_content", "source_name", "category",
			"image_url", "url", "published_at", "read_time_minutes", "trending", "engagement_score").
		Values(a.ID, a.Title, a.Summary, a.FullContent, a.SourceName, string(a.Category),
			imageURL, a.URL, a.PublishedAt, a.ReadTimeMinutes, a.Trending, a.EngagementScore).
		Suffix("ON CONFLICT (url) DO NOTHING").
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		// Overlapping runs can still race the constraint; that too is
		// a skip, not a failure.
		if isUniqueViolation(err) {
			return UpsertSkipped, nil
		}
		return UpsertSkipped, fmt.Errorf("upsert article %s: %w", a.URL, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return UpsertSkipped, fmt.Errorf("upsert article %s: rows affected: %w", a.URL, err)
	}
	if rows == 0 {
		return UpsertSkipped, nil
	}
	return UpsertInserted, nil
}

// QueryOptions filter and page the article pool. An empty Category
// means no filter.
type QueryOptions struct {
	Category string
	Limit    uint64
	Offset   uint64
}

// QueryArticles returns stored articles, newest first.
func (s *Postgres) QueryArticles(ctx context.Context, opts QueryOptions) ([]domain.Article, error) {
	builder := psql.Select(articleColumns).
		From("articles").
		OrderBy("published_at DESC")

	if opts.Category != "" && opts.Category != "all" {
		builder = builder.Where(sq.Eq{"category": opts.Category})
	}
	if opts.Limit > 0 {
		builder = builder.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		builder = builder.Offset(opts.Offset)
	}

	rows, err := builder.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// GetArticleByURL loads one article by its canonical URL.
func (s *Postgres) GetArticleByURL(ctx context.Context, url string) (domain.Article, error) {
	row := psql.Select(articleColumns).
		From("articles").
		Where(sq.Eq{"url": url}).
		RunWith(s.db).
		QueryRowContext(ctx)

	a, err := scanArticle(row)
	if err != nil {
		return domain.Article{}, fmt.Errorf("get article %s: %w", url, err)
	}
	return a, nil
}

// ArticleRef is the slim projection used to resolve interactions back
// to category and source during profile replay.
type ArticleRef struct {
	ID         string
	Category   domain.Category
	SourceName string
}

// ArticleRefs resolves a batch of article IDs.
func (s *Postgres) ArticleRefs(ctx context.Context, ids []string) (map[string]ArticleRef, error) {
	refs := make(map[string]ArticleRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, source_name FROM articles WHERE id = ANY($1)`,
		pq.StringArray(ids))
	if err != nil {
		return nil, fmt.Errorf("load article refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ref ArticleRef
		var category string
		if err := rows.Scan(&ref.ID, &category, &ref.SourceName); err != nil {
			return nil, fmt.Errorf("scan article ref: %w", err)
		}
		ref.Category = domain.Category(category)
		refs[ref.ID] = ref
	}
	return refs, rows.Err()
}

// UpdateArticleCategory is the manual correction path: an operator (or
// the classifier's correction pass) re-files a stored article.
func (s *Postgres) UpdateArticleCategory(ctx context.Context, articleID string, category domain.Category) error {
	if !domain.ValidCategory(category) {
		return fmt.Errorf("invalid category %q", category)
	}

	_, err := psql.Update("articles").
		Set("category", string(category)).
		Where(sq.Eq{"id": articleID}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("update category of %s: %w", articleID, err)
	}
	return nil
}

// MarkTrending flips the trending flag on a batch of articles.
func (s *Postgres) MarkTrending(ctx context.Context, articleIDs []string, trending bool) error {
	if len(articleIDs) == 0 {
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE articles SET trending = $1 WHERE id = ANY($2)`,
		trending, pq.StringArray(articleIDs))
	if err != nil {
		return fmt.Errorf("mark trending: %w", err)
	}
	return nil
}

// RefreshTrending recomputes the trending flag: the limit most engaged
// articles published inside the window carry it, everything else loses
// it. Runs after each ingestion.
func (s *Postgres) RefreshTrending(ctx context.Context, window time.Duration, limit int) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE articles SET trending = FALSE WHERE trending`); err != nil {
		return fmt.Errorf("clear trending: %w", err)
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE articles SET trending = TRUE
		WHERE id IN (
			SELECT id FROM articles
			WHERE published_at > $1
			ORDER BY engagement_score DESC, published_at DESC
			LIMIT $2
		)`,
		time.Now().Add(-window), limit)
	if err != nil {
		return fmt.Errorf("mark trending: %w", err)
	}
	return nil
}

// AddEngagement bumps an article's stored popularity aggregate. This
// is the global signal, distinct from any user's personal preference.
func (s *Postgres) AddEngagement(ctx context.Context, articleID string, delta float64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE articles SET engagement_score = engagement_score + $1 WHERE id = $2`,
		delta, articleID)
	if err != nil {
		return fmt.Errorf("add engagement to %s: %w", articleID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (domain.Article, error) {
	var a domain.Article
	var category string
	var imageURL sql.NullString

	err := row.Scan(&a.ID, &a.Title, &a.Summary, &a.FullContent, &a.SourceName, &category,
		&imageURL, &a.URL, &a.PublishedAt, &a.ReadTimeMinutes, &a.Trending, &a.EngagementScore)
	if err != nil {
		return domain.Article{}, err
	}

	a.Category = domain.Category(category)
	if imageURL.Valid {
		a.ImageURL = imageURL.String
	}
	return a, nil
}

func scanArticles(rows *sql.Rows) ([]domain.Article, error) {
	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
