package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
)

// InsertInteraction appends one user action to the log. The log is
// append-only; thumbs reversal is handled at replay time, not here.
func (s *Postgres) InsertInteraction(ctx context.Context, it domain.Interaction) error {
	if !domain.ValidAction(it.Action) {
		return fmt.Errorf("invalid action %q", it.Action)
	}

	_, err := psql.Insert("interactions").
		Columns("user_id", "article_id", "action", "created_at").
		Values(it.UserID, it.ArticleID, string(it.Action), it.CreatedAt).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// ListInteractions returns a user's actions oldest first, the order
// profile replay depends on.
func (s *Postgres) ListInteractions(ctx context.Context, userID string) ([]domain.Interaction, error) {
	rows, err := psql.Select("user_id", "article_id", "action", "created_at").
		From("interactions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "id ASC").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interactions of %s: %w", userID, err)
	}
	defer rows.Close()

	var interactions []domain.Interaction
	for rows.Next() {
		var it domain.Interaction
		var action string
		if err := rows.Scan(&it.UserID, &it.ArticleID, &action, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		it.Action = domain.Action(action)
		interactions = append(interactions, it)
	}
	return interactions, rows.Err()
}
