package sqlstore

import (
	"context"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/repository"
)

var _ repository.CatalogRepository = (*DB)(nil)

// ListQuestionsByCategory returns the whole question catalog grouped by
// category id. The catalog is small (a few dozen rows) and read on every
// call; nothing is cached.
func (db *DB) ListQuestionsByCategory(ctx context.Context) (map[int64][]model.Question, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, category_id, text FROM questions ORDER BY category_id, id`)
	if err != nil {
		return nil, apperror.Storage("listing questions", err)
	}
	defer rows.Close()

	byCategory := make(map[int64][]model.Question)
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.CategoryID, &q.Text); err != nil {
			return nil, apperror.Storage("scanning question", err)
		}
		byCategory[q.CategoryID] = append(byCategory[q.CategoryID], q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("iterating questions", err)
	}

	return byCategory, nil
}

// MissingQuestionIDs returns the members of ids that are not in the
// catalog, in first-seen order without duplicates.
func (db *DB) MissingQuestionIDs(ctx context.Context, ids []int64) ([]int64, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, nil
	}

	args := make([]any, len(unique))
	for i, id := range unique {
		args[i] = id
	}

	rows, err := db.conn.QueryContext(ctx, db.rebind(
		`SELECT id FROM questions WHERE id IN (`+placeholders(len(unique))+`)`), args...)
	if err != nil {
		return nil, apperror.Storage("checking question ids", err)
	}
	defer rows.Close()

	found := make(map[int64]bool, len(unique))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.Storage("scanning question id", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("iterating question ids", err)
	}

	var missing []int64
	for _, id := range unique {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// ListRecommendations returns every recommendation for color, by id.
func (db *DB) ListRecommendations(ctx context.Context, color model.Color) ([]model.Recommendation, error) {
	rows, err := db.conn.QueryContext(ctx, db.rebind(
		`SELECT id, color_id, action, detail FROM recommendations WHERE color_id = ? ORDER BY id`),
		int(color),
	)
	if err != nil {
		return nil, apperror.Storage("listing recommendations", err)
	}
	defer rows.Close()

	recs := []model.Recommendation{}
	for rows.Next() {
		var (
			r       model.Recommendation
			colorID int
		)
		if err := rows.Scan(&r.ID, &colorID, &r.Action, &r.Detail); err != nil {
			return nil, apperror.Storage("scanning recommendation", err)
		}
		r.Color = model.Color(colorID)
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("iterating recommendations", err)
	}

	return recs, nil
}
