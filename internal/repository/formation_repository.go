package repository

import (
	"context"
	"fmt"
	"strings"

	"emploiplus/internal/database"
	"emploiplus/internal/domain/roadmap"

	sq "github.com/Masterminds/squirrel"
)

type FormationRepository interface {
	SearchPublished(ctx context.Context, term string, limit int) ([]roadmap.Formation, error)
}

type PostgresFormationRepository struct {
	db database.DB
}

func NewPostgresFormationRepository(db database.DB) *PostgresFormationRepository {
	return &PostgresFormationRepository{db: db}
}

func formationSearchQuery(term string, limit int) (string, []any, error) {
	like := "%" + escapeLike(term) + "%"
	return psql.Select(
		"id",
		"title",
		"COALESCE(description, '')",
		"COALESCE(category, '')",
		"COALESCE(provider, '')",
		"COALESCE(url, '')",
	).
		From("formations").
		Where(sq.Eq{"published": true}).
		Where(sq.Or{
			sq.ILike{"title": like},
			sq.ILike{"description": like},
			sq.ILike{"category": like},
		}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func (r *PostgresFormationRepository) SearchPublished(ctx context.Context, term string, limit int) ([]roadmap.Formation, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []roadmap.Formation{}, nil
	}
	if limit <= 0 {
		limit = roadmap.MaxSuggestions
	}

	query, args, err := formationSearchQuery(term, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search formations %q: %w", term, err)
	}
	defer rows.Close()

	out := make([]roadmap.Formation, 0, limit)
	for rows.Next() {
		var f roadmap.Formation
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.Category, &f.Provider, &f.URL); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// escapeLike keeps % and _ in a skill name ("c#", "ci/cd") from acting as wildcards.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
