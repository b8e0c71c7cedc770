package repository

import (
	"context"
	"fmt"

	"emploiplus/internal/database"
	"emploiplus/internal/database/postgres"
	"emploiplus/internal/domain/skill"
	"emploiplus/internal/domain/user"

	sq "github.com/Masterminds/squirrel"
)

type ProfileRepository interface {
	FindProfile(ctx context.Context, userID string) (user.Profile, error)
	ListActiveCandidates(ctx context.Context) ([]user.Profile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// experience_years replaced years_experience; older rows only carry the latter.
const profileColumns = `id,
	COALESCE(skills::text, ''),
	COALESCE(experience_years, years_experience, 0),
	COALESCE(qualification, ''),
	COALESCE(location, '')`

func (r *PostgresProfileRepository) FindProfile(ctx context.Context, userID string) (user.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM users WHERE id = $1`, userID)

	p, err := scanProfile(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, fmt.Errorf("find profile %s: %w", userID, err)
	}
	return p, nil
}

func candidatesQuery() (string, []any, error) {
	return psql.Select(profileColumns).
		From("users").
		Where(sq.Eq{"role": "candidate", "is_active": true}).
		OrderBy("created_at DESC").
		ToSql()
}

func (r *PostgresProfileRepository) ListActiveCandidates(ctx context.Context) ([]user.Profile, error) {
	query, args, err := candidatesQuery()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	out := make([]user.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProfile(row database.Row) (user.Profile, error) {
	var p user.Profile
	var rawSkills string
	if err := row.Scan(&p.ID, &rawSkills, &p.ExperienceYears, &p.Qualification, &p.Location); err != nil {
		return user.Profile{}, err
	}
	p.Skills = skill.ParseList(rawSkills)
	return p, nil
}
