package repository

import (
	"context"
	"fmt"

	"emploiplus/internal/database"
	"emploiplus/internal/database/postgres"
	"emploiplus/internal/domain/job"
	"emploiplus/internal/domain/matching"
)

type JobRepository interface {
	FindByID(ctx context.Context, jobID string) (job.Job, error)
}

type JobRequirementRepository interface {
	FindByJobID(ctx context.Context, jobID string) ([]matching.Requirement, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID string) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(company_id, ''), COALESCE(title, ''), COALESCE(description, ''),
		        COALESCE(type, ''), COALESCE(location, '')
		 FROM jobs
		 WHERE id = $1`,
		jobID,
	)

	var j job.Job
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Type, &j.Location); err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("find job %s: %w", jobID, err)
	}
	return j, nil
}

type PostgresJobRequirementRepository struct {
	db database.DB
}

func NewPostgresJobRequirementRepository(db database.DB) *PostgresJobRequirementRepository {
	return &PostgresJobRequirementRepository{db: db}
}

func (r *PostgresJobRequirementRepository) FindByJobID(ctx context.Context, jobID string) ([]matching.Requirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT skill, is_required FROM job_requirements WHERE job_id = $1 ORDER BY skill ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("list job requirements %s: %w", jobID, err)
	}
	defer rows.Close()

	out := make([]matching.Requirement, 0)
	for rows.Next() {
		var req matching.Requirement
		if err := rows.Scan(&req.Skill, &req.IsRequired); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
