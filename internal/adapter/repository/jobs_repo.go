package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-optimizer/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

// Save upserts the job row. With no pool configured this is a no-op so the
// service can run without a jobs database.
func (r *JobsRepo) Save(ctx context.Context, j *domain.OptimizeJob) error {
	if r.pool == nil {
		return nil
	}

	metaB, _ := json.Marshal(j.Metadata)

	_, err := r.pool.Exec(ctx, `INSERT INTO optimize_jobs (id, status, error, metadata, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, error = EXCLUDED.error, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		j.ID, j.Status, j.Error, metaB, j.CreatedAt, j.UpdatedAt)

	return err
}

// Get fetches one job by ID.
func (r *JobsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.OptimizeJob, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("jobs store not configured")
	}

	j := &domain.OptimizeJob{}
	var metaB []byte
	err := r.pool.QueryRow(ctx, `SELECT id, status, error, metadata, created_at, updated_at FROM optimize_jobs WHERE id = $1`, id).
		Scan(&j.ID, &j.Status, &j.Error, &metaB, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(metaB) > 0 {
		if err := json.Unmarshal(metaB, &j.Metadata); err != nil {
			j.Metadata = map[string]interface{}{}
		}
	}
	if j.Metadata == nil {
		j.Metadata = map[string]interface{}{}
	}
	return j, nil
}
