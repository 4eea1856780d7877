package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"filesolved/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobRepo implements ports.JobRepository.
type JobRepo struct {
	pool Pool
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(pool Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

const jobColumns = `id, order_id, type, status, priority, attempts, max_attempts,
	error_message, started_at, completed_at, created_at`

// Create inserts a new job.
func (r *JobRepo) Create(ctx context.Context, j *domain.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := r.pool.Exec(ctx, query,
		j.JobID, j.OrderID, string(j.Type), string(j.Status), j.Priority,
		j.Attempts, j.MaxAttempts, j.ErrorMessage, j.StartedAt, j.CompletedAt, j.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID fetches a job by its UUID. Returns (nil, nil) when absent.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	j, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job by id: %w", err)
	}
	return j, nil
}

// LatestByOrder returns the most recently created job for an order, or
// (nil, nil) when the order has none.
func (r *JobRepo) LatestByOrder(ctx context.Context, orderID uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE order_id = $1 ORDER BY created_at DESC LIMIT 1`

	j, err := scanJob(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest job by order: %w", err)
	}
	return j, nil
}

// MarkCompleted closes a job successfully. Attempts count failures only, so
// a clean run leaves the counter untouched.
func (r *JobRepo) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE jobs SET status = 'completed', completed_at = $1
		WHERE id = $2`

	if _, err := r.pool.Exec(ctx, query, at, id); err != nil {
		return fmt.Errorf("mark job completed: %w", err)
	}
	return nil
}

// MarkFailed records the error and increments the attempts counter.
func (r *JobRepo) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `UPDATE jobs SET status = 'failed', error_message = $1, attempts = attempts + 1
		WHERE id = $2`

	if _, err := r.pool.Exec(ctx, query, errorMessage, id); err != nil {
		return fmt.Errorf("mark job failed: %w", err)
	}
	return nil
}

// List returns jobs newest first, optionally filtered by status.
func (r *JobRepo) List(ctx context.Context, status *domain.JobStatus, limit int) ([]domain.Job, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var (
		rows pgx.Rows
		err  error
	)
	if status != nil {
		query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1
			ORDER BY created_at DESC LIMIT $2`
		rows, err = r.pool.Query(ctx, query, string(*status), limit)
	} else {
		query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC LIMIT $1`
		rows, err = r.pool.Query(ctx, query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	j := &domain.Job{}
	var jobType, status string
	err := row.Scan(
		&j.JobID, &j.OrderID, &jobType, &status, &j.Priority, &j.Attempts,
		&j.MaxAttempts, &j.ErrorMessage, &j.StartedAt, &j.CompletedAt, &j.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.Type = domain.JobType(jobType)
	j.Status = domain.JobStatus(status)
	return j, nil
}
