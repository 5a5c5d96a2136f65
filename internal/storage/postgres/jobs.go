package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/frencoae/upwork-responder/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

func (s *Store) CacheJob(ctx context.Context, job *models.CachedJob) error {
	// plain SQL via InsertBySql for ON CONFLICT
	query := `
		INSERT INTO jobs_cache (id, title, category, budget, raw_data, cached_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title     = EXCLUDED.title,
			category  = EXCLUDED.category,
			budget    = EXCLUDED.budget,
			raw_data  = EXCLUDED.raw_data,
			cached_at = EXCLUDED.cached_at
	`

	_, err := s.sess.
		InsertBySql(query,
			job.ID,
			job.Title,
			job.Category,
			job.Budget,
			job.RawData,
			time.Now(),
		).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to cache job",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
		return fmt.Errorf("cache job: %w", err)
	}

	return nil
}

func (s *Store) MarkJobSeen(ctx context.Context, userID int64, jobID string) error {
	query := `
		INSERT INTO user_seen_jobs (user_id, job_id, seen_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (user_id, job_id) DO NOTHING
	`

	_, err := s.sess.
		InsertBySql(query, userID, jobID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to mark job as seen",
			zap.Int64("user_id", userID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return fmt.Errorf("mark job as seen: %w", err)
	}

	return nil
}

// GetUnseenJobs returns job ids the user has not been shown yet.
func (s *Store) GetUnseenJobs(ctx context.Context, userID int64, jobIDs []string) ([]string, error) {
	if len(jobIDs) == 0 {
		return []string{}, nil
	}

	query := `
		SELECT unnest(?::text[]) AS id
		EXCEPT
		SELECT job_id FROM user_seen_jobs WHERE user_id = ?
	`

	var unseenIDs []string

	rows, err := s.sess.
		SelectBySql(query, pq.Array(jobIDs), userID).
		Rows()

	if err != nil {
		s.logger.Error("failed to get unseen jobs",
			zap.Int64("user_id", userID),
			zap.Int("total_jobs", len(jobIDs)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get unseen jobs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			s.logger.Error("failed to scan job id",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("scan job id: %w", err)
		}
		unseenIDs = append(unseenIDs, id)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error("failed during rows iteration",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	s.logger.Debug("unseen jobs",
		zap.Int64("user_id", userID),
		zap.Int("total", len(jobIDs)),
		zap.Int("unseen", len(unseenIDs)),
	)

	return unseenIDs, nil
}

func (s *Store) CleanOldJobsCache(ctx context.Context, daysOld int) (int64, error) {
	result, err := s.sess.
		DeleteFrom("jobs_cache").
		Where("cached_at < NOW() - INTERVAL '? days'", daysOld).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to clean old jobs cache",
			zap.Int("days_old", daysOld),
			zap.Error(err),
		)
		return 0, fmt.Errorf("clean old jobs cache: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	s.logger.Info("old cached jobs cleaned",
		zap.Int("days_old", daysOld),
		zap.Int64("count", rowsAffected),
	)

	return rowsAffected, nil
}
