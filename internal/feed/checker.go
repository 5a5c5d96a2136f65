// Package feed runs the background job-feed checker: it periodically
// searches the catalog with each user's keyword expression, diffs against
// already-seen jobs and pushes a digest of new matches.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/frencoae/upwork-responder/internal/jobs"
	"github.com/frencoae/upwork-responder/internal/models"
	"github.com/frencoae/upwork-responder/internal/notify"
	"github.com/frencoae/upwork-responder/internal/settings"
	"github.com/frencoae/upwork-responder/internal/storage/postgres"
	"github.com/frencoae/upwork-responder/internal/storage/redis"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobsCacheRetentionDays = 30

type Checker struct {
	store    *postgres.Store
	cache    *redis.Cache
	catalog  jobs.Catalog
	resolver *settings.Resolver
	notifier notify.Notifier
	cron     *cron.Cron
	spec     string
	maxJobs  int
	logger   *zap.Logger
}

func New(
	store *postgres.Store,
	cache *redis.Cache,
	catalog jobs.Catalog,
	resolver *settings.Resolver,
	notifier notify.Notifier,
	interval time.Duration,
	maxJobs int,
	logger *zap.Logger,
) *Checker {
	return &Checker{
		store:    store,
		cache:    cache,
		catalog:  catalog,
		resolver: resolver,
		notifier: notifier,
		cron:     cron.New(),
		spec:     fmt.Sprintf("@every %s", interval),
		maxJobs:  maxJobs,
		logger:   logger,
	}
}

// Start registers the cron entries and runs one check immediately so the
// feed is warm without waiting for the first tick.
func (c *Checker) Start(ctx context.Context) error {
	if _, err := c.cron.AddFunc(c.spec, func() {
		c.checkAllUsers(ctx)
	}); err != nil {
		return fmt.Errorf("register feed check: %w", err)
	}

	if _, err := c.cron.AddFunc("@daily", func() {
		c.housekeeping(ctx)
	}); err != nil {
		return fmt.Errorf("register housekeeping: %w", err)
	}

	c.cron.Start()
	c.logger.Info("feed checker started", zap.String("spec", c.spec))

	go c.checkAllUsers(ctx)

	return nil
}

func (c *Checker) Stop() {
	c.cron.Stop()
	c.logger.Info("feed checker stopped")
}

func (c *Checker) checkAllUsers(ctx context.Context) {
	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	users, err := c.store.ListUsers(dbCtx)
	if err != nil {
		c.logger.Error("failed to list users for feed check", zap.Error(err))
		return
	}

	if len(users) == 0 {
		c.logger.Debug("no users to check")
		return
	}

	for _, user := range users {
		if err := c.checkUser(dbCtx, &user); err != nil {
			c.logger.Error("failed to check feed for user",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
	}
}

func (c *Checker) checkUser(ctx context.Context, user *models.User) error {
	resolved := c.resolver.Resolve(ctx, user.ID)

	postings, err := c.catalog.Search(ctx, jobs.SearchParams{})
	if err != nil {
		return fmt.Errorf("search catalog: %w", err)
	}

	matched := jobs.FilterByKeywords(postings, resolved.BasicInfo.Keywords)
	if len(matched) == 0 {
		c.logger.Debug("no matching jobs", zap.Int64("user_id", user.ID))
		return nil
	}

	ids := make([]string, len(matched))
	for i, job := range matched {
		ids[i] = job.ID
	}

	unseenIDs, err := c.store.GetUnseenJobs(ctx, user.ID, ids)
	if err != nil {
		return fmt.Errorf("get unseen jobs: %w", err)
	}

	if len(unseenIDs) == 0 {
		c.logger.Debug("no new jobs", zap.Int64("user_id", user.ID))
		return nil
	}

	unseen := make(map[string]bool, len(unseenIDs))
	for _, id := range unseenIDs {
		unseen[id] = true
	}

	var newJobs []models.JobPosting
	for _, job := range matched {
		if unseen[job.ID] {
			newJobs = append(newJobs, job)
		}
	}

	// Cap the digest; the rest stays unseen and surfaces on a later check.
	if c.maxJobs > 0 && len(newJobs) > c.maxJobs {
		newJobs = newJobs[:c.maxJobs]
	}

	if err := c.cache.SetFeedResults(ctx, user.ID, newJobs); err != nil {
		c.logger.Warn("failed to cache feed results",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}

	for _, job := range newJobs {
		c.rememberJob(ctx, user.ID, job)
	}

	if err := c.notifier.NotifyNewJobs(ctx, user, newJobs); err != nil {
		c.logger.Error("failed to notify about new jobs",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}

	c.logger.Info("new jobs found for user",
		zap.Int64("user_id", user.ID),
		zap.Int("count", len(newJobs)),
	)

	return nil
}

func (c *Checker) rememberJob(ctx context.Context, userID int64, job models.JobPosting) {
	raw, err := json.Marshal(job)
	if err != nil {
		c.logger.Error("failed to marshal job", zap.String("job_id", job.ID), zap.Error(err))
		return
	}

	cached := &models.CachedJob{
		ID:       job.ID,
		Title:    job.Title,
		Category: job.Category,
		Budget:   job.Budget,
		RawData:  models.RawJSON(raw),
	}

	if err := c.store.CacheJob(ctx, cached); err != nil {
		c.logger.Error("failed to cache job",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
	}

	if err := c.store.MarkJobSeen(ctx, userID, job.ID); err != nil {
		c.logger.Error("failed to mark job as seen",
			zap.Int64("user_id", userID),
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
	}
}

func (c *Checker) housekeeping(ctx context.Context) {
	dbCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if _, err := c.store.CleanOldJobsCache(dbCtx, jobsCacheRetentionDays); err != nil {
		c.logger.Error("jobs cache cleanup failed", zap.Error(err))
	}

	if _, err := c.store.DeleteExpiredSessions(dbCtx); err != nil {
		c.logger.Error("session cleanup failed", zap.Error(err))
	}
}
