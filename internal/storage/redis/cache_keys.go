package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/frencoae/upwork-responder/internal/models"
)

const (
	SessionCacheTTL    = 15 * time.Minute
	RateLimitWindowTTL = 1 * time.Minute
	FeedCacheTTL       = 5 * time.Minute
)

func SessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func RateLimitKey(clientKey string) string {
	return fmt.Sprintf("ratelimit:%s", clientKey)
}

func FeedKey(userID int64) string {
	return fmt.Sprintf("feed:user:%d", userID)
}

// CacheSessionUser stores a resolved session → user lookup so most requests
// skip the sessions table. Entries expire well before the session itself.
func (c *Cache) CacheSessionUser(ctx context.Context, token string, user *models.User) error {
	return c.Set(ctx, SessionKey(token), user, SessionCacheTTL)
}

func (c *Cache) GetSessionUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.Get(ctx, SessionKey(token), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Cache) DeleteSessionUser(ctx context.Context, token string) error {
	return c.Delete(ctx, SessionKey(token))
}

func (c *Cache) IncrementRateLimit(ctx context.Context, clientKey string) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(clientKey), RateLimitWindowTTL)
}

func (c *Cache) SetFeedResults(ctx context.Context, userID int64, jobs []models.JobPosting) error {
	return c.Set(ctx, FeedKey(userID), jobs, FeedCacheTTL)
}

func (c *Cache) GetFeedResults(ctx context.Context, userID int64) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := c.Get(ctx, FeedKey(userID), &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Cache) InvalidateFeed(ctx context.Context, userID int64) error {
	return c.Delete(ctx, FeedKey(userID))
}
