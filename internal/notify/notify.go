// Package notify pushes job-feed digests to the user outside the web UI.
package notify

import (
	"context"

	"github.com/frencoae/upwork-responder/internal/models"
)

// Notifier delivers a digest of newly matched jobs.
type Notifier interface {
	NotifyNewJobs(ctx context.Context, user *models.User, jobs []models.JobPosting) error
}

// Nop is used when no notification channel is configured.
type Nop struct{}

func NewNop() *Nop {
	return &Nop{}
}

func (n *Nop) NotifyNewJobs(_ context.Context, _ *models.User, _ []models.JobPosting) error {
	return nil
}
