package jobs

import (
	"context"
	"net/http"
	"time"

	"github.com/frencoae/upwork-responder/internal/models"

	"go.uber.org/zap"
)

// UpworkClient will talk to the Upwork marketplace API once the OAuth flow
// is wired. Until then every search returns an empty result so callers fall
// back to the curated catalog.
type UpworkClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewUpworkClient(baseURL, accessToken string, timeout time.Duration, logger *zap.Logger) *UpworkClient {
	return &UpworkClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

func (c *UpworkClient) Search(_ context.Context, params SearchParams) ([]models.JobPosting, error) {
	// TODO: call the marketplace search endpoint once OAuth credentials
	// can be refreshed; requires the token exchange from the account
	// linking flow.
	c.logger.Debug("upwork search skipped, integration not active",
		zap.String("query", params.Query),
		zap.String("category", params.Category),
	)
	return []models.JobPosting{}, nil
}
