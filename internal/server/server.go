// Package server exposes the HTTP API: auth, proposal pipeline, prompt
// settings, the job feed and profile management.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/frencoae/upwork-responder/internal/jobs"
	"github.com/frencoae/upwork-responder/internal/models"
	"github.com/frencoae/upwork-responder/internal/proposal"
	"github.com/frencoae/upwork-responder/internal/settings"

	"go.uber.org/zap"
)

// Identity resolves and manages user sessions.
type Identity interface {
	SignUp(ctx context.Context, email, password, name, companyName string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
	SessionTTL() time.Duration
}

// ProposalStore is the slice of persistence the proposal handlers need.
type ProposalStore interface {
	UpsertProposal(ctx context.Context, p *models.Proposal) (int64, bool, error)
	MarkProposalSent(ctx context.Context, userID int64, jobID, jobTitle, editedText, originalText string) (int64, bool, error)
	ListProposals(ctx context.Context, userID int64) ([]models.Proposal, error)
	InsertProposalEdit(ctx context.Context, edit *models.ProposalEdit) error
}

// UserStore is the slice of persistence the profile handlers need.
type UserStore interface {
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, companyName string) error
	UpdateTimezone(ctx context.Context, userID int64, timezone string) error
	UpdateProfilePhoto(ctx context.Context, userID int64, photo string) error
}

// RateLimiter counts requests per client within the current window.
type RateLimiter interface {
	IncrementRateLimit(ctx context.Context, clientKey string) (int64, error)
}

// Deps wires the server's collaborators.
type Deps struct {
	Auth      Identity
	Proposals ProposalStore
	Users     UserStore
	Limiter   RateLimiter
	Resolver  *settings.Resolver
	Generator *proposal.Generator
	Tagger    proposal.PatternTagger
	Catalog   jobs.Catalog
	UploadDir string
}

type Server struct {
	auth      Identity
	proposals ProposalStore
	users     UserStore
	limiter   RateLimiter
	resolver  *settings.Resolver
	generator *proposal.Generator
	tagger    proposal.PatternTagger
	catalog   jobs.Catalog
	uploadDir string
	logger    *zap.Logger
	http      *http.Server
}

func New(addr string, deps Deps, logger *zap.Logger) *Server {
	s := &Server{
		auth:      deps.Auth,
		proposals: deps.Proposals,
		users:     deps.Users,
		limiter:   deps.Limiter,
		resolver:  deps.Resolver,
		generator: deps.Generator,
		tagger:    deps.Tagger,
		catalog:   deps.Catalog,
		uploadDir: deps.UploadDir,
		logger:    logger,
	}

	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.recovery(s.requestLogger(s.rateLimit(s.routes()))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/auth", s.handleCurrentUser)
	mux.HandleFunc("POST /api/auth", s.handleAuthAction)
	mux.HandleFunc("DELETE /api/auth", s.handleLogout)

	mux.HandleFunc("POST /api/proposals/generate", s.requireAuth(s.handleGenerateProposal))
	mux.HandleFunc("POST /api/proposals/save", s.requireAuth(s.handleSaveProposal))
	mux.HandleFunc("POST /api/proposals/send", s.requireAuth(s.handleSendProposal))
	mux.HandleFunc("GET /api/proposals", s.requireAuth(s.handleListProposals))

	mux.HandleFunc("GET /api/prompts", s.requireAuth(s.handleGetPrompts))
	mux.HandleFunc("POST /api/prompts", s.requireAuth(s.handleSavePrompts))

	mux.HandleFunc("GET /api/jobs", s.requireAuth(s.handleListJobs))

	mux.HandleFunc("POST /api/users/update-profile", s.requireAuth(s.handleUpdateProfile))
	mux.HandleFunc("POST /api/users/update-timezone", s.requireAuth(s.handleUpdateTimezone))
	mux.HandleFunc("POST /api/users/upload-photo", s.requireAuth(s.handleUploadPhoto))
	mux.HandleFunc("DELETE /api/users/upload-photo", s.requireAuth(s.handleRemovePhoto))

	return mux
}

// Start runs the listener until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.logger.Info("shutting down http server")
		return s.http.Shutdown(shutdownCtx)
	}
}
