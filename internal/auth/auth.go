// Package auth manages the single user account and its sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/frencoae/upwork-responder/internal/models"
	"github.com/frencoae/upwork-responder/internal/storage/postgres"
	"github.com/frencoae/upwork-responder/internal/storage/redis"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	// ErrSingleUser rejects a second signup: this application serves
	// exactly one registered account.
	ErrSingleUser = errors.New("this application is for single user only, please login with the existing account")

	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Manager struct {
	store      *postgres.Store
	cache      *redis.Cache
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewManager(store *postgres.Store, cache *redis.Cache, sessionTTL time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		store:      store,
		cache:      cache,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// SignUp creates the account and an initial session. Fails with
// ErrSingleUser when any account already exists.
func (m *Manager) SignUp(ctx context.Context, email, password, name, companyName string) (*models.User, string, error) {
	email = normalizeEmail(email)

	count, err := m.store.CountUsers(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil, "", ErrSingleUser
	}

	existing, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:       email,
		Password:    string(hashed),
		Name:        name,
		CompanyName: companyName,
	}

	if err := m.store.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := m.createSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	m.logger.Info("account created",
		zap.Int64("user_id", user.ID),
		zap.String("email", email),
	)

	return user, token, nil
}

func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := m.store.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := m.createSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	m.logger.Info("user logged in", zap.Int64("user_id", user.ID))

	return user, token, nil
}

// CurrentUser resolves a session token to its user, or (nil, nil) when the
// token is missing, unknown or expired. A Redis lookaside cache fronts the
// sessions table; cache failures degrade to the database read.
func (m *Manager) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	if user, err := m.cache.GetSessionUser(ctx, token); err == nil {
		return user, nil
	}

	session, err := m.store.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	user, err := m.store.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if err := m.cache.CacheSessionUser(ctx, token, user); err != nil {
		m.logger.Warn("failed to cache session user", zap.Error(err))
	}

	return user, nil
}

func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := m.cache.DeleteSessionUser(ctx, token); err != nil {
		m.logger.Warn("failed to evict session cache", zap.Error(err))
	}

	return m.store.DeleteSession(ctx, token)
}

// SessionTTL reports how long issued sessions live; the HTTP layer uses it
// for the cookie max-age.
func (m *Manager) SessionTTL() time.Duration {
	return m.sessionTTL
}

func (m *Manager) createSession(ctx context.Context, user *models.User) (string, error) {
	token := uuid.NewString() + uuid.NewString()

	session := &models.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(m.sessionTTL),
	}

	if err := m.store.CreateSession(ctx, session); err != nil {
		return "", err
	}

	if err := m.cache.CacheSessionUser(ctx, token, user); err != nil {
		m.logger.Warn("failed to cache new session", zap.Error(err))
	}

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
