package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Store struct {
	conn   *dbr.Connection
	sess   *dbr.Session
	logger *zap.Logger
}

func New(dsn string, logger *zap.Logger) (*Store, error) {
	conn, err := dbr.Open("postgres", dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// set up connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sess := conn.NewSession(nil)

	logger.Info("successfully connected to PostgreSQL")

	return &Store{
		conn:   conn,
		sess:   sess,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *Store) Session() *dbr.Session {
	return s.sess
}

func (s *Store) BeginTx(ctx context.Context) (*dbr.Tx, error) {
	return s.sess.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
}

// Migrate creates the schema. The unique (user_id, job_id) constraint on
// proposals backs the atomic upsert: concurrent saves for the same job can
// never produce two rows.
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL DEFAULT '',
			company_name VARCHAR(255) NOT NULL DEFAULT '',
			timezone VARCHAR(100) NOT NULL DEFAULT 'UTC',
			profile_photo TEXT,
			subscription_plan VARCHAR(50) NOT NULL DEFAULT 'Trial',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token VARCHAR(500) UNIQUE NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS proposals (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			job_id VARCHAR(255) NOT NULL,
			job_title TEXT NOT NULL DEFAULT '',
			job_description TEXT NOT NULL DEFAULT '',
			client_info JSONB,
			budget VARCHAR(255) NOT NULL DEFAULT 'Not specified',
			skills TEXT[] NOT NULL DEFAULT '{}',
			generated_proposal TEXT NOT NULL DEFAULT '',
			edited_proposal TEXT,
			status VARCHAR(50) NOT NULL DEFAULT 'draft',
			ai_model VARCHAR(100),
			temperature DECIMAL(3,2),
			sent_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, job_id)
		)`,
		`CREATE TABLE IF NOT EXISTS proposal_edits (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			job_id VARCHAR(255) NOT NULL,
			original_proposal TEXT NOT NULL,
			edited_proposal TEXT NOT NULL,
			edit_reason TEXT NOT NULL DEFAULT '',
			learned_patterns TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS prompt_settings (
			id SERIAL PRIMARY KEY,
			user_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			basic_info JSONB,
			validation_rules JSONB,
			proposal_templates JSONB,
			ai_settings JSONB,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS jobs_cache (
			id VARCHAR(255) PRIMARY KEY,
			title TEXT NOT NULL,
			category VARCHAR(255) NOT NULL DEFAULT '',
			budget VARCHAR(255) NOT NULL DEFAULT '',
			raw_data JSONB,
			cached_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_seen_jobs (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			job_id VARCHAR(255) NOT NULL,
			seen_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, job_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			s.logger.Error("migration statement failed", zap.Error(err))
			return fmt.Errorf("migrate: %w", err)
		}
	}

	s.logger.Info("database schema ready")
	return nil
}
