package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/frencoae/upwork-responder/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, name, company_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		RETURNING id
	`

	var id int64
	err := s.sess.
		SelectBySql(query, user.Email, user.Password, user.Name, user.CompanyName).
		LoadOneContext(ctx, &id)
	if err != nil {
		s.logger.Error("failed to create user",
			zap.String("email", user.Email),
			zap.Error(err),
		)
		return fmt.Errorf("create user: %w", err)
	}

	user.ID = id

	s.logger.Info("user created",
		zap.Int64("user_id", id),
		zap.String("email", user.Email),
	)

	return nil
}

func (s *Store) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User

	err := s.sess.
		Select("*").
		From("users").
		Where("id = ?", userID).
		LoadOneContext(ctx, &user)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := s.sess.
		Select("*").
		From("users").
		Where("email = ?", email).
		LoadOneContext(ctx, &user)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("users").
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	_, err := s.sess.
		Select("*").
		From("users").
		OrderBy("id").
		LoadContext(ctx, &users)

	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID int64, name, companyName string) error {
	_, err := s.sess.
		Update("users").
		Set("name", name).
		Set("company_name", companyName).
		Set("updated_at", time.Now()).
		Where("id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update profile",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info("profile updated", zap.Int64("user_id", userID))
	return nil
}

func (s *Store) UpdateTimezone(ctx context.Context, userID int64, timezone string) error {
	_, err := s.sess.
		Update("users").
		Set("timezone", timezone).
		Set("updated_at", time.Now()).
		Where("id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update timezone",
			zap.Int64("user_id", userID),
			zap.String("timezone", timezone),
			zap.Error(err),
		)
		return fmt.Errorf("update timezone: %w", err)
	}

	s.logger.Info("timezone updated",
		zap.Int64("user_id", userID),
		zap.String("timezone", timezone),
	)

	return nil
}

func (s *Store) UpdateProfilePhoto(ctx context.Context, userID int64, photo string) error {
	_, err := s.sess.
		Update("users").
		Set("profile_photo", photo).
		Set("updated_at", time.Now()).
		Where("id = ?", userID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update profile photo",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("update profile photo: %w", err)
	}

	s.logger.Info("profile photo updated", zap.Int64("user_id", userID))
	return nil
}
