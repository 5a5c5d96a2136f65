package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/frencoae/upwork-responder/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// GetPromptSettings returns the raw jsonb columns for a user, or nil when no
// record exists. Defaulting of missing substructures happens in the settings
// resolver, not here.
func (s *Store) GetPromptSettings(ctx context.Context, userID int64) (*models.StoredSettings, error) {
	var stored models.StoredSettings

	err := s.sess.
		Select("basic_info", "validation_rules", "proposal_templates", "ai_settings").
		From("prompt_settings").
		Where("user_id = ?", userID).
		LoadOneContext(ctx, &stored)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get prompt settings",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get prompt settings: %w", err)
	}

	return &stored, nil
}

func (s *Store) SavePromptSettings(ctx context.Context, userID int64, settings models.PromptSettings) error {
	basicInfo, err := json.Marshal(settings.BasicInfo)
	if err != nil {
		return fmt.Errorf("marshal basic info: %w", err)
	}
	validationRules, err := json.Marshal(settings.ValidationRules)
	if err != nil {
		return fmt.Errorf("marshal validation rules: %w", err)
	}
	proposalTemplates, err := json.Marshal(settings.ProposalTemplates)
	if err != nil {
		return fmt.Errorf("marshal proposal templates: %w", err)
	}
	aiSettings, err := json.Marshal(settings.AISettings)
	if err != nil {
		return fmt.Errorf("marshal ai settings: %w", err)
	}

	query := `
		INSERT INTO prompt_settings (
			user_id, basic_info, validation_rules, proposal_templates,
			ai_settings, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			basic_info         = EXCLUDED.basic_info,
			validation_rules   = EXCLUDED.validation_rules,
			proposal_templates = EXCLUDED.proposal_templates,
			ai_settings        = EXCLUDED.ai_settings,
			updated_at         = NOW()
	`

	_, err = s.sess.
		InsertBySql(query,
			userID,
			models.RawJSON(basicInfo),
			models.RawJSON(validationRules),
			models.RawJSON(proposalTemplates),
			models.RawJSON(aiSettings),
		).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to save prompt settings",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("save prompt settings: %w", err)
	}

	s.logger.Info("prompt settings saved", zap.Int64("user_id", userID))
	return nil
}
