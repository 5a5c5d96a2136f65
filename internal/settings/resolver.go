// Package settings resolves per-user prompt settings against the documented
// defaults.
package settings

import (
	"context"
	"encoding/json"

	"github.com/frencoae/upwork-responder/internal/models"

	"go.uber.org/zap"
)

// Store is the slice of the settings persistence the resolver needs.
type Store interface {
	GetPromptSettings(ctx context.Context, userID int64) (*models.StoredSettings, error)
	SavePromptSettings(ctx context.Context, userID int64, s models.PromptSettings) error
}

// Input is the settings payload as submitted by the user. Nil substructures
// were omitted from the request and fall back to the defaults wholesale.
type Input struct {
	BasicInfo         *models.BasicInfo         `json:"basicInfo"`
	ValidationRules   *models.ValidationRules   `json:"validationRules"`
	ProposalTemplates []models.ProposalTemplate `json:"proposalTemplates"`
	AISettings        *models.AISettings        `json:"aiSettings"`
}

type Resolver struct {
	store  Store
	logger *zap.Logger
}

func NewResolver(store Store, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  store,
		logger: logger,
	}
}

// Resolve loads the user's prompt settings. A missing record, a missing
// substructure or a read failure all fall back to the defaults; the caller
// always receives a usable configuration. No field-level deep merge: either
// a whole substructure was stored, or the default is used.
func (r *Resolver) Resolve(ctx context.Context, userID int64) models.PromptSettings {
	resolved := models.DefaultPromptSettings()

	stored, err := r.store.GetPromptSettings(ctx, userID)
	if err != nil {
		r.logger.Warn("failed to load prompt settings, using defaults",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return resolved
	}

	if stored == nil {
		return resolved
	}

	var basicInfo models.BasicInfo
	if unmarshalInto(stored.BasicInfo, &basicInfo) {
		resolved.BasicInfo = basicInfo
	}

	var rules models.ValidationRules
	if unmarshalInto(stored.ValidationRules, &rules) {
		resolved.ValidationRules = rules
	}

	var aiSettings models.AISettings
	if unmarshalInto(stored.AISettings, &aiSettings) {
		resolved.AISettings = aiSettings
	}

	var templates []models.ProposalTemplate
	if unmarshalInto(stored.ProposalTemplates, &templates) && len(templates) > 0 {
		resolved.ProposalTemplates = templates
	}

	return resolved
}

// Save merges the submitted substructures with the defaults and upserts the
// record. A persistence failure is logged but never surfaced: settings save
// must not break the caller (intentional policy, asymmetric with proposal
// persistence).
func (r *Resolver) Save(ctx context.Context, userID int64, in Input) {
	merged := models.DefaultPromptSettings()

	if in.BasicInfo != nil {
		merged.BasicInfo = *in.BasicInfo
	}
	if in.ValidationRules != nil {
		merged.ValidationRules = *in.ValidationRules
	}
	if len(in.ProposalTemplates) > 0 {
		merged.ProposalTemplates = in.ProposalTemplates
	}
	if in.AISettings != nil {
		merged.AISettings = *in.AISettings
	}

	if err := r.store.SavePromptSettings(ctx, userID, merged); err != nil {
		r.logger.Warn("prompt settings save failed, reporting success anyway",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return
	}

	r.logger.Info("prompt settings saved", zap.Int64("user_id", userID))
}

func unmarshalInto(raw models.RawJSON, dest interface{}) bool {
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}
