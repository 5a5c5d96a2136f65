package postgres

import (
	"context"
	"fmt"

	"github.com/frencoae/upwork-responder/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// statusRankSQL orders the proposal lifecycle inside the upsert so that a
// backward transition (e.g. sent → saved) keeps the existing status instead
// of regressing it. The ordering mirrors proposal.Status.
const statusRankSQL = `ARRAY['draft','generated','saved','sent']`

type upsertRow struct {
	ID       int64 `db:"id"`
	Inserted bool  `db:"inserted"`
}

// UpsertProposal writes the draft for (user_id, job_id) in one atomic
// statement. The unique constraint plus ON CONFLICT guarantees exactly one
// row per pair regardless of concurrent callers. Returns the row id and
// whether an existing row was updated.
func (s *Store) UpsertProposal(ctx context.Context, p *models.Proposal) (int64, bool, error) {
	query := `
		INSERT INTO proposals (
			user_id, job_id, job_title, job_description, client_info,
			budget, skills, generated_proposal, status, ai_model,
			temperature, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id, job_id) DO UPDATE SET
			job_title          = EXCLUDED.job_title,
			job_description    = EXCLUDED.job_description,
			client_info        = EXCLUDED.client_info,
			budget             = EXCLUDED.budget,
			skills             = EXCLUDED.skills,
			generated_proposal = EXCLUDED.generated_proposal,
			ai_model           = COALESCE(EXCLUDED.ai_model, proposals.ai_model),
			temperature        = COALESCE(EXCLUDED.temperature, proposals.temperature),
			status             = CASE
				WHEN array_position(` + statusRankSQL + `, EXCLUDED.status)
				   >= array_position(` + statusRankSQL + `, proposals.status)
				THEN EXCLUDED.status
				ELSE proposals.status
			END,
			updated_at         = NOW()
		RETURNING id, (xmax = 0) AS inserted
	`

	var row upsertRow
	err := s.sess.
		SelectBySql(query,
			p.UserID,
			p.JobID,
			p.JobTitle,
			p.JobDescription,
			p.ClientInfo,
			p.Budget,
			p.Skills,
			p.GeneratedProposal,
			p.Status,
			p.AIModel,
			p.Temperature,
		).
		LoadOneContext(ctx, &row)
	if err != nil {
		s.logger.Error("failed to upsert proposal",
			zap.Int64("user_id", p.UserID),
			zap.String("job_id", p.JobID),
			zap.Error(err),
		)
		return 0, false, fmt.Errorf("upsert proposal: %w", err)
	}

	s.logger.Info("proposal upserted",
		zap.Int64("user_id", p.UserID),
		zap.String("job_id", p.JobID),
		zap.Int64("proposal_id", row.ID),
		zap.Bool("is_update", !row.Inserted),
	)

	return row.ID, !row.Inserted, nil
}

// MarkProposalSent upserts the row for (user_id, job_id) with the edited
// text, status sent and the send timestamp. sent outranks every other status
// so no transition guard is needed here.
func (s *Store) MarkProposalSent(ctx context.Context, userID int64, jobID, jobTitle, editedText, originalText string) (int64, bool, error) {
	query := `
		INSERT INTO proposals (
			user_id, job_id, job_title, generated_proposal, edited_proposal,
			status, sent_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, 'sent', NOW(), NOW(), NOW())
		ON CONFLICT (user_id, job_id) DO UPDATE SET
			edited_proposal = EXCLUDED.edited_proposal,
			status          = 'sent',
			sent_at         = NOW(),
			updated_at      = NOW()
		RETURNING id, (xmax = 0) AS inserted
	`

	var row upsertRow
	err := s.sess.
		SelectBySql(query, userID, jobID, jobTitle, originalText, editedText).
		LoadOneContext(ctx, &row)
	if err != nil {
		s.logger.Error("failed to mark proposal sent",
			zap.Int64("user_id", userID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return 0, false, fmt.Errorf("mark proposal sent: %w", err)
	}

	s.logger.Info("proposal sent",
		zap.Int64("user_id", userID),
		zap.String("job_id", jobID),
		zap.Int64("proposal_id", row.ID),
		zap.Bool("is_update", !row.Inserted),
	)

	return row.ID, !row.Inserted, nil
}

func (s *Store) GetProposal(ctx context.Context, userID int64, jobID string) (*models.Proposal, error) {
	var proposal models.Proposal

	err := s.sess.
		Select("*").
		From("proposals").
		Where("user_id = ? AND job_id = ?", userID, jobID).
		LoadOneContext(ctx, &proposal)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get proposal",
			zap.Int64("user_id", userID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get proposal: %w", err)
	}

	return &proposal, nil
}

func (s *Store) ListProposals(ctx context.Context, userID int64) ([]models.Proposal, error) {
	var proposals []models.Proposal

	_, err := s.sess.
		Select("*").
		From("proposals").
		Where("user_id = ?", userID).
		OrderBy("updated_at DESC").
		LoadContext(ctx, &proposals)

	if err != nil {
		s.logger.Error("failed to list proposals",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list proposals: %w", err)
	}

	return proposals, nil
}
