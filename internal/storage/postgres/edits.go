package postgres

import (
	"context"
	"fmt"

	"github.com/frencoae/upwork-responder/internal/models"

	"go.uber.org/zap"
)

// InsertProposalEdit appends one immutable training record. There is no
// update or delete path for proposal_edits on purpose.
func (s *Store) InsertProposalEdit(ctx context.Context, edit *models.ProposalEdit) error {
	query := `
		INSERT INTO proposal_edits (
			user_id, job_id, original_proposal, edited_proposal,
			edit_reason, learned_patterns, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
		RETURNING id
	`

	var id int64
	err := s.sess.
		SelectBySql(query,
			edit.UserID,
			edit.JobID,
			edit.OriginalProposal,
			edit.EditedProposal,
			edit.EditReason,
			edit.LearnedPatterns,
		).
		LoadOneContext(ctx, &id)
	if err != nil {
		s.logger.Error("failed to insert proposal edit",
			zap.Int64("user_id", edit.UserID),
			zap.String("job_id", edit.JobID),
			zap.Error(err),
		)
		return fmt.Errorf("insert proposal edit: %w", err)
	}

	edit.ID = id

	s.logger.Info("proposal edit recorded",
		zap.Int64("user_id", edit.UserID),
		zap.String("job_id", edit.JobID),
		zap.Strings("patterns", []string(edit.LearnedPatterns)),
	)

	return nil
}
