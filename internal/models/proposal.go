package models

import "time"

// Proposal is a stored draft or sent application text tied to one user and
// one job. At most one row exists per (user_id, job_id), enforced by a
// unique constraint.
type Proposal struct {
	ID                int64      `db:"id" json:"id"`
	UserID            int64      `db:"user_id" json:"userId"`
	JobID             string     `db:"job_id" json:"jobId"`
	JobTitle          string     `db:"job_title" json:"jobTitle"`
	JobDescription    string     `db:"job_description" json:"jobDescription"`
	ClientInfo        RawJSON    `db:"client_info" json:"clientInfo"`
	Budget            string     `db:"budget" json:"budget"`
	Skills            StringList `db:"skills" json:"skills"`
	GeneratedProposal string     `db:"generated_proposal" json:"generatedProposal"`
	EditedProposal    *string    `db:"edited_proposal" json:"editedProposal,omitempty"`
	Status            string     `db:"status" json:"status"`
	AIModel           *string    `db:"ai_model" json:"aiModel,omitempty"`
	Temperature       *float64   `db:"temperature" json:"temperature,omitempty"`
	SentAt            *time.Time `db:"sent_at" json:"sentAt,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updatedAt"`
}

// ProposalEdit is an append-only training record written when the user sends
// a proposal whose text differs from the generated draft. Rows are never
// updated or deleted.
type ProposalEdit struct {
	ID               int64      `db:"id" json:"id"`
	UserID           int64      `db:"user_id" json:"userId"`
	JobID            string     `db:"job_id" json:"jobId"`
	OriginalProposal string     `db:"original_proposal" json:"originalProposal"`
	EditedProposal   string     `db:"edited_proposal" json:"editedProposal"`
	EditReason       string     `db:"edit_reason" json:"editReason"`
	LearnedPatterns  StringList `db:"learned_patterns" json:"learnedPatterns"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
}
