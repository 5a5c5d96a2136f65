package models

type BasicInfo struct {
	FeedName   string `json:"feedName"`
	Keywords   string `json:"keywords"`
	Specialty  string `json:"specialty"`
	Provisions string `json:"provisions"`
	HourlyRate string `json:"hourlyRate"`
	Location   string `json:"location"`
}

type ValidationRules struct {
	MinBudget        int      `json:"minBudget"`
	MaxBudget        int      `json:"maxBudget"`
	JobTypes         []string `json:"jobTypes"`
	ClientRating     float64  `json:"clientRating"`
	RequiredSkills   []string `json:"requiredSkills"`
	ValidationPrompt string   `json:"validationPrompt"`
}

type ProposalTemplate struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type AISettings struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
	Creativity  string  `json:"creativity"`
}

// PromptSettings is the per-user generation configuration. Exactly one
// record exists per user.
type PromptSettings struct {
	BasicInfo         BasicInfo          `json:"basicInfo"`
	ValidationRules   ValidationRules    `json:"validationRules"`
	ProposalTemplates []ProposalTemplate `json:"proposalTemplates"`
	AISettings        AISettings         `json:"aiSettings"`
}

// StoredSettings carries the raw jsonb columns of a prompt_settings row.
// A null column means the substructure was never saved and falls back to
// the default as a whole; there is no field-level merge.
type StoredSettings struct {
	BasicInfo         RawJSON `db:"basic_info"`
	ValidationRules   RawJSON `db:"validation_rules"`
	ProposalTemplates RawJSON `db:"proposal_templates"`
	AISettings        RawJSON `db:"ai_settings"`
}

// DefaultPromptSettings returns the documented defaults used when a user has
// no stored record, or when an individual substructure is missing.
func DefaultPromptSettings() PromptSettings {
	return PromptSettings{
		BasicInfo: BasicInfo{
			FeedName:   "Your Professional Feed",
			Keywords:   `"web development" OR "react" OR "node.js" OR "full stack"`,
			Specialty:  "Full Stack Web Development",
			Provisions: "React Applications, Node.js APIs, MongoDB Databases",
			HourlyRate: "$25-50",
			Location:   "Worldwide",
		},
		ValidationRules: ValidationRules{
			MinBudget:      100,
			MaxBudget:      10000,
			JobTypes:       []string{"Fixed", "Hourly"},
			ClientRating:   4.0,
			RequiredSkills: []string{"JavaScript", "React", "Node.js"},
			ValidationPrompt: `Evaluate if this job matches our criteria:
- Budget between $100 and $10,000
- Client rating 4.0+
- Fixed or Hourly payment
- Requires JavaScript/React/Node.js skills
- Project scope is clear

Return: APPROVE if matches, REJECT if doesn't match.`,
		},
		ProposalTemplates: []ProposalTemplate{
			{
				ID:      "1",
				Title:   "Main Proposal Template",
				Content: "Write a professional Upwork proposal that shows understanding of job requirements and highlights relevant skills. Focus on client pain points.",
			},
		},
		AISettings: AISettings{
			Model:       "gpt-4",
			Temperature: 0.3,
			MaxTokens:   600,
			Creativity:  "medium",
		},
	}
}
