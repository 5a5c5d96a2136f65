package models

import "time"

// ClientInfo describes the client behind a job posting.
type ClientInfo struct {
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Country    string  `json:"country,omitempty"`
	TotalSpent int     `json:"totalSpent,omitempty"`
	TotalHires int     `json:"totalHires,omitempty"`
}

// JobPosting is a read-only record from the job catalog. The catalog owns
// these records; this service only references them by id.
type JobPosting struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Budget      string     `json:"budget"`
	PostedDate  string     `json:"postedDate,omitempty"`
	Client      ClientInfo `json:"client"`
	Skills      []string   `json:"skills"`
	Proposals   int        `json:"proposals,omitempty"`
	Verified    bool       `json:"verified,omitempty"`
	Category    string     `json:"category"`
	Duration    string     `json:"duration"`
}

// CachedJob is a jobs_cache row kept for feed diffing and history lookups.
type CachedJob struct {
	ID       string    `db:"id"`
	Title    string    `db:"title"`
	Category string    `db:"category"`
	Budget   string    `db:"budget"`
	RawData  RawJSON   `db:"raw_data"`
	CachedAt time.Time `db:"cached_at"`
}

type UserSeenJob struct {
	UserID int64     `db:"user_id"`
	JobID  string    `db:"job_id"`
	SeenAt time.Time `db:"seen_at"`
}
