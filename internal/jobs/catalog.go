// Package jobs provides the job catalog capability: a curated development
// catalog and the Upwork marketplace client, both behind one interface.
package jobs

import (
	"context"
	"strings"

	"github.com/frencoae/upwork-responder/internal/models"
)

// SearchParams narrows a catalog search. Zero values match everything.
type SearchParams struct {
	Query    string
	Category string
}

// Catalog is a read-only source of job postings.
type Catalog interface {
	Search(ctx context.Context, params SearchParams) ([]models.JobPosting, error)
}

// FilterByKeywords keeps jobs matching the user's keyword expression.
// The expression is a flat OR of quoted terms, e.g.
// `"web development" OR "react"`. An empty expression matches everything.
func FilterByKeywords(postings []models.JobPosting, expression string) []models.JobPosting {
	keywords := parseKeywords(expression)
	if len(keywords) == 0 {
		return postings
	}

	matched := make([]models.JobPosting, 0, len(postings))
	for _, job := range postings {
		text := strings.ToLower(job.Title + " " + job.Description + " " + strings.Join(job.Skills, " "))
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				matched = append(matched, job)
				break
			}
		}
	}

	return matched
}

func parseKeywords(expression string) []string {
	cleaned := strings.ReplaceAll(strings.ToLower(expression), `"`, "")

	var keywords []string
	for _, part := range strings.Split(cleaned, "or") {
		part = strings.TrimSpace(part)
		if part != "" {
			keywords = append(keywords, part)
		}
	}

	return keywords
}
