package server

import (
	"net/http"

	"github.com/frencoae/upwork-responder/internal/jobs"
	"github.com/frencoae/upwork-responder/internal/models"
)

// handleListJobs searches the catalog with the request filters, then
// narrows further by the keyword expression from the user's feed settings.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request, user *models.User) {
	params := jobs.SearchParams{
		Query:    r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}

	postings, err := s.catalog.Search(r.Context(), params)
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, "Failed to load jobs")
		return
	}

	resolved := s.resolver.Resolve(r.Context(), user.ID)
	matched := jobs.FilterByKeywords(postings, resolved.BasicInfo.Keywords)
	if matched == nil {
		matched = []models.JobPosting{}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"jobs":    matched,
		"total":   len(matched),
		"filters": map[string]interface{}{
			"category": orDefault(params.Category, "all"),
			"search":   params.Query,
			"applied":  params.Category != "" || params.Query != "",
		},
	})
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
