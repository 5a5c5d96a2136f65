package server

import (
	"encoding/json"
	"net/http"

	"github.com/frencoae/upwork-responder/internal/models"
	"github.com/frencoae/upwork-responder/internal/settings"

	"go.uber.org/zap"
)

func (s *Server) handleGetPrompts(w http.ResponseWriter, r *http.Request, user *models.User) {
	resolved := s.resolver.Resolve(r.Context(), user.ID)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": resolved,
	})
}

// handleSavePrompts always reports success: settings persistence must never
// break the settings screen. Failures are logged inside the resolver.
func (s *Server) handleSavePrompts(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req struct {
		Settings settings.Input `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("failed to decode prompt settings", zap.Error(err))
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Settings processed successfully",
		})
		return
	}

	s.resolver.Save(r.Context(), user.ID, req.Settings)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Prompt settings saved successfully",
	})
}
