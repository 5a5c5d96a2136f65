package server

import (
	"encoding/json"
	"net/http"

	"github.com/frencoae/upwork-responder/internal/models"
	"github.com/frencoae/upwork-responder/internal/proposal"

	"go.uber.org/zap"
)

type generateRequest struct {
	JobID          string             `json:"jobId"`
	JobTitle       string             `json:"jobTitle"`
	JobDescription string             `json:"jobDescription"`
	ClientInfo     *models.ClientInfo `json:"clientInfo"`
	Budget         string             `json:"budget"`
	Skills         []string           `json:"skills"`
}

type generateDetails struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Length      int     `json:"length"`
}

type generateResponse struct {
	Success  bool            `json:"success"`
	Proposal string          `json:"proposal"`
	Message  string          `json:"message"`
	Details  generateDetails `json:"details"`
}

func (s *Server) handleGenerateProposal(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.JobDescription == "" {
		s.writeError(w, http.StatusBadRequest, "Job description is required")
		return
	}

	resolved := s.resolver.Resolve(r.Context(), user.ID)

	job := models.JobPosting{
		ID:          req.JobID,
		Title:       req.JobTitle,
		Description: req.JobDescription,
		Budget:      req.Budget,
		Skills:      req.Skills,
	}
	if req.ClientInfo != nil {
		job.Client = *req.ClientInfo
	}

	prompt := proposal.BuildPrompt(job, user.Name, resolved)
	result := s.generator.Generate(r.Context(), prompt, resolved.AISettings, job, user.Name)

	// Fallback drafts are not persisted; the user has not accepted them
	// and the training history should only hold provider output.
	if result.Model != proposal.FallbackModel {
		if err := s.persistGenerated(r, user.ID, req, result, resolved.AISettings.Temperature); err != nil {
			s.writeFailure(w, http.StatusInternalServerError, "Failed to generate proposal: "+err.Error())
			return
		}
	}

	resp := generateResponse{
		Success:  true,
		Proposal: result.Text,
		Message:  "Professional proposal generated successfully!",
		Details: generateDetails{
			Model:       result.Model,
			Temperature: resolved.AISettings.Temperature,
			Length:      len(result.Text),
		},
	}
	if result.Model == proposal.FallbackModel {
		resp.Message = "Proposal generated successfully (fallback mode)"
		resp.Details.Temperature = 0
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) persistGenerated(r *http.Request, userID int64, req generateRequest, result proposal.Result, temperature float64) error {
	clientInfo := models.RawJSON(`{}`)
	if req.ClientInfo != nil {
		raw, err := json.Marshal(req.ClientInfo)
		if err == nil {
			clientInfo = models.RawJSON(raw)
		}
	}

	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	model := result.Model
	_, _, err := s.proposals.UpsertProposal(r.Context(), &models.Proposal{
		UserID:            userID,
		JobID:             req.JobID,
		JobTitle:          req.JobTitle,
		JobDescription:    req.JobDescription,
		ClientInfo:        clientInfo,
		Budget:            req.Budget,
		Skills:            models.StringList(skills),
		GeneratedProposal: result.Text,
		Status:            string(proposal.StatusGenerated),
		AIModel:           &model,
		Temperature:       &temperature,
	})
	return err
}

type saveRequest struct {
	JobID          string          `json:"jobId"`
	JobTitle       string          `json:"jobTitle"`
	JobDescription string          `json:"jobDescription"`
	ClientInfo     json.RawMessage `json:"clientInfo"`
	Budget         string          `json:"budget"`
	Skills         []string        `json:"skills"`
	ProposalText   string          `json:"proposalText"`
	Status         string          `json:"status"`
}

func (s *Server) handleSaveProposal(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ProposalText == "" || req.JobID == "" {
		s.writeError(w, http.StatusBadRequest, "Proposal text and Job ID are required")
		return
	}

	if req.Status == "" {
		req.Status = string(proposal.StatusSaved)
	}
	status, err := proposal.ParseStatus(req.Status)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid proposal status: "+req.Status)
		return
	}

	budget := req.Budget
	if budget == "" {
		budget = "Not specified"
	}
	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}
	clientInfo := models.RawJSON(req.ClientInfo)
	if len(clientInfo) == 0 {
		clientInfo = models.RawJSON(`{}`)
	}

	proposalID, isUpdate, err := s.proposals.UpsertProposal(r.Context(), &models.Proposal{
		UserID:            user.ID,
		JobID:             req.JobID,
		JobTitle:          req.JobTitle,
		JobDescription:    req.JobDescription,
		ClientInfo:        clientInfo,
		Budget:            budget,
		Skills:            models.StringList(skills),
		GeneratedProposal: req.ProposalText,
		Status:            string(status),
	})
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, "Failed to save proposal: "+err.Error())
		return
	}

	message := "Proposal saved to history successfully!"
	if isUpdate {
		message = "Proposal updated successfully!"
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    message,
		"proposalId": proposalID,
		"isUpdate":   isUpdate,
	})
}

type sendRequest struct {
	JobID            string `json:"jobId"`
	JobTitle         string `json:"jobTitle"`
	ProposalText     string `json:"proposalText"`
	OriginalProposal string `json:"originalProposal"`
	EditReason       string `json:"editReason"`
}

func (s *Server) handleSendProposal(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ProposalText == "" || req.JobID == "" {
		s.writeError(w, http.StatusBadRequest, "Proposal text and Job ID are required")
		return
	}

	proposalID, isUpdate, err := s.proposals.MarkProposalSent(
		r.Context(), user.ID, req.JobID, req.JobTitle, req.ProposalText, req.OriginalProposal,
	)
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, "Failed to send proposal: "+err.Error())
		return
	}

	trained := req.OriginalProposal != req.ProposalText
	if trained {
		patterns := s.tagger.Analyze(req.OriginalProposal, req.ProposalText)

		reason := req.EditReason
		if reason == "" {
			reason = "User improvements"
		}

		err := s.proposals.InsertProposalEdit(r.Context(), &models.ProposalEdit{
			UserID:           user.ID,
			JobID:            req.JobID,
			OriginalProposal: req.OriginalProposal,
			EditedProposal:   req.ProposalText,
			EditReason:       reason,
			LearnedPatterns:  models.StringList(patterns),
		})
		if err != nil {
			s.writeFailure(w, http.StatusInternalServerError, "Failed to send proposal: "+err.Error())
			return
		}

		s.logger.Info("training record saved",
			zap.Int64("user_id", user.ID),
			zap.String("job_id", req.JobID),
			zap.Strings("patterns", patterns),
		)
	}

	message := "Proposal sent successfully!"
	if isUpdate {
		message = "Proposal updated and sent successfully!"
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    message,
		"proposalId": proposalID,
		"trained":    trained,
	})
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request, user *models.User) {
	proposals, err := s.proposals.ListProposals(r.Context(), user.ID)
	if err != nil {
		s.writeFailure(w, http.StatusInternalServerError, "Failed to load proposals")
		return
	}

	if proposals == nil {
		proposals = []models.Proposal{}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"proposals": proposals,
		"total":     len(proposals),
	})
}
