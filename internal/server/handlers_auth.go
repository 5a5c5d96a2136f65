package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frencoae/upwork-responder/internal/auth"
	"github.com/frencoae/upwork-responder/internal/models"

	"go.uber.org/zap"
)

type authRequest struct {
	Action      string `json:"action"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.CurrentUser(r.Context(), sessionToken(r))
	if err != nil {
		s.logger.Error("failed to resolve session", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		s.writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	s.writeJSON(w, http.StatusOK, user)
}

// handleAuthAction serves both signup and login, switched on the action
// field of the request body.
func (s *Server) handleAuthAction(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Action == "" || req.Email == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	switch req.Action {
	case "signup":
		s.signUp(w, r, req)
	case "login":
		s.login(w, r, req)
	default:
		s.writeError(w, http.StatusBadRequest, "Invalid action")
	}
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request, req authRequest) {
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "Name is required for signup")
		return
	}

	user, token, err := s.auth.SignUp(r.Context(), req.Email, req.Password, req.Name, req.CompanyName)
	switch {
	case errors.Is(err, auth.ErrSingleUser):
		s.writeError(w, http.StatusForbidden, "This application is for single user only. Please login with existing account.")
		return
	case errors.Is(err, auth.ErrEmailTaken):
		s.writeError(w, http.StatusBadRequest, "User with this email already exists")
		return
	case err != nil:
		s.logger.Error("signup failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.setSessionCookie(w, token)
	s.writeJSON(w, http.StatusOK, authResponse{
		Message: "Account created successfully!",
		User:    user,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, req authRequest) {
	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.writeError(w, http.StatusBadRequest, "Invalid email or password")
		return
	case err != nil:
		s.logger.Error("login failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.setSessionCookie(w, token)
	s.writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful!",
		User:    user,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		s.logger.Error("logout failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.clearSessionCookie(w)
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}
