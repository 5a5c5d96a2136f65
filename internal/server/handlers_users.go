package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/frencoae/upwork-responder/internal/models"

	"go.uber.org/zap"
)

const maxPhotoSize = 5 << 20

type updateProfileRequest struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" && req.CompanyName == "" {
		s.writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	// Omitted fields keep their current value.
	name := req.Name
	if name == "" {
		name = user.Name
	}
	companyName := req.CompanyName
	if companyName == "" {
		companyName = user.CompanyName
	}

	if err := s.users.UpdateProfile(r.Context(), user.ID, name, companyName); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	updated, err := s.users.GetUserByID(r.Context(), user.ID)
	if err != nil || updated == nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    updated,
		"message": "Profile updated successfully",
	})
}

func (s *Server) handleUpdateTimezone(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req struct {
		Timezone string `json:"timezone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Timezone == "" {
		s.writeError(w, http.StatusBadRequest, "Timezone is required")
		return
	}

	if _, err := time.LoadLocation(req.Timezone); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid timezone: "+req.Timezone)
		return
	}

	if err := s.users.UpdateTimezone(r.Context(), user.ID, req.Timezone); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to update timezone")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Timezone updated successfully",
	})
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request, user *models.User) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("profilePhoto")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("profile-%d-%d%s", user.ID, time.Now().UnixMilli(), ext)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to upload photo: "+err.Error())
		return
	}

	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to upload photo: "+err.Error())
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to upload photo: "+err.Error())
		return
	}

	photoURL := "/uploads/profiles/" + filename
	if err := s.users.UpdateProfilePhoto(r.Context(), user.ID, photoURL); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to upload photo: "+err.Error())
		return
	}

	s.logger.Info("profile photo uploaded",
		zap.Int64("user_id", user.ID),
		zap.String("photo_url", photoURL),
	)

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"photoUrl": photoURL,
		"message":  "Profile photo uploaded successfully",
	})
}

func (s *Server) handleRemovePhoto(w http.ResponseWriter, r *http.Request, user *models.User) {
	if err := s.users.UpdateProfilePhoto(r.Context(), user.ID, ""); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to remove photo")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile photo removed successfully",
	})
}
