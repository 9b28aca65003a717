package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/models"
)

// handleGetConnection returns the saved connection settings, password
// omitted, or an empty object when nothing has been saved yet.
func (s *Server) handleGetConnection(c *gin.Context) {
	settings, err := s.svc.GetConnection(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if settings == nil {
		respondSuccess(c, http.StatusOK, gin.H{"settings": nil})
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"settings": settings})
}

// handleSaveConnection validates and persists connection settings.
func (s *Server) handleSaveConnection(c *gin.Context) {
	var req models.ConnectionSettings
	if !bindJSON(c, &req) {
		return
	}

	if err := s.svc.SaveConnection(c.Request.Context(), req); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "saved"})
}

// handleTestConnection probes the described database without saving.
func (s *Server) handleTestConnection(c *gin.Context) {
	var req models.ConnectionSettings
	if !bindJSON(c, &req) {
		return
	}

	result, err := s.svc.TestConnection(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result)
}
