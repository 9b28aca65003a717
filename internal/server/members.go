package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/service"
)

// handleListMembers returns all team members ordered by name.
func (s *Server) handleListMembers(c *gin.Context) {
	members, err := s.svc.ListMembers(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"members": members})
}

// handleGetMember returns a single member by id.
func (s *Server) handleGetMember(c *gin.Context) {
	member, err := s.svc.GetMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"member": member})
}

// handleCreateMember adds a new team member.
func (s *Server) handleCreateMember(c *gin.Context) {
	var req service.CreateMemberInput
	if !bindJSON(c, &req) {
		return
	}

	member, err := s.svc.CreateMember(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"member": member})
}

// handleUpdateMember applies a partial update to a member.
func (s *Server) handleUpdateMember(c *gin.Context) {
	var req service.UpdateMemberInput
	if !bindJSON(c, &req) {
		return
	}

	member, err := s.svc.UpdateMember(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"member": member})
}

// handleDeleteMember removes a member once no tasks or updates reference it.
func (s *Server) handleDeleteMember(c *gin.Context) {
	if err := s.svc.DeleteMember(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}
