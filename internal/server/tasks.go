package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow/internal/query"
	"taskflow/internal/service"
)

// handleListTasks fetches tasks with optional filter and sort parameters.
func (s *Server) handleListTasks(c *gin.Context) {
	f := query.Filters{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Assignee: c.Query("assignee"),
		Search:   c.Query("search"),
		Sort:     query.Sort(c.Query("sort")),
	}

	tasks, err := s.svc.ListTasks(c.Request.Context(), f)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}

// handleGetTask returns a single task with its sub-tasks and updates.
func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.svc.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleCreateTask inserts a new task.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req service.CreateTaskInput
	if !bindJSON(c, &req) {
		return
	}

	task, err := s.svc.CreateTask(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// handleUpdateTask applies a partial update to a task.
func (s *Server) handleUpdateTask(c *gin.Context) {
	var req service.UpdateTaskInput
	if !bindJSON(c, &req) {
		return
	}

	task, err := s.svc.UpdateTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task with everything attached to it.
func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.svc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

type subTaskRequest struct {
	Title string `json:"title"`
}

type reorderRequest struct {
	SubTaskIDs []string `json:"subTaskIds"`
}

// handleAddSubTask appends a sub-task to a task's checklist.
func (s *Server) handleAddSubTask(c *gin.Context) {
	var req subTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	sub, err := s.svc.AddSubTask(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"subTask": sub})
}

// handleEditSubTask replaces a sub-task's title.
func (s *Server) handleEditSubTask(c *gin.Context) {
	var req subTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	sub, err := s.svc.EditSubTask(c.Request.Context(), c.Param("id"), c.Param("subTaskID"), req.Title)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"subTask": sub})
}

// handleToggleSubTask flips a sub-task's completion state.
func (s *Server) handleToggleSubTask(c *gin.Context) {
	sub, err := s.svc.ToggleSubTask(c.Request.Context(), c.Param("id"), c.Param("subTaskID"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"subTask": sub})
}

// handleDeleteSubTask removes a sub-task from the checklist.
func (s *Server) handleDeleteSubTask(c *gin.Context) {
	if err := s.svc.DeleteSubTask(c.Request.Context(), c.Param("id"), c.Param("subTaskID")); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleReorderSubTasks applies a full new ordering to the checklist.
func (s *Server) handleReorderSubTasks(c *gin.Context) {
	var req reorderRequest
	if !bindJSON(c, &req) {
		return
	}

	subs, err := s.svc.ReorderSubTasks(c.Request.Context(), c.Param("id"), req.SubTaskIDs)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"subTasks": subs})
}

type addUpdateRequest struct {
	AuthorID string `json:"authorId"`
	Content  string `json:"content"`
}

type editUpdateRequest struct {
	Content string `json:"content"`
}

// handleAddDailyUpdate records a new journal entry on a task.
func (s *Server) handleAddDailyUpdate(c *gin.Context) {
	var req addUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	update, err := s.svc.AddDailyUpdate(c.Request.Context(), c.Param("id"), req.AuthorID, req.Content)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"update": update})
}

// handleEditDailyUpdate rewrites an update inside its edit window.
func (s *Server) handleEditDailyUpdate(c *gin.Context) {
	var req editUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := s.svc.EditDailyUpdate(c.Request.Context(), c.Param("id"), c.Param("updateID"), req.Content); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "updated"})
}

// handleDeleteDailyUpdate removes an update inside its edit window.
func (s *Server) handleDeleteDailyUpdate(c *gin.Context) {
	if err := s.svc.DeleteDailyUpdate(c.Request.Context(), c.Param("id"), c.Param("updateID")); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}
