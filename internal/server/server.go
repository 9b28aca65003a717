// Package server provides the HTTP surface over the service layer: JSON
// handlers under /api/v1 plus the static frontend mount.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskflow/internal/apperr"
	"taskflow/internal/service"
)

// Server provides HTTP handlers for the task tracker backend.
type Server struct {
	engine    *gin.Engine
	svc       *service.Service
	logger    *logrus.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(svc *service.Service, logger *logrus.Logger, staticDir string) *Server {
	if logger == nil {
		logger = logrus.New()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	srv := &Server{
		engine:    router,
		svc:       svc,
		logger:    logger,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/v1")
	{
		api.GET("/healthz", s.handleHealth)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.POST("", s.handleCreateTask)
			tasks.GET(":id", s.handleGetTask)
			tasks.PATCH(":id", s.handleUpdateTask)
			tasks.DELETE(":id", s.handleDeleteTask)

			tasks.POST(":id/subtasks", s.handleAddSubTask)
			tasks.PUT(":id/subtasks/reorder", s.handleReorderSubTasks)
			tasks.PATCH(":id/subtasks/:subTaskID", s.handleEditSubTask)
			tasks.PATCH(":id/subtasks/:subTaskID/toggle", s.handleToggleSubTask)
			tasks.DELETE(":id/subtasks/:subTaskID", s.handleDeleteSubTask)

			tasks.POST(":id/updates", s.handleAddDailyUpdate)
			tasks.PATCH(":id/updates/:updateID", s.handleEditDailyUpdate)
			tasks.DELETE(":id/updates/:updateID", s.handleDeleteDailyUpdate)
		}

		members := api.Group("/members")
		{
			members.GET("", s.handleListMembers)
			members.POST("", s.handleCreateMember)
			members.GET(":id", s.handleGetMember)
			members.PATCH(":id", s.handleUpdateMember)
			members.DELETE(":id", s.handleDeleteMember)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/connection", s.handleGetConnection)
			settings.POST("/save-connection", s.handleSaveConnection)
			settings.POST("/test-connection", s.handleTestConnection)
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps the error taxonomy onto HTTP statuses and returns the
// message as a JSON payload.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindReference:
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.WithFields(logrus.Fields{"path": c.FullPath(), "error": err.Error()}).Error("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}

func bindJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return false
	}
	return true
}
