package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/app/orch"
	"github.com/akarsh286/Syncpad/internal/domain"
	"github.com/akarsh286/Syncpad/internal/runner"
)

// CodeRunner is the execution service collaborator. A failing or slow
// service affects only the requesting client, never room state.
type CodeRunner interface {
	Run(ctx context.Context, language, code string) (string, error)
}

type handlers struct {
	orch   *orch.Orchestrator
	runner CodeRunner
}

type RunRequest struct {
	Language string `json:"language" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

type RunResponse struct {
	Output string `json:"output"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// roomExists reports whether the room currently has members. An unknown
// room is a normal false result, not an error.
func (h *handlers) roomExists(c *gin.Context) {
	roomID := c.Param("roomID")
	c.JSON(http.StatusOK, ExistsResponse{
		Exists: h.orch.RoomExists(domain.RoomID(roomID)),
	})
}

func (h *handlers) run(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language and code are required"})
		return
	}

	output, err := h.runner.Run(c.Request.Context(), req.Language, req.Code)
	if err != nil {
		if errors.Is(err, runner.ErrUnsupportedLanguage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Str("module", "adapters.http").Str("language", req.Language).Msg("run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, RunResponse{Output: output})
}
