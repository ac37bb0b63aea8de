package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luxaris/luxaris/internal/domain"
)

// RegisterGenerationRoutes mounts generate and accept.
func RegisterGenerationRoutes(r *gin.RouterGroup, deps Deps) {
	h := &generationHandler{deps: deps}
	r.POST("/generate", h.Generate)
	r.POST("/suggestions/:id/accept", h.Accept)
}

type generationHandler struct {
	deps Deps
}

func (h *generationHandler) Generate(c *gin.Context) {
	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_BODY", "message": err.Error()}})
		return
	}
	result, err := h.deps.Orchestrator.Generate(c.Request.Context(), principal(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *generationHandler) Accept(c *gin.Context) {
	suggestionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_ID", "message": "invalid suggestion id"}})
		return
	}
	var opts domain.AcceptOptions
	if err := c.ShouldBindJSON(&opts); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_BODY", "message": err.Error()}})
		return
	}
	result, err := h.deps.Acceptor.Accept(c.Request.Context(), principal(c), suggestionID, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
