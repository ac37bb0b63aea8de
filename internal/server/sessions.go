package restapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luxaris/luxaris/internal/domain"
)

// RegisterSessionRoutes mounts the session read and delete paths.
func RegisterSessionRoutes(r *gin.RouterGroup, deps Deps) {
	h := &sessionHandler{deps: deps}
	r.GET("/sessions", h.List)
	r.GET("/sessions/:id", h.Get)
	r.DELETE("/sessions/:id", h.Delete)
}

type sessionHandler struct {
	deps Deps
}

func (h *sessionHandler) List(c *gin.Context) {
	filter := domain.SessionFilter{
		Status: c.Query("status"),
	}
	if raw := c.Query("post_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_ID", "message": "invalid post_id"}})
			return
		}
		filter.PostID = &id
	}
	if raw := c.Query("template_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_ID", "message": "invalid template_id"}})
			return
		}
		filter.TemplateID = &id
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	sessions, meta, err := h.deps.Sessions.List(c.Request.Context(), principal(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessions, "meta": meta})
}

func (h *sessionHandler) Get(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_ID", "message": "invalid session id"}})
		return
	}
	detail, err := h.deps.Sessions.Get(c.Request.Context(), principal(c), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *sessionHandler) Delete(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_ID", "message": "invalid session id"}})
		return
	}
	if err := h.deps.Sessions.Delete(c.Request.Context(), principal(c), sessionID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
