package restapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luxaris/luxaris/internal/core"
)

// RegisterTemplateRoutes mounts template CRUD and rendering.
func RegisterTemplateRoutes(r *gin.RouterGroup, deps Deps) {
	h := &templateHandler{deps: deps}
	r.POST("/templates", h.Create)
	r.GET("/templates", h.List)
	r.GET("/templates/:id", h.Get)
	r.PATCH("/templates/:id", h.Update)
	r.DELETE("/templates/:id", h.Delete)
	r.POST("/templates/:id/render", h.Render)
}

type templateHandler struct {
	deps Deps
}

func (h *templateHandler) Create(c *gin.Context) {
	var input core.TemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_BODY", "message": err.Error()}})
		return
	}
	tpl, err := h.deps.Templates.Create(c.Request.Context(), principal(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *templateHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	templates, meta, err := h.deps.Templates.List(c.Request.Context(), principal(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": templates, "meta": meta})
}

func (h *templateHandler) Get(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_ID", "message": "invalid template id"}})
		return
	}
	tpl, err := h.deps.Templates.Get(c.Request.Context(), principal(c), templateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *templateHandler) Update(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_ID", "message": "invalid template id"}})
		return
	}
	var patch core.TemplatePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_BODY", "message": err.Error()}})
		return
	}
	tpl, err := h.deps.Templates.Update(c.Request.Context(), principal(c), templateID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *templateHandler) Delete(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_ID", "message": "invalid template id"}})
		return
	}
	if err := h.deps.Templates.Delete(c.Request.Context(), principal(c), templateID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *templateHandler) Render(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_ID", "message": "invalid template id"}})
		return
	}
	var body struct {
		Values map[string]any `json:"values"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_BODY", "message": err.Error()}})
		return
	}
	result, err := h.deps.Templates.Render(c.Request.Context(), principal(c), templateID, body.Values)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
