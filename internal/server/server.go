// Package restapi exposes the generation subsystem over HTTP. Routing
// assumes an upstream gateway has authenticated the caller; the principal id
// arrives in a trusted header and everything here is scoped to it.
package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luxaris/luxaris/internal/core"
	"github.com/luxaris/luxaris/internal/plugins/db/pgdb"
)

const principalHeader = "X-Principal-ID"
const principalKey = "principal_id"

// Deps bundles the use cases the handlers call into.
type Deps struct {
	Orchestrator *core.Orchestrator
	Acceptor     *core.Acceptor
	Sessions     *core.SessionService
	Templates    *core.TemplateService
	DB           *pgdb.Client
}

// New builds the router with all generation routes mounted under /api.
func New(deps Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		if deps.DB != nil {
			if err := deps.DB.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", RequirePrincipal())
	RegisterGenerationRoutes(api, deps)
	RegisterSessionRoutes(api, deps)
	RegisterTemplateRoutes(api, deps)
	return r
}

// RequirePrincipal extracts the authenticated principal id set by the
// upstream auth layer.
func RequirePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(principalHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid principal"})
			return
		}
		c.Set(principalKey, id)
		c.Next()
	}
}

func principal(c *gin.Context) uuid.UUID {
	v, _ := c.Get(principalKey)
	id, _ := v.(uuid.UUID)
	return id
}
