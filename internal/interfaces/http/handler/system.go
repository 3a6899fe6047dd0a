package handler

import (
	"net/http"
	"runtime"
	"time"

	hierarchyapp "github.com/orgchart/backend/internal/application/hierarchy"
	"github.com/orgchart/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger checks connectivity to a backing store
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	db        Pinger
	strategy  hierarchyapp.Strategy
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, strategy hierarchyapp.Strategy) *SystemHandler {
	return &SystemHandler{
		db:        db,
		strategy:  strategy,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Strategy  string `json:"strategy"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// RegisterSystemRoutes attaches liveness and readiness probes to the engine root
func (h *SystemHandler) RegisterSystemRoutes(engine *gin.Engine) {
	engine.GET("/healthz", h.Healthz)
	engine.GET("/readyz", h.Readyz)
}

// RegisterRoutes implements router.RouteRegistrar for the versioned API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/system/info", h.GetSystemInfo)
}

// Healthz is the liveness probe
func (h *SystemHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz is the readiness probe; it fails when the database is unreachable
func (h *SystemHandler) Readyz(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSystemInfo returns version and uptime information
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(SystemInfoResponse{
		Name:      "Orgchart Backend API",
		Strategy:  string(h.strategy),
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}))
}
