package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// healthCheckTimeout bounds each dependency probe
const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency the health check probes
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler handles health and build info endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	database  Pinger
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version string, database Pinger) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		database:  database,
		startTime: time.Now(),
	}
}

// HealthResponse reports service liveness and dependency status
type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Uptime   string            `json:"uptime"`
	Services map[string]string `json:"services"`
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health godoc
// @Summary      Health check
// @Description  Answers 503 when the database is unreachable.
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "healthy",
		Version:  h.version,
		Uptime:   h.uptime(),
		Services: map[string]string{"database": "up"},
	}
	status := http.StatusOK

	if h.database != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.database.PingContext(ctx); err != nil {
			logger.L(c.Request.Context()).Warn("health check: database unreachable", zap.Error(err))
			resp.Status = "unhealthy"
			resp.Services["database"] = "down"
			status = http.StatusServiceUnavailable
		}
	}
	c.JSON(status, dto.NewSuccessResponse(resp))
}

// GetSystemInfo godoc
// @Summary      System information
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    h.uptime(),
	})
}

func (h *SystemHandler) uptime() string {
	return time.Since(h.startTime).Round(time.Second).String()
}
