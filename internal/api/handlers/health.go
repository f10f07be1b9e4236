package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthChecker is anything that can report its own health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependency is one named backing service. A nil Checker reports Fallback.
type Dependency struct {
	Name     string
	Checker  HealthChecker
	Fallback string
	// Required dependencies turn the overall status unhealthy when down.
	Required bool
}

type HealthHandler struct {
	deps    []Dependency
	version string
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
}

func NewHealthHandler(version string, deps ...Dependency) *HealthHandler {
	return &HealthHandler{deps: deps, version: version}
}

// HealthCheck reports "healthy", "degraded" when an optional dependency is
// down, or "unhealthy" (503) when a required one is.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	services := make(map[string]string, len(h.deps))
	status := "healthy"
	for _, d := range h.deps {
		if d.Checker == nil {
			services[d.Name] = d.Fallback
			continue
		}
		if err := d.Checker.HealthCheck(ctx); err != nil {
			services[d.Name] = "unhealthy: " + err.Error()
			if d.Required {
				status = "unhealthy"
			} else if status == "healthy" {
				status = "degraded"
			}
			continue
		}
		services[d.Name] = "healthy"
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
		Version:   h.version,
		Uptime:    time.Since(startTime).Round(time.Second).String(),
	})
}
