package httpserver

import (
	"net/http"

	"geonotes/pkg/response"

	"github.com/gin-gonic/gin"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "geonotes API v1"
	HealthVersion = "1.0.0"
	ServiceName   = "geonotes"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready once the note list has been loaded at least once.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} map[string]interface{} "First page not loaded yet"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	snap := srv.agg.Snapshot()
	body := gin.H{
		"status":    "ready",
		"message":   HealthMessage,
		"version":   HealthVersion,
		"service":   ServiceName,
		"notes":     snap.Len(),
		"page_size": srv.agg.PageSize(),
	}
	if !snap.Loaded {
		body["status"] = "loading"
		c.JSON(http.StatusServiceUnavailable, response.NewOKResp(body))
		return
	}
	response.OK(c, body)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
