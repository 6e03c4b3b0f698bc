package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the document store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type StatusController struct {
	store   Pinger
	service string
}

func NewStatusController(store Pinger, service string) *StatusController {
	return &StatusController{store: store, service: service}
}

// Root godoc
// @Summary Server status
// @Description Report that the server is up
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (sc *StatusController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Server is running smoothly",
		"timestamp": time.Now().UTC(),
	})
}

// Health godoc
// @Summary Health check
// @Description Check that the service and its document store are reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (sc *StatusController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "healthy", http.StatusOK
	if err := sc.store.Ping(ctx); err != nil {
		_ = c.Error(err)
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   sc.service,
	})
}
