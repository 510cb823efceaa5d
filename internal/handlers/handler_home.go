package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Show the status of the server
// @Description Liveness probe for load balancers and uptime checks.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "transg-backend"})
}
