package handlers

import (
	"ggreviews/concurrent"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns aggregate site statistics. Admin gate sits on
// the route.
func GetDashboardStats(c *gin.Context) {
	start := time.Now()
	stats := concurrent.CalculateDashboardStats()

	c.JSON(http.StatusOK, gin.H{
		"statistics":       stats,
		"calculation_time": time.Since(start).String(),
	})
}
