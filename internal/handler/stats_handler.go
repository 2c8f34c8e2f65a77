package handler

import (
	"net/http"

	"leave-service/pkg/logger"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetStats returns the dashboard summary derived from the current request
// and employee collections.
func (h *LeaveHandler) GetStats(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("stats")

	stats, err := h.leaves.Stats()
	if err != nil {
		log.Error("Failed to compute stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute stats"})
	}

	// Keep the dashboard gauges aligned with what callers see
	prometheus.UpdateStatusCounts(stats.PendingRequests, stats.ApprovedRequests, stats.RejectedRequests)
	prometheus.UpdateRegisteredEmployees(stats.TotalUsers)

	log.Info("Stats computed",
		zap.Int("total_requests", stats.TotalRequests),
		zap.Int("pending_requests", stats.PendingRequests),
		zap.Int("approval_rate", stats.ApprovalRate))
	return c.JSON(http.StatusOK, stats)
}
