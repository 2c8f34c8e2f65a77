package service

import (
	"math"

	"leave-service/internal/model"
)

// ComputeStats derives the dashboard summary from the current request and
// employee collections. Pure function: no store access, no caching.
//
// The approval rate is round(approved/total*100); an empty request set yields
// a rate of 0 rather than a division-by-zero fault.
func ComputeStats(requests []model.LeaveRequest, employees []model.User) model.LeaveStats {
	stats := model.LeaveStats{
		TotalRequests: len(requests),
		TotalUsers:    len(employees),
	}

	for _, request := range requests {
		switch request.Status {
		case model.StatusPending:
			stats.PendingRequests++
		case model.StatusApproved:
			stats.ApprovedRequests++
		case model.StatusRejected:
			stats.RejectedRequests++
		}
	}

	if stats.TotalRequests > 0 {
		stats.ApprovalRate = int(math.Round(float64(stats.ApprovedRequests) / float64(stats.TotalRequests) * 100))
	}

	return stats
}
