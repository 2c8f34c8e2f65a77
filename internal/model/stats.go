package model

// LeaveStats summarizes the request collection for dashboards. ApprovalRate
// is derived from the counts at aggregation time and never stored.
type LeaveStats struct {
	TotalRequests    int `json:"total_requests"`
	PendingRequests  int `json:"pending_requests"`
	ApprovedRequests int `json:"approved_requests"`
	RejectedRequests int `json:"rejected_requests"`
	TotalUsers       int `json:"total_users"`
	ApprovalRate     int `json:"approval_rate"`
}
