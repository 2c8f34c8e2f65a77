package service

import (
	"strings"

	"leave-service/internal/model"
)

// StatusFilterAll is the sentinel meaning "do not filter by status"
const StatusFilterAll = "all"

// FilterOptions are the caller-supplied filters for a request listing.
// Both filters compose by logical AND when both are supplied.
type FilterOptions struct {
	Status     string
	SearchTerm string
}

// FilterRequests returns the requests matching the options, preserving input
// order. It is a pure function: the input slice is never mutated and equal
// inputs always produce equal results.
//
// The search term matches case-insensitively against the reason, the owner's
// name (skipped when no owner snapshot is attached) and the leave type.
func FilterRequests(requests []model.LeaveRequest, opts FilterOptions) []model.LeaveRequest {
	byStatus := opts.Status != "" && opts.Status != StatusFilterAll
	term := strings.ToLower(strings.TrimSpace(opts.SearchTerm))

	filtered := make([]model.LeaveRequest, 0, len(requests))
	for _, request := range requests {
		if byStatus && request.Status != opts.Status {
			continue
		}
		if term != "" && !matchesTerm(&request, term) {
			continue
		}
		filtered = append(filtered, request)
	}
	return filtered
}

// matchesTerm reports whether any searchable field contains the lowercased term
func matchesTerm(request *model.LeaveRequest, term string) bool {
	if strings.Contains(strings.ToLower(request.Reason), term) {
		return true
	}
	if request.User != nil && strings.Contains(strings.ToLower(request.User.Name), term) {
		return true
	}
	return strings.Contains(strings.ToLower(request.LeaveType), term)
}
