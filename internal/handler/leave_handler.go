package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"leave-service/internal/model"
	"leave-service/internal/service"
	"leave-service/pkg/logger"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LeaveHandler exposes the leave request operations over HTTP
type LeaveHandler struct {
	leaves service.LeaveService
}

// NewLeaveHandler creates a leave handler backed by the given service
func NewLeaveHandler(leaves service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

// LeaveRequestInput defines the structure for leave creation requests.
// Dates are calendar dates in YYYY-MM-DD form (RFC3339 also accepted).
type LeaveRequestInput struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// StatusUpdateInput defines the structure for approve/reject decisions
type StatusUpdateInput struct {
	Status       string `json:"status"`
	AdminComment string `json:"admin_comment,omitempty"`
}

// Create submits a new leave request owned by the authenticated user
func (h *LeaveHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("create")

	var req LeaveRequestInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	// Get user ID from context (set by AuthMiddleware)
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		log.Warn("Invalid start_date", zap.String("start_date", req.StartDate), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be a date in YYYY-MM-DD form"})
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		log.Warn("Invalid end_date", zap.String("end_date", req.EndDate), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be a date in YYYY-MM-DD form"})
	}

	log.Info("Leave request submission",
		zap.Uint("user_id", userID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate))

	request, err := h.leaves.Create(service.CreateLeaveInput{
		UserID:    userID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			log.Warn("Leave request rejected by validation", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		log.Error("Failed to create leave request", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create leave request"})
	}

	log.Info("Leave request created",
		zap.Uint("id", request.ID),
		zap.Int("days_requested", request.DaysRequested))
	return c.JSON(http.StatusCreated, request)
}

// List retrieves leave requests. Administrators see the whole collection and
// may filter by user_id, status and search term; employees always see their
// own requests, with the same status/search filtering applied.
func (h *LeaveHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("list")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	role, _ := c.Get("role").(string)

	// Resolve whose requests to load
	var owner *uint
	if role == model.RoleAdmin {
		if param := c.QueryParam("user_id"); param != "" {
			id, err := strconv.ParseUint(param, 10, 32)
			if err != nil {
				log.Warn("Invalid user_id parameter", zap.String("value", param))
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
			}
			requested := uint(id)
			owner = &requested
		}
	} else {
		owner = &userID
	}

	requests, err := h.leaves.List(owner)
	if err != nil {
		log.Error("Failed to retrieve leave requests", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve leave requests"})
	}

	filtered := service.FilterRequests(requests, service.FilterOptions{
		Status:     c.QueryParam("status"),
		SearchTerm: c.QueryParam("search"),
	})

	log.Info("Leave requests retrieved",
		zap.Int("count", len(filtered)),
		zap.Int("total", len(requests)),
		zap.String("role", role))
	return c.JSON(http.StatusOK, echo.Map{"leave_requests": filtered})
}

// UpdateStatus approves or rejects a pending request with an optional comment
func (h *LeaveHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("update_status")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid leave request ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid leave request ID"})
	}

	var req StatusUpdateInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	log.Info("Leave request decision",
		zap.Uint64("id", id),
		zap.String("status", req.Status),
		zap.Bool("has_comment", req.AdminComment != ""))

	request, err := h.leaves.UpdateStatus(uint(id), req.Status, req.AdminComment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			log.Warn("Invalid decision", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRequestNotFound):
			log.Warn("Leave request not found", zap.Uint64("id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "leave request not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			log.Warn("Leave request already processed", zap.Uint64("id", id))
			return c.JSON(http.StatusConflict, echo.Map{"error": "leave request has already been processed"})
		}
		log.Error("Failed to update leave request", zap.Uint64("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update leave request"})
	}

	log.Info("Leave request status updated",
		zap.Uint("id", request.ID),
		zap.String("status", request.Status))
	return c.JSON(http.StatusOK, request)
}

// parseDate accepts plain calendar dates and RFC3339 timestamps
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
