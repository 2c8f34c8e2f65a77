package handler

import (
	"net/http"

	"leave-service/internal/service"
	"leave-service/pkg/logger"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler exposes the employee directory over HTTP
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a user handler backed by the given service
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// ListEmployees returns registered users with the employee role
func (h *UserHandler) ListEmployees(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("list_users")

	employees, err := h.users.ListEmployees()
	if err != nil {
		log.Error("Failed to retrieve employees", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve employees"})
	}

	log.Info("Employees retrieved", zap.Int("count", len(employees)))
	return c.JSON(http.StatusOK, echo.Map{"users": employees})
}
