package middleware

import (
	"net/http"
	"strings"

	"leave-service/internal/model"
	"leave-service/pkg/jwtutil"
	"leave-service/pkg/logger"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the JWT token and extracts claims
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Track authentication attempts
		prometheus.AuthAttemptsCounter.Inc()

		// Extract the token from the Authorization header
		tokenString := c.Request().Header.Get("Authorization")
		if tokenString == "" {
			log.Warn("Missing authorization token")
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		// Remove "Bearer " prefix if present
		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:7]) == "BEARER " {
			tokenString = tokenString[7:]
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Warn("Invalid token", zap.Error(err))
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}

		// Increment successful auth counter
		prometheus.AuthSuccessCounter.Inc()

		// Store user information in the context
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)

		// Update logger with user information
		log = log.With(
			zap.Uint("user_id", claims.UserID),
			zap.String("email", claims.Email),
			zap.String("role", claims.Role),
		)
		c.Set("logger", log)

		return next(c)
	}
}

// RequireAdmin ensures the authenticated user carries the admin role.
// Approve/reject decisions and the employee directory are admin-only.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		role, ok := c.Get("role").(string)
		if !ok || role != model.RoleAdmin {
			log.Warn("Non-admin attempted an admin operation", zap.String("role", role))
			return c.JSON(http.StatusForbidden, echo.Map{
				"error": "administrator role required",
			})
		}

		return next(c)
	}
}
