package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/repositories"
	"github.com/campus-hub/school-service/internal/services"
	"github.com/campus-hub/school-service/internal/validator"
)

// ErrorResponse is the error envelope for every failure.
type ErrorResponse struct {
	Message string                     `json:"message"`
	Details string                     `json:"details,omitempty"`
	Fields  validator.ValidationErrors `json:"fields,omitempty"`
}

type BaseHandler struct {
	logger *slog.Logger
}

func NewBaseHandler(logger *slog.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "request_id", c.GetString("request_id"))
	h.logger.Info(msg, args...)
}

func (h BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err, "request_id", c.GetString("request_id"))
	h.logger.Error(msg, args...)
}

// RespondError maps service-layer failures onto HTTP statuses. Every error
// kind keeps a stable status so clients can rely on it.
func (h BaseHandler) RespondError(c *gin.Context, err error, fallback string) {
	var validationErrs validator.ValidationErrors
	var duplicateErr *services.DuplicateFieldError
	var permissionErr *services.PermissionError

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Fields:  validationErrs,
		})
	case errors.As(err, &duplicateErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: duplicateErr.Error()})
	case errors.Is(err, services.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid role for teacher registration. You must provide role 'TEACHER_ROLE'.",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid credentials"})
	case errors.Is(err, services.ErrCourseLimitReached):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Maximum of 3 courses reached"})
	case errors.Is(err, services.ErrAlreadyEnrolled):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Course already assigned"})
	case errors.As(err, &permissionErr):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: permissionErr.Reason})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "User not found"})
	case errors.Is(err, services.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Course not found"})
	case repositories.IsUnavailableError(err):
		h.LogError(c, err, "Store unavailable")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "Service temporarily unavailable"})
	default:
		h.LogError(c, err, fallback)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: fallback})
	}
}

// currentIdentity returns the verified caller identity set by the auth
// middleware.
func currentIdentity(c *gin.Context) (string, models.UserRole, bool) {
	userID := c.GetString("user_id")
	role, _ := c.Get("user_role")
	userRole, ok := role.(models.UserRole)
	if userID == "" || !ok {
		return "", "", false
	}
	return userID, userRole, true
}
