package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/services"
)

type TeacherHandler struct {
	BaseHandler
	userService services.UserService
}

func NewTeacherHandler(userService services.UserService, logger *slog.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

func (h *TeacherHandler) UpdateProfile(c *gin.Context) {
	callerID, callerRole, ok := currentIdentity(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req services.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	teacher, err := h.userService.UpdateProfile(c.Request.Context(), callerID, callerRole, &req)
	if err != nil {
		h.RespondError(c, err, "Error updating profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"teacher": teacher,
	})
}

// DeleteProfile removes the calling teacher's account. Their courses remain,
// unowned, until an admin decides what to do with them.
func (h *TeacherHandler) DeleteProfile(c *gin.Context) {
	callerID, callerRole, ok := currentIdentity(c)
	if !ok {
		unauthenticated(c)
		return
	}

	h.LogRequest(c, "Deleting teacher profile", "teacher_id", callerID)

	if err := h.userService.DeleteProfile(c.Request.Context(), callerID, callerRole); err != nil {
		h.RespondError(c, err, "Error deleting profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted"})
}

func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.userService.ListByRole(c.Request.Context(), models.RoleTeacher)
	if err != nil {
		h.RespondError(c, err, "Error retrieving teachers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"teachers": teachers})
}

func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	teacher, err := h.userService.GetByIDAndRole(c.Request.Context(), c.Param("id"), models.RoleTeacher)
	if err != nil {
		h.RespondError(c, err, "Error retrieving teacher")
		return
	}

	c.JSON(http.StatusOK, gin.H{"teacher": teacher})
}
