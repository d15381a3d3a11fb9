package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/services"
)

type StudentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
	userService       services.UserService
}

func NewStudentHandler(enrollmentService services.EnrollmentService, userService services.UserService, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
		userService:       userService,
	}
}

// AssignCourse enrolls the calling student into a course. The student ID
// always comes from the verified identity, never from the body.
func (h *StudentHandler) AssignCourse(c *gin.Context) {
	callerID, _, ok := currentIdentity(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req services.AssignCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Assigning course", "student_id", callerID, "course_id", req.CourseID)

	if err := h.enrollmentService.Assign(c.Request.Context(), callerID, req.CourseID); err != nil {
		h.RespondError(c, err, "Error assigning course")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course assigned successfully"})
}

func (h *StudentHandler) GetMyCourses(c *gin.Context) {
	callerID, _, ok := currentIdentity(c)
	if !ok {
		unauthenticated(c)
		return
	}

	courses, err := h.enrollmentService.ListForStudent(c.Request.Context(), callerID)
	if err != nil {
		h.RespondError(c, err, "Error retrieving courses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *StudentHandler) UpdateProfile(c *gin.Context) {
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

	student, err := h.userService.UpdateProfile(c.Request.Context(), callerID, callerRole, &req)
	if err != nil {
		h.RespondError(c, err, "Error updating profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"student": student,
	})
}

func (h *StudentHandler) DeleteProfile(c *gin.Context) {
	callerID, callerRole, ok := currentIdentity(c)
	if !ok {
		unauthenticated(c)
		return
	}

	h.LogRequest(c, "Deleting student profile", "student_id", callerID)

	if err := h.userService.DeleteProfile(c.Request.Context(), callerID, callerRole); err != nil {
		h.RespondError(c, err, "Error deleting profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted"})
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.userService.ListByRole(c.Request.Context(), models.RoleStudent)
	if err != nil {
		h.RespondError(c, err, "Error retrieving students")
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.userService.GetByIDAndRole(c.Request.Context(), c.Param("id"), models.RoleStudent)
	if err != nil {
		h.RespondError(c, err, "Error retrieving student")
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student})
}
