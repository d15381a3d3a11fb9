package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/school-service/internal/services"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
	}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	callerID, _, ok := currentIdentity(c)
	if !ok {
		unauthenticated(c)
		return
	}

	var req services.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Creating course", "teacher_id", callerID)

	course, err := h.courseService.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.RespondError(c, err, "Error creating course")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Course created successfully",
		"course":  course,
	})
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	callerID, _, ok := currentIdentity(c)
	if !ok {
		unauthenticated(c)
		return
	}
	courseID := c.Param("id")

	var req services.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), courseID, &req, callerID)
	if err != nil {
		h.RespondError(c, err, "Error updating course")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Course updated successfully",
		"course":  course,
	})
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	callerID, _, ok := currentIdentity(c)
	if !ok {
		unauthenticated(c)
		return
	}
	courseID := c.Param("id")

	h.LogRequest(c, "Deleting course", "course_id", courseID, "caller_id", callerID)

	if err := h.courseService.Delete(c.Request.Context(), courseID, callerID); err != nil {
		h.RespondError(c, err, "Error deleting course")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

// GetMyCourses lists the courses owned by the calling teacher.
func (h *CourseHandler) GetMyCourses(c *gin.Context) {
	callerID, _, ok := currentIdentity(c)
	if !ok {
		unauthenticated(c)
		return
	}

	courses, err := h.courseService.ListByTeacher(c.Request.Context(), callerID)
	if err != nil {
		h.RespondError(c, err, "Error fetching courses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListAll(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Error fetching all courses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondError(c, err, "Error fetching course")
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course})
}
