package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/school-service/internal/auth"
	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/services"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	courseHandler  *CourseHandler
	studentHandler *StudentHandler
	teacherHandler *TeacherHandler
	reportHandler  *ReportHandler
	authMiddleware *AuthMiddleware
	serviceManager services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, tokens *auth.TokenManager, logger *slog.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		courseHandler:  NewCourseHandler(serviceManager.Course(), logger),
		studentHandler: NewStudentHandler(serviceManager.Enrollment(), serviceManager.User(), logger),
		teacherHandler: NewTeacherHandler(serviceManager.User(), logger),
		reportHandler:  NewReportHandler(serviceManager.Report(), logger),
		authMiddleware: NewAuthMiddleware(tokens),
		serviceManager: serviceManager,
	}
}

// SetupRoutes sets up all API routes. Gates run in a fixed order per
// operation: authentication, then role, then ownership (the last enforced in
// the services).
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")

	// Public registration and login
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register/student", hm.authHandler.RegisterStudent)
		authRoutes.POST("/register/teacher", hm.authHandler.RegisterTeacher)
		authRoutes.POST("/register/admin", hm.authHandler.RegisterAdmin)
		authRoutes.POST("/login", hm.authHandler.Login)
	}

	am := hm.authMiddleware

	courses := v1.Group("/courses")
	courses.Use(am.Authenticate())
	{
		courses.POST("", am.RequireRole(models.RoleTeacher), hm.courseHandler.CreateCourse)
		courses.GET("/my-courses", am.RequireRole(models.RoleTeacher), hm.courseHandler.GetMyCourses)

		// Ownership for update/delete is enforced against the stored
		// course owner in the service.
		courses.PUT("/:id", hm.courseHandler.UpdateCourse)
		courses.DELETE("/:id", hm.courseHandler.DeleteCourse)

		courses.GET("", am.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.courseHandler.ListCourses)
		courses.GET("/:id", am.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.courseHandler.GetCourse)
	}

	students := v1.Group("/students")
	students.Use(am.Authenticate())
	{
		students.POST("/assign-course", am.RequireRole(models.RoleStudent), hm.studentHandler.AssignCourse)
		students.GET("/my-courses", am.RequireRole(models.RoleStudent), hm.studentHandler.GetMyCourses)
		students.PUT("/profile", am.RequireRole(models.RoleStudent), hm.studentHandler.UpdateProfile)
		students.DELETE("/profile", am.RequireRole(models.RoleStudent), hm.studentHandler.DeleteProfile)

		students.GET("", am.RequireRole(models.RoleAdmin), hm.studentHandler.ListStudents)
		students.GET("/:id", am.RequireRole(models.RoleAdmin), hm.studentHandler.GetStudent)
	}

	teachers := v1.Group("/teachers")
	teachers.Use(am.Authenticate())
	{
		teachers.PUT("/profile", am.RequireRole(models.RoleTeacher), hm.teacherHandler.UpdateProfile)
		teachers.DELETE("/profile", am.RequireRole(models.RoleTeacher), hm.teacherHandler.DeleteProfile)

		teachers.GET("", am.RequireRole(models.RoleAdmin), hm.teacherHandler.ListTeachers)
		teachers.GET("/:id", am.RequireRole(models.RoleAdmin), hm.teacherHandler.GetTeacher)
	}

	reports := v1.Group("/reports")
	reports.Use(am.Authenticate())
	{
		reports.GET("/courses", am.RequireRole(models.RoleAdmin), hm.reportHandler.CourseRoster)
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
