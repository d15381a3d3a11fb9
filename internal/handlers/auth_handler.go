package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/services"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	h.register(c, models.RoleStudent, "Student registered successfully")
}

func (h *AuthHandler) RegisterTeacher(c *gin.Context) {
	h.register(c, models.RoleTeacher, "Teacher registered successfully")
}

func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	h.register(c, models.RoleAdmin, "Admin registered successfully")
}

func (h *AuthHandler) register(c *gin.Context, role models.UserRole, message string) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	h.LogRequest(c, "Registering user", "username", req.Username, "role", role)

	user, err := h.authService.Register(c.Request.Context(), &req, role)
	if err != nil {
		h.RespondError(c, err, "Error registering user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body", Details: err.Error()})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Login error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
