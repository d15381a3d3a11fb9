package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/campus-hub/school-service/internal/models"
	"github.com/campus-hub/school-service/internal/repositories"
	"github.com/campus-hub/school-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	hasher    PasswordHasher
	tokens    TokenIssuer
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, hasher PasswordHasher, tokens TokenIssuer) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		hasher:    hasher,
		tokens:    tokens,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest, role models.UserRole) (*models.User, error) {
	s.logger.Info("Registering user", "username", req.Username, "role", role)

	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	// Teacher registration must state its role explicitly; anything else is
	// rejected rather than silently defaulted. Student and admin routes
	// force their role regardless of the request body.
	if role == models.RoleTeacher && req.Role != models.RoleTeacher {
		return nil, ErrInvalidRole
	}

	if err := s.checkUniqueness(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Surname:  req.Surname,
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Role:     role,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			// Lost a race with a concurrent registration.
			return nil, &DuplicateFieldError{Field: "username or email"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)

	user.Password = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (string, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return "", errs
	}

	user, err := s.repo.User().GetByUserlogin(ctx, req.Userlogin)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Compare(user.Password, req.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return token, nil
}

func (s *authService) checkUniqueness(ctx context.Context, username, email string) error {
	exists, err := s.repo.User().ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return &DuplicateFieldError{Field: "username"}
	}

	exists, err = s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return &DuplicateFieldError{Field: "email"}
	}

	return nil
}
