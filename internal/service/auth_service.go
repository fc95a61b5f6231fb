package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hostel-drishti/backend/config"
	"hostel-drishti/backend/internal/dto"
	"hostel-drishti/backend/internal/model"
	"hostel-drishti/backend/internal/repository"
	pkgerrors "hostel-drishti/backend/pkg/errors"
	"hostel-drishti/backend/pkg/jwt"
)

const invalidCredentials = "Invalid credentials"

// AuthService registration, login and the caller's own account
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error)
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateContact(ctx context.Context, userID string, req *dto.UpdateContactRequest) (*dto.UserResponse, error)
	// Logout revokes the token id until the token would have expired anyway
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResult, error) {
	// 1. role, Student when omitted
	role := model.RoleStudent
	if req.Role != "" {
		r, ok := model.ParseRole(req.Role)
		if !ok {
			return nil, pkgerrors.Validation("role must be Student, Warden or DWO")
		}
		role = r
	}

	// 2. privileged roles need the matching secret code
	if err := s.checkSecretCode(role, req.SecretCode); err != nil {
		return nil, err
	}

	// 3. email uniqueness
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, pkgerrors.Validation("User already exists")
	} else if !repository.IsNotFound(err) {
		s.logger.Error("lookup user by email failed", zap.Error(err))
		return nil, err
	}

	// 4. create
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if c := strings.TrimSpace(req.ContactNumber); c != "" {
		user.ContactNumber = &c
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, pkgerrors.Validation("User already exists")
		}
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.UserID), zap.String("role", string(role)))

	return s.issue(user)
}

func (s *authService) checkSecretCode(role model.Role, code string) error {
	var want string
	switch role {
	case model.RoleWarden:
		want = s.cfg.Auth.WardenSecretCode
	case model.RoleDWO:
		want = s.cfg.Auth.DWOSecretCode
	default:
		return nil
	}

	// an unset code disables self-registration for that role
	if want == "" || subtle.ConstantTimeCompare([]byte(code), []byte(want)) != 1 {
		return pkgerrors.Forbidden("Invalid secret code for %s registration", role)
	}
	return nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResult, error) {
	// 1. look up the user
	user, err := s.repo.User.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.InvalidToken(invalidCredentials)
		}
		s.logger.Error("lookup user by email failed", zap.Error(err))
		return nil, err
	}

	// 2. verify password (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, pkgerrors.InvalidToken(invalidCredentials)
	}

	// 3. token
	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*dto.AuthResult, error) {
	token, err := s.jwtMgr.GenerateToken(user.UserID, string(user.Role))
	if err != nil {
		s.logger.Error("sign token failed", zap.String("user_id", user.UserID), zap.Error(err))
		return nil, err
	}
	return &dto.AuthResult{Token: token, User: toUserResponse(user)}, nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.NotFound("User")
		}
		s.logger.Error("load user failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) UpdateContact(ctx context.Context, userID string, req *dto.UpdateContactRequest) (*dto.UserResponse, error) {
	contact := strings.TrimSpace(req.ContactNumber)
	if contact == "" {
		return nil, pkgerrors.Validation("contactNumber is required")
	}

	if err := s.repo.User.UpdateContact(ctx, userID, contact); err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.NotFound("User")
		}
		s.logger.Error("update contact failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.Me(ctx, userID)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil || jti == "" {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("blacklist token failed", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}
