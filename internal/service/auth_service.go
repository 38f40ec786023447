package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/pkg/config"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type staffAuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Staff, error)
}

type learnerAuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Learner, error)
}

// AuthService verifies credentials for the three login surfaces and
// issues access tokens. The master override account is held in config,
// never in the store, and is consulted before either table on every
// surface.
type AuthService struct {
	staff     staffAuthRepository
	learners  learnerAuthRepository
	validator *validator.Validate
	logger    *zap.Logger
	master    config.MasterConfig
	jwtCfg    config.JWTConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(staff staffAuthRepository, learners learnerAuthRepository, validate *validator.Validate, logger *zap.Logger, master config.MasterConfig, jwtCfg config.JWTConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{staff: staff, learners: learners, validator: validate, logger: logger, master: master, jwtCfg: jwtCfg}
}

// LoginMaster authenticates the override account only.
func (s *AuthService) LoginMaster(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	if !s.isMaster(req.Email, HashPassword(req.Password)) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid master credentials.")
	}
	return s.sessionFor(s.masterUser())
}

// LoginStaff authenticates a staff member. The override account wins
// before the staff table is consulted.
func (s *AuthService) LoginStaff(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	email := normalizeEmail(req.Email)
	digest := HashPassword(req.Password)

	if s.isMaster(email, digest) {
		return s.sessionFor(s.masterUser())
	}

	staff, err := s.staff.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff member")
	}
	if !digestEqual(staff.PasswordHash, digest) {
		return nil, appErrors.ErrInvalidCredentials
	}

	return s.sessionFor(models.SessionUser{
		ID:      staff.StaffID,
		Name:    staff.FullName(),
		Email:   staff.Email,
		Role:    staff.Role,
		Subject: staff.Subject,
		Classes: staff.ClassesTaught,
	})
}

// LoginLearner authenticates a learner. Valid credentials on an
// unapproved record fail with the distinct pending-approval error so
// the client can show a different message.
func (s *AuthService) LoginLearner(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	email := normalizeEmail(req.Email)
	digest := HashPassword(req.Password)

	if s.isMaster(email, digest) {
		master := s.masterUser()
		master.Grade = "All"
		return s.sessionFor(master)
	}

	learner, err := s.learners.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load learner")
	}
	if !digestEqual(learner.PasswordHash, digest) {
		return nil, appErrors.ErrInvalidCredentials
	}
	if !learner.Approved {
		return nil, appErrors.ErrPendingApproval
	}

	return s.sessionFor(models.SessionUser{
		ID:          learner.LearnerID,
		Name:        learner.FullName(),
		Email:       learner.Email,
		Grade:       learner.Grade,
		Gender:      learner.Gender,
		FeesBlocked: learner.FeesBlocked,
	})
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) sessionFor(user models.SessionUser) (*models.LoginResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign access token")
	}
	return &models.LoginResponse{User: user, Token: token}, nil
}

func (s *AuthService) generateToken(user models.SessionUser) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.jwtCfg.Expiration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
}

func (s *AuthService) isMaster(email, digest string) bool {
	return normalizeEmail(email) == s.master.Email && digestEqual(digest, s.master.PasswordHash)
}

func (s *AuthService) masterUser() models.SessionUser {
	return models.SessionUser{
		ID:      "MASTER",
		Name:    s.master.Name,
		Email:   s.master.Email,
		Role:    models.RoleMaster,
		Subject: "All",
		Classes: "All",
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func digestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
