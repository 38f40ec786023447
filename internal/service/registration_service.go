package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/internal/repository"
	"github.com/nyatsime/portal-api/pkg/config"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

const minPasswordLength = 6

// DomainPolicy maps organisational email domains onto self-registration
// roles. An explicit policy value replaces the legacy global domain
// strings.
type DomainPolicy struct {
	adminDomain   string
	staffDomain   string
	learnerDomain string
}

// NewDomainPolicy builds the policy from configuration.
func NewDomainPolicy(cfg config.RegistrationConfig) DomainPolicy {
	return DomainPolicy{
		adminDomain:   strings.ToLower(cfg.AdminDomain),
		staffDomain:   strings.ToLower(cfg.StaffDomain),
		learnerDomain: strings.ToLower(cfg.LearnerDomain),
	}
}

// StaffRole derives the role a staff/admin self-registration is
// entitled to, or a validation error on a foreign domain.
func (p DomainPolicy) StaffRole(email string) (models.StaffRole, error) {
	switch emailDomain(email) {
	case p.adminDomain:
		return models.RoleAdmin, nil
	case p.staffDomain:
		return models.RoleTeacher, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("Please use a @%s email for teachers or @%s for admins.", p.staffDomain, p.adminDomain))
	}
}

// CheckLearnerDomain admits only the configured learner domain.
func (p DomainPolicy) CheckLearnerDomain(email string) error {
	if emailDomain(email) != p.learnerDomain {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("Students must register with a @%s email address.", p.learnerDomain))
	}
	return nil
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:]))
}

type staffRegistrationRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
}

type learnerRegistrationRepository interface {
	Create(ctx context.Context, learner *models.Learner) error
}

type idAllocator interface {
	Allocate(ctx context.Context, class EntityClass) (string, error)
}

// RegisterStaffRequest is the staff/admin self-registration payload.
type RegisterStaffRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Subject        string `json:"subject"`
	ClassesTaught  string `json:"classes_taught"`
	Phone          string `json:"phone"`
	Gender         string `json:"gender"`
	Qualification  string `json:"qualification"`
	Address        string `json:"address"`
	IDNumber       string `json:"id_number"`
	DateOfBirth    string `json:"date_of_birth"`
	NextOfKinName  string `json:"next_of_kin_name"`
	NextOfKinPhone string `json:"next_of_kin_phone"`
	Photo          string `json:"photo"`
}

// RegisterLearnerRequest is the learner self-registration payload.
type RegisterLearnerRequest struct {
	Email                 string `json:"email" validate:"required,email"`
	Password              string `json:"password" validate:"required"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Grade                 string `json:"grade"`
	Gender                string `json:"gender"`
	Phone                 string `json:"phone"`
	Address               string `json:"address"`
	IDNumber              string `json:"id_number"`
	DateOfBirth           string `json:"date_of_birth"`
	NextOfKinName         string `json:"next_of_kin_name"`
	NextOfKinRelationship string `json:"next_of_kin_relationship"`
	NextOfKinPhone        string `json:"next_of_kin_phone"`
	NextOfKinEmail        string `json:"next_of_kin_email"`
}

// RegistrationService gates self-registration by email domain and
// persists new accounts.
type RegistrationService struct {
	staff     staffRegistrationRepository
	learners  learnerRegistrationRepository
	allocator idAllocator
	policy    DomainPolicy
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(staff staffRegistrationRepository, learners learnerRegistrationRepository, allocator idAllocator, policy DomainPolicy, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{staff: staff, learners: learners, allocator: allocator, policy: policy, validator: validate, logger: logger}
}

// RegisterStaff creates a staff account with the role the email domain
// entitles. Staff are auto-approved.
func (s *RegistrationService) RegisterStaff(ctx context.Context, req RegisterStaffRequest) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	email := normalizeEmail(req.Email)
	role, err := s.policy.StaffRole(email)
	if err != nil {
		return nil, err
	}
	if err := checkPasswordLength(req.Password); err != nil {
		return nil, err
	}

	staffID, err := s.allocator.Allocate(ctx, ClassStaff)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate staff id")
	}

	staff := &models.Staff{
		StaffID:        staffID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          email,
		PasswordHash:   HashPassword(req.Password),
		Phone:          req.Phone,
		Address:        req.Address,
		IDNumber:       req.IDNumber,
		Subject:        req.Subject,
		ClassesTaught:  req.ClassesTaught,
		NextOfKinName:  req.NextOfKinName,
		NextOfKinPhone: req.NextOfKinPhone,
		DateEmployed:   time.Now().UTC().Format("2006-01-02"),
		Role:           role,
		Gender:         req.Gender,
		DateOfBirth:    req.DateOfBirth,
		Qualification:  req.Qualification,
		Photo:          req.Photo,
		Status:         "Active",
		Approved:       true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.ErrConflict
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create staff member")
	}

	s.logger.Info("staff registered", zap.String("staff_id", staff.StaffID), zap.String("role", string(role)))
	return staff, nil
}

// RegisterLearner creates an unapproved learner account pending admin
// approval.
func (s *RegistrationService) RegisterLearner(ctx context.Context, req RegisterLearnerRequest) (*models.Learner, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	email := normalizeEmail(req.Email)
	if err := s.policy.CheckLearnerDomain(email); err != nil {
		return nil, err
	}
	if err := checkPasswordLength(req.Password); err != nil {
		return nil, err
	}

	learnerID, err := s.allocator.Allocate(ctx, ClassLearner)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate learner id")
	}

	learner := &models.Learner{
		LearnerID:             learnerID,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 email,
		PasswordHash:          HashPassword(req.Password),
		Phone:                 req.Phone,
		Address:               req.Address,
		IDNumber:              req.IDNumber,
		Grade:                 req.Grade,
		DateOfBirth:           req.DateOfBirth,
		Gender:                req.Gender,
		NextOfKinName:         req.NextOfKinName,
		NextOfKinRelationship: req.NextOfKinRelationship,
		NextOfKinPhone:        req.NextOfKinPhone,
		NextOfKinEmail:        req.NextOfKinEmail,
		Status:                "Active",
		Approved:              false,
	}
	if err := s.learners.Create(ctx, learner); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.ErrConflict
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create learner")
	}

	s.logger.Info("learner registered", zap.String("learner_id", learner.LearnerID), zap.String("grade", learner.Grade))
	return learner, nil
}

func checkPasswordLength(password string) error {
	if len(password) < minPasswordLength {
		return appErrors.Clone(appErrors.ErrValidation, "Password must be at least 6 characters.")
	}
	return nil
}
