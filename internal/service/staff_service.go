package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/internal/repository"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type staffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	FindByStaffID(ctx context.Context, staffID string) (*models.Staff, error)
	List(ctx context.Context) ([]models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, staffID string) error
}

// CreateStaffRequest is the administrative staff-creation payload.
// Unlike self-registration it is not domain gated and may set any role.
type CreateStaffRequest struct {
	Email          string           `json:"email" validate:"required,email"`
	Password       string           `json:"password"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Subject        string           `json:"subject"`
	ClassesTaught  string           `json:"classes_taught"`
	Role           models.StaffRole `json:"role"`
	DateEmployed   string           `json:"date_employed"`
	Phone          string           `json:"phone"`
	Gender         string           `json:"gender"`
	Qualification  string           `json:"qualification"`
	Address        string           `json:"address"`
	IDNumber       string           `json:"id_number"`
	DateOfBirth    string           `json:"date_of_birth"`
	NextOfKinName  string           `json:"next_of_kin_name"`
	NextOfKinPhone string           `json:"next_of_kin_phone"`
	Photo          string           `json:"photo"`
}

// StaffService manages the staff roster on behalf of administrators.
type StaffService struct {
	repo      staffRepository
	allocator idAllocator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs a StaffService.
func NewStaffService(repo staffRepository, allocator idAllocator, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{repo: repo, allocator: allocator, validator: validate, logger: logger}
}

// Create adds a staff member administratively. An omitted password
// falls back to the roster default the school hands new hires.
func (s *StaffService) Create(ctx context.Context, req CreateStaffRequest) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}

	staffID, err := s.allocator.Allocate(ctx, ClassStaff)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate staff id")
	}

	password := req.Password
	if password == "" {
		password = "staff123"
	}
	role := req.Role
	if role == "" {
		role = models.RoleTeacher
	}
	dateEmployed := req.DateEmployed
	if dateEmployed == "" {
		dateEmployed = time.Now().UTC().Format("2006-01-02")
	}

	staff := &models.Staff{
		StaffID:        staffID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          normalizeEmail(req.Email),
		PasswordHash:   HashPassword(password),
		Phone:          req.Phone,
		Address:        req.Address,
		IDNumber:       req.IDNumber,
		Subject:        req.Subject,
		ClassesTaught:  req.ClassesTaught,
		NextOfKinName:  req.NextOfKinName,
		NextOfKinPhone: req.NextOfKinPhone,
		DateEmployed:   dateEmployed,
		Role:           role,
		Gender:         req.Gender,
		DateOfBirth:    req.DateOfBirth,
		Qualification:  req.Qualification,
		Photo:          req.Photo,
		Status:         "Active",
		Approved:       true,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Email already exists.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create staff member")
	}
	return staff, nil
}

// List returns the staff roster.
func (s *StaffService) List(ctx context.Context) ([]models.Staff, error) {
	staff, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}
	return staff, nil
}

// Get returns one staff member by display identifier.
func (s *StaffService) Get(ctx context.Context, staffID string) (*models.Staff, error) {
	staff, err := s.repo.FindByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff member")
	}
	return staff, nil
}

// Update applies a partial update. Only fields present in the patch
// change; a supplied password is re-hashed before storage.
func (s *StaffService) Update(ctx context.Context, staffID string, patch models.StaffPatch) (*models.Staff, error) {
	staff, err := s.repo.FindByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff member")
	}

	applyStaffPatch(staff, patch)

	if err := s.repo.Update(ctx, staff); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.ErrConflict
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update staff member")
	}
	return staff, nil
}

// Delete removes a staff member.
func (s *StaffService) Delete(ctx context.Context, staffID string) error {
	if err := s.repo.Delete(ctx, staffID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete staff member")
	}
	return nil
}

func applyStaffPatch(staff *models.Staff, patch models.StaffPatch) {
	if patch.FirstName != nil {
		staff.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		staff.LastName = *patch.LastName
	}
	if patch.Email != nil {
		staff.Email = normalizeEmail(*patch.Email)
	}
	if patch.Password != nil && *patch.Password != "" {
		staff.PasswordHash = HashPassword(*patch.Password)
	}
	if patch.Phone != nil {
		staff.Phone = *patch.Phone
	}
	if patch.Address != nil {
		staff.Address = *patch.Address
	}
	if patch.IDNumber != nil {
		staff.IDNumber = *patch.IDNumber
	}
	if patch.Subject != nil {
		staff.Subject = *patch.Subject
	}
	if patch.ClassesTaught != nil {
		staff.ClassesTaught = *patch.ClassesTaught
	}
	if patch.NextOfKinName != nil {
		staff.NextOfKinName = *patch.NextOfKinName
	}
	if patch.NextOfKinPhone != nil {
		staff.NextOfKinPhone = *patch.NextOfKinPhone
	}
	if patch.DateEmployed != nil {
		staff.DateEmployed = *patch.DateEmployed
	}
	if patch.Role != nil {
		staff.Role = *patch.Role
	}
	if patch.Gender != nil {
		staff.Gender = *patch.Gender
	}
	if patch.DateOfBirth != nil {
		staff.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Qualification != nil {
		staff.Qualification = *patch.Qualification
	}
	if patch.Photo != nil {
		staff.Photo = *patch.Photo
	}
	if patch.Status != nil {
		staff.Status = *patch.Status
	}
}
