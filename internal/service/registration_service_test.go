package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/pkg/config"
	appErrors "github.com/nyatsime/portal-api/pkg/errors"
)

type fakeAllocator struct {
	counts map[EntityClass]int64
}

func (f *fakeAllocator) Allocate(ctx context.Context, class EntityClass) (string, error) {
	if f.counts == nil {
		f.counts = make(map[EntityClass]int64)
	}
	f.counts[class]++
	return FormatID(classPrefixes[class], f.counts[class]), nil
}

type fakeStaffStore struct {
	byEmail map[string]*models.Staff
}

func (f *fakeStaffStore) Create(ctx context.Context, staff *models.Staff) error {
	if f.byEmail == nil {
		f.byEmail = make(map[string]*models.Staff)
	}
	if _, exists := f.byEmail[staff.Email]; exists {
		return &pq.Error{Code: "23505"}
	}
	f.byEmail[staff.Email] = staff
	return nil
}

func (f *fakeStaffStore) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	if s, ok := f.byEmail[email]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

type fakeLearnerStore struct {
	byEmail map[string]*models.Learner
}

func (f *fakeLearnerStore) Create(ctx context.Context, learner *models.Learner) error {
	if f.byEmail == nil {
		f.byEmail = make(map[string]*models.Learner)
	}
	if _, exists := f.byEmail[learner.Email]; exists {
		return &pq.Error{Code: "23505"}
	}
	f.byEmail[learner.Email] = learner
	return nil
}

func (f *fakeLearnerStore) FindByEmail(ctx context.Context, email string) (*models.Learner, error) {
	if l, ok := f.byEmail[email]; ok {
		return l, nil
	}
	return nil, sql.ErrNoRows
}

func testDomainPolicy() DomainPolicy {
	return NewDomainPolicy(config.RegistrationConfig{
		AdminDomain:   "admin.ac.zw",
		StaffDomain:   "nyatsimestaff.ac.zw",
		LearnerDomain: "nyatsimestudent.ac.zw",
	})
}

func newTestRegistrationService(staff *fakeStaffStore, learners *fakeLearnerStore) *RegistrationService {
	if staff == nil {
		staff = &fakeStaffStore{}
	}
	if learners == nil {
		learners = &fakeLearnerStore{}
	}
	return NewRegistrationService(staff, learners, &fakeAllocator{}, testDomainPolicy(), nil, nil)
}

func TestRegisterStaffRoleFromDomain(t *testing.T) {
	store := &fakeStaffStore{}
	svc := newTestRegistrationService(store, nil)

	teacher, err := svc.RegisterStaff(context.Background(), RegisterStaffRequest{
		Email:    "jane@nyatsimestaff.ac.zw",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, teacher.Role)
	assert.Equal(t, "STF-0001", teacher.StaffID)
	assert.True(t, teacher.Approved)

	admin, err := svc.RegisterStaff(context.Background(), RegisterStaffRequest{
		Email:    "head@admin.ac.zw",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "STF-0002", admin.StaffID)
}

func TestRegisterStaffForeignDomainRejected(t *testing.T) {
	svc := newTestRegistrationService(nil, nil)

	_, err := svc.RegisterStaff(context.Background(), RegisterStaffRequest{
		Email:    "jane@gmail.com",
		Password: "secret123",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "nyatsimestaff.ac.zw")
	assert.Contains(t, appErr.Message, "admin.ac.zw")
}

func TestRegisterLearnerForeignDomainRejected(t *testing.T) {
	svc := newTestRegistrationService(nil, nil)

	_, err := svc.RegisterLearner(context.Background(), RegisterLearnerRequest{
		Email:    "tinashe@nyatsimestaff.ac.zw",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "nyatsimestudent.ac.zw")
}

func TestRegisterShortPasswordRejected(t *testing.T) {
	svc := newTestRegistrationService(nil, nil)

	_, err := svc.RegisterLearner(context.Background(), RegisterLearnerRequest{
		Email:    "tinashe@nyatsimestudent.ac.zw",
		Password: "abc",
	})
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters.", appErrors.FromError(err).Message)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	store := &fakeLearnerStore{}
	svc := newTestRegistrationService(nil, store)

	req := RegisterLearnerRequest{Email: "tinashe@nyatsimestudent.ac.zw", Password: "secret123"}
	_, err := svc.RegisterLearner(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.RegisterLearner(context.Background(), req)
	require.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Equal(t, "Email already registered.", appErrors.FromError(err).Message)
}

func TestRegisterApproveLoginFlow(t *testing.T) {
	learners := &fakeLearnerStore{}
	reg := newTestRegistrationService(nil, learners)

	created, err := reg.RegisterLearner(context.Background(), RegisterLearnerRequest{
		Email:     "tinashe@nyatsimestudent.ac.zw",
		Password:  "secret123",
		FirstName: "Tinashe",
		LastName:  "Chirwa",
		Grade:     "Form 2A",
	})
	require.NoError(t, err)
	assert.False(t, created.Approved)
	assert.Equal(t, "LRN-0001", created.LearnerID)

	auth := NewAuthService(&fakeStaffStore{}, learners, nil, nil, testMasterConfig(), testJWTConfig())
	loginReq := models.LoginRequest{Email: created.Email, Password: "secret123"}

	_, err = auth.LoginLearner(context.Background(), loginReq)
	require.ErrorIs(t, err, appErrors.ErrPendingApproval)

	learners.byEmail[created.Email].Approved = true

	res, err := auth.LoginLearner(context.Background(), loginReq)
	require.NoError(t, err)
	assert.Equal(t, created.LearnerID, res.User.ID)
}

func TestEmailDomainParsing(t *testing.T) {
	assert.Equal(t, "nyatsimestaff.ac.zw", emailDomain("Jane@NyatsimeStaff.ac.zw"))
	assert.Equal(t, "", emailDomain("not-an-email"))
	assert.Equal(t, "b.c", emailDomain("a@b.c"))
}
