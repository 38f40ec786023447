package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyatsime/portal-api/internal/models"
	"github.com/nyatsime/portal-api/internal/service"
	"github.com/nyatsime/portal-api/pkg/config"
)

type staffRepoStub struct {
	staff map[string]*models.Staff
}

func (s *staffRepoStub) FindByEmail(ctx context.Context, email string) (*models.Staff, error) {
	if st, ok := s.staff[email]; ok {
		return st, nil
	}
	return nil, sql.ErrNoRows
}

type learnerRepoStub struct {
	learners map[string]*models.Learner
}

func (s *learnerRepoStub) FindByEmail(ctx context.Context, email string) (*models.Learner, error) {
	if l, ok := s.learners[email]; ok {
		return l, nil
	}
	return nil, sql.ErrNoRows
}

func newAuthHandlerFixture(staff *staffRepoStub, learners *learnerRepoStub) *AuthHandler {
	if staff == nil {
		staff = &staffRepoStub{}
	}
	if learners == nil {
		learners = &learnerRepoStub{}
	}
	master := config.MasterConfig{
		Email:        "felixmangwendeboss@nyatsimestaff.ac.zw",
		PasswordHash: service.HashPassword("felixjaybee"),
		Name:         "Felix Mangwende",
	}
	jwtCfg := config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "portal-api"}
	return NewAuthHandler(service.NewAuthService(staff, learners, nil, nil, master, jwtCfg))
}

// loginEnvelope is the body every login surface replies with.
type loginEnvelope struct {
	Success bool               `json:"success"`
	User    models.SessionUser `json:"user"`
	Token   string             `json:"token"`
}

func postJSON(t *testing.T, handle gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handle(c)
	return w
}

func TestAuthHandlerLoginStaffSuccess(t *testing.T) {
	staff := &staffRepoStub{staff: map[string]*models.Staff{
		"jane@nyatsimestaff.ac.zw": {
			StaffID:      "STF-0001",
			Email:        "jane@nyatsimestaff.ac.zw",
			PasswordHash: service.HashPassword("staff123"),
			Role:         models.RoleTeacher,
		},
	}}
	h := newAuthHandlerFixture(staff, nil)

	w := postJSON(t, h.LoginStaff, `{"email":"jane@nyatsimestaff.ac.zw","password":"staff123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body loginEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "STF-0001", body.User.ID)
	assert.NotEmpty(t, body.Token)
}

func TestAuthHandlerLoginStaffBadCredentials(t *testing.T) {
	h := newAuthHandlerFixture(nil, nil)

	w := postJSON(t, h.LoginStaff, `{"email":"nobody@nyatsimestaff.ac.zw","password":"staff123"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid email or password.", body["message"])
}

func TestAuthHandlerLoginLearnerPendingMessage(t *testing.T) {
	learners := &learnerRepoStub{learners: map[string]*models.Learner{
		"tinashe@nyatsimestudent.ac.zw": {
			LearnerID:    "LRN-0001",
			Email:        "tinashe@nyatsimestudent.ac.zw",
			PasswordHash: service.HashPassword("secret123"),
			Approved:     false,
		},
	}}
	h := newAuthHandlerFixture(nil, learners)

	w := postJSON(t, h.LoginLearner, `{"email":"tinashe@nyatsimestudent.ac.zw","password":"secret123"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Your account is pending admin approval. Please check back soon.", body["message"])
}

func TestAuthHandlerLoginRejectsInvalidBody(t *testing.T) {
	h := newAuthHandlerFixture(nil, nil)

	w := postJSON(t, h.LoginStaff, `{"email":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerMasterLogin(t *testing.T) {
	h := newAuthHandlerFixture(nil, nil)

	w := postJSON(t, h.LoginMaster, `{"email":"felixmangwendeboss@nyatsimestaff.ac.zw","password":"felixjaybee"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body loginEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "MASTER", body.User.ID)
	assert.Equal(t, models.RoleMaster, body.User.Role)
}

func TestAuthHandlerLoginLearnerEnvelope(t *testing.T) {
	learners := &learnerRepoStub{learners: map[string]*models.Learner{
		"rudo@nyatsimestudent.ac.zw": {
			LearnerID:    "LRN-0002",
			Email:        "rudo@nyatsimestudent.ac.zw",
			PasswordHash: service.HashPassword("secret123"),
			Approved:     true,
		},
	}}
	h := newAuthHandlerFixture(nil, learners)

	w := postJSON(t, h.LoginLearner, `{"email":"rudo@nyatsimestudent.ac.zw","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body loginEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "LRN-0002", body.User.ID)
	assert.NotEmpty(t, body.Token)
}
